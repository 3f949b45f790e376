package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func item(id string, price string, qty int) Item {
	return Item{
		ID:       id,
		Name:     "product " + id,
		Price:    decimal.RequireFromString(price),
		Quantity: qty,
	}
}

func TestAddMergesSameID(t *testing.T) {
	c := New()
	if err := c.Add(item("p1", "10.00", 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Add(item("p1", "10.00", 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Len() != 1 {
		t.Fatalf("expected 1 line, got %d", c.Len())
	}
	if got := c.Items()[0].Quantity; got != 3 {
		t.Fatalf("expected merged quantity 3, got %d", got)
	}
}

func TestTotalsAcrossLines(t *testing.T) {
	c := New()
	if err := c.Add(item("p1", "10.00", 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Add(item("p2", "5.00", 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := c.TotalItems(); got != 3 {
		t.Fatalf("expected 3 total items, got %d", got)
	}
	want := decimal.RequireFromString("25.00")
	if !c.TotalPrice().Equal(want) {
		t.Fatalf("expected total %s, got %s", want, c.TotalPrice())
	}
}

func TestAddValidation(t *testing.T) {
	c := New()

	if err := c.Add(item("", "10.00", 1)); err == nil {
		t.Fatal("expected error for missing id")
	}
	if err := c.Add(item("p1", "10.00", 0)); err == nil {
		t.Fatal("expected error for zero quantity")
	}
	if err := c.Add(item("p1", "-1.00", 1)); err == nil {
		t.Fatal("expected error for negative price")
	}
	if c.Len() != 0 {
		t.Fatalf("invalid adds must not mutate the cart, got %d lines", c.Len())
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	c := New()
	if err := c.Add(item("p1", "10.00", 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.UpdateQuantity("p1", 5)
	if got := c.Items()[0].Quantity; got != 5 {
		t.Fatalf("expected quantity 5, got %d", got)
	}

	c.UpdateQuantity("p1", 0)
	if c.Len() != 0 {
		t.Fatalf("expected empty cart after update to zero, got %d lines", c.Len())
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	c := New()
	if err := c.Add(item("p1", "10.00", 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.Remove("missing")
	if c.Len() != 1 {
		t.Fatalf("expected cart untouched, got %d lines", c.Len())
	}
}

func TestClear(t *testing.T) {
	c := New()
	if err := c.Add(item("p1", "10.00", 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.Clear()
	if c.Len() != 0 || c.TotalItems() != 0 {
		t.Fatalf("expected empty cart, got %d lines, %d items", c.Len(), c.TotalItems())
	}
	if !c.TotalPrice().IsZero() {
		t.Fatalf("expected zero total, got %s", c.TotalPrice())
	}
}

func TestSubscribeObservesEveryMutation(t *testing.T) {
	c := New()
	var snaps []Snapshot
	c.Subscribe(func(s Snapshot) { snaps = append(snaps, s) })

	if err := c.Add(item("p1", "10.00", 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.UpdateQuantity("p1", 1)
	c.Remove("p1")

	if len(snaps) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(snaps))
	}
	if snaps[0].TotalItems != 2 || snaps[1].TotalItems != 1 || snaps[2].TotalItems != 0 {
		t.Fatalf("unexpected totals sequence: %d, %d, %d",
			snaps[0].TotalItems, snaps[1].TotalItems, snaps[2].TotalItems)
	}
}

func TestSnapshotIsDetachedCopy(t *testing.T) {
	c := New()
	if err := c.Add(item("p1", "10.00", 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := c.SnapshotView()
	snap.Items[0].Quantity = 99

	if got := c.Items()[0].Quantity; got != 1 {
		t.Fatalf("snapshot mutation leaked into cart: quantity %d", got)
	}
}
