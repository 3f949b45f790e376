package cart

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestMemoryStoreGetCreatesEmptyCart(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	c, err := store.Get(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty cart for new session, got %d lines", c.Len())
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	c, err := store.Get(ctx, "session-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Add(Item{ID: "p1", Price: decimal.RequireFromString("3.50"), Quantity: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Save(ctx, "session-1", c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	again, err := store.Get(ctx, "session-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.TotalItems() != 2 {
		t.Fatalf("expected 2 items after reload, got %d", again.TotalItems())
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }
	ctx := context.Background()

	c, _ := store.Get(ctx, "session-1")
	if err := c.Add(Item{ID: "p1", Price: decimal.RequireFromString("1.00"), Quantity: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Save(ctx, "session-1", c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clock = clock.Add(2 * time.Minute)
	reloaded, err := store.Get(ctx, "session-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reloaded.Len() != 0 {
		t.Fatalf("expected expired session to start fresh, got %d lines", reloaded.Len())
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }
	ctx := context.Background()

	if _, err := store.Get(ctx, "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Get(ctx, "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 live sessions, got %d", store.Len())
	}

	clock = clock.Add(2 * time.Minute)
	store.sweep()
	if len(store.entries) != 0 {
		t.Fatalf("expected sweep to drop expired entries, got %d", len(store.entries))
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	c, _ := store.Get(ctx, "session-1")
	if err := c.Add(Item{ID: "p1", Price: decimal.RequireFromString("1.00"), Quantity: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Delete(ctx, "session-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reloaded, _ := store.Get(ctx, "session-1")
	if reloaded.Len() != 0 {
		t.Fatalf("expected fresh cart after delete, got %d lines", reloaded.Len())
	}
}
