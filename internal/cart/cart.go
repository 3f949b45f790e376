package cart

import (
	"sync"

	pkgerrors "github.com/invisimart/storefront-web/pkg/errors"
	"github.com/shopspring/decimal"
)

// Item is one line of the cart. Quantity carries the add amount on input and
// the accumulated amount once stored.
type Item struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
}

// Snapshot is an immutable view of the cart handed to subscribers and views.
type Snapshot struct {
	Items      []Item
	TotalItems int
	TotalPrice decimal.Decimal
}

// Cart holds the line items selected during a browsing session. Items keep
// insertion order for display; adding an id that is already present merges
// into the existing line instead of appending a duplicate.
type Cart struct {
	mu    sync.Mutex
	items []Item
	subs  []func(Snapshot)
}

func New() *Cart {
	return &Cart{}
}

// NewFromItems rebuilds a cart from persisted line items.
func NewFromItems(items []Item) *Cart {
	c := &Cart{items: make([]Item, len(items))}
	copy(c.items, items)
	return c
}

// Subscribe registers a callback invoked after every mutation with the new
// state, so every consumer observes totals consistently.
func (c *Cart) Subscribe(fn func(Snapshot)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.subs = append(c.subs, fn)
	c.mu.Unlock()
}

// Add merges the item into an existing line with the same id or appends a new
// line. The quantity must be a positive integer; stock clamping is a view
// concern and is not enforced here.
func (c *Cart) Add(item Item) error {
	if item.ID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if item.Quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}
	if item.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}

	c.mu.Lock()
	merged := false
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		c.items = append(c.items, item)
	}
	c.notifyLocked()
	return nil
}

// UpdateQuantity sets the line's quantity. A quantity of zero or less removes
// the line, same as Remove.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		c.Remove(id)
		return
	}
	c.mu.Lock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			break
		}
	}
	c.notifyLocked()
}

// Remove deletes the line with the given id. Removing an absent id is a no-op.
func (c *Cart) Remove(id string) {
	c.mu.Lock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	c.notifyLocked()
}

// Clear empties the cart. Called once after a successful order submission.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.notifyLocked()
}

// TotalItems returns the sum of all line quantities.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return totalItems(c.items)
}

// TotalPrice returns the sum of price times quantity over all lines.
func (c *Cart) TotalPrice() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return totalPrice(c.items)
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// Len reports the number of distinct lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// SnapshotView captures items and totals atomically.
func (c *Cart) SnapshotView() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Cart) snapshotLocked() Snapshot {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return Snapshot{
		Items:      items,
		TotalItems: totalItems(c.items),
		TotalPrice: totalPrice(c.items),
	}
}

// notifyLocked releases the lock and fans the new state out to subscribers.
// Callers must hold the lock when invoking it.
func (c *Cart) notifyLocked() {
	snap := c.snapshotLocked()
	subs := make([]func(Snapshot), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}

func totalItems(items []Item) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

func totalPrice(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
