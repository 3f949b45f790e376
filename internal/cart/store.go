package cart

import (
	"context"
	"sync"
	"time"
)

// Store keeps one cart per browsing session. Get always yields a usable cart,
// creating an empty one for unknown sessions. Save persists the cart after a
// mutation; the in-memory implementation only refreshes the idle deadline.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, c *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

type memoryEntry struct {
	cart     *Cart
	deadline time.Time
}

// MemoryStore is the default session cart store. Idle carts are dropped after
// the configured TTL.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*memoryEntry
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[sessionID]
	if ok && s.now().Before(entry.deadline) {
		entry.deadline = s.now().Add(s.ttl)
		return entry.cart, nil
	}

	c := New()
	s.entries[sessionID] = &memoryEntry{cart: c, deadline: s.now().Add(s.ttl)}
	return c, nil
}

func (s *MemoryStore) Save(ctx context.Context, sessionID string, c *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = &memoryEntry{cart: c, deadline: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}

// Len reports the number of live sessions, expired entries excluded.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, entry := range s.entries {
		if s.now().Before(entry.deadline) {
			count++
		}
	}
	return count
}

// StartJanitor sweeps expired sessions until the context is cancelled.
func (s *MemoryStore) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, entry := range s.entries {
		if !now.Before(entry.deadline) {
			delete(s.entries, id)
		}
	}
}
