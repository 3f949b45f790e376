package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/invisimart/storefront-web/pkg/logger"
)

type memoryIdempotencyStore struct {
	values map[string]string
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{values: make(map[string]string)}
}

func (s *memoryIdempotencyStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := s.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (s *memoryIdempotencyStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, exists := s.values[key]; exists {
		return false, nil
	}
	s.values[key] = value.(string)
	return true, nil
}

func (s *memoryIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "invisimart:idempotency:" + scope + ":" + id
}

func idempotencyRig(t *testing.T, store idempotencyStore) (*chi.Mux, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	router := chi.NewRouter()
	router.Use(Idempotency(store, logger.New(logger.Options{ServiceName: "test"})))
	router.Post("/api/v1/checkout", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"data":{"orderId":"ord-1"}}`))
	})
	return router, &calls
}

func postCheckout(router *chi.Mux, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(body))
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	router, calls := idempotencyRig(t, newMemoryIdempotencyStore())
	body := `{"customerName":"Ada"}`

	first := postCheckout(router, "key-1", body)
	second := postCheckout(router, "key-1", body)

	if calls.Load() != 1 {
		t.Fatalf("handler must run once, ran %d times", calls.Load())
	}
	if second.Code != first.Code || second.Body.String() != first.Body.String() {
		t.Fatalf("replay must match the original response: %d %q vs %d %q",
			first.Code, first.Body.String(), second.Code, second.Body.String())
	}
	if ct := second.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("replay lost the content type, got %q", ct)
	}
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	router, calls := idempotencyRig(t, newMemoryIdempotencyStore())

	postCheckout(router, "key-1", `{"customerName":"Ada"}`)
	rec := postCheckout(router, "key-1", `{"customerName":"Grace"}`)

	if calls.Load() != 1 {
		t.Fatalf("handler must run once, ran %d times", calls.Load())
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected conflict for reused key, got %d", rec.Code)
	}
}

func TestIdempotencyWithoutHeaderPassesThrough(t *testing.T) {
	router, calls := idempotencyRig(t, newMemoryIdempotencyStore())

	postCheckout(router, "", `{"customerName":"Ada"}`)
	postCheckout(router, "", `{"customerName":"Ada"}`)

	if calls.Load() != 2 {
		t.Fatalf("requests without a key must not be deduplicated, ran %d times", calls.Load())
	}
}

func TestIdempotencyIgnoresOtherRoutes(t *testing.T) {
	store := newMemoryIdempotencyStore()
	var calls atomic.Int32
	router := chi.NewRouter()
	router.Use(Idempotency(store, nil))
	router.Post("/api/v1/cart/items", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"id":"p1"}`))
		req.Header.Set("Idempotency-Key", "key-1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
	}

	if calls.Load() != 2 {
		t.Fatalf("non-checkout routes must not be deduplicated, ran %d times", calls.Load())
	}
	if len(store.values) != 0 {
		t.Fatalf("no records should be stored for other routes, got %d", len(store.values))
	}
}

func TestIdempotencyInsideRouteGroup(t *testing.T) {
	store := newMemoryIdempotencyStore()
	var calls atomic.Int32
	router := chi.NewRouter()
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(Idempotency(store, nil))
		r.Post("/checkout", func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Write([]byte(`{"data":{"orderId":"ord-1"}}`))
		})
	})

	body := `{"customerName":"Ada"}`
	first := postCheckout(router, "key-1", body)
	second := postCheckout(router, "key-1", body)

	if calls.Load() != 1 {
		t.Fatalf("group-mounted middleware must still deduplicate, handler ran %d times", calls.Load())
	}
	if len(store.values) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(store.values))
	}
	if second.Body.String() != first.Body.String() {
		t.Fatalf("replay must match the original response: %q vs %q",
			first.Body.String(), second.Body.String())
	}
}

func TestIdempotencyScopesBySession(t *testing.T) {
	router, calls := idempotencyRig(t, newMemoryIdempotencyStore())
	body := `{"customerName":"Ada"}`

	sessions := []string{"b2a0a0e0-0000-4000-8000-000000000001", "b2a0a0e0-0000-4000-8000-000000000002"}
	for _, sessionID := range sessions {
		req := httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(body))
		req.Header.Set("Idempotency-Key", "key-1")
		req = req.WithContext(WithSessionID(req.Context(), sessionID))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
	}

	if calls.Load() != 2 {
		t.Fatalf("the same key in different sessions must not collide, ran %d times", calls.Load())
	}
}
