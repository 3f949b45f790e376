package health

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/invisimart/storefront-web/pkg/logger"
	"github.com/invisimart/storefront-web/pkg/metrics"
)

type fakeProber struct {
	mu     sync.Mutex
	down   map[string]bool
	probed []string
}

func (f *fakeProber) Probe(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probed = append(f.probed, path)
	if f.down[path] {
		return errors.New("unreachable")
	}
	return nil
}

func newTestMonitor(prober Prober, components []Component) *Monitor {
	return NewMonitor(
		prober,
		components,
		30*time.Second,
		metrics.NewProbeMetrics(nil),
		logger.New(logger.Options{ServiceName: "test"}),
	)
}

func TestInitialSnapshotIsChecking(t *testing.T) {
	m := newTestMonitor(&fakeProber{}, nil)

	snap := m.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("expected 4 components, got %d", len(snap))
	}
	for _, component := range snap {
		if component.Status != StatusChecking {
			t.Fatalf("expected %s to start as checking, got %s", component.Name, component.Status)
		}
	}
}

func TestCheckNowMixedResults(t *testing.T) {
	prober := &fakeProber{down: map[string]bool{"/inventory": true}}
	m := newTestMonitor(prober, nil)

	snap := m.CheckNow(context.Background())
	byName := make(map[string]ComponentHealth, len(snap))
	for _, component := range snap {
		byName[component.Name] = component
	}

	if byName["API Service"].Status != StatusHealthy {
		t.Fatalf("expected API Service healthy, got %s", byName["API Service"].Status)
	}
	if byName["Inventory System"].Status != StatusUnhealthy {
		t.Fatalf("expected Inventory System unhealthy, got %s", byName["Inventory System"].Status)
	}
	if byName["Database"].LastChecked.IsZero() {
		t.Fatal("expected lastChecked to be set")
	}
}

func TestCheckNowProbesEveryComponent(t *testing.T) {
	prober := &fakeProber{}
	m := newTestMonitor(prober, nil)

	m.CheckNow(context.Background())

	prober.mu.Lock()
	defer prober.mu.Unlock()
	seen := make(map[string]bool, len(prober.probed))
	for _, path := range prober.probed {
		seen[path] = true
	}
	for _, path := range []string{"/health", "/health/db", "/products", "/inventory"} {
		if !seen[path] {
			t.Fatalf("component path %s was never probed", path)
		}
	}
}

func TestCancelledRoundIsDiscarded(t *testing.T) {
	prober := &fakeProber{}
	m := newTestMonitor(prober, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m.runRound(ctx)

	for _, component := range m.Snapshot() {
		if component.Status != StatusChecking {
			t.Fatalf("cancelled round must not replace the snapshot, got %s", component.Status)
		}
	}
}

func TestStartRunsImmediateRound(t *testing.T) {
	prober := &fakeProber{}
	m := newTestMonitor(prober, []Component{{Name: "API Service", Description: "Core API service", Path: "/health"}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	deadline := time.After(2 * time.Second)
	for {
		snap := m.Snapshot()
		if len(snap) == 1 && snap[0].Status == StatusHealthy {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("first round never resolved, snapshot: %+v", snap)
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
}
