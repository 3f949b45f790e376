package health

import (
	"context"
	"sync"
	"time"

	"github.com/invisimart/storefront-web/pkg/logger"
	"github.com/invisimart/storefront-web/pkg/metrics"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusChecking  Status = "checking"
)

// Prober issues one bounded reachability check against an upstream path.
type Prober interface {
	Probe(ctx context.Context, path string) error
}

// Component names one monitored upstream surface.
type Component struct {
	Name        string
	Description string
	Path        string
}

// ComponentHealth is the display record for one component, shaped the way the
// admin dashboard consumes it.
type ComponentHealth struct {
	Name        string    `json:"name"`
	Status      Status    `json:"status"`
	LastChecked time.Time `json:"lastChecked"`
	Description string    `json:"description"`
}

// DefaultComponents mirrors the dashboard's four panels.
func DefaultComponents() []Component {
	return []Component{
		{Name: "API Service", Description: "Core API service", Path: "/health"},
		{Name: "Database", Description: "Product, inventory & order data", Path: "/health/db"},
		{Name: "Product Catalog", Description: "Product listings", Path: "/products"},
		{Name: "Inventory System", Description: "Stock management", Path: "/inventory"},
	}
}

// Monitor re-probes every component on a fixed interval and keeps the latest
// snapshot for the admin dashboard. Ticks are independent; a slow round can
// be overtaken by a newer one and last-resolved wins, since each round fully
// replaces the snapshot. Cancelling the Start context stops the loop and a
// round resolving after cancellation is discarded.
type Monitor struct {
	prober     Prober
	components []Component
	interval   time.Duration
	metrics    *metrics.ProbeMetrics
	logg       *logger.Logger
	now        func() time.Time

	mu     sync.RWMutex
	latest []ComponentHealth
}

func NewMonitor(prober Prober, components []Component, interval time.Duration, probeMetrics *metrics.ProbeMetrics, logg *logger.Logger) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if len(components) == 0 {
		components = DefaultComponents()
	}
	m := &Monitor{
		prober:     prober,
		components: components,
		interval:   interval,
		metrics:    probeMetrics,
		logg:       logg,
		now:        time.Now,
	}
	m.latest = m.checkingSnapshot()
	return m
}

// Start launches the polling loop. It runs one round immediately, then one
// per interval until ctx is cancelled.
func (m *Monitor) Start(ctx context.Context) {
	go func() {
		m.runRound(ctx)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.runRound(ctx)
			}
		}
	}()
}

// Snapshot returns the latest component statuses.
func (m *Monitor) Snapshot() []ComponentHealth {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ComponentHealth, len(m.latest))
	copy(out, m.latest)
	return out
}

// CheckNow runs a single round synchronously, used by on-demand refreshes.
func (m *Monitor) CheckNow(ctx context.Context) []ComponentHealth {
	m.runRound(ctx)
	return m.Snapshot()
}

func (m *Monitor) runRound(ctx context.Context) {
	results := make([]ComponentHealth, len(m.components))

	var wg sync.WaitGroup
	for i, component := range m.components {
		wg.Add(1)
		go func(i int, component Component) {
			defer wg.Done()
			start := m.now()
			err := m.prober.Probe(ctx, component.Path)
			elapsed := m.now().Sub(start)

			m.metrics.ObserveDuration(component.Name, elapsed)
			status := StatusHealthy
			if err != nil {
				status = StatusUnhealthy
				m.metrics.IncFailure(component.Name)
				if m.logg != nil {
					m.logg.Warn(m.logg.WithField(ctx, "component", component.Name), "health probe failed")
				}
			} else {
				m.metrics.IncSuccess(component.Name)
			}

			results[i] = ComponentHealth{
				Name:        component.Name,
				Status:      status,
				LastChecked: m.now(),
				Description: component.Description,
			}
		}(i, component)
	}
	wg.Wait()

	// Discard rounds that resolved after shutdown.
	if ctx.Err() != nil {
		return
	}

	m.mu.Lock()
	m.latest = results
	m.mu.Unlock()
}

func (m *Monitor) checkingSnapshot() []ComponentHealth {
	now := m.now()
	out := make([]ComponentHealth, 0, len(m.components))
	for _, component := range m.components {
		out = append(out, ComponentHealth{
			Name:        component.Name,
			Status:      StatusChecking,
			LastChecked: now,
			Description: component.Description,
		})
	}
	return out
}
