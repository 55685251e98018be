// Package metrics serves /metrics and /health for agendad and holds the
// collectors its HTTP API and contact service report into.
package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const (
	PathMetrics = "/metrics"
	PathHealth  = "/health"

	StatusUp   = "UP"
	StatusDown = "DOWN"

	defaultHealthTimeout = 500 * time.Millisecond
)

var errHealthTimeout = errors.New("health timeout")

// Check is one named dependency probed by /health, e.g. the contact store.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

type Options struct {
	// Registry defaults to a fresh registry.
	Registry      *prometheus.Registry
	Checks        []Check
	HealthTimeout time.Duration
}

// Health is the /health body: overall status plus one entry per check.
type Health struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

type ComponentHealth struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func registerCollector(reg prometheus.Registerer, c prometheus.Collector) error {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return nil
		}
		return err
	}
	return nil
}

// New registers the runtime collectors and col (when non-nil) and returns
// the /metrics + /health handler.
func New(col *Collectors, opts Options) (http.Handler, *prometheus.Registry, error) {
	if opts.HealthTimeout <= 0 {
		opts.HealthTimeout = defaultHealthTimeout
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	_ = registerCollector(reg, prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	_ = registerCollector(reg, prometheus.NewGoCollector())
	if col != nil {
		if err := col.Register(reg); err != nil {
			return nil, nil, err
		}
	}

	mux := http.NewServeMux()
	mux.Handle(PathMetrics, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc(PathHealth, func(w http.ResponseWriter, r *http.Request) {
		h := opts.health(r.Context())
		code := http.StatusOK
		if h.Status != StatusUp {
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(h)
	})
	return mux, reg, nil
}

// health runs every check concurrently under HealthTimeout. Any failing
// check makes the whole report DOWN.
func (o Options) health(ctx context.Context) Health {
	ctx, cancel := context.WithTimeout(ctx, o.HealthTimeout)
	defer cancel()

	results := make([]error, len(o.Checks))
	var g errgroup.Group
	for i, c := range o.Checks {
		g.Go(func() error {
			results[i] = probe(ctx, c.Probe)
			return nil
		})
	}
	_ = g.Wait()

	out := Health{Status: StatusUp}
	if len(o.Checks) == 0 {
		return out
	}
	out.Components = make(map[string]ComponentHealth, len(o.Checks))
	for i, c := range o.Checks {
		ch := ComponentHealth{Status: StatusUp}
		if err := results[i]; err != nil {
			ch = ComponentHealth{Status: StatusDown, Error: err.Error()}
			out.Status = StatusDown
		}
		out.Components[c.Name] = ch
	}
	return out
}

// probe stops waiting at the deadline even when fn ignores ctx.
func probe(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	errCh := make(chan error, 1)
	go func() { errCh <- fn(ctx) }()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return errHealthTimeout
	}
}
