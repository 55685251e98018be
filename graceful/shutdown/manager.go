// Package shutdown runs agendad's servers side by side and stops them
// gracefully on signal, context end or the first serve failure.
package shutdown

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vortex-fintech/agenda/logger"
)

const defaultShutdownTimeout = 10 * time.Second

type Server interface {
	Serve(ctx context.Context) error
	GracefulStopWithTimeout(ctx context.Context) error
	ForceStop()
	Name() string
}

type Config struct {
	ShutdownTimeout time.Duration
	HandleSignals   bool
	IsNormalError   func(error) bool
	Logger          logger.LoggerInterface
}

type Manager struct {
	cfg     Config
	mu      sync.Mutex
	servers []Server
	stopped bool
}

func New(cfg Config) *Manager {
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	if cfg.IsNormalError == nil {
		cfg.IsNormalError = DefaultIsNormalErr
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	return &Manager{cfg: cfg}
}

func (m *Manager) Add(s Server) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.servers = append(m.servers, s)
}

func (m *Manager) snapshot() []Server {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Server(nil), m.servers...)
}

// Run serves every added server until ctx ends, a signal arrives (when
// HandleSignals is set) or one server fails, then stops them all. It
// returns the first abnormal serve error.
func (m *Manager) Run(ctx context.Context) error {
	if m.cfg.HandleSignals {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range m.snapshot() {
		srv := s
		g.Go(func() error {
			name := safeName(srv)
			m.cfg.Logger.Infow("serve start", "name", name)
			err := srv.Serve(gctx)
			if err != nil && !m.cfg.IsNormalError(err) && gctx.Err() == nil {
				m.cfg.Logger.Errorw("serve error", "name", name, "err", err)
				return err
			}
			m.cfg.Logger.Infow("serve stop", "name", name, "err", errString(err))
			return nil
		})
	}

	waitCh := make(chan error, 1)
	go func() { waitCh <- g.Wait() }()

	var groupDone bool
	var groupErr error

	select {
	case <-ctx.Done():
		m.cfg.Logger.Infow("context done; starting graceful stop")
	case err := <-waitCh:
		groupDone, groupErr = true, err
		if err != nil && !m.cfg.IsNormalError(err) {
			m.cfg.Logger.Warnw("group finished with error; starting graceful stop", "err", err)
		} else {
			m.cfg.Logger.Infow("group finished; starting graceful stop")
		}
	}

	m.Stop()

	if groupDone {
		if groupErr != nil && !m.cfg.IsNormalError(groupErr) {
			return groupErr
		}
		return nil
	}

	select {
	case err := <-waitCh:
		if err != nil && !m.cfg.IsNormalError(err) {
			return err
		}
		return nil
	case <-time.After(m.cfg.ShutdownTimeout + 2*time.Second):
		return fmt.Errorf("graceful: wait group timeout after %s", m.cfg.ShutdownTimeout)
	}
}

// Stop gracefully stops every server within ShutdownTimeout, forcing the
// ones that do not make it. Only the first call has an effect.
func (m *Manager) Stop() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	servers := append([]Server(nil), m.servers...)
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.ShutdownTimeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, s := range servers {
		srv := s
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := safeName(srv)
			if err := srv.GracefulStopWithTimeout(ctx); err != nil {
				m.cfg.Logger.Warnw("graceful stop error; forcing", "name", name, "err", err)
				srv.ForceStop()
				return
			}
			if ctx.Err() != nil {
				m.cfg.Logger.Warnw("graceful stop deadline exceeded; forcing", "name", name)
				srv.ForceStop()
				return
			}
			m.cfg.Logger.Infow("graceful stop done", "name", name)
		}()
	}
	wg.Wait()
}

func DefaultIsNormalErr(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, http.ErrServerClosed) || errors.Is(err, context.Canceled) {
		return true
	}
	return strings.Contains(err.Error(), "use of closed network connection")
}

func errString(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}

func safeName(s Server) string {
	if s == nil {
		return "server"
	}
	if n := s.Name(); n != "" {
		return n
	}
	return "server"
}
