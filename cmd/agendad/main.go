// Command agendad serves the contact REST API.
//
// Configuration comes from the environment (AGENDA_*). Without
// AGENDA_DATABASE_URL the contacts live in memory.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/vortex-fintech/agenda/config"
	"github.com/vortex-fintech/agenda/graceful/shutdown"
	"github.com/vortex-fintech/agenda/logger"
	"github.com/vortex-fintech/agenda/metrics"
	"github.com/vortex-fintech/agenda/server"
	"github.com/vortex-fintech/agenda/store"
)

type daemon struct {
	cfg     config.Server
	log     logger.LoggerInterface
	api     http.Handler
	metrics http.Handler
	close   func() error
}

func newDaemon(ctx context.Context, cfg config.Server, log logger.LoggerInterface) (*daemon, error) {
	repo, checks, closeRepo, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	col := metrics.NewCollectors()
	mh, _, err := metrics.New(col, metrics.Options{Checks: checks})
	if err != nil {
		_ = closeRepo()
		return nil, fmt.Errorf("metrics: %w", err)
	}

	svc := server.NewService(repo, log, col)
	return &daemon{
		cfg:     cfg,
		log:     log,
		api:     server.NewHandler(svc, log, col),
		metrics: mh,
		close:   closeRepo,
	}, nil
}

func openStore(ctx context.Context, cfg config.Server, log logger.LoggerInterface) (store.Repository, []metrics.Check, func() error, error) {
	if cfg.InMemory() {
		log.Warnw("no database configured; contacts are kept in memory")
		return store.NewMemory(), nil, func() error { return nil }, nil
	}

	pg, err := store.OpenPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := pg.Migrate(ctx); err != nil {
		_ = pg.Close()
		return nil, nil, nil, err
	}
	return pg, []metrics.Check{{Name: "store", Probe: pg.Ping}}, pg.Close, nil
}

// serve runs the API and metrics servers until ctx ends or a signal
// arrives. Nil listeners mean "listen on the configured address".
func (d *daemon) serve(ctx context.Context, apiLis, metricsLis net.Listener) error {
	defer func() {
		if err := d.close(); err != nil {
			d.log.Warnw("closing store", "err", err)
		}
	}()

	mgr := shutdown.New(shutdown.Config{
		ShutdownTimeout: d.cfg.ShutdownTimeout,
		HandleSignals:   true,
		Logger:          d.log,
	})
	mgr.Add(shutdown.NewHTTPServer("api", d.cfg.HTTPAddr, apiLis, d.api, d.log))
	if d.cfg.MetricsAddr != "" || metricsLis != nil {
		mgr.Add(shutdown.NewHTTPServer("metrics", d.cfg.MetricsAddr, metricsLis, d.metrics, d.log))
	}

	d.log.Infow("agendad starting",
		"http_addr", d.cfg.HTTPAddr,
		"metrics_addr", d.cfg.MetricsAddr,
		"in_memory", d.cfg.InMemory(),
	)
	return mgr.Run(ctx)
}

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "agendad: %v\n", err)
		os.Exit(1)
	}
	log := logger.Init("agendad", cfg.Env)
	defer log.SafeSync()

	ctx := context.Background()
	d, err := newDaemon(ctx, cfg, log)
	if err == nil {
		err = d.serve(ctx, nil, nil)
	}
	if err != nil {
		log.Errorw("agendad stopped", "err", err)
		log.SafeSync()
		os.Exit(1)
	}
}
