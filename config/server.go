// Package config loads agendad settings from the environment and the CLI
// profile from YAML plus environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server is agendad's configuration. An empty DatabaseURL selects the
// in-memory store.
type Server struct {
	HTTPAddr        string        `env:"AGENDA_HTTP_ADDR" envDefault:":8080"`
	MetricsAddr     string        `env:"AGENDA_METRICS_ADDR" envDefault:":9090"`
	Env             string        `env:"AGENDA_ENV" envDefault:"development"`
	ShutdownTimeout time.Duration `env:"AGENDA_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	DB              DB
}

type DB struct {
	URL             string        `env:"AGENDA_DATABASE_URL"`
	MaxOpenConns    int           `env:"AGENDA_DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"AGENDA_DB_MAX_IDLE_CONNS" envDefault:"2"`
	ConnMaxLifetime time.Duration `env:"AGENDA_DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	ConnMaxIdleTime time.Duration `env:"AGENDA_DB_CONN_MAX_IDLE_TIME" envDefault:"5m"`
}

var (
	errHTTPAddrRequired  = errors.New("config: http addr is required")
	errShutdownTimeout   = errors.New("config: shutdown timeout must be > 0")
	errNegativeOpenConns = errors.New("config: db max open conns must be >= 0")
	errNegativeIdleConns = errors.New("config: db max idle conns must be >= 0")
	errIdleExceedsOpen   = errors.New("config: db max idle conns must be <= max open conns")
)

// LoadServer parses the environment into Server and validates it.
func LoadServer() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func (c Server) Validate() error {
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return errHTTPAddrRequired
	}
	if c.ShutdownTimeout <= 0 {
		return errShutdownTimeout
	}
	return c.DB.Validate()
}

func (c DB) Validate() error {
	if c.MaxOpenConns < 0 {
		return errNegativeOpenConns
	}
	if c.MaxIdleConns < 0 {
		return errNegativeIdleConns
	}
	if c.MaxOpenConns > 0 && c.MaxIdleConns > c.MaxOpenConns {
		return errIdleExceedsOpen
	}
	return nil
}

// InMemory reports whether no database was configured.
func (c Server) InMemory() bool { return strings.TrimSpace(c.DB.URL) == "" }
