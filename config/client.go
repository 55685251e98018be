package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const DefaultBaseURL = "http://localhost:8080/api"

// Client is the CLI profile. Environment variables override the file.
// Env picks the CLI log format; "production" keeps the CLI silent.
type Client struct {
	BaseURL string        `yaml:"base_url" env:"AGENDA_BASE_URL"`
	Timeout time.Duration `yaml:"timeout" env:"AGENDA_TIMEOUT"`
	Env     string        `yaml:"env" env:"AGENDA_ENV"`
}

func DefaultClient() Client {
	return Client{
		BaseURL: DefaultBaseURL,
		Timeout: 10 * time.Second,
		Env:     "production",
	}
}

// LoadClient reads the YAML profile at path (a missing file or empty path
// yields the defaults), applies environment overrides and validates.
// Unknown YAML fields are an error.
func LoadClient(path string) (Client, error) {
	cfg := DefaultClient()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Client{}, fmt.Errorf("config: reading %s: %w", path, err)
		case len(data) > 0:
			dec := yaml.NewDecoder(bytes.NewReader(data))
			dec.KnownFields(true)
			if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
				return Client{}, fmt.Errorf("config: parsing %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Client{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Client{}, err
	}
	return cfg, nil
}

func (c Client) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("config: base_url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: base_url %q is not an absolute URL", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return errors.New("config: timeout must be > 0")
	}
	return nil
}
