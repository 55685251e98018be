// Package client talks to the contact REST API. Every failure comes back
// as *apierror.Error so callers can resolve it to a user message.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vortex-fintech/agenda/apierror"
	"github.com/vortex-fintech/agenda/contact"
	"github.com/vortex-fintech/agenda/logger"
	"github.com/vortex-fintech/agenda/retry"
)

const (
	resource        = "/contatos"
	headerRequestID = "X-Request-ID"
	maxBodyBytes    = 1 << 20
	defaultTimeout  = 10 * time.Second
)

type Client struct {
	base    string
	http    *http.Client
	log     logger.LoggerInterface
	timeout time.Duration
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

func WithLogger(l logger.LoggerInterface) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTimeout bounds every request. It applies to the client given by
// WithHTTPClient too, whatever the option order, without mutating it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New returns a client for the API rooted at baseURL, e.g.
// "http://localhost:8080/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("client: invalid base URL %q", baseURL)
	}
	c := &Client{
		base: strings.TrimRight(u.String(), "/") + resource,
		http: &http.Client{Timeout: defaultTimeout},
		log:  logger.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.timeout > 0 && c.http.Timeout != c.timeout {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c, nil
}

// List returns the active contacts ordered by name.
func (c *Client) List(ctx context.Context) ([]contact.Contact, error) {
	var out []contact.Contact
	err := c.do(ctx, http.MethodGet, "", nil, &out)
	return out, err
}

func (c *Client) ListFavorites(ctx context.Context) ([]contact.Contact, error) {
	var out []contact.Contact
	err := c.do(ctx, http.MethodGet, "/favoritos", nil, &out)
	return out, err
}

func (c *Client) Get(ctx context.Context, id int64) (contact.Contact, error) {
	var out contact.Contact
	err := c.do(ctx, http.MethodGet, "/"+strconv.FormatInt(id, 10), nil, &out)
	return out, err
}

// Search asks the backend for active contacts whose name or mobile contains
// term.
func (c *Client) Search(ctx context.Context, term string) ([]contact.Contact, error) {
	var out []contact.Contact
	err := c.do(ctx, http.MethodGet, "/buscar?termo="+url.QueryEscape(term), nil, &out)
	return out, err
}

func (c *Client) Create(ctx context.Context, in contact.Contact) (contact.Contact, error) {
	var out contact.Contact
	err := c.do(ctx, http.MethodPost, "", in, &out)
	return out, err
}

func (c *Client) Update(ctx context.Context, id int64, in contact.Contact) (contact.Contact, error) {
	var out contact.Contact
	err := c.do(ctx, http.MethodPut, "/"+strconv.FormatInt(id, 10), in, &out)
	return out, err
}

// Deactivate soft-deletes the contact.
func (c *Client) Deactivate(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) ToggleFavorite(ctx context.Context, id int64) (contact.Contact, error) {
	var out contact.Contact
	err := c.do(ctx, http.MethodPatch, "/"+strconv.FormatInt(id, 10)+"/favorito", struct{}{}, &out)
	return out, err
}

// WaitReady polls the listing until the backend answers 2xx, using the
// init backoff. A 4xx answer stops the wait at once.
func (c *Client) WaitReady(ctx context.Context) error {
	return c.waitReady(ctx, retry.InitPolicy())
}

func (c *Client) waitReady(ctx context.Context, p retry.Policy) error {
	p.OnRetry = func(err error, next time.Duration) {
		c.log.WarnwCtx(ctx, "backend not ready", "err", err, "retry_in", next)
	}
	return retry.Do(ctx, p, func() error {
		err := c.do(ctx, http.MethodGet, "", nil, nil)
		if s := apierror.StatusOf(err); s >= 400 && s < 500 {
			return retry.Permanent(err)
		}
		return err
	})
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return apierror.Transport(fmt.Errorf("encode request: %w", err))
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rdr)
	if err != nil {
		return apierror.Transport(fmt.Errorf("build request: %w", err))
	}
	reqID := logger.RequestID(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
		ctx = logger.ContextWithRequestID(ctx, reqID)
	}
	req.Header.Set(headerRequestID, reqID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WarnwCtx(ctx, "api call failed", "method", method, "path", path, "err", err)
		return apierror.Transport(fmt.Errorf("%s %s: %w", method, path, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return apierror.Transport(fmt.Errorf("read response: %w", err))
	}
	c.log.DebugwCtx(ctx, "api call", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := apierror.Decode(resp.StatusCode, raw)
		c.log.InfowCtx(ctx, "api call rejected", "method", method, "path", path, "status", resp.StatusCode, "message", apierror.Resolve(apiErr))
		return apiErr
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apierror.Transport(fmt.Errorf("decode response: %w", err))
	}
	return nil
}
