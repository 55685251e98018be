package shutdown

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/vortex-fintech/agenda/logger"
)

const readHeaderTimeout = 5 * time.Second

// HTTPServer runs one of agendad's HTTP listeners (api, metrics) under a
// Manager.
type HTTPServer struct {
	name string
	addr string
	srv  *http.Server
	log  logger.LoggerInterface

	mu  sync.Mutex
	lis net.Listener
}

// NewHTTPServer serves h on lis, or listens on addr when lis is nil.
// Connection errors net/http would print go to log under the server name.
func NewHTTPServer(name, addr string, lis net.Listener, h http.Handler, l logger.LoggerInterface) *HTTPServer {
	if name == "" {
		name = "http"
	}
	if l == nil {
		l = logger.Nop()
	}
	return &HTTPServer{
		name: name,
		addr: addr,
		lis:  lis,
		log:  l,
		srv: &http.Server{
			Addr:              addr,
			Handler:           h,
			ReadHeaderTimeout: readHeaderTimeout,
			ErrorLog:          log.New(errorLogWriter{name: name, log: l}, "", 0),
		},
	}
}

func (h *HTTPServer) Name() string { return h.name }

// Addr is the bound address once Serve has a listener, else the configured one.
func (h *HTTPServer) Addr() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.lis != nil {
		return h.lis.Addr().String()
	}
	return h.addr
}

func (h *HTTPServer) listener() (net.Listener, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.lis == nil {
		lis, err := net.Listen("tcp", h.addr)
		if err != nil {
			return nil, fmt.Errorf("%s: listen %s: %w", h.name, h.addr, err)
		}
		h.lis = lis
	}
	return h.lis, nil
}

func (h *HTTPServer) Serve(ctx context.Context) error {
	lis, err := h.listener()
	if err != nil {
		return err
	}
	h.srv.BaseContext = func(net.Listener) context.Context { return ctx }
	h.log.Infow("listening", "name", h.name, "addr", lis.Addr().String())

	errCh := make(chan error, 1)
	go func() { errCh <- h.srv.Serve(lis) }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func (h *HTTPServer) GracefulStopWithTimeout(ctx context.Context) error {
	return h.srv.Shutdown(ctx)
}

func (h *HTTPServer) ForceStop() {
	_ = h.srv.Close()
}

type errorLogWriter struct {
	name string
	log  logger.LoggerInterface
}

func (w errorLogWriter) Write(p []byte) (int, error) {
	w.log.Warnw("http server error", "name", w.name, "err", strings.TrimSpace(string(p)))
	return len(p), nil
}
