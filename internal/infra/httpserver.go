package infra

import (
	"context"
	"net/http"
	"time"
)

// HTTPServer wraps http.Server with this service's timeout policy. Write
// timeouts stay short: generation work never holds a request open, it is
// accepted with 202 and polled in the background.
type HTTPServer struct {
	server *http.Server
}

// NewHTTPServer builds the server on the configured port and timeouts.
func NewHTTPServer(cfg *Config, handler http.Handler) *HTTPServer {
	return &HTTPServer{server: &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		MaxHeaderBytes:    1 << 20,
	}}
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *HTTPServer) Start() error {
	if s.server == nil {
		return nil
	}
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests within the context deadline. Background
// pollers are not requests; the caller waits for those separately.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
