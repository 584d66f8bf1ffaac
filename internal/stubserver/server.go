// Package stubserver runs a local implementation of the event API contract:
// one endpoint, routed by method and query parameters, answering with
// status/message/data envelopes.
package stubserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/prohmpiriya/event-management/pkg/envelope"
	"github.com/prohmpiriya/event-management/pkg/logger"
)

// Config holds stub server settings
type Config struct {
	Addr        string
	Path        string // endpoint path, e.g. /event-api/api.php
	ServiceName string
	Release     bool
	RateLimit   RateLimitConfig // disabled when RequestsPerSecond is 0
}

// NewRouter builds the gin engine serving the endpoint at path
func NewRouter(cfg Config, store *MemoryEventStore, log *logger.Logger) *gin.Engine {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Release {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Path == "" {
		cfg.Path = "/api.php"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "event-api-stub"
	}

	r := gin.New()
	r.Use(
		Recovery(log),
		otelgin.Middleware(cfg.ServiceName),
		RequestID(),
		AccessLog(log),
		CORS(DefaultCORSConfig()),
	)
	if cfg.RateLimit.RequestsPerSecond > 0 {
		r.Use(RateLimit(NewRateLimiter(cfg.RateLimit)))
	}

	h := NewEventHandler(store, log)
	r.Any(cfg.Path, h.Handle)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, envelope.OK("healthy", gin.H{"events": store.Len()}))
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, envelope.NotFound("Endpoint not found"))
	})

	return r
}

// Server wraps the HTTP server lifecycle
type Server struct {
	httpServer *http.Server
	log        *logger.Logger
}

// NewServer creates a server for the given router
func NewServer(cfg Config, handler http.Handler, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		log: log,
	}
}

// Run serves until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is like Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server starting", zap.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.log.Info("shutdown signal received")
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	s.log.Info("HTTP server stopped")
	return nil
}
