// Package api serves the diagnostics endpoints: health, Prometheus metrics and cache statistics.
package api

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"weatherview.app/internal/ports"
	"weatherview.app/pkg/errors"
)

const shutdownTimeout = 5 * time.Second

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Addr string
}

// HealthChecker runs every registered component check
type HealthChecker interface {
	CheckAll(ctx context.Context) map[string]ports.HealthStatus
}

// DiagnosticsProvider reports provider and cache statistics
type DiagnosticsProvider interface {
	GetMetrics(ctx context.Context) (map[string]interface{}, error)
}

// HTTPServerAdapter implements the diagnostics server using Gin
type HTTPServerAdapter struct {
	router         *gin.Engine
	config         ServerConfig
	health         HealthChecker
	diagnostics    DiagnosticsProvider
	metricsHandler http.Handler
	logger         ports.Logger
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config         ServerConfig
	Health         HealthChecker
	Diagnostics    DiagnosticsProvider
	MetricsHandler http.Handler
	Logger         ports.Logger
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status     string                        `json:"status"`
	Components map[string]ports.HealthStatus `json:"components"`
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(opts.Logger))

	server := &HTTPServerAdapter{
		router:         router,
		config:         opts.Config,
		health:         opts.Health,
		diagnostics:    opts.Diagnostics,
		metricsHandler: opts.MetricsHandler,
		logger:         opts.Logger,
	}

	server.setupRoutes()
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.Config.Addr == "" {
		return errors.NewConfigurationError("diagnostics address is required", nil)
	}
	if opts.Health == nil {
		return errors.NewValidationError("health checker is required")
	}
	if opts.Diagnostics == nil {
		return errors.NewValidationError("diagnostics provider is required")
	}
	if opts.MetricsHandler == nil {
		return errors.NewValidationError("metrics handler is required")
	}
	if opts.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	return nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	s.router.GET("/health", s.getHealth)
	s.router.GET("/metrics", gin.WrapH(s.metricsHandler))
	s.router.GET("/cache", s.getCache)
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *HTTPServerAdapter) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return errors.NewConfigurationError("cannot listen on "+s.config.Addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve runs the server on listener until ctx is cancelled
func (s *HTTPServerAdapter) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting diagnostics server", ports.F("addr", listener.Addr().String()))
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.NewNetworkError("diagnostics server stopped", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.NewNetworkError("diagnostics server shutdown failed", err)
	}
	s.logger.Info("Diagnostics server stopped")
	return nil
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}

// getHealth handles GET /health requests
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	components := s.health.CheckAll(c.Request.Context())

	resp := HealthResponse{Status: ports.StatusHealthy, Components: components}
	status := http.StatusOK
	for _, component := range components {
		if !component.Healthy() {
			resp.Status = ports.StatusUnhealthy
			status = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(status, resp)
}

func requestLogger(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("Diagnostics request",
			ports.F("method", c.Request.Method),
			ports.F("path", c.Request.URL.Path),
			ports.F("status", c.Writer.Status()),
			ports.F("duration_ms", time.Since(start).Milliseconds()))
	}
}
