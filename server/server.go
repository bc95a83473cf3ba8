// Package server hosts the HTTP surface: a Gin engine behind an h2c wrapper,
// the standard middleware stack, response envelopes, and the default /health
// and /info endpoints.
package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/skillsenselab/storeapi/logger"
	"github.com/skillsenselab/storeapi/server/middleware"
	"github.com/skillsenselab/storeapi/version"
)

// HealthChecker reports whether a downstream dependency is reachable.
type HealthChecker func(ctx context.Context) error

// Server is an HTTP server backed by Gin.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     Config
	log        *logger.Logger
}

// New creates a new Server. No middleware is applied yet; call
// ApplyMiddleware before registering routes.
func New(cfg Config, log *logger.Logger) *Server {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Cleartext listeners wrap the engine in h2c; TLS listeners negotiate
	// HTTP/2 via ALPN.
	var handler http.Handler = engine
	if !cfg.TLS.IsEnabled() {
		h2s := &http2.Server{
			MaxConcurrentStreams: 250,
			IdleTimeout:          120 * time.Second,
		}
		handler = h2c.NewHandler(engine, h2s)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		engine:     engine,
		config:     cfg,
		log:        log.WithComponent("server"),
	}
}

// GinEngine returns the underlying Gin engine for route registration.
func (s *Server) GinEngine() *gin.Engine {
	return s.engine
}

// ApplyMiddleware applies the standard middleware stack: recovery,
// request-ID, CORS, and request logging.
func (s *Server) ApplyMiddleware() {
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.CORS(s.config.CORS))
	s.engine.Use(middleware.RequestLogger())
}

// RegisterDefaultEndpoints registers the standard /health and /info
// endpoints. The checker, when non-nil, gates the health status on a
// dependency ping.
func (s *Server) RegisterDefaultEndpoints(serviceName string, checker HealthChecker) {
	s.engine.GET("/health", Health(serviceName, checker))
	s.engine.GET("/info", Info(serviceName))
}

// ServeStatic mounts the configured public directory at the root path.
// A no-op when no directory is configured.
func (s *Server) ServeStatic() {
	if s.config.PublicDir == "" {
		return
	}
	s.engine.Static("/app", s.config.PublicDir)
	s.engine.StaticFile("/", s.config.PublicDir+"/index.html")
	s.log.Info("Serving static assets", map[string]interface{}{
		"dir": s.config.PublicDir,
	})
}

// Start binds the port and begins serving. It returns once the listener is
// bound so the caller knows the port is ready; serving continues in a
// goroutine.
func (s *Server) Start(ctx context.Context) error {
	s.log.Info("Starting HTTP server", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})

	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}

	if s.config.TLS.IsEnabled() {
		tlsConfig, err := s.config.TLS.Build()
		if err != nil {
			return err
		}
		s.httpServer.TLSConfig = tlsConfig
		listener = tls.NewListener(listener, tlsConfig)
		s.log.Info("TLS enabled", map[string]interface{}{
			"cert_file": s.config.TLS.CertFile,
		})
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("Server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	s.log.Info("HTTP server started", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})
	return nil
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Error("Server shutdown error", map[string]interface{}{
			"error": err.Error(),
		})
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("HTTP server shut down successfully")
	return nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

var startTime = time.Now()

// Health returns a handler reporting service health. With a checker, a
// failing dependency turns the status unhealthy and the response 503.
func Health(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		httpStatus := http.StatusOK

		if checker != nil {
			if err := checker(c.Request.Context()); err != nil {
				status = "unhealthy"
				httpStatus = http.StatusServiceUnavailable
			}
		}

		c.JSON(httpStatus, gin.H{
			"status":    status,
			"service":   serviceName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// Info returns a handler reporting version and build information.
func Info(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := version.GetVersionInfo()
		c.JSON(http.StatusOK, gin.H{
			"service":    serviceName,
			"version":    v.Version,
			"git_commit": v.GitCommit,
			"build_time": v.BuildTime,
			"go_version": v.GoVersion,
			"uptime":     time.Since(startTime).String(),
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
		})
	}
}
