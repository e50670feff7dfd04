package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/mathd/internal/api/http"
	"github.com/GriffinCanCode/mathd/internal/api/mcp"
	"github.com/GriffinCanCode/mathd/internal/api/middleware"
	"github.com/GriffinCanCode/mathd/internal/api/ws"
	"github.com/GriffinCanCode/mathd/internal/domain/service"
	"github.com/GriffinCanCode/mathd/internal/infrastructure/config"
	"github.com/GriffinCanCode/mathd/internal/infrastructure/logging"
	"github.com/GriffinCanCode/mathd/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/mathd/internal/infrastructure/tracing"
	mathProvider "github.com/GriffinCanCode/mathd/internal/providers/math"
	"github.com/GriffinCanCode/mathd/internal/shared/types"
)

// Server owns the tool registry and the transports in front of it
type Server struct {
	router   *gin.Engine
	registry *service.Registry
	tracer   *tracing.Tracer
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("Initializing mathd",
		zap.String("version", types.Version),
		zap.String("transport", cfg.Server.Transport),
		zap.Int("factorial_limit", cfg.Math.FactorialLimit),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New(types.ServerName, logger.Logger)

	provider, err := mathProvider.NewProvider(mathProvider.WithFactorialLimit(cfg.Math.FactorialLimit))
	if err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to build math catalog: %w", err)
	}

	registry, err := service.NewRegistry(logger.Named("registry").Logger, metrics, provider)
	if err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to build service registry: %w", err)
	}

	s := &Server{
		registry: registry,
		tracer:   tracer,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}
	s.router = s.newRouter()

	logger.Info("Server initialized successfully", zap.Int("tools", len(registry.Tools())))
	return s, nil
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	stdio := cfg.Server.Transport == config.TransportStdio
	return logging.New(logging.ConfigFor(cfg.Logging.Level, cfg.Logging.Development, stdio))
}

func (s *Server) newRouter() *gin.Engine {
	if !s.config.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(s.tracer))
	router.Use(monitoring.Middleware(s.metrics))

	corsCfg := middleware.DefaultCORSConfig()
	if len(s.config.Server.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = s.config.Server.CORSOrigins
	}
	router.Use(middleware.CORS(corsCfg))

	if s.config.RateLimit.Enabled {
		s.logger.Info("Rate limiting enabled",
			zap.Int("rps", s.config.RateLimit.RequestsPerSecond),
			zap.Int("burst", s.config.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: s.config.RateLimit.RequestsPerSecond,
			Burst:             s.config.RateLimit.Burst,
		}))
	}

	apihttp.NewHandlers(s.registry, s.metrics).Register(router)

	wsHandler := ws.NewHandler(s.registry, s.metrics, s.logger.Named("ws").Logger)
	router.GET("/stream", wsHandler.HandleConnection)

	router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	return router
}

// Registry exposes the tool registry for in-process callers
func (s *Server) Registry() *service.Registry {
	return s.registry
}

// Logger returns the server logger
func (s *Server) Logger() *logging.Logger {
	return s.logger
}

// Handler returns the HTTP handler with response compression applied.
// Websocket upgrades pass through untouched.
func (s *Server) Handler() http.Handler {
	compressed := gzhttp.GzipHandler(s.router)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if websocket.IsWebSocketUpgrade(r) {
			s.router.ServeHTTP(w, r)
			return
		}
		compressed.ServeHTTP(w, r)
	})
}

// Run serves the configured transport until ctx is cancelled
func (s *Server) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if s.config.Server.Transport == config.TransportHTTP {
		return s.RunHTTP(ctx)
	}
	return s.RunStdio(ctx, in, out)
}

// RunHTTP listens on the configured address and shuts down gracefully
// when ctx is cancelled
func (s *Server) RunHTTP(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Server.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Server.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts HTTP connections on ln until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("Starting HTTP server", zap.String("addr", ln.Addr().String()))

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Serve(ln)
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	timeout := time.Duration(s.config.Server.ShutdownSeconds) * time.Second
	if timeout == 0 {
		s.logger.Info("Closing HTTP server")
		return srv.Close()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server", zap.Duration("timeout", timeout))
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}

// RunStdio speaks MCP over in and out until ctx is cancelled or in closes
func (s *Server) RunStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("Starting MCP stdio server")
	return mcp.NewServer(s.registry, s.logger.Named("mcp").Logger).Serve(ctx, in, out)
}

// Close releases the tracer and flushes the logger
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")
	s.tracer.Close()

	// Sync fails on stdout/stderr for some platforms; nothing to do about it
	_ = s.logger.Sync()
	return nil
}
