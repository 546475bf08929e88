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
	"github.com/spf13/afero"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/drive-mcp/internal/api/http"
	"github.com/GriffinCanCode/drive-mcp/internal/api/middleware"
	"github.com/GriffinCanCode/drive-mcp/internal/api/ws"
	"github.com/GriffinCanCode/drive-mcp/internal/infrastructure/config"
	"github.com/GriffinCanCode/drive-mcp/internal/infrastructure/logging"
	"github.com/GriffinCanCode/drive-mcp/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/drive-mcp/internal/providers/filesystem"
	"github.com/GriffinCanCode/drive-mcp/internal/rpc"
	"github.com/GriffinCanCode/drive-mcp/internal/service"
	"github.com/GriffinCanCode/drive-mcp/internal/shared/paths"
)

const shutdownTimeout = 10 * time.Second

// Options carries what the server needs from the command line
type Options struct {
	Config  *config.Config
	Logger  *logging.Logger
	Root    paths.Root
	Version string
	// Fs replaces the OS filesystem, e.g. in tests
	Fs afero.Fs
}

// Server wires the drive provider to the stdio and HTTP transports
type Server struct {
	config   *config.Config
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	drive    *filesystem.Provider
	registry *service.Registry
	rpc      *rpc.Handler
	router   *gin.Engine
}

// New creates a new server instance
func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		return nil, errors.New("server: config is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	metrics := monitoring.NewMetrics()

	var driveOpts []filesystem.Option
	if opts.Fs != nil {
		driveOpts = append(driveOpts, filesystem.WithFs(opts.Fs))
	}
	drive := filesystem.New(opts.Root, driveOpts...)

	registry := service.NewRegistry(service.WithLogger(logger), service.WithMetrics(metrics))
	if err := registry.Register(drive); err != nil {
		return nil, fmt.Errorf("register drive provider: %w", err)
	}

	rpcHandler := rpc.NewHandler(registry,
		rpc.WithLogger(logger),
		rpc.WithMetrics(metrics),
		rpc.WithVersion(opts.Version),
	)

	s := &Server{
		config:   opts.Config,
		logger:   logger,
		metrics:  metrics,
		drive:    drive,
		registry: registry,
		rpc:      rpcHandler,
	}
	s.router = s.buildRouter(opts.Version)

	logger.Info("server initialized",
		zap.String("root", opts.Root.Path()),
		zap.String("transport", opts.Config.Transport.Mode),
		zap.Int("tools", len(registry.Tools())),
	)
	return s, nil
}

func (s *Server) buildRouter(version string) *gin.Engine {
	if !s.config.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(monitoring.Middleware(s.metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	handlers := apihttp.NewHandlers(s.registry, s.rpc, s.drive, version)
	wsHandler := ws.NewHandler(s.rpc, s.logger, s.metrics)

	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	router.GET("/tools", handlers.ListTools)

	// Tool calls are rate limited; health and metrics are not.
	calls := router.Group("/")
	if s.config.RateLimit.Enabled {
		s.logger.Info("rate limiting enabled",
			zap.Int("rps", s.config.RateLimit.RequestsPerSecond),
			zap.Int("burst", s.config.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = s.config.RateLimit.RequestsPerSecond
		rl.Burst = s.config.RateLimit.Burst
		calls.Use(middleware.RateLimit(rl))
	}
	calls.POST("/tools/:name", handlers.CallTool)
	calls.POST("/rpc", handlers.RPC)
	calls.GET("/ws", wsHandler.HandleConnection)

	return router
}

// Router returns the HTTP handler tree
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Registry returns the tool registry
func (s *Server) Registry() *service.Registry {
	return s.registry
}

// Metrics returns the server metrics
func (s *Server) Metrics() *monitoring.Metrics {
	return s.metrics
}

// Run serves on the configured transport until ctx is cancelled.
// stdio mode also stops when in reaches EOF.
func (s *Server) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	switch s.config.Transport.Mode {
	case config.TransportHTTP:
		return s.ServeHTTP(ctx)
	default:
		return s.ServeStdio(ctx, in, out)
	}
}

// ServeStdio serves newline-delimited JSON-RPC on in/out
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("serving MCP over stdio")
	return rpc.NewStdioServer(s.rpc, in, out, s.logger).Serve(ctx)
}

// ServeHTTP listens on the configured address
func (s *Server) ServeHTTP(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.config.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts HTTP connections on ln and shuts down gracefully when ctx ends
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Close flushes buffered logs
func (s *Server) Close() error {
	s.logger.Info("server stopped")
	// Sync on stderr reports EINVAL on some platforms; nothing is lost.
	_ = s.logger.Sync()
	return nil
}
