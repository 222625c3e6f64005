package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/config"
	apierrors "github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/errors"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/infrastructure"
	customMiddleware "github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/middleware"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/services"
	handlers "github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/transport/http"
	ws "github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/websocket"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts"
)

// RepoURL is reported by the version endpoint
const RepoURL = "https://github.com/abdullah-binmadhi/Car-Sales-Dashboard"

// Application wires the dashboard service to its HTTP and WebSocket surfaces
type Application struct {
	Config        *config.Config
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	ErrorHandler  *apierrors.ErrorHandler
	Dashboard     *services.DashboardService
	HealthService *services.HealthService
	WebSocketHub  *ws.Hub
	Router        *chi.Mux
	Server        *http.Server

	disconnectHub func()
}

// New loads the configuration, initializes the global logger and builds the
// application.
func New() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return NewApplication(cfg, logger)
}

// NewApplication builds the application from an explicit configuration
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.String("dataset", cfg.Dataset.Path))

	otelProviders, err := infrastructure.InitializeOTel(
		infrastructure.NewOTelConfig(cfg.Telemetry, contracts.Version), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		ErrorHandler:  apierrors.NewErrorHandler(logger, false),
	}

	if err := app.initializeServices(); err != nil {
		_ = otelProviders.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := app.setupRouter(); err != nil {
		_ = otelProviders.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to set up router: %w", err)
	}

	app.createServer()
	return app, nil
}

// initializeServices creates the dashboard coordinator and the live update hub
func (a *Application) initializeServices() error {
	d := a.Config.Dashboard
	a.Dashboard = services.NewDashboardService(services.DashboardConfig{
		DebounceWindow:  d.DebounceWindow,
		DefaultMaxPrice: d.DefaultMaxPrice,
		BucketCount:     d.BucketCount,
		CacheSize:       d.CacheSize,
		PageSize:        d.PageSize,
		ComparisonSize:  d.ComparisonSize,
	}, a.Logger)

	pipelineMetrics, err := infrastructure.NewPipelineMetrics(a.OTelProviders.Meter)
	if err != nil {
		return fmt.Errorf("failed to create pipeline metrics: %w", err)
	}
	a.Dashboard.SetObserver(pipelineMetrics)

	var clients services.ClientCounter
	if a.Config.WebSocket.Enabled {
		hubMetrics, err := ws.NewMetrics(a.OTelProviders.Meter)
		if err != nil {
			return fmt.Errorf("failed to create websocket metrics: %w", err)
		}
		a.WebSocketHub = ws.NewHub(a.Config.WebSocket, hubMetrics, a.Logger)
		a.disconnectHub = ws.ConnectDashboard(a.WebSocketHub, a.Dashboard)
		clients = a.WebSocketHub
	}

	a.HealthService = services.NewHealthService(
		contracts.Version,
		RepoURL,
		contracts.BuildTime,
		a.Dashboard,
		clients,
		a.Logger,
	)
	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() error {
	httpMetrics, err := customMiddleware.NewHTTPMetrics(a.OTelProviders.Meter)
	if err != nil {
		return err
	}

	r := chi.NewRouter()

	// RequestID → RealIP → Tracing → Metrics → Logger → Recoverer
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.Tracing("http.server"))
	r.Use(httpMetrics.Handler)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.ErrorHandler))
	r.Use(customMiddleware.SecurityHeaders)
	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(a.corsConfig()))
	}
	if rl := a.Config.Security.RateLimit; rl.Enabled {
		r.Use(customMiddleware.NewRateLimiter(rl.RPS, rl.Burst, a.ErrorHandler, a.Logger).Handler)
	}
	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	if a.WebSocketHub != nil {
		r.Handle(config.WebSocketEndpoint, ws.NewHandler(a.WebSocketHub, a.Config.Security.AllowedOrigins, a.Logger))
	}
	r.Handle(config.MetricsEndpoint, handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP, a.ErrorHandler))

	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
	dashboardHandler := handlers.NewDashboardHandler(a.Dashboard, a.Logger, a.ErrorHandler)

	r.Route(config.APIBasePath, func(r chi.Router) {
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.ErrorHandler))

		r.Mount("/health", healthHandler.Routes())
		r.Get("/version", healthHandler.Version)
		r.Mount("/dashboard", dashboardHandler.Routes())
	})

	a.Router = r
	return nil
}

// corsConfig builds the CORS policy from the security section
func (a *Application) corsConfig() customMiddleware.CORSConfig {
	return customMiddleware.CORSConfig{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Request-ID",
			"X-Requested-With",
		},
		ExposedHeaders:   []string{customMiddleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
		Logger:           a.Logger,
	}
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           a.Config.Server.Addr(),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Run serves until ctx is cancelled or the server fails, then shuts down
// gracefully. The dataset loads in the background; until it is ready data
// endpoints answer 503.
func (a *Application) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}
	return a.Serve(ctx, listener)
}

// Serve is Run on an existing listener
func (a *Application) Serve(ctx context.Context, listener net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	if a.WebSocketHub != nil {
		g.Go(func() error {
			return a.WebSocketHub.Run(gctx)
		})
	}

	g.Go(func() error {
		// A failed load is terminal for the dataset, not for the process.
		loadCtx := infrastructure.EnsureTraceID(gctx)
		if err := a.Dashboard.LoadFile(loadCtx, a.Config.Dataset.Path, a.Config.Dataset.Sheet); err != nil {
			a.Logger.ErrorContext(loadCtx, "Dataset unavailable",
				slog.String("path", a.Config.Dataset.Path),
				slog.String("error", err.Error()))
		}
		return nil
	})

	g.Go(func() error {
		a.Logger.InfoContext(gctx, "HTTP server listening",
			slog.String("address", listener.Addr().String()))
		if err := a.Server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.shutdown()
	})

	return g.Wait()
}

// shutdown stops the server and releases background resources
func (a *Application) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	start := time.Now()
	a.Logger.InfoContext(ctx, "Shutting down application")

	var errs []error
	if err := a.Server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown: %w", err))
	}

	if a.disconnectHub != nil {
		a.disconnectHub()
	}
	a.Dashboard.Close()

	if err := a.OTelProviders.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("telemetry shutdown: %w", err))
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete",
		slog.Duration("elapsed", time.Since(start)))
	return errors.Join(errs...)
}
