// Package app assembles the application: configuration, logging, the table
// source, the dashboard service and the HTTP server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/conectamos-mx/dashboard-ova/internal/config"
	apierrors "github.com/conectamos-mx/dashboard-ova/internal/errors"
	"github.com/conectamos-mx/dashboard-ova/internal/graph"
	"github.com/conectamos-mx/dashboard-ova/internal/infrastructure"
	"github.com/conectamos-mx/dashboard-ova/internal/middleware"
	"github.com/conectamos-mx/dashboard-ova/internal/services"
	"github.com/conectamos-mx/dashboard-ova/internal/tablesource"
	handlers "github.com/conectamos-mx/dashboard-ova/internal/transport/http"
)

// Application is the assembled server and its dependencies.
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Router *chi.Mux
	Server *http.Server

	source      tablesource.Source
	closeLogger func() error
}

// New loads configuration and wires every component together.
func New() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, closeLogger, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	slog.SetDefault(logger)

	logger.Info("application starting",
		slog.String("version", services.Version),
		slog.String("source_mode", cfg.Source.Mode))

	source, err := buildSource(cfg, logger)
	if err != nil {
		closeLogger()
		return nil, err
	}

	service := services.NewDashboardService(source, logger)
	errorHandler := apierrors.NewErrorHandler(logger)
	dashboard := handlers.NewDashboardHandler(service, logger, errorHandler)

	app := &Application{
		Config:      cfg,
		Logger:      logger,
		source:      source,
		closeLogger: closeLogger,
	}
	app.Router = app.buildRouter(dashboard)
	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return app, nil
}

// buildSource selects the table source from configuration.
func buildSource(cfg *config.Config, logger *slog.Logger) (tablesource.Source, error) {
	switch cfg.Source.Mode {
	case config.ModeLocal:
		return tablesource.NewLocal(cfg.Source.VentasFile, cfg.Source.AlmacenFile, logger), nil
	case config.ModeOneDrive:
		client := graph.NewClient(cfg.Source.OneDrive, logger)
		return tablesource.NewRemote(
			client,
			cfg.Source.OneDrive.VentasItemID,
			cfg.Source.OneDrive.AlmacenItemID,
			cfg.Source.OneDrive.TableCacheTTL,
			logger,
		), nil
	default:
		return nil, fmt.Errorf("unknown source mode %q", cfg.Source.Mode)
	}
}

func (a *Application) buildRouter(dashboard *handlers.DashboardHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(a.Logger))
	r.Use(middleware.Recoverer(a.Logger))
	r.Use(middleware.Metrics)
	if a.Config.Security.EnableCORS {
		r.Use(middleware.CORS(a.Config.Security.AllowedOrigins))
	}
	if a.Config.Security.RateLimit.Enabled {
		r.Use(middleware.RateLimit(a.Config.Security.RateLimit.RPS, a.Config.Security.RateLimit.Burst))
	}

	r.Mount("/api", dashboard.Routes())
	r.Handle("/metrics", promhttp.Handler())

	if dir := a.Config.Server.FrontendDir; dir != "" {
		if _, err := os.Stat(dir); err == nil {
			r.Handle("/*", http.FileServer(http.Dir(dir)))
		} else {
			a.Logger.Warn("frontend directory missing, static serving disabled",
				slog.String("dir", dir))
		}
	}
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("http server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()
	err := a.Server.Shutdown(shutdownCtx)
	a.close()
	return err
}

func (a *Application) close() {
	if a.closeLogger != nil {
		a.closeLogger()
	}
}
