package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/grocery-price-tracker/internal/api/handlers"
	"github.com/donaldgifford/grocery-price-tracker/internal/api/middleware"
	"github.com/donaldgifford/grocery-price-tracker/internal/config"
	"github.com/donaldgifford/grocery-price-tracker/internal/engine"
	"github.com/donaldgifford/grocery-price-tracker/internal/report"
	"github.com/donaldgifford/grocery-price-tracker/internal/store"
	"github.com/donaldgifford/grocery-price-tracker/pkg/logger"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server and scheduler",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
	}

	rc, err := openCache(cfg, db)
	if err != nil {
		return err
	}

	m, err := buildMatcher(cfg, log, rc)
	if err != nil {
		return err
	}

	e := newServer(log, m, rc, db)

	sched, err := startScheduler(cfg, log, m, db)
	if err != nil {
		return err
	}
	if sched != nil {
		defer func() { <-sched.Stop().Done() }()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", addr, "retailers", m.Sources())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// newServer wires middleware, probes, metrics and the huma API. The cache
// and store are optional; their routes are only registered when present.
func newServer(log *slog.Logger, m *engine.Matcher, rc resultCache, db *store.PostgresStore) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(logger.Component(log, "http")))
	e.Use(middleware.Metrics())

	var pinger handlers.Pinger
	if db != nil {
		pinger = db
	}
	handlers.RegisterHealthRoutes(e, handlers.NewHealthHandler(pinger))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("Grocery Price Tracker API", Version))

	handlers.RegisterMatchRoutes(api, handlers.NewMatchHandler(m))
	if rc != nil {
		handlers.RegisterCacheRoutes(api, handlers.NewCacheHandler(rc))
	}
	if db != nil {
		handlers.RegisterHistoryRoutes(api, handlers.NewHistoryHandler(db))
	}

	return e
}

// startScheduler starts the periodic products file refresh when enabled.
// Results go to Postgres when configured, otherwise to the schedule's CSV
// output file.
func startScheduler(
	cfg *config.Config,
	log *slog.Logger,
	m *engine.Matcher,
	db *store.PostgresStore,
) (*engine.Scheduler, error) {
	if !cfg.Schedule.Enabled {
		return nil, nil
	}

	var sink engine.ResultSink
	switch {
	case db != nil:
		sink = db
	case cfg.Schedule.OutputFile != "":
		sink = report.CSVSink{Path: cfg.Schedule.OutputFile, Retailers: m.Sources()}
	default:
		return nil, fmt.Errorf("schedule needs a database or schedule.output_file")
	}

	sched, err := engine.NewScheduler(
		m,
		report.FileLoader{Path: cfg.Schedule.ProductsFile},
		sink,
		cfg.Schedule.RefreshInterval,
		logger.Component(log, "scheduler"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}
	sched.Start()
	return sched, nil
}
