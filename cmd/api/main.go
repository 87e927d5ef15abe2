// Package main is the entry point for the Igbo calendar API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zapponejosh/igbo-calendar-api/internal/api"
	"github.com/zapponejosh/igbo-calendar-api/internal/calendar"
	"github.com/zapponejosh/igbo-calendar-api/internal/config"
	"github.com/zapponejosh/igbo-calendar-api/internal/database"
	"github.com/zapponejosh/igbo-calendar-api/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Setup structured logging
	log := logger.Setup(cfg)

	log.Info("starting igbo calendar API",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.String("log_level", cfg.LogLevel),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	// =========================================================================
	// Database
	// =========================================================================
	db, err := database.Open(database.DefaultConfig(cfg.DatabasePath), log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	if cfg.HasDefaultYear() {
		year, err := db.UpsertYear(ctx, cfg.DefaultYearLabel, cfg.DefaultYearStart, nil)
		if err != nil {
			return fmt.Errorf("seed default year: %w", err)
		}
		log.Info("default year registered",
			slog.String("label", year.Label),
			slog.String("start_date", year.StartDate),
		)
	}

	// =========================================================================
	// Calendar engine
	// =========================================================================
	engine, err := newEngine(cfg, log)
	if err != nil {
		return err
	}

	// =========================================================================
	// HTTP server
	// =========================================================================
	handlers := api.NewHandlers(db, engine, cfg, log)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           api.SetupRoutes(handlers, cfg, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("igbo calendar API ready", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newEngine builds the calendar engine, applying the month catalog
// override when one is configured.
func newEngine(cfg *config.Config, log *slog.Logger) (*calendar.Engine, error) {
	if cfg.MonthCatalogPath == "" {
		return calendar.NewEngine(), nil
	}

	catalog, err := calendar.LoadCatalogFile(cfg.MonthCatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load month catalog: %w", err)
	}
	log.Info("month catalog loaded",
		slog.String("path", cfg.MonthCatalogPath),
		slog.Int("months", catalog.Len()),
	)
	return calendar.NewEngine(calendar.WithCatalog(catalog)), nil
}
