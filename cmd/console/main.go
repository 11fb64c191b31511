// Package main is the entry point for the fleet console server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/fleet-console/internal/api"
	"github.com/pkordes/fleet-console/internal/config"
	"github.com/pkordes/fleet-console/internal/domain"
	"github.com/pkordes/fleet-console/internal/handler"
	"github.com/pkordes/fleet-console/internal/middleware"
	"github.com/pkordes/fleet-console/internal/page"
	"github.com/pkordes/fleet-console/internal/query"
	"github.com/pkordes/fleet-console/internal/timeline"
)

// maxBodyBytes caps request bodies; the largest legitimate payload is a
// schedule with notes, far below 1 MiB.
const maxBodyBytes = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	path := os.Getenv("CONSOLE_CONFIG")
	if path == "" {
		path = "console.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Backend client ---------------------------------------------------
	client, err := api.New(cfg.BackendURL, &http.Client{Timeout: 15 * time.Second})
	if err != nil {
		slog.Error("invalid backend URL", "error", err)
		os.Exit(1)
	}
	slog.Info("fleet backend configured", "url", cfg.BackendURL)

	// --- Page controllers -------------------------------------------------
	debounce := time.Duration(cfg.DebounceMS) * time.Millisecond
	defaults := func(entity string) query.Defaults {
		d := cfg.Defaults(entity)
		return query.Defaults{
			Filters:   d.Filters,
			SortBy:    d.SortBy,
			SortOrder: d.SortOrder,
			PageSize:  cfg.PageSize,
		}
	}

	lists := map[string]page.ListPage{
		handler.EntityVehicles: page.NewList(page.ListConfig[domain.Vehicle]{
			Defaults: defaults(handler.EntityVehicles),
			Debounce: debounce,
			Fetch:    client.ListVehicles,
			Log:      logger,
		}),
		handler.EntityDrivers: page.NewList(page.ListConfig[domain.Driver]{
			Defaults: defaults(handler.EntityDrivers),
			Debounce: debounce,
			Fetch:    client.ListDrivers,
			Log:      logger,
		}),
		handler.EntityOrders: page.NewList(page.ListConfig[domain.MaintenanceOrder]{
			Defaults: defaults(handler.EntityOrders),
			Debounce: debounce,
			Fetch:    client.ListOrders,
			Log:      logger,
		}),
		handler.EntitySchedules: page.NewList(page.ListConfig[domain.VehicleSchedule]{
			Defaults: defaults(handler.EntitySchedules),
			Debounce: debounce,
			Fetch:    client.ListSchedules,
			Log:      logger,
		}),
	}

	overview := page.NewOverview(page.OverviewConfig{
		Schedules: client.ListSchedules,
		Orders:    client.ListOrders,
		Metrics: timeline.Metrics{
			DayWidth: cfg.Timeline.DayWidthPx,
			Gap:      cfg.Timeline.GapPx,
			MinWidth: cfg.Timeline.MinWidthPx,
		},
		DefaultDays: cfg.Timeline.DefaultDays,
		Log:         logger,
	})

	srv := handler.NewServer(handler.Config{
		Log:       logger,
		Session:   domain.Session{User: cfg.Operator.Name, Admin: cfg.Operator.Admin},
		Vehicles:  client,
		Drivers:   client,
		Orders:    client,
		Schedules: client,
		Lists:     lists,
		Overview:  overview,
	})

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body size cap.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	// WriteTimeout stays unset: it would sever the long-lived overview
	// websocket, which manages its own write deadlines.
	httpSrv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
