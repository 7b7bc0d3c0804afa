package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"manifest/internal/jobs"
	"manifest/internal/seed"
	"manifest/internal/server"
	"manifest/internal/storage/sqlite"
	"manifest/internal/util"
	"manifest/internal/views"
)

func main() {
	addrFlag := flag.String("addr", util.EnvOrDefault("MANIFEST_ADDR", ":8080"), "HTTP listen address")
	dbFlag := flag.String("db", util.EnvOrDefault("MANIFEST_DB_PATH", "data/manifest.db"), "Path to sqlite seed catalog")
	staticFlag := flag.String("static", util.EnvOrDefault("MANIFEST_STATIC_DIR", "web/dist"), "Directory with built frontend")
	seedFlag := flag.String("seed", util.EnvOrDefault("MANIFEST_SEED_FILE", ""), "Optional YAML seed file, reloaded on change")
	tzFlag := flag.String("tz", util.EnvOrDefault("MANIFEST_TZ", "Local"), "Time zone the planner works in")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	logger.Info("Manifest planner v.1.0.0")

	loc, err := util.LoadLocation(*tzFlag)
	if err != nil {
		logger.Error("invalid time zone", slog.String("error", err.Error()))
		os.Exit(1)
	}
	now := util.ClockIn(loc)

	store, err := sqlite.Open(*dbFlag, logger)
	if err != nil {
		logger.Error("unable to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if empty, err := store.IsEmpty(ctx); err == nil && empty {
		logger.Info("seeding empty catalog", slog.String("path", *dbFlag))
	}

	catalog := seed.NewCatalog(store, *seedFlag, now)
	ds, err := catalog.Load(ctx)
	if err != nil {
		logger.Error("unable to load catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}
	v := views.New(ds, now, logger)

	scheduler := jobs.NewScheduler(loc, logger)
	rollover, err := scheduler.ScheduleDaily("today-rollover", "00:00", func() {
		ds, err := catalog.Load(ctx)
		if err != nil {
			logger.Warn("today rollover skipped", slog.String("error", err.Error()))
			return
		}
		v.RolloverToday(ds)
	})
	if err != nil {
		logger.Error("unable to schedule rollover", slog.String("error", err.Error()))
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()
	logger.Info("today rollover scheduled", slog.Time("next", scheduler.Next(rollover)))

	if *seedFlag != "" {
		reload := func() {
			ds, err := catalog.Load(ctx)
			if err != nil {
				logger.Warn("seed reload failed", slog.String("error", err.Error()))
				return
			}
			v.Reset(ds)
		}
		if err := seed.Watch(ctx, *seedFlag, logger, reload); err != nil {
			logger.Warn("seed file not watched", slog.String("error", err.Error()))
		}
	}

	srv := server.New(v, catalog, logger, *staticFlag)

	httpServer := &http.Server{
		Addr:    *addrFlag,
		Handler: srv.Engine(),
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
