package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"dayplan/internal/config"
	"dayplan/internal/model"
	"dayplan/internal/repository"
	"dayplan/internal/server"
	"dayplan/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.NewWithOptions(os.Stdout, log.Options{
		ReportTimestamp: true,
		Prefix:          "plannerd",
	})

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("db", "err", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	repo := repository.NewDocumentRepository(db, model.DocumentKey)
	svc := service.NewPlannerService(repo, logger)

	// Seed the default document so the first GET never sees an empty store.
	if _, err := svc.Load(ctx); err != nil {
		logger.Fatal("seed state", "err", err)
	}

	scheduler := service.NewSchedulerService(model.CivilZone)
	snapshot := func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := svc.WriteSnapshot(jobCtx, cfg.SnapshotPath); err != nil {
			logger.Warn("snapshot", "err", err)
		}
	}
	scheduled := false
	if cfg.SnapshotInterval > 0 {
		if _, err := scheduler.ScheduleInterval(cfg.SnapshotInterval, snapshot); err != nil {
			logger.Fatal("schedule snapshot", "err", err)
		}
		scheduled = true
	}
	if cfg.SnapshotTime != "" {
		if _, err := scheduler.ScheduleDaily(cfg.SnapshotTime, snapshot); err != nil {
			logger.Fatal("schedule daily snapshot", "err", err)
		}
		scheduled = true
	}
	if scheduled {
		scheduler.Start()
		defer scheduler.Stop()
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.New(svc, logger, cfg.Env).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("planner daemon started", "addr", cfg.Addr, "env", cfg.Env)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped with error", "err", err)
	}
	logger.Info("shutdown complete")
}
