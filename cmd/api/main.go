package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/madeee1/exercise-tracker/internal/api"
	"github.com/madeee1/exercise-tracker/internal/config"
	"github.com/madeee1/exercise-tracker/internal/db"
	"github.com/madeee1/exercise-tracker/internal/logger"
	"github.com/madeee1/exercise-tracker/internal/metrics"
	"github.com/madeee1/exercise-tracker/internal/repository/postgres"
	"github.com/madeee1/exercise-tracker/internal/services"
	"github.com/madeee1/exercise-tracker/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	userSvc := services.NewUserService(repos.Users, repos.AuditLogs, wp)
	exerciseSvc := services.NewExerciseService(repos.Users, repos.AuditLogs, wp)
	logSvc := services.NewLogService(repos.Users)

	metrics.Init()
	r := api.NewRouter(cfg, userSvc, exerciseSvc, logSvc)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
