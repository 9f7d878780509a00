package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"bookstore-backoffice/internal/config"
	"bookstore-backoffice/internal/infrastructure/queue"
	"bookstore-backoffice/pkg/container"
	"bookstore-backoffice/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", err)
		os.Exit(1)
	}

	logger.Init(cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	c, err := container.New(ctx, cfg)
	cancel()
	if err != nil {
		logger.Error("failed to initialize worker", err)
		os.Exit(1)
	}
	defer c.Close()

	redisOpt := queue.RedisConnOpt(cfg.Redis)

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.Worker.Concurrency,
		Queues: map[string]int{
			"default": 1,
		},
	})

	handler := NewTaskHandler(c)
	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TypeShortageRefresh, handler.HandleShortageRefresh)
	mux.HandleFunc(queue.TypeSessionPrune, handler.HandleSessionPrune)

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: time.Local,
	})
	if _, err := scheduler.Register(cfg.Worker.ShortageRefreshCron, queue.NewShortageRefreshTask()); err != nil {
		logger.Error("failed to register shortage refresh schedule", err)
		os.Exit(1)
	}
	if _, err := scheduler.Register(cfg.Worker.SessionPruneCron, queue.NewSessionPruneTask()); err != nil {
		logger.Error("failed to register session prune schedule", err)
		os.Exit(1)
	}

	if err := scheduler.Start(); err != nil {
		logger.Error("failed to start scheduler", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("worker starting", map[string]interface{}{
			"concurrency": cfg.Worker.Concurrency,
		})
		if err := srv.Run(mux); err != nil {
			logger.Error("worker failed", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down", nil)
	scheduler.Shutdown()
	srv.Shutdown()
	logger.Info("worker stopped", nil)
}
