// Package main runs the background reminder worker.
package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/boardflow/backend/config"
	"github.com/boardflow/backend/internal/notifications"
	"github.com/boardflow/backend/internal/realtime"
	"github.com/boardflow/backend/internal/worker"
	"github.com/boardflow/backend/pkg/queue"
	"github.com/boardflow/backend/pkg/redis"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if !cfg.Redis.Enabled {
		logger.Fatal("worker needs redis; set REDIS_ENABLED=true")
	}

	ctx := context.Background()
	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	jobQueue := queue.NewQueue(rdb.Client, logger)
	// In-app reminders reach the user's open sessions through the server's Redis channel.
	dispatcher := notifications.NewLogDispatcher(realtime.NewRedisPubSub(rdb.Client, logger), logger)

	workerCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < cfg.Notifications.Concurrency; i++ {
		processor := worker.NewReminderProcessor(jobQueue, dispatcher, logger.With(zap.Int("worker", i)))
		wg.Add(1)
		go func() {
			defer wg.Done()
			processor.Run(workerCtx)
		}()
	}
	logger.Info("worker started", zap.Int("concurrency", cfg.Notifications.Concurrency))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	wg.Wait()
	logger.Info("worker stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
