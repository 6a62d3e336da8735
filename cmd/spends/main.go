// Job - обработка списаний кредитов
// RabbitMQ -> транзакция SPEND -> подтверждение в очередь ответов
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/glkeru/carbon/internal/config"
	db "github.com/glkeru/carbon/internal/db"
	rabbit "github.com/glkeru/carbon/internal/external/rabbitmq"
	interf "github.com/glkeru/carbon/internal/interfaces"
	services "github.com/glkeru/carbon/internal/services"
	tracing "github.com/glkeru/carbon/observability/otel"
	"go.uber.org/zap"
)

func main() {
	// config
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// log
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// tracing
	shutdownTracer, err := tracing.InitTracer(ctx, logger, cfg.Otel.Endpoint, cfg.Otel.ServiceName+"-spends")
	if err != nil {
		logger.Fatal("tracer", zap.Error(err))
	}
	defer shutdownTracer()

	// rabbitmq
	reader, err := rabbit.NewRabbitSpends(logger, cfg.Rabbit.URL, cfg.Rabbit.Queue, cfg.Rabbit.ConfirmQueue, cfg.Workers)
	if err != nil {
		logger.Fatal("rabbitmq", zap.Error(err))
	}
	defer reader.Close()

	// database
	storage, err := db.NewCarbonDB(ctx, logger, cfg.DSN())
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer storage.Close()

	// cache
	var cache interf.CacheStorage
	redis, err := db.NewCacheService(ctx, cfg.Redis.Addr, cfg.Redis.User, cfg.Redis.Password)
	if err != nil {
		logger.Error("cache disabled", zap.Error(err))
	} else {
		cache = redis
		defer redis.Close()
	}

	// services
	maxAdjustment, err := cfg.MaxAdjustment()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	serv := services.NewCarbonService(logger, storage, storage, cache, maxAdjustment)

	// os signals
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupt
		cancel()
	}()

	// workers
	logger.Info("spends job started", zap.Int("workers", cfg.Workers), zap.String("queue", cfg.Rabbit.Queue))
	err = reader.Run(ctx, cfg.Workers, serv.Spend)
	if err != nil {
		logger.Error("spends job stopped", zap.Error(err))
	}
}
