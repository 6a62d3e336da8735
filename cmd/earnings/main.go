// Job - начисление кредитов за эко-активность
// Опрос Kafka -> цена по правилу из Mongo -> транзакция EARN
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/glkeru/carbon/internal/config"
	db "github.com/glkeru/carbon/internal/db"
	kafka "github.com/glkeru/carbon/internal/external/kafka"
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
	shutdownTracer, err := tracing.InitTracer(ctx, logger, cfg.Otel.Endpoint, cfg.Otel.ServiceName+"-earnings")
	if err != nil {
		logger.Fatal("tracer", zap.Error(err))
	}
	defer shutdownTracer()

	// kafka
	reader, err := kafka.NewKafkaEarnings(logger, cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID)
	if err != nil {
		logger.Fatal("kafka", zap.Error(err))
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

	// rules
	rulesDB, err := db.NewRulesDB(cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		logger.Fatal("rules database", zap.Error(err))
	}
	defer rulesDB.Close(context.Background())

	// services
	maxAdjustment, err := cfg.MaxAdjustment()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	serv := services.NewCarbonService(logger, storage, storage, cache, maxAdjustment)
	rules := services.NewRuleService(logger, rulesDB)

	// start
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupt
		cancel()
	}()

	logger.Info("earnings job started", zap.Int("workers", cfg.Workers), zap.String("topic", cfg.Kafka.Topic))
	err = reader.Run(ctx, cfg.Workers, func(ctx context.Context, event string) error {
		_, err := serv.Earn(ctx, rules, event)
		return err
	})
	if err != nil {
		logger.Error("earnings job stopped", zap.Error(err))
	}
}
