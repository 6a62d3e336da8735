// REST API - админка и кабинет пользователя
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auth "github.com/glkeru/carbon/internal/api/auth"
	api "github.com/glkeru/carbon/internal/api/rest"
	"github.com/glkeru/carbon/internal/config"
	db "github.com/glkeru/carbon/internal/db"
	interf "github.com/glkeru/carbon/internal/interfaces"
	services "github.com/glkeru/carbon/internal/services"
	tracing "github.com/glkeru/carbon/observability/otel"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	// config
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// log
	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// tracing
	shutdownTracer, err := tracing.InitTracer(ctx, logger, cfg.Otel.Endpoint, cfg.Otel.ServiceName)
	if err != nil {
		logger.Fatal("tracer", zap.Error(err))
	}
	defer shutdownTracer()

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
	carbon := services.NewCarbonService(logger, storage, storage, cache, maxAdjustment)
	rules := services.NewRuleService(logger, rulesDB)

	authn, err := auth.NewAuthenticator(cfg.Auth.Secret)
	if err != nil {
		logger.Fatal("auth", zap.Error(err))
	}

	// api handlers
	r := api.NewHandler(carbon, rules, authn, logger, cfg.Development())
	srv := &http.Server{
		Handler:      otelhttp.NewHandler(r, "carbon-rest"),
		Addr:         ":" + cfg.HTTP.Port,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}
	go func() {
		logger.Info("REST server started", zap.String("port", cfg.HTTP.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("REST server failed", zap.Error(err))
		}
	}()

	// shutdown
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt
	timeout, cancelTimeout := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelTimeout()
	err = srv.Shutdown(timeout)
	if err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Development() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
