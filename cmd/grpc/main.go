// gRPC server - баланс и история транзакций для других сервисов
package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	auth "github.com/glkeru/carbon/internal/api/auth"
	serv "github.com/glkeru/carbon/internal/api/grpc"
	"github.com/glkeru/carbon/internal/config"
	db "github.com/glkeru/carbon/internal/db"
	interf "github.com/glkeru/carbon/internal/interfaces"
	services "github.com/glkeru/carbon/internal/services"
	tracing "github.com/glkeru/carbon/observability/otel"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
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
	shutdownTracer, err := tracing.InitTracer(ctx, logger, cfg.Otel.Endpoint, cfg.Otel.ServiceName+"-grpc")
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

	// services
	maxAdjustment, err := cfg.MaxAdjustment()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	carbon := services.NewCarbonService(logger, storage, storage, cache, maxAdjustment)

	authn, err := auth.NewAuthenticator(cfg.Auth.Secret)
	if err != nil {
		logger.Fatal("auth", zap.Error(err))
	}

	lis, err := net.Listen("tcp", "0.0.0.0:"+cfg.GRPC.Port)
	if err != nil {
		logger.Fatal("listen", zap.Error(err))
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(
		serv.UnaryLogInterceptor(logger),
		serv.UnaryAuthInterceptor(authn),
	))
	serv.RegisterCarbonCreditsServer(grpcServer, serv.NewCarbonServer(carbon, logger, cfg.Development()))
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	if cfg.Development() {
		reflection.Register(grpcServer)
	}

	go func() {
		logger.Info("gRPC server started", zap.String("port", cfg.GRPC.Port))
		err := grpcServer.Serve(lis)
		if err != nil {
			logger.Fatal("gRPC server failed", zap.Error(err))
		}
	}()

	<-interrupt
	healthServer.Shutdown()
	grpcServer.GracefulStop()
}
