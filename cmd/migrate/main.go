// Схема БД: credit_accounts, credit_transactions
package main

import (
	"context"
	"time"

	"github.com/glkeru/carbon/internal/config"
	db "github.com/glkeru/carbon/internal/db"
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

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// database
	storage, err := db.NewCarbonDB(ctx, logger, cfg.DSN())
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer storage.Close()

	err = storage.Migrate(ctx)
	if err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}
}
