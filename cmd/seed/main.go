// Command seed loads orders from a JSON seed file. Orders that already
// exist are left untouched, so it is safe to run repeatedly.
package main

import (
	"context"
	"flag"
	"os"

	"orders/cmd"
	"orders/internal/adapters/out/postgres"
	"orders/internal/pkg/logger"
)

func main() {
	file := flag.String("file", "db/seeds/orders.json", "seed file")
	envFile := flag.String("env", ".env", "optional dotenv file")
	flag.Parse()

	configs, err := cmd.LoadConfig(*envFile)
	log := configs.Logger("orders-seed", os.Stdout)
	if err == nil {
		err = run(*file, configs, log)
	}
	if err != nil {
		log.Error(context.Background(), "seeding failed", err)
		os.Exit(1)
	}
}

func run(file string, configs cmd.Config, log *logger.Logger) error {
	ctx := context.Background()

	gormDB, err := postgres.Open(ctx, configs.DSN(), configs.PoolOptions(), log)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	app, err := cmd.NewCompositionRoot(ctx, configs, gormDB, log)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	_, err = app.CreateSeedLoader().LoadFile(ctx, file)
	return err
}
