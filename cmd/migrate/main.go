// Command migrate applies the embedded goose migrations.
//
//	migrate up | down | status | version
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"orders/cmd"
	"orders/internal/adapters/out/postgres"
)

func main() {
	envFile := flag.String("env", ".env", "optional dotenv file")
	flag.Parse()
	args := flag.Args()

	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: migrate [-env file] <up|down|status|version>")
		os.Exit(2)
	}

	configs, err := cmd.LoadConfig(*envFile)
	log := configs.Logger("orders-migrate", os.Stdout)
	if err != nil {
		log.Error(context.Background(), "loading config failed", err)
		os.Exit(1)
	}
	ctx := log.WithField(context.Background(), "command", args[0])

	if err = postgres.Migrate(ctx, configs.PostgresURL(), args[0], args[1:]...); err != nil {
		log.Error(ctx, "migration failed", err)
		os.Exit(1)
	}
	log.Info(ctx, "migration finished")
}
