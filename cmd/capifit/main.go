package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"capifit/internal/client/cli"
	"capifit/internal/client/config"

	_ "modernc.org/sqlite"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("FATAL: could not start client: %v", err)
	}
	app.Run(ctx)
}
