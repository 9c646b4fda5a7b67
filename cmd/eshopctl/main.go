package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/teslo-shop/storefront-go/internal/cli"
	"github.com/teslo-shop/storefront-go/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := cli.LoadConfig(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	app, err := cli.NewApp(ctx, cfg, log, os.Stdout)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialise client")
		os.Exit(1)
	}

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprint(os.Stderr, cli.Usage)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
