package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/Samayeeta/indicure-ey/pkg/runtime/terminal"
	"github.com/Samayeeta/indicure-ey/pkg/services/config"
	"github.com/Samayeeta/indicure-ey/pkg/services/export"
	"github.com/Samayeeta/indicure-ey/pkg/store/blob"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	svc, err := export.NewService(ctx, cfg, blob.DefaultRegistry())
	if err != nil {
		return err
	}
	defer svc.Close()

	cli := terminal.NewCLI(terminal.Options{
		Exports: svc.Controller,
		Output:  os.Stdout,
	})
	return cli.ExecuteContext(ctx)
}
