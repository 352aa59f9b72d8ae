package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/light-bringer/menucat-service/internal/config"
	"github.com/light-bringer/menucat-service/internal/seed"
	"github.com/light-bringer/menucat-service/internal/services"
)

func main() {
	file := flag.String("file", "migrations/seed/menu.yaml", "Path to the YAML menu file")
	keepGoing := flag.Bool("continue-on-error", false, "Keep seeding after an item fails")
	flag.Parse()

	if err := run(*file, *keepGoing); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(path string, keepGoing bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	menu, err := seed.LoadFile(path)
	if err != nil {
		return err
	}

	serviceOpts, err := services.NewServiceOptions(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	var opts []seed.Option
	if keepGoing {
		opts = append(opts, seed.WithContinueOnError())
	}

	res, err := seed.NewSeeder(serviceOpts.CreateMenuItem, logger, opts...).Run(ctx, menu)
	logger.Info("seed finished",
		"file", path,
		"created", len(res.Created),
		"failed", res.Failed,
	)
	return err
}
