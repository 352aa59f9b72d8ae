package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/menucat-service/internal/config"
)

// Configuration for outbox cleanup job
type Config struct {
	SpannerDB              string
	CompletedRetentionDays int
	FailedRetentionDays    int
	DryRun                 bool
}

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func main() {
	cfg := Config{}
	flag.StringVar(&cfg.SpannerDB, "database", os.Getenv("SPANNER_DATABASE"), "Spanner database (format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	flag.IntVar(&cfg.CompletedRetentionDays, "completed-retention", 30, "Retention days for completed events")
	flag.IntVar(&cfg.FailedRetentionDays, "failed-retention", 90, "Retention days for failed events")
	flag.BoolVar(&cfg.DryRun, "dry-run", false, "Show what would be deleted without actually deleting")
	flag.Parse()

	if cfg.SpannerDB == "" {
		cfg.SpannerDB = config.DefaultSpannerDB
	}
	if cfg.CompletedRetentionDays < 1 || cfg.FailedRetentionDays < 1 {
		logger.Error("retention must be at least one day")
		os.Exit(2)
	}

	if err := cleanupOutbox(context.Background(), cfg); err != nil {
		logger.Error("cleanup failed", "error", err)
		os.Exit(1)
	}
}

func cleanupOutbox(ctx context.Context, cfg Config) error {
	client, err := spanner.NewClient(ctx, cfg.SpannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	cut := cutoffsAt(time.Now().UTC(), cfg)

	logger.Info("starting outbox cleanup",
		"completed_cutoff", cut.completed.Format(time.RFC3339),
		"failed_cutoff", cut.failed.Format(time.RFC3339),
		"dry_run", cfg.DryRun,
	)

	if cfg.DryRun {
		return dryRunCleanup(ctx, client, cut)
	}
	return performCleanup(ctx, client, cut)
}

func dryRunCleanup(ctx context.Context, client *spanner.Client, cut cutoffs) error {
	iter := client.Single().Query(ctx, cut.statement("SELECT status, COUNT(*) AS count", "GROUP BY status"))
	defer iter.Stop()

	var total int64
	for {
		row, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to query events: %w", err)
		}

		var status string
		var count int64
		if err := row.Columns(&status, &count); err != nil {
			return fmt.Errorf("failed to parse row: %w", err)
		}

		logger.Info("would delete events", "status", status, "count", count)
		total += count
	}

	logger.Info("dry run finished; run without -dry-run to delete", "total", total)
	return nil
}

func performCleanup(ctx context.Context, client *spanner.Client, cut cutoffs) error {
	var deleted int64
	_, err := client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		n, err := txn.Update(ctx, cut.statement("DELETE", ""))
		if err != nil {
			return fmt.Errorf("failed to delete events: %w", err)
		}
		deleted = n
		return nil
	})
	if err != nil {
		return fmt.Errorf("cleanup transaction failed: %w", err)
	}

	logger.Info("outbox cleanup completed", "deleted", deleted)
	return nil
}
