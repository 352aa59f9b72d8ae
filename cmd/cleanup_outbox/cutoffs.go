package main

import (
	"strings"
	"time"

	"cloud.google.com/go/spanner"
)

// cutoffs are the processed_at bounds past which outbox rows are removed.
// Pending rows are never touched.
type cutoffs struct {
	completed time.Time
	failed    time.Time
}

func cutoffsAt(now time.Time, cfg Config) cutoffs {
	return cutoffs{
		completed: now.AddDate(0, 0, -cfg.CompletedRetentionDays),
		failed:    now.AddDate(0, 0, -cfg.FailedRetentionDays),
	}
}

func (c cutoffs) statement(head, tail string) spanner.Statement {
	parts := []string{
		head,
		"FROM outbox_events",
		"WHERE (status = 'completed' AND processed_at < @completedCutoff)",
		"OR (status = 'failed' AND processed_at < @failedCutoff)",
	}
	if tail != "" {
		parts = append(parts, tail)
	}
	return spanner.Statement{
		SQL: strings.Join(parts, " "),
		Params: map[string]interface{}{
			"completedCutoff": c.completed,
			"failedCutoff":    c.failed,
		},
	}
}
