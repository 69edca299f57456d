package db

import (
	"context"
	"log/slog"
	"time"
)

// LatencyStats summarises recent samples for one named query.
type LatencyStats struct {
	Name  string
	Count int
	P50   time.Duration
	P95   time.Duration
	Max   time.Duration
}

// QueryLatencyStats returns current per-query latency distribution samples.
func (c *Database) QueryLatencyStats() []LatencyStats {
	if c == nil || c.tracker == nil {
		return nil
	}
	return c.tracker.snapshot()
}

// ReportQueryLatency logs the slowest queries every interval until ctx ends.
func (c *Database) ReportQueryLatency(ctx context.Context, log *slog.Logger, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := c.QueryLatencyStats()
			if len(stats) == 0 {
				continue
			}
			limit := min(len(stats), 5)
			for _, stat := range stats[:limit] {
				log.InfoContext(ctx, "db_query_latency",
					"query", stat.Name,
					"count", stat.Count,
					"p50_ms", stat.P50.Milliseconds(),
					"p95_ms", stat.P95.Milliseconds(),
					"max_ms", stat.Max.Milliseconds(),
				)
			}
		}
	}
}
