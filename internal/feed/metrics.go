package feed

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type feedMetrics struct {
	cycles        metric.Int64Counter
	items         metric.Int64Counter
	failures      metric.Int64Counter
	duration      metric.Float64Histogram
	subscriptions metric.Int64UpDownCounter
}

func newFeedMetrics() feedMetrics {
	meter := otel.Meter("github.com/fr0stylo/campaignfeed/internal/feed")
	cycles, _ := meter.Int64Counter("campaignfeed.refresh.cycles")
	items, _ := meter.Int64Counter("campaignfeed.refresh.items")
	failures, _ := meter.Int64Counter("campaignfeed.refresh.failures")
	duration, _ := meter.Float64Histogram("campaignfeed.refresh.duration", metric.WithUnit("ms"))
	subscriptions, _ := meter.Int64UpDownCounter("campaignfeed.stream.subscriptions")
	return feedMetrics{
		cycles:        cycles,
		items:         items,
		failures:      failures,
		duration:      duration,
		subscriptions: subscriptions,
	}
}

func (m feedMetrics) recordCycle(ctx context.Context, report CycleReport) {
	if m.cycles == nil {
		return
	}
	m.cycles.Add(ctx, 1)
	m.duration.Record(ctx, float64(report.Duration)/float64(time.Millisecond))
	for channel, count := range report.Appended {
		m.items.Add(ctx, int64(count), metric.WithAttributes(attribute.String("channel", string(channel))))
	}
	for _, failure := range report.Failures {
		m.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("channel", string(failure.Channel))))
	}
}

func (m feedMetrics) recordSubscription(ctx context.Context, channel Channel, delta int64) {
	if m.subscriptions == nil {
		return
	}
	m.subscriptions.Add(ctx, delta, metric.WithAttributes(attribute.String("channel", string(channel))))
}
