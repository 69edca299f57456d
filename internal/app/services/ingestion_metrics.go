package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type ingestMetrics struct {
	accepted metric.Int64Counter
	rejected metric.Int64Counter
}

func newIngestMetrics() ingestMetrics {
	meter := otel.Meter("github.com/fr0stylo/campaignfeed/internal/app/services")
	accepted, _ := meter.Int64Counter("campaignfeed.ingest.accepted")
	rejected, _ := meter.Int64Counter("campaignfeed.ingest.rejected")
	return ingestMetrics{accepted: accepted, rejected: rejected}
}

func (m ingestMetrics) recordAccepted(ctx context.Context, status, outcome string) {
	m.accepted.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
		attribute.String("outcome", outcome),
	))
}

func (m ingestMetrics) recordRejected(ctx context.Context, reason string) {
	m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
