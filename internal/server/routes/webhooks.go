package routes

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	processwebhook "github.com/fr0stylo/campaignfeed/internal/webhooks/process"
	"github.com/fr0stylo/campaignfeed/pkg/eventpublisher"
)

// WebhookRoutes registers webhook endpoints.
type WebhookRoutes struct {
	process *processwebhook.Handler
}

// NewWebhookRoutes constructs webhook routes.
func NewWebhookRoutes(ingest processwebhook.Ingestor, log *slog.Logger) *WebhookRoutes {
	return &WebhookRoutes{
		process: processwebhook.NewHandler(ingest, log),
	}
}

// RegisterRoutes registers webhook endpoints.
func (w *WebhookRoutes) RegisterRoutes(s *echo.Echo) {
	s.POST(eventpublisher.IngestPath, w.handleProcessEvent)
}

func (w *WebhookRoutes) handleProcessEvent(c echo.Context) error {
	return w.process.Handle(c.Response(), c.Request())
}
