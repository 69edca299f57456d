package process

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/fr0stylo/campaignfeed/internal/app/ports"
	appservices "github.com/fr0stylo/campaignfeed/internal/app/services"
)

const (
	// AuthorizationHeader contains the bearer token.
	AuthorizationHeader = "Authorization"
	maxPayloadBytes     = 1 << 20
)

// Ingestor is the application service behind the process event webhook.
type Ingestor interface {
	Ingest(ctx context.Context, cmd appservices.IngestCommand) (ports.ProcessInstance, error)
}

// Handler processes process-engine CloudEvents deliveries.
type Handler struct {
	ingest Ingestor
	log    *slog.Logger
}

// NewHandler constructs a process event webhook handler.
func NewHandler(ingest Ingestor, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{ingest: ingest, log: log}
}

// Handle validates and stores one process event.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) error {
	body, readErr := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if readErr != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return readErr
	}
	instance, ingestErr := h.ingest.Ingest(r.Context(), appservices.IngestCommand{
		AuthorizationHeader: r.Header.Get(AuthorizationHeader),
		Headers:             r.Header,
		Body:                body,
	})
	if handled := writeIngestHTTPError(w, ingestErr); handled {
		h.log.DebugContext(r.Context(), "process_event_rejected", "reason", appservices.ClassifyIngestError(ingestErr), "error", ingestErr)
		return nil
	}
	if ingestErr != nil {
		return ingestErr
	}

	h.log.DebugContext(r.Context(), "process_event_stored",
		"instance", instance.ID,
		"campaign", instance.Campaign,
		"status", instance.Status,
		"outcome", instance.Outcome,
	)
	w.WriteHeader(http.StatusAccepted)
	return nil
}

func writeIngestHTTPError(w http.ResponseWriter, err error) bool {
	switch appservices.ClassifyIngestError(err) {
	case appservices.IngestErrorUnknown:
		return false
	case appservices.IngestErrorMissingAuth:
		http.Error(w, appservices.ErrMissingAuthToken.Error(), http.StatusUnauthorized)
		return true
	case appservices.IngestErrorInvalidAuth:
		http.Error(w, appservices.ErrInvalidAuthToken.Error(), http.StatusUnauthorized)
		return true
	case appservices.IngestErrorInvalidPayload:
		http.Error(w, "invalid process event payload", http.StatusBadRequest)
		return true
	case appservices.IngestErrorUnsupportedType:
		http.Error(w, "unsupported process event type", http.StatusUnprocessableEntity)
		return true
	}

	return false
}
