package services

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	cebinding "github.com/cloudevents/sdk-go/v2/binding"
	ceevent "github.com/cloudevents/sdk-go/v2/event"
	cehttp "github.com/cloudevents/sdk-go/v2/protocol/http"

	"github.com/fr0stylo/campaignfeed/internal/app/ports"
	"github.com/fr0stylo/campaignfeed/pkg/eventpublisher"
)

var (
	// ErrMissingAuthToken indicates missing bearer authorization token.
	ErrMissingAuthToken = errors.New("missing auth token")
	// ErrInvalidAuthToken indicates a token that does not match the configured one.
	ErrInvalidAuthToken = errors.New("invalid auth token")
	// ErrInvalidPayload indicates a malformed CloudEvent or process payload.
	ErrInvalidPayload = errors.New("invalid payload")
	// ErrUnsupportedType indicates event type is not currently accepted.
	ErrUnsupportedType = errors.New("unsupported event type")
)

const bearerPrefix = "Bearer "

// ProcessEventIngestService validates process-engine CloudEvents and stores
// the process instances they describe.
type ProcessEventIngestService struct {
	store   ports.ProcessInstanceWriter
	token   string
	metrics ingestMetrics
	now     func() time.Time
}

// IngestErrorKind classifies ingestion failures for transport-specific mapping.
type IngestErrorKind string

const (
	// IngestErrorUnknown is used when error is nil or not classified.
	IngestErrorUnknown IngestErrorKind = "unknown"
	// IngestErrorMissingAuth indicates missing bearer authorization header.
	IngestErrorMissingAuth IngestErrorKind = "missing_auth"
	// IngestErrorInvalidAuth indicates a wrong token.
	IngestErrorInvalidAuth IngestErrorKind = "invalid_auth"
	// IngestErrorInvalidPayload indicates malformed event payload.
	IngestErrorInvalidPayload IngestErrorKind = "invalid_payload"
	// IngestErrorUnsupportedType indicates event type is not accepted.
	IngestErrorUnsupportedType IngestErrorKind = "unsupported_type"
)

// IngestCommand is transport-agnostic webhook ingestion input.
type IngestCommand struct {
	AuthorizationHeader string
	Headers             http.Header
	Body                []byte
}

// NewProcessEventIngestService constructs an ingestion service. An empty token
// disables authentication, which config only allows for local environments.
func NewProcessEventIngestService(store ports.ProcessInstanceWriter, token string) *ProcessEventIngestService {
	return &ProcessEventIngestService{
		store:   store,
		token:   strings.TrimSpace(token),
		metrics: newIngestMetrics(),
		now:     time.Now,
	}
}

// ClassifyIngestError classifies a returned ingestion error.
func ClassifyIngestError(err error) IngestErrorKind {
	switch {
	case err == nil:
		return IngestErrorUnknown
	case errors.Is(err, ErrMissingAuthToken):
		return IngestErrorMissingAuth
	case errors.Is(err, ErrInvalidAuthToken):
		return IngestErrorInvalidAuth
	case errors.Is(err, ErrInvalidPayload):
		return IngestErrorInvalidPayload
	case errors.Is(err, ErrUnsupportedType):
		return IngestErrorUnsupportedType
	default:
		return IngestErrorUnknown
	}
}

// Ingest authenticates the command, decodes its CloudEvent and upserts the
// process instance. It returns the stored instance on success.
func (s *ProcessEventIngestService) Ingest(ctx context.Context, cmd IngestCommand) (ports.ProcessInstance, error) {
	instance, err := s.ingest(ctx, cmd)
	if err != nil {
		s.metrics.recordRejected(ctx, string(ClassifyIngestError(err)))
		return ports.ProcessInstance{}, err
	}
	s.metrics.recordAccepted(ctx, instance.Status, instance.Outcome)
	return instance, nil
}

func (s *ProcessEventIngestService) ingest(ctx context.Context, cmd IngestCommand) (ports.ProcessInstance, error) {
	if err := s.authorize(cmd.AuthorizationHeader); err != nil {
		return ports.ProcessInstance{}, err
	}

	event, err := parseIncomingEvent(ctx, cmd.Headers, cmd.Body)
	if err != nil {
		return ports.ProcessInstance{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	instance, err := s.toProcessInstance(event)
	if err != nil {
		return ports.ProcessInstance{}, err
	}
	if err := s.store.UpsertProcessInstance(ctx, instance); err != nil {
		return ports.ProcessInstance{}, fmt.Errorf("store process instance %s: %w", instance.ID, err)
	}
	return instance, nil
}

func (s *ProcessEventIngestService) authorize(header string) error {
	if s.token == "" {
		return nil
	}
	token, err := bearerToken(header)
	if err != nil {
		return ErrMissingAuthToken
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.token)) != 1 {
		return ErrInvalidAuthToken
	}
	return nil
}

func (s *ProcessEventIngestService) toProcessInstance(event *ceevent.Event) (ports.ProcessInstance, error) {
	var data eventpublisher.ProcessData
	if err := event.DataAs(&data); err != nil {
		return ports.ProcessInstance{}, fmt.Errorf("%w: decode data: %v", ErrInvalidPayload, err)
	}

	instance := ports.ProcessInstance{
		ID:       strings.TrimSpace(data.InstanceID),
		Campaign: strings.TrimSpace(data.Campaign),
		Author:   strings.TrimSpace(data.Author),
		Content:  data.Content,
	}
	if instance.ID == "" {
		instance.ID = strings.TrimSpace(event.Subject())
	}
	if instance.ID == "" || instance.Campaign == "" {
		return ports.ProcessInstance{}, fmt.Errorf("%w: instanceId and campaign are required", ErrInvalidPayload)
	}

	switch event.Type() {
	case eventpublisher.ProcessCompletedType:
		instance.Status = ports.ProcessStatusCompleted
		instance.Outcome = eventpublisher.NormalizeOutcome(data.Outcome)
		if instance.Outcome == "" {
			return ports.ProcessInstance{}, fmt.Errorf("%w: outcome %q", ErrInvalidPayload, data.Outcome)
		}
		switch {
		case data.CompletedAt != nil && !data.CompletedAt.IsZero():
			instance.CompletedAt = data.CompletedAt.UTC()
		case !event.Time().IsZero():
			instance.CompletedAt = event.Time().UTC()
		default:
			instance.CompletedAt = s.now().UTC()
		}
	case eventpublisher.ProcessStartedType:
		instance.Status = ports.ProcessStatusRunning
	default:
		return ports.ProcessInstance{}, fmt.Errorf("%w: %s", ErrUnsupportedType, event.Type())
	}
	return instance, nil
}

// parseIncomingEvent accepts structured JSON bodies regardless of content type
// and falls back to the CloudEvents HTTP binding for binary mode.
func parseIncomingEvent(ctx context.Context, headers http.Header, body []byte) (*ceevent.Event, error) {
	structured := ceevent.New()
	if err := json.Unmarshal(body, &structured); err == nil {
		if err := structured.Validate(); err == nil {
			return &structured, nil
		}
	}

	req := &http.Request{
		Method: http.MethodPost,
		Header: headers.Clone(),
		Body:   io.NopCloser(bytes.NewReader(body)),
	}
	if req.Header == nil {
		req.Header = http.Header{}
	}
	message := cehttp.NewMessageFromHttpRequest(req)
	defer func() {
		_ = message.Finish(nil)
	}()

	event, err := cebinding.ToEvent(ctx, message)
	if err != nil {
		return nil, err
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}
	return event, nil
}

func bearerToken(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if !strings.HasPrefix(trimmed, bearerPrefix) {
		return "", errors.New("missing bearer prefix")
	}
	token := strings.TrimSpace(strings.TrimPrefix(trimmed, bearerPrefix))
	if token == "" {
		return "", errors.New("empty token")
	}
	return token, nil
}
