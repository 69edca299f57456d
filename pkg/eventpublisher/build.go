package eventpublisher

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	ceevent "github.com/cloudevents/sdk-go/v2/event"
	"github.com/google/uuid"
)

// BuildEvent turns a ProcessEvent into a validated CloudEvent.
func BuildEvent(event ProcessEvent) (ceevent.Event, error) {
	instanceID := strings.TrimSpace(event.InstanceID)
	campaign := strings.TrimSpace(event.Campaign)
	if instanceID == "" || campaign == "" {
		return ceevent.Event{}, fmt.Errorf("instance id and campaign are required")
	}
	source := strings.TrimSpace(event.Source)
	if source == "" {
		source = defaultSource
	}

	data := ProcessData{
		InstanceID: instanceID,
		Campaign:   campaign,
		Author:     strings.TrimSpace(event.Author),
		Content:    event.Content,
	}

	resolved := NormalizeType(event.Type)
	now := time.Now().UTC()
	switch resolved {
	case ProcessCompletedType:
		data.Outcome = NormalizeOutcome(event.Outcome)
		if data.Outcome == "" {
			return ceevent.Event{}, fmt.Errorf("outcome must be matched or discarded, got %q", event.Outcome)
		}
		completedAt := event.CompletedAt.UTC()
		if event.CompletedAt.IsZero() {
			completedAt = now
		}
		data.CompletedAt = &completedAt
	case ProcessStartedType:
	default:
		return ceevent.Event{}, fmt.Errorf("unsupported event type %q", event.Type)
	}

	e := ceevent.New()
	e.SetID(uuid.NewString())
	e.SetSource(source)
	e.SetType(resolved)
	e.SetSubject(instanceID)
	e.SetTime(now)
	if err := e.SetData(ceevent.ApplicationJSON, data); err != nil {
		return ceevent.Event{}, fmt.Errorf("encode event data: %w", err)
	}
	if err := e.Validate(); err != nil {
		return ceevent.Event{}, fmt.Errorf("invalid cloud event: %w", err)
	}
	return e, nil
}

// BuildEventBody renders the event in structured content mode.
func BuildEventBody(event ProcessEvent) ([]byte, ceevent.Event, error) {
	e, err := BuildEvent(event)
	if err != nil {
		return nil, ceevent.Event{}, err
	}
	body, err := json.Marshal(e)
	if err != nil {
		return nil, ceevent.Event{}, fmt.Errorf("encode cloud event: %w", err)
	}
	return body, e, nil
}
