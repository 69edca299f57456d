package eventpublisher

import (
	"net/http"
	"time"
)

const (
	// ProcessCompletedType is the CloudEvents type for a finished process instance.
	ProcessCompletedType = "io.campaignfeed.process.completed"
	// ProcessStartedType is the CloudEvents type for a process instance that began running.
	ProcessStartedType = "io.campaignfeed.process.started"

	// IngestPath is the ingestion endpoint relative to the feed server base URL.
	IngestPath = "/webhooks/process-events"

	defaultSource = "process-engine"
)

type Client struct {
	Endpoint   string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// ProcessEvent describes one process instance transition to publish.
type ProcessEvent struct {
	Type        string
	Source      string
	InstanceID  string
	Campaign    string
	Author      string
	Content     string
	Outcome     string
	CompletedAt time.Time
}

// ProcessData is the CloudEvents data payload shared by publisher and ingestion.
type ProcessData struct {
	InstanceID  string     `json:"instanceId"`
	Campaign    string     `json:"campaign"`
	Author      string     `json:"author,omitempty"`
	Content     string     `json:"content,omitempty"`
	Outcome     string     `json:"outcome,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
