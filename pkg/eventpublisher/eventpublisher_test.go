package eventpublisher

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ceevent "github.com/cloudevents/sdk-go/v2/event"
)

func TestBuildEventBodyProducesStructuredCloudEvent(t *testing.T) {
	completed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	body, built, err := BuildEventBody(ProcessEvent{
		Type:        "completed",
		Source:      "engine/test",
		InstanceID:  "pi-1",
		Campaign:    "launch2024",
		Author:      "ada",
		Content:     "hello",
		Outcome:     "Matched",
		CompletedAt: completed,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if built.Type() != ProcessCompletedType || built.Subject() != "pi-1" || built.ID() == "" {
		t.Fatalf("unexpected event attributes: %s", built.String())
	}

	var decoded ceevent.Event
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("invalid structured body: %v", err)
	}
	var data ProcessData
	if err := decoded.DataAs(&data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Campaign != "launch2024" || data.Outcome != "matched" || data.CompletedAt == nil || !data.CompletedAt.Equal(completed) {
		t.Fatalf("unexpected data: %+v", data)
	}
}

func TestBuildEventStartedOmitsCompletion(t *testing.T) {
	built, err := BuildEvent(ProcessEvent{Type: "started", InstanceID: "pi-2", Campaign: "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var data ProcessData
	if err := built.DataAs(&data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.CompletedAt != nil || data.Outcome != "" {
		t.Fatalf("started event must not carry completion fields: %+v", data)
	}
	if built.Source() != defaultSource {
		t.Fatalf("expected default source, got %q", built.Source())
	}
}

func TestBuildEventRejectsInvalidInput(t *testing.T) {
	cases := map[string]ProcessEvent{
		"missing campaign": {InstanceID: "pi-1", Outcome: "matched"},
		"missing instance": {Campaign: "a", Outcome: "matched"},
		"unknown outcome":  {InstanceID: "pi-1", Campaign: "a", Outcome: "maybe"},
		"unknown type":     {Type: "process.paused", InstanceID: "pi-1", Campaign: "a"},
	}
	for name, event := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := BuildEvent(event); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestClientPublishSendsAuthorizedRequest(t *testing.T) {
	var gotAuth string
	var gotContentType string
	var gotPath string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := Client{Endpoint: server.URL + "/", Token: "token-123"}
	id, err := client.Publish(context.Background(), ProcessEvent{
		InstanceID: "pi-9",
		Campaign:   "launch2024",
		Outcome:    "discarded",
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected event id")
	}
	if gotPath != IngestPath {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotAuth != "Bearer token-123" {
		t.Fatalf("unexpected auth header: %s", gotAuth)
	}
	if gotContentType != "application/cloudevents+json" {
		t.Fatalf("unexpected content type: %s", gotContentType)
	}
	var decoded ceevent.Event
	if err := json.Unmarshal(gotBody, &decoded); err != nil || decoded.ID() != id {
		t.Fatalf("unexpected body id=%q err=%v", decoded.ID(), err)
	}
}

func TestClientPublishReportsRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid auth token", http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := Client{Endpoint: server.URL}.Publish(context.Background(), ProcessEvent{InstanceID: "pi-1", Campaign: "a", Outcome: "matched"})
	if err == nil {
		t.Fatal("expected rejection error")
	}
}
