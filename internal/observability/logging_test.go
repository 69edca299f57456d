package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func newBufferedLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(WrapSlogHandler(slog.NewJSONHandler(&buf, nil))), &buf
}

func TestWrapSlogHandlerAddsContextFields(t *testing.T) {
	log, buf := newBufferedLogger()
	ctx := WithRequestMetadata(context.Background(), "req-1", "/reactive/processed/:campaign")
	ctx = WithCampaign(ctx, " launch2024 ")

	log.InfoContext(ctx, "stream_opened")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["campaign"] != "launch2024" || entry["request_id"] != "req-1" || entry["route"] != "/reactive/processed/:campaign" {
		t.Fatalf("missing context fields: %v", entry)
	}
}

func TestWrapSlogHandlerKeepsExplicitCampaign(t *testing.T) {
	log, buf := newBufferedLogger()
	ctx := WithCampaign(context.Background(), "from-context")

	log.WarnContext(ctx, "feed_refresh_query_failed", "campaign", "explicit")

	line := buf.String()
	if n := strings.Count(line, `"campaign"`); n != 1 {
		t.Fatalf("expected a single campaign field, got %d in %s", n, line)
	}
	if !strings.Contains(line, `"campaign":"explicit"`) {
		t.Fatalf("explicit campaign overwritten: %s", line)
	}
}

func TestWrapSlogHandlerWithoutContextFields(t *testing.T) {
	log, buf := newBufferedLogger()
	log.Info("plain")
	for _, key := range []string{"campaign", "request_id", "trace_id"} {
		if strings.Contains(buf.String(), `"`+key+`"`) {
			t.Fatalf("unexpected %s field: %s", key, buf.String())
		}
	}
}
