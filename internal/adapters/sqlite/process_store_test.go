package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fr0stylo/campaignfeed/internal/app/ports"
	"github.com/fr0stylo/campaignfeed/internal/db"
)

func newTestStore(t *testing.T) *ProcessStore {
	t.Helper()

	database, err := db.New(filepath.Join(t.TempDir(), "process-store"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return NewProcessStore(database)
}

func TestProcessStoreFindsCompletedInstancesByOutcome(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	records := []ports.ProcessInstance{
		{ID: "m1", Campaign: "launch2024", Author: "ada", Content: "yes", Status: ports.ProcessStatusCompleted, Outcome: ports.OutcomeMatched, CompletedAt: base.Add(time.Second)},
		{ID: "m2", Campaign: "launch2024", Author: "bob", Content: "also", Status: ports.ProcessStatusCompleted, Outcome: ports.OutcomeMatched, CompletedAt: base.Add(2 * time.Second)},
		{ID: "d1", Campaign: "launch2024", Status: ports.ProcessStatusCompleted, Outcome: ports.OutcomeDiscarded, CompletedAt: base.Add(time.Second)},
		{ID: "late", Campaign: "launch2024", Status: ports.ProcessStatusCompleted, Outcome: ports.OutcomeMatched, CompletedAt: base.Add(time.Minute)},
		{ID: "r1", Campaign: "launch2024", Status: ports.ProcessStatusRunning},
	}
	for _, record := range records {
		if err := store.UpsertProcessInstance(ctx, record); err != nil {
			t.Fatalf("upsert %s: %v", record.ID, err)
		}
	}

	matched, err := store.FindCompletedAndMatchedSince(ctx, "launch2024", base, base.Add(10*time.Second))
	if err != nil {
		t.Fatalf("find matched: %v", err)
	}
	if len(matched) != 2 || matched[0].ID != "m1" || matched[1].ID != "m2" {
		t.Fatalf("unexpected matched records: %+v", matched)
	}
	if matched[0].Author != "ada" || !matched[0].CompletedAt.Equal(base.Add(time.Second)) {
		t.Fatalf("unexpected record mapping: %+v", matched[0])
	}

	discarded, err := store.FindCompletedAndDiscardedSince(ctx, "launch2024", base, base.Add(10*time.Second))
	if err != nil {
		t.Fatalf("find discarded: %v", err)
	}
	if len(discarded) != 1 || discarded[0].ID != "d1" {
		t.Fatalf("unexpected discarded records: %+v", discarded)
	}

	empty, err := store.FindCompletedAndMatchedSince(ctx, "unknown", base, base.Add(10*time.Second))
	if err != nil {
		t.Fatalf("find for unknown campaign: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}
}

func TestProcessStoreUpsertRejectsMissingIdentity(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.UpsertProcessInstance(context.Background(), ports.ProcessInstance{ID: " ", Campaign: "a"}); err == nil {
		t.Fatal("expected error for missing id")
	}
	if err := store.UpsertProcessInstance(context.Background(), ports.ProcessInstance{ID: "x"}); err == nil {
		t.Fatal("expected error for missing campaign")
	}
}

func TestProcessStoreGetProcessInstance(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	if _, err := store.GetProcessInstance(ctx, "missing"); err != ErrProcessInstanceNotFound {
		t.Fatalf("expected ErrProcessInstanceNotFound, got %v", err)
	}

	if err := store.UpsertProcessInstance(ctx, ports.ProcessInstance{ID: "r1", Campaign: "a", Status: ports.ProcessStatusRunning}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, err := store.GetProcessInstance(ctx, "r1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != ports.ProcessStatusRunning || !got.CompletedAt.IsZero() {
		t.Fatalf("unexpected running record: %+v", got)
	}
}
