package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fr0stylo/campaignfeed/internal/db/queries"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	database, err := New(filepath.Join(t.TempDir(), "feed"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func upsert(t *testing.T, ctx context.Context, database *Database, params queries.UpsertProcessInstanceParams) {
	t.Helper()
	if params.UpdatedAtMs == 0 {
		params.UpdatedAtMs = params.CompletedAtMs
	}
	if err := database.UpsertProcessInstance(ctx, params); err != nil {
		t.Fatalf("upsert %s: %v", params.ID, err)
	}
}

func TestListCompletedProcessInstancesHonorsHalfOpenWindow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database := newTestDatabase(t)

	upsert(t, ctx, database, queries.UpsertProcessInstanceParams{ID: "before", Campaign: "launch", Status: "COMPLETED", Outcome: "matched", CompletedAtMs: 999})
	upsert(t, ctx, database, queries.UpsertProcessInstanceParams{ID: "b", Campaign: "launch", Status: "COMPLETED", Outcome: "matched", CompletedAtMs: 1500})
	upsert(t, ctx, database, queries.UpsertProcessInstanceParams{ID: "a", Campaign: "launch", Status: "COMPLETED", Outcome: "matched", CompletedAtMs: 1000})
	upsert(t, ctx, database, queries.UpsertProcessInstanceParams{ID: "edge", Campaign: "launch", Status: "COMPLETED", Outcome: "matched", CompletedAtMs: 2000})
	upsert(t, ctx, database, queries.UpsertProcessInstanceParams{ID: "discarded", Campaign: "launch", Status: "COMPLETED", Outcome: "discarded", CompletedAtMs: 1200})
	upsert(t, ctx, database, queries.UpsertProcessInstanceParams{ID: "other", Campaign: "other", Status: "COMPLETED", Outcome: "matched", CompletedAtMs: 1200})
	upsert(t, ctx, database, queries.UpsertProcessInstanceParams{ID: "running", Campaign: "launch", Status: "RUNNING", UpdatedAtMs: 1200})

	rows, err := database.ListCompletedProcessInstancesInWindow(ctx, queries.ListCompletedProcessInstancesInWindowParams{
		Campaign: "launch",
		Outcome:  "matched",
		SinceMs:  1000,
		UntilMs:  2000,
	})
	if err != nil {
		t.Fatalf("list window: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != "a" || rows[1].ID != "b" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestUpsertProcessInstanceKeepsCompletedRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database := newTestDatabase(t)

	upsert(t, ctx, database, queries.UpsertProcessInstanceParams{ID: "pi-1", Campaign: "launch", Status: "RUNNING", UpdatedAtMs: 10})
	upsert(t, ctx, database, queries.UpsertProcessInstanceParams{ID: "pi-1", Campaign: "launch", Author: "ada", Content: "hello", Status: "COMPLETED", Outcome: "matched", CompletedAtMs: 20})
	upsert(t, ctx, database, queries.UpsertProcessInstanceParams{ID: "pi-1", Campaign: "launch", Status: "RUNNING", UpdatedAtMs: 30})

	row, err := database.GetProcessInstance(ctx, "pi-1")
	if err != nil {
		t.Fatalf("get process instance: %v", err)
	}
	if row.Status != "COMPLETED" || row.Outcome != "matched" || row.Author != "ada" || row.CompletedAtMs != 20 {
		t.Fatalf("completed record was overwritten: %+v", row)
	}

	if _, err := database.GetProcessInstance(ctx, "missing"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestQueryLatencyTrackerRecordsNamedQueries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database := newTestDatabase(t)
	upsert(t, ctx, database, queries.UpsertProcessInstanceParams{ID: "pi-1", Campaign: "launch", Status: "COMPLETED", Outcome: "matched", CompletedAtMs: 5})

	found := false
	for _, stat := range database.QueryLatencyStats() {
		if stat.Name == "UpsertProcessInstance" && stat.Count == 1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected UpsertProcessInstance latency sample, got %+v", database.QueryLatencyStats())
	}
}

func TestQueryName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"-- name: GetProcessInstance :one\nSELECT 1": "GetProcessInstance",
		"SELECT 1":          "unknown",
		"-- name:\nSELECT 1": "unknown",
	}
	for query, want := range cases {
		if got := queryName(query); got != want {
			t.Fatalf("queryName(%q) = %q, want %q", query, got, want)
		}
	}
}
