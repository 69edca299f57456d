package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fr0stylo/campaignfeed/internal/app/ports"
	"github.com/fr0stylo/campaignfeed/internal/db/queries"
)

// ErrProcessInstanceNotFound is returned by GetProcessInstance for unknown ids.
var ErrProcessInstanceNotFound = errors.New("process instance not found")

// ProcessStore is the sqlite-backed implementation of ports.ProcessInstanceStore.
type ProcessStore struct {
	db  processDatabase
	now func() time.Time
}

// NewProcessStore wraps an open database handle. The caller keeps ownership of it.
func NewProcessStore(database processDatabase) *ProcessStore {
	return &ProcessStore{db: database, now: time.Now}
}

func (s *ProcessStore) FindCompletedAndMatchedSince(ctx context.Context, campaign string, since, until time.Time) ([]ports.ProcessInstance, error) {
	return s.listCompleted(ctx, campaign, ports.OutcomeMatched, since, until)
}

func (s *ProcessStore) FindCompletedAndDiscardedSince(ctx context.Context, campaign string, since, until time.Time) ([]ports.ProcessInstance, error) {
	return s.listCompleted(ctx, campaign, ports.OutcomeDiscarded, since, until)
}

func (s *ProcessStore) listCompleted(ctx context.Context, campaign, outcome string, since, until time.Time) ([]ports.ProcessInstance, error) {
	rows, err := s.db.ListCompletedProcessInstancesInWindow(ctx, queries.ListCompletedProcessInstancesInWindowParams{
		Campaign: campaign,
		Outcome:  outcome,
		SinceMs:  since.UnixMilli(),
		UntilMs:  until.UnixMilli(),
	})
	if err != nil {
		return nil, fmt.Errorf("list %s process instances for %s: %w", outcome, campaign, err)
	}
	out := make([]ports.ProcessInstance, 0, len(rows))
	for _, row := range rows {
		out = append(out, toProcessInstance(row))
	}
	return out, nil
}

// UpsertProcessInstance stores the instance. Completed instances are final; later
// writes for the same id are ignored by the query.
func (s *ProcessStore) UpsertProcessInstance(ctx context.Context, instance ports.ProcessInstance) error {
	id := strings.TrimSpace(instance.ID)
	campaign := strings.TrimSpace(instance.Campaign)
	if id == "" || campaign == "" {
		return fmt.Errorf("process instance id and campaign are required")
	}

	var completedAt int64
	if instance.Status == ports.ProcessStatusCompleted {
		completedAt = instance.CompletedAt.UnixMilli()
	}

	return s.db.UpsertProcessInstance(ctx, queries.UpsertProcessInstanceParams{
		ID:            id,
		Campaign:      campaign,
		Author:        instance.Author,
		Content:       instance.Content,
		Status:        instance.Status,
		Outcome:       instance.Outcome,
		CompletedAtMs: completedAt,
		UpdatedAtMs:   s.now().UnixMilli(),
	})
}

func (s *ProcessStore) GetProcessInstance(ctx context.Context, id string) (ports.ProcessInstance, error) {
	row, err := s.db.GetProcessInstance(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.ProcessInstance{}, ErrProcessInstanceNotFound
	}
	if err != nil {
		return ports.ProcessInstance{}, err
	}
	return toProcessInstance(row), nil
}

func toProcessInstance(row queries.ProcessInstance) ports.ProcessInstance {
	instance := ports.ProcessInstance{
		ID:       row.ID,
		Campaign: row.Campaign,
		Author:   row.Author,
		Content:  row.Content,
		Status:   row.Status,
		Outcome:  row.Outcome,
	}
	if row.CompletedAtMs > 0 {
		instance.CompletedAt = time.UnixMilli(row.CompletedAtMs).UTC()
	}
	return instance
}

var _ ports.ProcessInstanceStore = (*ProcessStore)(nil)
