package ports

import (
	"context"
	"time"
)

const (
	// ProcessStatusRunning marks a process instance that has started but not completed.
	ProcessStatusRunning = "RUNNING"
	// ProcessStatusCompleted marks a completed process instance.
	ProcessStatusCompleted = "COMPLETED"

	// OutcomeMatched is the outcome of a completed instance whose content matched the campaign.
	OutcomeMatched = "matched"
	// OutcomeDiscarded is the outcome of a completed instance whose content was discarded.
	OutcomeDiscarded = "discarded"
)

// ProcessInstance is one workflow instance as seen by the feed backing store.
type ProcessInstance struct {
	ID          string
	Campaign    string
	Author      string
	Content     string
	Status      string
	Outcome     string
	CompletedAt time.Time
}

// ProcessInstanceReader is the read contract the feed refresh job depends on.
// Both queries cover the half-open window [since, until) of completion time and
// return an empty slice when nothing matches.
type ProcessInstanceReader interface {
	FindCompletedAndMatchedSince(ctx context.Context, campaign string, since, until time.Time) ([]ProcessInstance, error)
	FindCompletedAndDiscardedSince(ctx context.Context, campaign string, since, until time.Time) ([]ProcessInstance, error)
}

// ProcessInstanceWriter stores process instances reported by the process engine.
type ProcessInstanceWriter interface {
	UpsertProcessInstance(ctx context.Context, instance ProcessInstance) error
}

// ProcessInstanceStore combines read and write access to process instances.
type ProcessInstanceStore interface {
	ProcessInstanceReader
	ProcessInstanceWriter
}
