package sqlite

import (
	"context"

	"github.com/fr0stylo/campaignfeed/internal/db/queries"
)

type processDatabase interface {
	UpsertProcessInstance(ctx context.Context, arg queries.UpsertProcessInstanceParams) error
	GetProcessInstance(ctx context.Context, id string) (queries.ProcessInstance, error)
	ListCompletedProcessInstancesInWindow(ctx context.Context, arg queries.ListCompletedProcessInstancesInWindowParams) ([]queries.ProcessInstance, error)
}
