package strategy

import (
	"context"

	"golang-asset-analytics/internal/entity"
)

// Per-symbol outcome labels used in strategy output summaries.
const (
	SUCCESS = "SUCCESS"
	FAILED  = "FAILED"
	SKIPPED = "SKIPPED"
)

// JobExecutionStrategy defines the interface for different job execution
// strategies.
type JobExecutionStrategy interface {
	Execute(ctx context.Context, job *entity.Job) (string, error)
	GetType() entity.JobType
}
