package workflow

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const DefaultReplayLimit = 100

// ReplayParams contains parameters for starting a dead-letter replay.
type ReplayParams struct {
	Limit int32 `json:"limit"`
}

// ReplayResult reports what a replay did. Failed letters stay pending.
type ReplayResult struct {
	Replayed []string `json:"replayed"`
	Failed   []string `json:"failed"`
}

// ReplayDeadLetters republishes pending dead letters onto the bus one by one,
// draining each letter once its event is back on the bus.
func ReplayDeadLetters(ctx workflow.Context, params ReplayParams) (*ReplayResult, error) {
	logger := workflow.GetLogger(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultReplayLimit
	}
	logger.Info("Starting dead-letter replay", "limit", limit)

	var ids []string
	if err := listPending(ctx, limit).Get(ctx, &ids); err != nil {
		logger.Error("Failed to list pending dead letters", "error", err)
		return nil, err
	}

	result := &ReplayResult{
		Replayed: []string{},
		Failed:   []string{},
	}
	for _, id := range ids {
		var newID string
		if err := redeliver(ctx, id).Get(ctx, &newID); err != nil {
			logger.Error("Failed to replay dead letter", "eventID", id, "error", err)
			result.Failed = append(result.Failed, id)
			continue
		}
		result.Replayed = append(result.Replayed, id)
	}

	logger.Info("Dead-letter replay completed", "replayed", len(result.Replayed), "failed", len(result.Failed))
	return result, nil
}

func listPending(ctx workflow.Context, limit int32) workflow.Future {
	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    500 * time.Millisecond,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Second,
			MaximumAttempts:    4,
		},
	}
	var a *Activities
	activityCtx := workflow.WithActivityOptions(ctx, activityOptions)
	return workflow.ExecuteActivity(activityCtx, a.ListPendingActivity, limit)
}

func redeliver(ctx workflow.Context, eventID string) workflow.Future {
	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    15 * time.Second,
			MaximumAttempts:    6,
		},
	}
	var a *Activities
	activityCtx := workflow.WithActivityOptions(ctx, activityOptions)
	return workflow.ExecuteActivity(activityCtx, a.RedeliverActivity, eventID)
}
