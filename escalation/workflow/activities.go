package workflow

import (
	"context"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"encore.dev/beta/errs"

	"bigmouth.app/escalation/business/deadletter"
)

// Activities are registered on the worker as a struct so their dependencies
// travel with them.
type Activities struct {
	DeadLetters deadletter.Business
}

// ListPendingActivity returns the event ids of up to limit pending dead letters.
func (a *Activities) ListPendingActivity(ctx context.Context, limit int32) ([]string, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Listing pending dead letters", "limit", limit)

	if a.DeadLetters == nil {
		logger.Error("Activity dependencies not set")
		return nil, temporal.NewApplicationError("activity dependencies not initialized", "DependencyError")
	}

	letters, err := a.DeadLetters.ListPending(ctx, limit, 0)
	if err != nil {
		logger.Error("Failed to list dead letters", "error", err)
		return nil, err
	}

	ids := make([]string, 0, len(letters))
	for _, letter := range letters {
		ids = append(ids, letter.EventID)
	}
	return ids, nil
}

// RedeliverActivity puts one dead letter back on the bus and drains it.
func (a *Activities) RedeliverActivity(ctx context.Context, eventID string) (string, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Processing redeliver activity", "eventID", eventID)

	if a.DeadLetters == nil {
		logger.Error("Activity dependencies not set")
		return "", temporal.NewApplicationError("activity dependencies not initialized", "DependencyError")
	}

	newID, err := a.DeadLetters.Redeliver(ctx, eventID)
	if err != nil {
		logger.Error("Failed to redeliver dead letter", "eventID", eventID, "error", err)
		switch errs.Code(err) {
		case errs.NotFound, errs.InvalidArgument:
			return "", temporal.NewNonRetryableApplicationError("dead letter cannot be redelivered", "DEAD_LETTER_UNREPLAYABLE", err)
		}
		return "", err
	}

	logger.Info("Successfully redelivered dead letter", "eventID", eventID, "newEventID", newID)
	return newID, nil
}
