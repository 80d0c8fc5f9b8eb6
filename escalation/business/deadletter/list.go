package deadletter

import (
	"context"
	"encoding/json"
	"time"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"bigmouth.app/bus"
	"bigmouth.app/escalation/model"
	"bigmouth.app/escalation/store/deadletters"
)

func (b *business) ListPending(ctx context.Context, limit, offset int32) ([]*model.DeadLetter, error) {
	rows, err := b.deadLetterRepo.ListPendingDeadLetters(ctx, deadletters.ListPendingDeadLettersParams{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		rlog.Error("failed to list dead letters", "error", err)
		return nil, &errs.Error{Code: errs.Internal, Message: "failed to list dead letters"}
	}

	letters := make([]*model.DeadLetter, 0, len(rows))
	for _, row := range rows {
		letter, err := convertDBDeadLetterToModel(row)
		if err != nil {
			rlog.Error("skipping unreadable dead letter", "error", err, "event_id", row.EventID)
			continue
		}
		letters = append(letters, letter)
	}
	return letters, nil
}

func (b *business) PendingCount(ctx context.Context) (int64, error) {
	count, err := b.deadLetterRepo.CountPendingDeadLetters(ctx)
	if err != nil {
		return 0, &errs.Error{Code: errs.Internal, Message: "failed to count dead letters"}
	}
	return count, nil
}

func (b *business) DeliveryFailuresSince(ctx context.Context, since time.Time) (int64, error) {
	count, err := b.deadLetterRepo.CountDeliveryFailuresSince(ctx, timestamptz(since))
	if err != nil {
		return 0, &errs.Error{Code: errs.Internal, Message: "failed to count delivery failures"}
	}
	return count, nil
}

func convertDBDeadLetterToModel(row deadletters.DeadLetter) (*model.DeadLetter, error) {
	var env bus.Envelope
	if err := json.Unmarshal(row.Envelope, &env); err != nil {
		return nil, err
	}

	letter := &model.DeadLetter{
		EventID:      row.EventID,
		Subscription: row.Subscription,
		Envelope:     &env,
		Error:        row.Error,
		Attempts:     int(row.Attempts),
		FailedAt:     row.FailedAt.Time,
		CreatedAt:    row.CreatedAt.Time,
	}
	if row.DrainedAt.Valid {
		drainedAt := row.DrainedAt.Time
		letter.DrainedAt = &drainedAt
	}
	return letter, nil
}
