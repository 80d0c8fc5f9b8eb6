package deadletter

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"bigmouth.app/escalation/model"
	"bigmouth.app/escalation/store/deadletters"
)

// Record stores a dead letter. Redelivered handoffs of the same event are
// ignored.
func (b *business) Record(ctx context.Context, letter *model.DeadLetter) error {
	if letter.EventID == "" {
		return &errs.Error{Code: errs.InvalidArgument, Message: "dead letter has no event id"}
	}

	envelope, err := json.Marshal(letter.Envelope)
	if err != nil {
		return &errs.Error{Code: errs.InvalidArgument, Message: "dead letter envelope is not serializable"}
	}

	inserted, err := b.deadLetterRepo.InsertDeadLetter(ctx, deadletters.InsertDeadLetterParams{
		EventID:      letter.EventID,
		Subscription: letter.Subscription,
		Envelope:     envelope,
		Error:        letter.Error,
		Attempts:     int32(letter.Attempts),
		FailedAt:     timestamptz(letter.FailedAt),
	})
	if err != nil {
		rlog.Error("failed to store dead letter", "error", err, "event_id", letter.EventID)
		return &errs.Error{Code: errs.Internal, Message: "failed to store dead letter"}
	}
	if inserted == 0 {
		rlog.Debug("dead letter already recorded", "event_id", letter.EventID)
		return nil
	}

	rlog.Warn("dead letter recorded",
		"event_id", letter.EventID, "subscription", letter.Subscription, "attempts", letter.Attempts, "cause", letter.Error)
	return nil
}

func (b *business) RecordDeliveryFailure(ctx context.Context, failure *model.DeliveryFailure) error {
	err := b.deadLetterRepo.InsertDeliveryFailure(ctx, deadletters.InsertDeliveryFailureParams{
		EventID:      failure.EventID,
		Subscription: failure.Subscription,
		Error:        failure.Error,
		FailedAt:     timestamptz(failure.FailedAt),
	})
	if err != nil {
		rlog.Error("failed to store delivery failure", "error", err, "event_id", failure.EventID)
		return &errs.Error{Code: errs.Internal, Message: "failed to store delivery failure"}
	}
	return nil
}

func timestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		t = time.Now()
	}
	return pgtype.Timestamptz{Time: t.UTC(), Valid: true}
}
