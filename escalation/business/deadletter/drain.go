package deadletter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"bigmouth.app/bus"
	"bigmouth.app/escalation/store/deadletters"
)

// Drain discards a pending dead letter. Draining an already drained letter
// is a no-op.
func (b *business) Drain(ctx context.Context, eventID string) error {
	if eventID == "" {
		return &errs.Error{Code: errs.InvalidArgument, Message: "event id is required"}
	}

	drained, err := b.deadLetterRepo.MarkDeadLetterDrained(ctx, eventID)
	if err != nil {
		rlog.Error("failed to drain dead letter", "error", err, "event_id", eventID)
		return &errs.Error{Code: errs.Internal, Message: "failed to drain dead letter"}
	}
	if drained > 0 {
		rlog.Info("dead letter drained", "event_id", eventID)
		return nil
	}

	if _, err := b.getDeadLetter(ctx, eventID); err != nil {
		return err
	}
	return nil
}

// Redeliver publishes the dead letter's event again under a fresh envelope id,
// so the redelivery gets a full retry budget, and drains the letter. It
// returns the new envelope id, or an empty string when the letter was
// already drained.
func (b *business) Redeliver(ctx context.Context, eventID string) (string, error) {
	if eventID == "" {
		return "", &errs.Error{Code: errs.InvalidArgument, Message: "event id is required"}
	}

	row, err := b.getDeadLetter(ctx, eventID)
	if err != nil {
		return "", err
	}
	if row.DrainedAt.Valid {
		rlog.Info("dead letter already drained, skipping redelivery", "event_id", eventID)
		return "", nil
	}

	letter, err := convertDBDeadLetterToModel(row)
	if err != nil {
		return "", &errs.Error{Code: errs.InvalidArgument, Message: "dead letter envelope is unreadable"}
	}

	env, err := bus.NewEnvelope(letter.Envelope.DetailType, letter.Envelope.Detail)
	if err != nil {
		return "", &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
	}

	if err := b.publisher.Publish(ctx, env); err != nil {
		rlog.Error("failed to redeliver dead letter", "error", err, "event_id", eventID)
		return "", &errs.Error{Code: errs.Unavailable, Message: "failed to publish dead letter"}
	}

	if _, err := b.deadLetterRepo.MarkDeadLetterDrained(ctx, eventID); err != nil {
		rlog.Error("failed to drain redelivered dead letter", "error", err, "event_id", eventID, "new_event_id", env.ID)
		return "", &errs.Error{Code: errs.Internal, Message: "failed to drain dead letter"}
	}

	rlog.Info("dead letter redelivered", "event_id", eventID, "new_event_id", env.ID)
	return env.ID, nil
}

func (b *business) getDeadLetter(ctx context.Context, eventID string) (deadletters.DeadLetter, error) {
	row, err := b.deadLetterRepo.GetDeadLetter(ctx, eventID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return deadletters.DeadLetter{}, &errs.Error{Code: errs.NotFound, Message: "dead letter not found"}
		}
		rlog.Error("failed to get dead letter", "error", err, "event_id", eventID)
		return deadletters.DeadLetter{}, &errs.Error{Code: errs.Internal, Message: "failed to get dead letter"}
	}
	return row, nil
}
