package alarm

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"encore.dev/beta/errs"

	"bigmouth.app/escalation/store/alarms"
)

// PostgresStateStore keeps alarm state in the alarm_states table and holds a
// row lock for the duration of every transition.
type PostgresStateStore struct {
	db   *pgxpool.Pool
	repo *alarms.Queries
}

func NewPostgresStateStore(db *pgxpool.Pool, repo *alarms.Queries) *PostgresStateStore {
	return &PostgresStateStore{
		db:   db,
		repo: repo,
	}
}

func (s *PostgresStateStore) Transition(ctx context.Context, name string, fn func(current Record) (Record, error)) error {
	if err := s.repo.EnsureAlarmState(ctx, name); err != nil {
		return &errs.Error{Code: errs.Internal, Message: "failed to initialize alarm state"}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return &errs.Error{Code: errs.Internal, Message: "failed to start transaction"}
	}
	defer tx.Rollback(ctx)

	txRepo := s.repo.WithTx(tx)

	current, err := txRepo.GetAlarmStateForUpdate(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &errs.Error{Code: errs.NotFound, Message: "alarm not found"}
		}
		return &errs.Error{Code: errs.Internal, Message: "failed to lock alarm for state transition"}
	}

	next, err := fn(Record{
		State:  State(current.State),
		Reason: current.Reason,
		Value:  current.Value,
	})
	if err != nil {
		return err
	}

	if err := txRepo.UpdateAlarmState(ctx, alarms.UpdateAlarmStateParams{
		Name:   name,
		State:  string(next.State),
		Reason: next.Reason,
		Value:  next.Value,
	}); err != nil {
		return &errs.Error{Code: errs.Internal, Message: "failed to update alarm state"}
	}

	if err := tx.Commit(ctx); err != nil {
		return &errs.Error{Code: errs.Internal, Message: "failed to commit state transition"}
	}

	return nil
}
