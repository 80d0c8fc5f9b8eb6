package deadletters

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

type Querier interface {
	InsertDeadLetter(ctx context.Context, arg InsertDeadLetterParams) (int64, error)
	GetDeadLetter(ctx context.Context, eventID string) (DeadLetter, error)
	ListPendingDeadLetters(ctx context.Context, arg ListPendingDeadLettersParams) ([]DeadLetter, error)
	CountPendingDeadLetters(ctx context.Context) (int64, error)
	MarkDeadLetterDrained(ctx context.Context, eventID string) (int64, error)
	InsertDeliveryFailure(ctx context.Context, arg InsertDeliveryFailureParams) error
	CountDeliveryFailuresSince(ctx context.Context, since pgtype.Timestamptz) (int64, error)
}

var _ Querier = (*Queries)(nil)

type DeadLetter struct {
	ID           int64              `json:"id"`
	EventID      string             `json:"event_id"`
	Subscription string             `json:"subscription"`
	Envelope     []byte             `json:"envelope"`
	Error        string             `json:"error"`
	Attempts     int32              `json:"attempts"`
	FailedAt     pgtype.Timestamptz `json:"failed_at"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
	DrainedAt    pgtype.Timestamptz `json:"drained_at"`
}

const insertDeadLetter = `
INSERT INTO dead_letters (event_id, subscription, envelope, error, attempts, failed_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (event_id) DO NOTHING
`

type InsertDeadLetterParams struct {
	EventID      string             `json:"event_id"`
	Subscription string             `json:"subscription"`
	Envelope     []byte             `json:"envelope"`
	Error        string             `json:"error"`
	Attempts     int32              `json:"attempts"`
	FailedAt     pgtype.Timestamptz `json:"failed_at"`
}

// InsertDeadLetter returns zero when the event is already recorded.
func (q *Queries) InsertDeadLetter(ctx context.Context, arg InsertDeadLetterParams) (int64, error) {
	result, err := q.db.Exec(ctx, insertDeadLetter,
		arg.EventID,
		arg.Subscription,
		arg.Envelope,
		arg.Error,
		arg.Attempts,
		arg.FailedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getDeadLetter = `
SELECT id, event_id, subscription, envelope, error, attempts, failed_at, created_at, drained_at
FROM dead_letters
WHERE event_id = $1
`

func (q *Queries) GetDeadLetter(ctx context.Context, eventID string) (DeadLetter, error) {
	row := q.db.QueryRow(ctx, getDeadLetter, eventID)
	var i DeadLetter
	err := row.Scan(
		&i.ID,
		&i.EventID,
		&i.Subscription,
		&i.Envelope,
		&i.Error,
		&i.Attempts,
		&i.FailedAt,
		&i.CreatedAt,
		&i.DrainedAt,
	)
	return i, err
}

const listPendingDeadLetters = `
SELECT id, event_id, subscription, envelope, error, attempts, failed_at, created_at, drained_at
FROM dead_letters
WHERE drained_at IS NULL
ORDER BY created_at ASC, id ASC
LIMIT $1 OFFSET $2
`

type ListPendingDeadLettersParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

func (q *Queries) ListPendingDeadLetters(ctx context.Context, arg ListPendingDeadLettersParams) ([]DeadLetter, error) {
	rows, err := q.db.Query(ctx, listPendingDeadLetters, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DeadLetter
	for rows.Next() {
		var i DeadLetter
		if err := rows.Scan(
			&i.ID,
			&i.EventID,
			&i.Subscription,
			&i.Envelope,
			&i.Error,
			&i.Attempts,
			&i.FailedAt,
			&i.CreatedAt,
			&i.DrainedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countPendingDeadLetters = `
SELECT COUNT(*) FROM dead_letters WHERE drained_at IS NULL
`

func (q *Queries) CountPendingDeadLetters(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countPendingDeadLetters)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const markDeadLetterDrained = `
UPDATE dead_letters
SET drained_at = NOW()
WHERE event_id = $1 AND drained_at IS NULL
`

// MarkDeadLetterDrained returns zero when the letter is unknown or already drained.
func (q *Queries) MarkDeadLetterDrained(ctx context.Context, eventID string) (int64, error) {
	result, err := q.db.Exec(ctx, markDeadLetterDrained, eventID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const insertDeliveryFailure = `
INSERT INTO delivery_failures (event_id, subscription, error, failed_at)
VALUES ($1, $2, $3, $4)
`

type InsertDeliveryFailureParams struct {
	EventID      string             `json:"event_id"`
	Subscription string             `json:"subscription"`
	Error        string             `json:"error"`
	FailedAt     pgtype.Timestamptz `json:"failed_at"`
}

func (q *Queries) InsertDeliveryFailure(ctx context.Context, arg InsertDeliveryFailureParams) error {
	_, err := q.db.Exec(ctx, insertDeliveryFailure,
		arg.EventID,
		arg.Subscription,
		arg.Error,
		arg.FailedAt,
	)
	return err
}

const countDeliveryFailuresSince = `
SELECT COUNT(*) FROM delivery_failures WHERE failed_at >= $1
`

func (q *Queries) CountDeliveryFailuresSince(ctx context.Context, since pgtype.Timestamptz) (int64, error) {
	row := q.db.QueryRow(ctx, countDeliveryFailuresSince, since)
	var count int64
	err := row.Scan(&count)
	return count, err
}
