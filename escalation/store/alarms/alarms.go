package alarms

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

type Querier interface {
	EnsureAlarmState(ctx context.Context, name string) error
	GetAlarmStateForUpdate(ctx context.Context, name string) (AlarmState, error)
	UpdateAlarmState(ctx context.Context, arg UpdateAlarmStateParams) error
}

var _ Querier = (*Queries)(nil)

type AlarmState struct {
	Name      string             `json:"name"`
	State     string             `json:"state"`
	Reason    string             `json:"reason"`
	Value     float64            `json:"value"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

const ensureAlarmState = `
INSERT INTO alarm_states (name) VALUES ($1)
ON CONFLICT (name) DO NOTHING
`

func (q *Queries) EnsureAlarmState(ctx context.Context, name string) error {
	_, err := q.db.Exec(ctx, ensureAlarmState, name)
	return err
}

const getAlarmStateForUpdate = `
SELECT name, state, reason, value, updated_at
FROM alarm_states
WHERE name = $1
FOR UPDATE
`

func (q *Queries) GetAlarmStateForUpdate(ctx context.Context, name string) (AlarmState, error) {
	row := q.db.QueryRow(ctx, getAlarmStateForUpdate, name)
	var i AlarmState
	err := row.Scan(
		&i.Name,
		&i.State,
		&i.Reason,
		&i.Value,
		&i.UpdatedAt,
	)
	return i, err
}

const updateAlarmState = `
UPDATE alarm_states
SET state = $2, reason = $3, value = $4, updated_at = NOW()
WHERE name = $1
`

type UpdateAlarmStateParams struct {
	Name   string  `json:"name"`
	State  string  `json:"state"`
	Reason string  `json:"reason"`
	Value  float64 `json:"value"`
}

func (q *Queries) UpdateAlarmState(ctx context.Context, arg UpdateAlarmStateParams) error {
	_, err := q.db.Exec(ctx, updateAlarmState,
		arg.Name,
		arg.State,
		arg.Reason,
		arg.Value,
	)
	return err
}
