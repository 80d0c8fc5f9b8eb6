// Package alarm implements threshold monitors with an OK/ALARM state that is
// persisted between evaluations. A missing datapoint is treated as not
// breaching, so a broken metric read never raises or holds an alarm.
package alarm

import (
	"context"
	"fmt"
	"time"

	"encore.dev/rlog"
)

type State string

const (
	StateOK    State = "OK"
	StateAlarm State = "ALARM"
)

// Definition describes a monitor: it breaches when a datapoint is greater
// than Threshold.
type Definition struct {
	Name        string
	Description string
	Threshold   float64
}

// Datapoint is a single observation. Missing marks a failed read.
type Datapoint struct {
	Value   float64
	Missing bool
}

// Record is the persisted state of an alarm.
type Record struct {
	State  State
	Reason string
	Value  float64
}

// Change is emitted when an alarm moves between states.
type Change struct {
	Alarm     string
	From      State
	To        State
	Reason    string
	Value     float64
	Threshold float64
	At        time.Time
}

type Notifier interface {
	Notify(ctx context.Context, change Change) error
}

// StateStore serializes transitions of a single alarm. fn receives the
// current record and returns the one to store; an error from fn discards
// the transition.
type StateStore interface {
	Transition(ctx context.Context, name string, fn func(current Record) (Record, error)) error
}

type Monitor struct {
	def      Definition
	states   StateStore
	notifier Notifier
	now      func() time.Time
}

func NewMonitor(def Definition, states StateStore, notifier Notifier) *Monitor {
	return &Monitor{
		def:      def,
		states:   states,
		notifier: notifier,
		now:      time.Now,
	}
}

func (m *Monitor) Name() string {
	return m.def.Name
}

// Evaluate records dp against the alarm and returns the resulting state.
// Entering ALARM notifies operators inside the transition, so a failed
// notification leaves the alarm in OK and the next evaluation retries it.
func (m *Monitor) Evaluate(ctx context.Context, dp Datapoint) (State, error) {
	var result State
	err := m.states.Transition(ctx, m.def.Name, func(current Record) (Record, error) {
		next := Record{
			State:  nextState(dp, m.def.Threshold),
			Reason: reason(dp, m.def.Threshold),
			Value:  dp.Value,
		}
		from := current.State
		if from == "" {
			from = StateOK
		}

		switch {
		case from == next.State:
		case next.State == StateAlarm:
			change := Change{
				Alarm:     m.def.Name,
				From:      from,
				To:        next.State,
				Reason:    next.Reason,
				Value:     dp.Value,
				Threshold: m.def.Threshold,
				At:        m.now().UTC(),
			}
			if err := m.notifier.Notify(ctx, change); err != nil {
				return Record{}, fmt.Errorf("notify alarm %s: %w", m.def.Name, err)
			}
			rlog.Warn("alarm raised", "alarm", m.def.Name, "value", dp.Value, "threshold", m.def.Threshold)
		default:
			rlog.Info("alarm resolved", "alarm", m.def.Name, "reason", next.Reason)
		}

		result = next.State
		return next, nil
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

func nextState(dp Datapoint, threshold float64) State {
	if dp.Missing {
		return StateOK
	}
	if dp.Value > threshold {
		return StateAlarm
	}
	return StateOK
}

func reason(dp Datapoint, threshold float64) string {
	if dp.Missing {
		return "no datapoint available, treated as not breaching"
	}
	if dp.Value > threshold {
		return fmt.Sprintf("threshold crossed: datapoint %g was greater than the threshold %g", dp.Value, threshold)
	}
	return fmt.Sprintf("datapoint %g was not greater than the threshold %g", dp.Value, threshold)
}
