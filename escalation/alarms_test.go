package escalation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bigmouth.app/escalation/alarm"
	"bigmouth.app/escalation/mocks/deadletter_business"
)

type memoryStates struct {
	mu      sync.Mutex
	records map[string]alarm.Record
	err     error
}

func (s *memoryStates) Transition(ctx context.Context, name string, fn func(current alarm.Record) (alarm.Record, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	next, err := fn(s.records[name])
	if err != nil {
		return err
	}
	s.records[name] = next
	return nil
}

type recordingNotifier struct {
	changes []alarm.Change
}

func (n *recordingNotifier) Notify(ctx context.Context, change alarm.Change) error {
	n.changes = append(n.changes, change)
	return nil
}

func TestEvaluateAlarms(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		initial        map[string]alarm.State
		pending        int64
		pendingErr     error
		failures       int64
		failuresErr    error
		statesErr      error
		expectedStates map[string]alarm.State
		expectedAlerts []string
		expectedErr    bool
	}{
		{
			name:     "quiet_queue",
			pending:  0,
			failures: 0,
			expectedStates: map[string]alarm.State{
				deadLetterDepthAlarm.Name: alarm.StateOK,
				deliveryFailureAlarm.Name: alarm.StateOK,
			},
		},
		{
			name:     "dead_letter_raises_depth_alarm",
			pending:  2,
			failures: 0,
			expectedStates: map[string]alarm.State{
				deadLetterDepthAlarm.Name: alarm.StateAlarm,
				deliveryFailureAlarm.Name: alarm.StateOK,
			},
			expectedAlerts: []string{deadLetterDepthAlarm.Name},
		},
		{
			name:     "handoff_failure_raises_failure_alarm",
			pending:  0,
			failures: 1,
			expectedStates: map[string]alarm.State{
				deadLetterDepthAlarm.Name: alarm.StateOK,
				deliveryFailureAlarm.Name: alarm.StateAlarm,
			},
			expectedAlerts: []string{deliveryFailureAlarm.Name},
		},
		{
			name:     "drained_queue_resets_without_alert",
			initial:  map[string]alarm.State{deadLetterDepthAlarm.Name: alarm.StateAlarm},
			pending:  0,
			failures: 0,
			expectedStates: map[string]alarm.State{
				deadLetterDepthAlarm.Name: alarm.StateOK,
				deliveryFailureAlarm.Name: alarm.StateOK,
			},
		},
		{
			name:        "unreadable_metrics_are_not_breaching",
			initial:     map[string]alarm.State{deadLetterDepthAlarm.Name: alarm.StateAlarm},
			pendingErr:  errors.New("db down"),
			failuresErr: errors.New("db down"),
			expectedStates: map[string]alarm.State{
				deadLetterDepthAlarm.Name: alarm.StateOK,
				deliveryFailureAlarm.Name: alarm.StateOK,
			},
		},
		{
			name:        "state_store_error",
			pending:     1,
			statesErr:   errors.New("db down"),
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockBusiness := deadletter_business.NewMockBusiness(ctrl)
			states := &memoryStates{records: map[string]alarm.Record{}, err: tc.statesErr}
			for name, state := range tc.initial {
				states.records[name] = alarm.Record{State: state}
			}
			notifier := &recordingNotifier{}

			service := &Service{
				deadLetters:  mockBusiness,
				depthAlarm:   alarm.NewMonitor(deadLetterDepthAlarm, states, notifier),
				failureAlarm: alarm.NewMonitor(deliveryFailureAlarm, states, notifier),
				now:          func() time.Time { return now },
			}

			mockBusiness.EXPECT().PendingCount(gomock.Any()).Return(tc.pending, tc.pendingErr).Times(1)
			mockBusiness.EXPECT().
				DeliveryFailuresSince(gomock.Any(), now.Add(-failureWindow())).
				Return(tc.failures, tc.failuresErr).
				Times(1)

			err := service.EvaluateAlarms(context.Background())

			if tc.expectedErr {
				assert.Error(t, err)
				assert.Empty(t, notifier.changes)
				return
			}
			require.NoError(t, err)
			for name, state := range tc.expectedStates {
				assert.Equal(t, state, states.records[name].State, name)
			}

			var alerted []string
			for _, change := range notifier.changes {
				assert.Equal(t, alarm.StateAlarm, change.To)
				alerted = append(alerted, change.Alarm)
			}
			assert.Equal(t, tc.expectedAlerts, alerted)
		})
	}
}
