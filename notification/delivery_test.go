package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"encore.dev/beta/errs"

	"bigmouth.app/bus"
	"bigmouth.app/escalation"
	"bigmouth.app/notification/middleware/idempotency"
	"bigmouth.app/notification/mocks/notification_deps"
)

type guardFixture struct {
	guard       *deliveryGuard
	attempts    *notification_deps.MockAttemptCounter
	deadLetters *notification_deps.MockDeadLetterQueue
	failures    *notification_deps.MockFailureReporter
}

func newGuardFixture(t *testing.T) *guardFixture {
	ctrl := gomock.NewController(t)
	f := &guardFixture{
		attempts:    notification_deps.NewMockAttemptCounter(ctrl),
		deadLetters: notification_deps.NewMockDeadLetterQueue(ctrl),
		failures:    notification_deps.NewMockFailureReporter(ctrl),
	}
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	f.guard = &deliveryGuard{
		subscription: subscriptionName,
		timeout:      50 * time.Millisecond,
		maxAttempts:  3,
		attempts:     f.attempts,
		deadLetters:  f.deadLetters,
		failures:     f.failures,
		now:          func() time.Time { return fixed },
	}
	return f
}

func TestDeliveryGuard(t *testing.T) {
	errPublish := &errs.Error{Code: errs.Unavailable, Message: "failed to publish to restaurant channel"}

	testCases := []struct {
		name           string
		handlerErr     error
		attempt        int64
		counterErr     error
		expectCount    bool
		expectDLQ      bool
		enqueueErr     error
		expectReport   bool
		reportErr      error
		expectedErr    error
		expectedErrMsg string
	}{
		{
			name: "success_needs_no_bookkeeping",
		},
		{
			name:        "first_failure_is_redelivered",
			handlerErr:  errPublish,
			attempt:     1,
			expectCount: true,
			expectedErr: errPublish,
		},
		{
			name:        "second_failure_is_redelivered",
			handlerErr:  errPublish,
			attempt:     2,
			expectCount: true,
			expectedErr: errPublish,
		},
		{
			name:        "exhausted_budget_moves_to_dlq",
			handlerErr:  errPublish,
			attempt:     3,
			expectCount: true,
			expectDLQ:   true,
		},
		{
			name:       "permanent_error_skips_budget",
			handlerErr: &errs.Error{Code: errs.InvalidArgument, Message: "idempotency key not found"},
			expectDLQ:  true,
		},
		{
			name:        "in_progress_is_not_counted",
			handlerErr:  idempotency.ErrInProgress,
			expectedErr: idempotency.ErrInProgress,
		},
		{
			name:        "counter_failure_moves_to_dlq",
			handlerErr:  errPublish,
			counterErr:  errors.New("cache down"),
			expectCount: true,
			expectDLQ:   true,
		},
		{
			name:           "dlq_handoff_failure_is_reported_and_not_swallowed",
			handlerErr:     errPublish,
			attempt:        3,
			expectCount:    true,
			expectDLQ:      true,
			enqueueErr:     errors.New("dlq unavailable"),
			expectReport:   true,
			expectedErrMsg: "dead-letter handoff for event event-1",
		},
		{
			name:           "failure_report_failure_still_errors",
			handlerErr:     errPublish,
			attempt:        3,
			expectCount:    true,
			expectDLQ:      true,
			enqueueErr:     errors.New("dlq unavailable"),
			expectReport:   true,
			reportErr:      errors.New("topic unavailable"),
			expectedErrMsg: "dead-letter handoff for event event-1",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newGuardFixture(t)
			env := orderPlaced(t, `{"orderId":"a1","restaurantName":"Fangtasia"}`)

			if tc.expectCount {
				f.attempts.EXPECT().Increment(gomock.Any(), "event-1").Return(tc.attempt, tc.counterErr).Times(1)
			}
			if tc.expectDLQ {
				f.deadLetters.EXPECT().
					Enqueue(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, letter *escalation.DeadLetter) error {
						assert.Equal(t, "event-1", letter.EventID)
						assert.Equal(t, subscriptionName, letter.Subscription)
						assert.Same(t, env, letter.Envelope)
						assert.Equal(t, tc.handlerErr.Error(), letter.Error)
						assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), letter.FailedAt)
						return tc.enqueueErr
					}).
					Times(1)
			}
			if tc.expectReport {
				f.failures.EXPECT().
					Report(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, failure *escalation.DeliveryFailure) error {
						assert.Equal(t, "event-1", failure.EventID)
						assert.Equal(t, tc.enqueueErr.Error(), failure.Error)
						return tc.reportErr
					}).
					Times(1)
			}

			handler := f.guard.Wrap(func(ctx context.Context, env *bus.Envelope) error {
				return tc.handlerErr
			})
			err := handler(context.Background(), env)

			switch {
			case tc.expectedErrMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
				assert.ErrorIs(t, err, tc.enqueueErr)
			case tc.expectedErr != nil:
				assert.ErrorIs(t, err, tc.expectedErr)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestDeliveryGuard_EnforcesTimeBudget(t *testing.T) {
	f := newGuardFixture(t)
	f.attempts.EXPECT().Increment(gomock.Any(), "event-1").Return(int64(1), nil).Times(1)

	handler := f.guard.Wrap(func(ctx context.Context, env *bus.Envelope) error {
		<-ctx.Done()
		return ctx.Err()
	})

	err := handler(context.Background(), orderPlaced(t, `{"orderId":"a1"}`))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHandleBusEvent_RoutesOnlyOrderPlaced(t *testing.T) {
	f := newNotifierFixture(t)
	g := newGuardFixture(t)
	service := &Service{router: newRouter(g.guard, f.notify)}

	f.channel.EXPECT().Notify(gomock.Any(), gomock.Any()).Return("msg-1", nil).Times(1)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	placed := orderPlaced(t, `{"orderId":"a1","restaurantName":"Fangtasia"}`)
	notified := &bus.Envelope{
		ID:         "event-2",
		Source:     bus.Source,
		DetailType: bus.DetailTypeRestaurantNotified,
		Detail:     placed.Detail,
	}

	assert.NoError(t, service.HandleBusEvent(context.Background(), placed))
	assert.NoError(t, service.HandleBusEvent(context.Background(), placed))
	assert.NoError(t, service.HandleBusEvent(context.Background(), notified))
}
