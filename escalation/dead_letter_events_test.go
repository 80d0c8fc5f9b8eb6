package escalation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"encore.dev/beta/errs"

	"bigmouth.app/bus"
	"bigmouth.app/escalation/mocks/deadletter_business"
	"bigmouth.app/escalation/model"
)

func TestStoreDeadLetter(t *testing.T) {
	env, err := bus.NewEnvelope(bus.DetailTypeOrderPlaced, bus.OrderDetail{OrderID: "a1", RestaurantName: "Fangtasia"})
	require.NoError(t, err)
	failedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name        string
		recordErr   error
		expectedErr bool
	}{
		{
			name: "happy_case",
		},
		{
			name:      "unstorable_letter_is_dropped",
			recordErr: &errs.Error{Code: errs.InvalidArgument, Message: "dead letter has no event id"},
		},
		{
			name:        "store_error_is_redelivered",
			recordErr:   &errs.Error{Code: errs.Internal, Message: "failed to store dead letter"},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockBusiness := deadletter_business.NewMockBusiness(ctrl)
			service := &Service{deadLetters: mockBusiness}

			mockBusiness.EXPECT().
				Record(gomock.Any(), &model.DeadLetter{
					EventID:      env.ID,
					Subscription: "notify-restaurant",
					Envelope:     env,
					Error:        "failed to publish to restaurant channel",
					Attempts:     3,
					FailedAt:     failedAt,
				}).
				Return(tc.recordErr).
				Times(1)

			err := service.StoreDeadLetter(context.Background(), &DeadLetter{
				EventID:      env.ID,
				Subscription: "notify-restaurant",
				Envelope:     env,
				Error:        "failed to publish to restaurant channel",
				Attempts:     3,
				FailedAt:     failedAt,
			})

			if tc.expectedErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStoreDeliveryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBusiness := deadletter_business.NewMockBusiness(ctrl)
	service := &Service{deadLetters: mockBusiness}
	failedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	mockBusiness.EXPECT().
		RecordDeliveryFailure(gomock.Any(), &model.DeliveryFailure{
			EventID:      "event-1",
			Subscription: "notify-restaurant",
			Error:        "dlq unavailable",
			FailedAt:     failedAt,
		}).
		Return(nil).
		Times(1)

	err := service.StoreDeliveryFailure(context.Background(), &DeliveryFailure{
		EventID:      "event-1",
		Subscription: "notify-restaurant",
		Error:        "dlq unavailable",
		FailedAt:     failedAt,
	})
	assert.NoError(t, err)
}
