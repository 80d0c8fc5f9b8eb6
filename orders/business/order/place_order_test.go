package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"encore.dev/beta/errs"

	"bigmouth.app/bus"
	"bigmouth.app/bus/mocks/bus_publisher"
	"bigmouth.app/orders/mocks/order_store"
	"bigmouth.app/orders/model"
	"bigmouth.app/orders/store/orders"
)

func TestPlaceOrder(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name              string
		restaurantName    string
		mockCreateError   error
		mockPublishError  error
		mockUpdateError   error
		expectPublish     bool
		expectMarkFailed  bool
		expectedErrorCode errs.ErrCode
		expectedError     string
	}{
		{
			name:           "happy_case",
			restaurantName: "Fangtasia",
			expectPublish:  true,
		},
		{
			name:              "duplicate_order_id",
			restaurantName:    "Fangtasia",
			mockCreateError:   &pgconn.PgError{Code: pgerrcode.UniqueViolation},
			expectedErrorCode: errs.AlreadyExists,
			expectedError:     "order id is duplicated",
		},
		{
			name:              "store_error",
			restaurantName:    "Fangtasia",
			mockCreateError:   assert.AnError,
			expectedErrorCode: errs.Internal,
			expectedError:     "failed to create order",
		},
		{
			name:              "publish_error_flags_order",
			restaurantName:    "Fangtasia",
			mockPublishError:  errors.New("bus unavailable"),
			expectPublish:     true,
			expectMarkFailed:  true,
			expectedErrorCode: errs.Unavailable,
			expectedError:     "failed to place order",
		},
		{
			name:              "publish_error_flagging_fails_too",
			restaurantName:    "Fangtasia",
			mockPublishError:  errors.New("bus unavailable"),
			mockUpdateError:   errors.New("db down"),
			expectPublish:     true,
			expectMarkFailed:  true,
			expectedErrorCode: errs.Unavailable,
			expectedError:     "failed to place order",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := order_store.NewMockQuerier(ctrl)
			mockPublisher := bus_publisher.NewMockPublisher(ctrl)
			b := &business{
				orderRepo: mockRepo,
				publisher: mockPublisher,
				newID:     func() string { return "order-123" },
			}

			mockRepo.EXPECT().
				CreateOrder(gomock.Any(), orders.CreateOrderParams{
					ID:             "order-123",
					RestaurantName: tc.restaurantName,
					Status:         string(model.OrderStatusPlaced),
				}).
				Return(orders.Order{
					ID:             "order-123",
					RestaurantName: tc.restaurantName,
					Status:         string(model.OrderStatusPlaced),
					CreatedAt:      pgtype.Timestamptz{Time: now, Valid: true},
					UpdatedAt:      pgtype.Timestamptz{Time: now, Valid: true},
				}, tc.mockCreateError)

			var published *bus.Envelope
			if tc.expectPublish {
				mockPublisher.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, env *bus.Envelope) error {
						published = env
						return tc.mockPublishError
					}).
					Times(1)
			}

			if tc.expectMarkFailed {
				mockRepo.EXPECT().
					UpdateOrderStatus(gomock.Any(), orders.UpdateOrderStatusParams{
						ID:     "order-123",
						Status: string(model.OrderStatusPublishFailed),
					}).
					Return(int64(1), tc.mockUpdateError)
			}

			result, err := b.PlaceOrder(context.Background(), tc.restaurantName)

			if tc.expectedError != "" {
				assert.Error(t, err)
				assert.Nil(t, result)
				assert.Contains(t, err.Error(), tc.expectedError)
				assert.Equal(t, tc.expectedErrorCode, errs.Code(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "order-123", result.ID)
			assert.Equal(t, tc.restaurantName, result.RestaurantName)
			assert.Equal(t, model.OrderStatusPlaced, result.Status)

			require.NotNil(t, published)
			assert.Equal(t, bus.Source, published.Source)
			assert.Equal(t, bus.DetailTypeOrderPlaced, published.DetailType)

			var detail bus.OrderDetail
			require.NoError(t, published.DecodeDetail(&detail))
			assert.Equal(t, bus.OrderID("order-123"), detail.OrderID)
			assert.Equal(t, tc.restaurantName, detail.RestaurantName)
		})
	}
}

func TestPlaceOrder_GeneratesUnseenOrderIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := order_store.NewMockQuerier(ctrl)
	mockPublisher := bus_publisher.NewMockPublisher(ctrl)
	b := NewOrderBusiness(mockRepo, mockPublisher)

	mockRepo.EXPECT().
		CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, arg orders.CreateOrderParams) (orders.Order, error) {
			return orders.Order{ID: arg.ID, RestaurantName: arg.RestaurantName, Status: arg.Status}, nil
		}).
		Times(50)
	mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(50)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		order, err := b.PlaceOrder(context.Background(), "Fangtasia")
		require.NoError(t, err)
		assert.NotEmpty(t, order.ID)
		assert.False(t, seen[order.ID], "order id %s returned twice", order.ID)
		seen[order.ID] = true
	}
}
