package orders

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"encore.dev/beta/errs"

	"bigmouth.app/orders/mocks/order_business"
	"bigmouth.app/orders/model"
)

// Run tests using `encore test`, which compiles the Encore app and then runs `go test`.

func TestPlaceOrder(t *testing.T) {
	testCases := []struct {
		name               string
		request            *PlaceOrderRequest
		mockBusinessReturn *model.Order
		mockBusinessError  error
		expectedError      string
	}{
		{
			name:    "order_placed",
			request: &PlaceOrderRequest{RestaurantName: "Fangtasia"},
			mockBusinessReturn: &model.Order{
				ID:             "order-1",
				RestaurantName: "Fangtasia",
				Status:         model.OrderStatusPlaced,
			},
		},
		{
			name:              "publish_failure_surfaces",
			request:           &PlaceOrderRequest{RestaurantName: "Fangtasia"},
			mockBusinessError: &errs.Error{Code: errs.Unavailable, Message: "failed to place order, please retry"},
			expectedError:     "failed to place order",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockBusiness := order_business.NewMockBusiness(ctrl)
			service := &Service{business: mockBusiness}

			mockBusiness.EXPECT().
				PlaceOrder(gomock.Any(), tc.request.RestaurantName).
				Return(tc.mockBusinessReturn, tc.mockBusinessError).
				Times(1)

			response, err := service.PlaceOrder(context.Background(), tc.request)

			if tc.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedError)
				assert.Nil(t, response)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.mockBusinessReturn.ID, response.OrderID)
			}
		})
	}
}

func TestPlaceOrderRequest_Validation(t *testing.T) {
	testCases := []struct {
		name          string
		request       *PlaceOrderRequest
		expectedError string
	}{
		{
			name:    "valid_request",
			request: &PlaceOrderRequest{RestaurantName: "Fangtasia"},
		},
		{
			name:          "missing_restaurant_name",
			request:       &PlaceOrderRequest{},
			expectedError: "required",
		},
		{
			name:          "blank_restaurant_name",
			request:       &PlaceOrderRequest{RestaurantName: "   "},
			expectedError: "must not be blank",
		},
		{
			name:          "restaurant_name_too_long",
			request:       &PlaceOrderRequest{RestaurantName: strings.Repeat("a", 256)},
			expectedError: "max",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.request.Validate()

			if tc.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedError)
				assert.Equal(t, errs.InvalidArgument, errs.Code(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
