package orders

import (
	"context"
	"strings"

	"encore.dev/beta/errs"
	"encore.dev/rlog"
)

type PlaceOrderRequest struct {
	RestaurantName string `json:"restaurantName" validate:"required,max=255"`
}

type PlaceOrderResponse struct {
	OrderID string `json:"orderId"`
}

//encore:api auth method=POST path=/orders
func (s *Service) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*PlaceOrderResponse, error) {
	order, err := s.business.PlaceOrder(ctx, req.RestaurantName)
	if err != nil {
		rlog.Error("failed to place order", "error", err, "restaurant_name", req.RestaurantName)
		return nil, err
	}

	return &PlaceOrderResponse{
		OrderID: order.ID,
	}, nil
}

// Validate implements validation for PlaceOrderRequest using go-playground/validator
func (r *PlaceOrderRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
	}

	if strings.TrimSpace(r.RestaurantName) == "" {
		return &errs.Error{Code: errs.InvalidArgument, Message: "restaurantName must not be blank"}
	}

	return nil
}
