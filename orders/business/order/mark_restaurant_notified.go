package order

import (
	"context"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"bigmouth.app/orders/model"
	"bigmouth.app/orders/store/orders"
)

// MarkRestaurantNotified records the restaurant_notified confirmation on the
// order. Redelivered confirmations change nothing.
func (b *business) MarkRestaurantNotified(ctx context.Context, orderID string) error {
	if orderID == "" {
		return &errs.Error{Code: errs.InvalidArgument, Message: "order id is required"}
	}

	updated, err := b.orderRepo.UpdateOrderStatus(ctx, orders.UpdateOrderStatusParams{
		ID:     orderID,
		Status: string(model.OrderStatusRestaurantNotified),
	})
	if err != nil {
		return &errs.Error{Code: errs.Internal, Message: "failed to update order status"}
	}

	if updated == 0 {
		rlog.Debug("order already notified or unknown", "order_id", orderID)
	}
	return nil
}
