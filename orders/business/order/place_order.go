package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"bigmouth.app/bus"
	"bigmouth.app/orders/model"
	"bigmouth.app/orders/store/orders"
)

func newOrderID() string {
	return uuid.NewString()
}

// PlaceOrder stores a new order and announces it on the event bus. Exactly one
// order_placed event is published per successful call; a failed publish is
// reported as Unavailable so the client can retry with a fresh order.
func (b *business) PlaceOrder(ctx context.Context, restaurantName string) (*model.Order, error) {
	dbOrder, err := b.orderRepo.CreateOrder(ctx, orders.CreateOrderParams{
		ID:             b.newID(),
		RestaurantName: restaurantName,
		Status:         string(model.OrderStatusPlaced),
	})
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return nil, &errs.Error{Code: errs.AlreadyExists, Message: "order id is duplicated"}
		}

		rlog.Error("failed to store order", "error", err)
		return nil, &errs.Error{Code: errs.Internal, Message: "failed to create order"}
	}

	order := convertDBOrderToModel(dbOrder)

	env, err := bus.NewEnvelope(bus.DetailTypeOrderPlaced, bus.OrderDetail{
		OrderID:        bus.OrderID(order.ID),
		RestaurantName: order.RestaurantName,
	})
	if err != nil {
		return nil, &errs.Error{Code: errs.Internal, Message: "failed to build order_placed event"}
	}

	if err := b.publisher.Publish(ctx, env); err != nil {
		rlog.Error("failed to publish order_placed", "error", err, "order_id", order.ID)
		b.markPublishFailed(ctx, order.ID)
		return nil, &errs.Error{Code: errs.Unavailable, Message: "failed to place order, please retry"}
	}

	rlog.Info("order placed", "order_id", order.ID, "restaurant_name", order.RestaurantName, "event_id", env.ID)
	return order, nil
}

// markPublishFailed flags an order whose event never reached the bus.
func (b *business) markPublishFailed(ctx context.Context, orderID string) {
	_, err := b.orderRepo.UpdateOrderStatus(ctx, orders.UpdateOrderStatusParams{
		ID:     orderID,
		Status: string(model.OrderStatusPublishFailed),
	})
	if err != nil {
		rlog.Error("failed to flag unpublished order", "error", err, "order_id", orderID)
	}
}

func convertDBOrderToModel(dbOrder orders.Order) *model.Order {
	return &model.Order{
		ID:             dbOrder.ID,
		RestaurantName: dbOrder.RestaurantName,
		Status:         model.OrderStatus(dbOrder.Status),
		CreatedAt:      dbOrder.CreatedAt.Time,
		UpdatedAt:      dbOrder.UpdatedAt.Time,
	}
}
