package order

import (
	"context"

	"bigmouth.app/bus"
	"bigmouth.app/orders/model"
	"bigmouth.app/orders/store/orders"
)

type Business interface {
	PlaceOrder(ctx context.Context, restaurantName string) (*model.Order, error)
	MarkRestaurantNotified(ctx context.Context, orderID string) error
}

type business struct {
	orderRepo orders.Querier
	publisher bus.Publisher
	newID     func() string
}

// NewOrderBusiness creates the order business layer on top of the order store
// and the event bus publisher.
func NewOrderBusiness(orderRepo orders.Querier, publisher bus.Publisher) Business {
	return &business{
		orderRepo: orderRepo,
		publisher: publisher,
		newID:     newOrderID,
	}
}
