package orders

import (
	"context"
	"time"

	"encore.dev/pubsub"
	"encore.dev/rlog"

	"bigmouth.app/bus"
)

// The orders service is a second, independent consumer of the bus: it records
// the restaurant confirmation on the order row.
var _ = pubsub.NewSubscription(
	bus.Events, "orders-track-notifications",
	pubsub.SubscriptionConfig[*bus.Envelope]{
		Handler:     pubsub.MethodHandler((*Service).HandleBusEvent),
		AckDeadline: 30 * time.Second,
		RetryPolicy: &pubsub.RetryPolicy{
			MinBackoff: time.Second,
			MaxBackoff: time.Minute,
			MaxRetries: 10,
		},
	},
)

func (s *Service) HandleBusEvent(ctx context.Context, env *bus.Envelope) error {
	return s.router.Dispatch(ctx, env)
}

func (s *Service) recordRestaurantNotified(ctx context.Context, env *bus.Envelope) error {
	var detail bus.OrderDetail
	if err := env.DecodeDetail(&detail); err != nil {
		rlog.Error("dropping undecodable restaurant_notified event", "error", err, "event_id", env.ID)
		return nil
	}
	if detail.OrderID == "" {
		rlog.Error("dropping restaurant_notified event without order id", "event_id", env.ID)
		return nil
	}

	if err := s.business.MarkRestaurantNotified(ctx, string(detail.OrderID)); err != nil {
		rlog.Error("failed to record restaurant notification", "error", err, "order_id", detail.OrderID)
		return err
	}
	return nil
}
