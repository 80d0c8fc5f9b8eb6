package notification

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"bigmouth.app/bus"
	"bigmouth.app/notification/middleware/idempotency"
	"bigmouth.app/notification/model"
)

const (
	channelStep      = "restaurant-channel"
	confirmationStep = "restaurant-notified"
)

var orderKey = idempotency.KeyFromDetail("orderId")

type restaurantNotifier struct {
	channel   Channel
	publisher bus.Publisher
	now       func() time.Time

	notifyChannel       idempotency.Handler[string]
	publishConfirmation idempotency.Handler[string]
}

// newRestaurantNotifier builds the order_placed handler. The whole
// notification is idempotent on the order id, and each of its two side effects
// is idempotent on its own sub-key, so a retry after a partial failure only
// repeats the side effect that did not complete.
func newRestaurantNotifier(m *idempotency.Middleware, channel Channel, publisher bus.Publisher) idempotency.Handler[model.NotificationResult] {
	n := &restaurantNotifier{
		channel:   channel,
		publisher: publisher,
		now:       time.Now,
	}
	n.notifyChannel = idempotency.Wrap(m, idempotency.WithSuffix(orderKey, channelStep), n.sendToChannel)
	n.publishConfirmation = idempotency.Wrap(m, idempotency.WithSuffix(orderKey, confirmationStep), n.confirm)

	return idempotency.Wrap(m, orderKey, n.notify)
}

func (n *restaurantNotifier) notify(ctx context.Context, env *bus.Envelope) (model.NotificationResult, error) {
	var order bus.OrderDetail
	if err := env.DecodeDetail(&order); err != nil {
		return model.NotificationResult{}, &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
	}

	var (
		g              errgroup.Group
		channelID      string
		confirmationID string
	)
	g.Go(func() error {
		id, err := n.notifyChannel(ctx, env)
		channelID = id
		return err
	})
	g.Go(func() error {
		id, err := n.publishConfirmation(ctx, env)
		confirmationID = id
		return err
	})
	if err := g.Wait(); err != nil {
		rlog.Error("failed to notify restaurant", "error", err, "order_id", order.OrderID, "event_id", env.ID)
		return model.NotificationResult{}, err
	}

	rlog.Info("notified restaurant of order", "order_id", order.OrderID, "restaurant_name", order.RestaurantName)

	return model.NotificationResult{
		OrderID:          string(order.OrderID),
		RestaurantName:   order.RestaurantName,
		ChannelMessageID: channelID,
		ConfirmationID:   confirmationID,
		NotifiedAt:       n.now().UTC(),
	}, nil
}

// sendToChannel forwards the order to the restaurant notification channel.
func (n *restaurantNotifier) sendToChannel(ctx context.Context, env *bus.Envelope) (string, error) {
	var order bus.OrderDetail
	if err := env.DecodeDetail(&order); err != nil {
		return "", &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
	}

	id, err := n.channel.Notify(ctx, order)
	if err != nil {
		return "", &errs.Error{Code: errs.Unavailable, Message: "failed to publish to restaurant channel: " + err.Error()}
	}
	return id, nil
}

// confirm republishes the order as restaurant_notified on the bus.
func (n *restaurantNotifier) confirm(ctx context.Context, env *bus.Envelope) (string, error) {
	var order bus.OrderDetail
	if err := env.DecodeDetail(&order); err != nil {
		return "", &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
	}

	confirmation, err := bus.NewEnvelope(bus.DetailTypeRestaurantNotified, order)
	if err != nil {
		return "", &errs.Error{Code: errs.Internal, Message: err.Error()}
	}

	if err := n.publisher.Publish(ctx, confirmation); err != nil {
		return "", &errs.Error{Code: errs.Unavailable, Message: "failed to publish restaurant_notified: " + err.Error()}
	}
	return confirmation.ID, nil
}
