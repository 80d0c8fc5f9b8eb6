package notification

import (
	"context"
	"time"

	"encore.dev/pubsub"
	"encore.dev/rlog"

	"bigmouth.app/bus"
	"bigmouth.app/escalation"
	"bigmouth.app/notification/middleware/idempotency"
	"bigmouth.app/notification/model"
)

const subscriptionName = "notify-restaurant"

var _ = pubsub.NewSubscription(
	bus.Events, subscriptionName,
	pubsub.SubscriptionConfig[*bus.Envelope]{
		Handler:     pubsub.MethodHandler((*Service).HandleBusEvent),
		AckDeadline: 30 * time.Second,
		// the delivery guard dead-letters well before this budget runs out
		RetryPolicy: &pubsub.RetryPolicy{
			MinBackoff: time.Second,
			MaxBackoff: time.Minute,
			MaxRetries: 10,
		},
	},
)

//encore:service
type Service struct {
	router *bus.Router
}

func initService() (*Service, error) {
	store := idempotency.NewCacheStore(subscriptionName, minutes(cfg.CompletedTTL))
	m := idempotency.New(store, seconds(cfg.InProgressTTL))

	rlog.Info("Initializing restaurant notifier", "max_attempts", cfg.MaxDeliveryAttempts())
	notify := newRestaurantNotifier(m, newTopicChannel(), bus.NewPublisher())

	guard := &deliveryGuard{
		subscription: subscriptionName,
		timeout:      seconds(cfg.HandlerTimeout),
		maxAttempts:  int64(cfg.MaxDeliveryAttempts()),
		attempts:     cacheAttemptCounter{},
		deadLetters:  &topicDeadLetterQueue{topic: escalation.DeadLetters},
		failures:     &topicFailureReporter{topic: escalation.DeliveryFailures},
		now:          time.Now,
	}

	return &Service{
		router: newRouter(guard, notify),
	}, nil
}

func newRouter(guard *deliveryGuard, notify idempotency.Handler[model.NotificationResult]) *bus.Router {
	return bus.NewRouter().
		Handle(bus.Source, bus.DetailTypeOrderPlaced, guard.Wrap(func(ctx context.Context, env *bus.Envelope) error {
			_, err := notify(ctx, env)
			return err
		}))
}

func (s *Service) HandleBusEvent(ctx context.Context, env *bus.Envelope) error {
	return s.router.Dispatch(ctx, env)
}
