package escalation

import (
	"context"

	"encore.dev/beta/errs"
	"encore.dev/pubsub"
	"encore.dev/rlog"

	"bigmouth.app/escalation/model"
)

var _ = pubsub.NewSubscription(
	DeadLetters, "escalation-store-dead-letters",
	pubsub.SubscriptionConfig[*DeadLetter]{
		Handler: pubsub.MethodHandler((*Service).StoreDeadLetter),
	},
)

var _ = pubsub.NewSubscription(
	DeliveryFailures, "escalation-store-delivery-failures",
	pubsub.SubscriptionConfig[*DeliveryFailure]{
		Handler: pubsub.MethodHandler((*Service).StoreDeliveryFailure),
	},
)

// StoreDeadLetter makes a dead-letter handoff durable until an operator
// drains or replays it.
func (s *Service) StoreDeadLetter(ctx context.Context, letter *DeadLetter) error {
	err := s.deadLetters.Record(ctx, &model.DeadLetter{
		EventID:      letter.EventID,
		Subscription: letter.Subscription,
		Envelope:     letter.Envelope,
		Error:        letter.Error,
		Attempts:     letter.Attempts,
		FailedAt:     letter.FailedAt,
	})
	if errs.Code(err) == errs.InvalidArgument {
		// redelivery cannot fix it
		rlog.Error("dropping unstorable dead letter", "error", err, "event_id", letter.EventID, "cause", letter.Error)
		return nil
	}
	return err
}

func (s *Service) StoreDeliveryFailure(ctx context.Context, failure *DeliveryFailure) error {
	rlog.Error("dead-letter handoff failed",
		"event_id", failure.EventID, "subscription", failure.Subscription, "error", failure.Error)

	return s.deadLetters.RecordDeliveryFailure(ctx, &model.DeliveryFailure{
		EventID:      failure.EventID,
		Subscription: failure.Subscription,
		Error:        failure.Error,
		FailedAt:     failure.FailedAt,
	})
}
