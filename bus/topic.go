package bus

import (
	"context"

	"encore.dev/pubsub"
)

// Events is the shared event bus. Delivery is at-least-once and unordered, so
// every subscriber must tolerate duplicates and must not rely on ordering.
var Events = pubsub.NewTopic[*Envelope]("big-mouth-events", pubsub.TopicConfig{
	DeliveryGuarantee: pubsub.AtLeastOnce,
})

// Publisher publishes envelopes onto the event bus.
type Publisher interface {
	Publish(ctx context.Context, env *Envelope) error
}

type topicPublisher struct {
	topic *pubsub.Topic[*Envelope]
}

// NewPublisher returns a Publisher backed by the shared Events topic.
func NewPublisher() Publisher {
	return &topicPublisher{topic: Events}
}

func (p *topicPublisher) Publish(ctx context.Context, env *Envelope) error {
	_, err := p.topic.Publish(ctx, env)
	return err
}
