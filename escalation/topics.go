package escalation

import (
	"time"

	"encore.dev/pubsub"

	"bigmouth.app/bus"
)

// DeadLetter is the handoff of a delivery that exhausted its retry budget.
type DeadLetter struct {
	EventID      string        `json:"event_id"`
	Subscription string        `json:"subscription"`
	Envelope     *bus.Envelope `json:"original_event"`
	Error        string        `json:"error"`
	Attempts     int           `json:"attempts"`
	FailedAt     time.Time     `json:"failed_at"`
}

// DeliveryFailure records that a DeadLetter could not be handed off.
type DeliveryFailure struct {
	EventID      string    `json:"event_id"`
	Subscription string    `json:"subscription"`
	Error        string    `json:"error"`
	FailedAt     time.Time `json:"failed_at"`
}

// Alert is what operators receive when an alarm enters the ALARM state.
type Alert struct {
	Alarm     string    `pubsub-attr:"alarm"`
	State     string    `json:"state"`
	Reason    string    `json:"reason"`
	Value     float64   `json:"value"`
	Threshold float64   `json:"threshold"`
	RaisedAt  time.Time `json:"raised_at"`
}

// DeadLetters is the dead-letter queue handoff for failed event deliveries.
var DeadLetters = pubsub.NewTopic[*DeadLetter]("dead-letters", pubsub.TopicConfig{
	DeliveryGuarantee: pubsub.AtLeastOnce,
})

// DeliveryFailures carries failed dead-letter handoffs. It is separate
// infrastructure from DeadLetters so a broken DLQ can still be reported.
var DeliveryFailures = pubsub.NewTopic[*DeliveryFailure]("dead-letter-delivery-failures", pubsub.TopicConfig{
	DeliveryGuarantee: pubsub.AtLeastOnce,
})

// OperatorAlerts is the single operator alert channel.
var OperatorAlerts = pubsub.NewTopic[*Alert]("operator-alerts", pubsub.TopicConfig{
	DeliveryGuarantee: pubsub.AtLeastOnce,
})
