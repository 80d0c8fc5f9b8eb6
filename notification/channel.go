package notification

import (
	"context"

	"encore.dev/pubsub"

	"bigmouth.app/bus"
)

// RestaurantOrder is the order payload delivered to a restaurant. Subscribers
// filter on the restaurant attribute.
type RestaurantOrder struct {
	Restaurant     string `pubsub-attr:"restaurant"`
	OrderID        string `json:"orderId"`
	RestaurantName string `json:"restaurantName"`
}

// RestaurantNotifications is the restaurant notification channel.
var RestaurantNotifications = pubsub.NewTopic[*RestaurantOrder]("restaurant-notifications", pubsub.TopicConfig{
	DeliveryGuarantee: pubsub.AtLeastOnce,
})

// Channel forwards an order to the restaurant and returns the message id.
type Channel interface {
	Notify(ctx context.Context, order bus.OrderDetail) (string, error)
}

type topicChannel struct {
	topic *pubsub.Topic[*RestaurantOrder]
}

func newTopicChannel() Channel {
	return &topicChannel{topic: RestaurantNotifications}
}

func (c *topicChannel) Notify(ctx context.Context, order bus.OrderDetail) (string, error) {
	return c.topic.Publish(ctx, &RestaurantOrder{
		Restaurant:     order.RestaurantName,
		OrderID:        string(order.OrderID),
		RestaurantName: order.RestaurantName,
	})
}
