package model

import (
	"time"
)

// NotificationResult is what a completed restaurant notification stores as
// its idempotent result.
type NotificationResult struct {
	OrderID          string    `json:"orderId"`
	RestaurantName   string    `json:"restaurantName"`
	ChannelMessageID string    `json:"channel_message_id"`
	ConfirmationID   string    `json:"confirmation_event_id"`
	NotifiedAt       time.Time `json:"notified_at"`
}
