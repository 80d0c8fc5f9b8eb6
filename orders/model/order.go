package model

import (
	"time"
)

type Order struct {
	ID             string      `json:"orderId"`
	RestaurantName string      `json:"restaurantName"`
	Status         OrderStatus `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type OrderStatus string

const (
	OrderStatusPlaced             OrderStatus = "placed"
	OrderStatusPublishFailed      OrderStatus = "publish_failed"
	OrderStatusRestaurantNotified OrderStatus = "restaurant_notified"
)
