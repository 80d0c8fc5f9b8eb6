package model

import (
	"time"

	"bigmouth.app/bus"
)

// DeadLetter is a bus event whose delivery exhausted its retry budget.
type DeadLetter struct {
	EventID      string        `json:"event_id"`
	Subscription string        `json:"subscription"`
	Envelope     *bus.Envelope `json:"envelope"`
	Error        string        `json:"error"`
	Attempts     int           `json:"attempts"`
	FailedAt     time.Time     `json:"failed_at"`
	CreatedAt    time.Time     `json:"created_at"`
	DrainedAt    *time.Time    `json:"drained_at,omitempty"`
}

// DeliveryFailure is a dead letter that could not be handed off.
type DeliveryFailure struct {
	EventID      string    `json:"event_id"`
	Subscription string    `json:"subscription"`
	Error        string    `json:"error"`
	FailedAt     time.Time `json:"failed_at"`
}
