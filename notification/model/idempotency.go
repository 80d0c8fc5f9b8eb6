package model

import (
	"encoding/json"
	"time"
)

// IdempotencyKey represents the cache key structure
type IdempotencyKey struct {
	Scope string
	Key   string
}

type IdempotencyStatus string

const (
	IdempotencyStatusInProgress IdempotencyStatus = "IN_PROGRESS"
	IdempotencyStatusComplete   IdempotencyStatus = "COMPLETE"
)

// IdempotencyRecord represents what we store per idempotency key
type IdempotencyRecord struct {
	Status    IdempotencyStatus `json:"status"`
	Result    json.RawMessage   `json:"result,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// Expired reports whether the record outlived its time-to-live at now.
func (r IdempotencyRecord) Expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && !now.Before(r.ExpiresAt)
}
