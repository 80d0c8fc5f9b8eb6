package idempotency

import (
	"context"
	"encoding/json"
	"time"

	"bigmouth.app/notification/model"
)

// Store is the shared coordination point between concurrent deliveries.
// PutIfAbsent must be atomic: of two concurrent callers for the same key
// exactly one observes true.
type Store interface {
	Get(ctx context.Context, key string) (*model.IdempotencyRecord, error)
	PutIfAbsent(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Complete(ctx context.Context, key string, result json.RawMessage) error
	Fail(ctx context.Context, key string) error
}
