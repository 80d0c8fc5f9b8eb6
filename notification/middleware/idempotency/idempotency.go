package idempotency

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/buger/jsonparser"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"bigmouth.app/bus"
	"bigmouth.app/notification/model"
)

// ErrInProgress is returned when another delivery currently holds the key.
// The dispatch layer is expected to redeliver later.
var ErrInProgress = &errs.Error{Code: errs.Aborted, Message: "event is already being processed"}

// Handler processes one envelope and produces a result worth remembering.
type Handler[T any] func(ctx context.Context, env *bus.Envelope) (T, error)

// KeyFunc extracts the idempotency key from an envelope.
type KeyFunc func(env *bus.Envelope) (string, error)

// KeyFromDetail returns a KeyFunc reading the value at path inside the
// envelope detail. String and number values are accepted.
func KeyFromDetail(path ...string) KeyFunc {
	return func(env *bus.Envelope) (string, error) {
		value, dataType, _, err := jsonparser.Get(env.Detail, path...)
		if err != nil {
			return "", fmt.Errorf("idempotency key %v not found in event %s: %w", path, env.ID, err)
		}

		switch dataType {
		case jsonparser.String:
			key, err := jsonparser.ParseString(value)
			if err != nil {
				return "", fmt.Errorf("idempotency key %v in event %s: %w", path, env.ID, err)
			}
			if key == "" {
				return "", fmt.Errorf("idempotency key %v is empty in event %s", path, env.ID)
			}
			return key, nil
		case jsonparser.Number:
			return string(value), nil
		default:
			return "", fmt.Errorf("idempotency key %v in event %s has unsupported type %s", path, env.ID, dataType)
		}
	}
}

// WithSuffix derives a sub-key so a single event can own several
// independently idempotent steps.
func WithSuffix(key KeyFunc, suffix string) KeyFunc {
	return func(env *bus.Envelope) (string, error) {
		k, err := key(env)
		if err != nil {
			return "", err
		}
		return k + "#" + suffix, nil
	}
}

// Middleware holds the store and in-progress expiry shared by every wrapped handler.
type Middleware struct {
	store         Store
	inProgressTTL time.Duration
	now           func() time.Time
}

func New(store Store, inProgressTTL time.Duration) *Middleware {
	return &Middleware{
		store:         store,
		inProgressTTL: inProgressTTL,
		now:           time.Now,
	}
}

// Wrap returns next guarded by an idempotency check on key. A completed key
// short-circuits to the stored result, an in-flight key fails fast with
// ErrInProgress, and a failed run clears the key so redelivery retries it.
func Wrap[T any](m *Middleware, key KeyFunc, next Handler[T]) Handler[T] {
	return func(ctx context.Context, env *bus.Envelope) (T, error) {
		var zero T

		idempotencyKey, err := key(env)
		if err != nil {
			return zero, &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
		}

		record, err := m.store.Get(ctx, idempotencyKey)
		if err != nil {
			rlog.Error("Failed to check idempotency", "error", err, "key", idempotencyKey)
			return zero, &errs.Error{Code: errs.Internal, Message: "failed to check idempotency"}
		}

		if record != nil {
			if result, done, err := handleExistingRecord[T](ctx, m, idempotencyKey, record); done {
				return result, err
			}
		}

		acquired, err := m.store.PutIfAbsent(ctx, idempotencyKey, m.inProgressTTL)
		if err != nil {
			rlog.Error("Failed to mark event as processing", "error", err, "key", idempotencyKey)
			return zero, &errs.Error{Code: errs.Internal, Message: "failed to mark event as processing"}
		}
		if !acquired {
			return handleLostRace[T](ctx, m, idempotencyKey)
		}

		result, err := next(ctx, env)
		if err != nil {
			clearRecord(ctx, m, idempotencyKey)
			return zero, err
		}

		markAsCompleted(ctx, m, idempotencyKey, result)
		return result, nil
	}
}

// handleExistingRecord resolves a delivery whose key is already known. done is
// false when the record turned out to be stale and processing should proceed.
func handleExistingRecord[T any](ctx context.Context, m *Middleware, key string, record *model.IdempotencyRecord) (result T, done bool, err error) {
	switch record.Status {
	case model.IdempotencyStatusComplete:
		result, err = decodeResult[T](key, record)
		if err != nil {
			// side effects already happened; a lost result must not repeat them
			rlog.Error("Failed to decode stored result", "error", err, "key", key)
		}
		rlog.Info("Returning stored result for duplicate event", "key", key)
		return result, true, nil
	case model.IdempotencyStatusInProgress:
		if record.Expired(m.now()) {
			rlog.Warn("In-progress record expired, reprocessing", "key", key)
			clearRecord(ctx, m, key)
			return result, false, nil
		}
		rlog.Info("Concurrent delivery detected", "key", key)
		return result, true, ErrInProgress
	default:
		rlog.Warn("Unknown idempotency status, processing as new event", "key", key, "status", record.Status)
		clearRecord(ctx, m, key)
		return result, false, nil
	}
}

// handleLostRace re-reads the record after another delivery won PutIfAbsent.
func handleLostRace[T any](ctx context.Context, m *Middleware, key string) (T, error) {
	var zero T

	record, err := m.store.Get(ctx, key)
	if err != nil || record == nil || record.Status != model.IdempotencyStatusComplete {
		rlog.Info("Concurrent delivery detected", "key", key)
		return zero, ErrInProgress
	}

	result, err := decodeResult[T](key, record)
	if err != nil {
		rlog.Error("Failed to decode stored result", "error", err, "key", key)
	}
	return result, nil
}

func decodeResult[T any](key string, record *model.IdempotencyRecord) (T, error) {
	var result T
	if len(record.Result) == 0 {
		return result, nil
	}
	if err := json.Unmarshal(record.Result, &result); err != nil {
		return result, fmt.Errorf("decode stored result for %s: %w", key, err)
	}
	return result, nil
}

// clearRecord removes the record to allow a retry
func clearRecord(ctx context.Context, m *Middleware, key string) {
	if err := m.store.Fail(ctx, key); err != nil {
		rlog.Error("Failed to clear idempotency record", "error", err, "key", key)
	}
}

// markAsCompleted stores the successful result
func markAsCompleted[T any](ctx context.Context, m *Middleware, key string, result T) {
	payload, err := json.Marshal(result)
	if err != nil {
		rlog.Error("Failed to marshal result for storing", "error", err, "key", key)
		payload = nil
	}

	if err := m.store.Complete(ctx, key, payload); err != nil {
		rlog.Error("Failed to mark event as completed", "error", err, "key", key)
		return
	}

	rlog.Debug("Event completed and result stored", "key", key)
}
