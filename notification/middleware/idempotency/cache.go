package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"encore.dev/storage/cache"

	"bigmouth.app/notification/model"
)

// Cluster is the cache cluster backing idempotency records and delivery counters
var Cluster = cache.NewCluster("notification-cluster", cache.ClusterConfig{
	EvictionPolicy: cache.NoEviction,
})

// recordCache is the keyspace for storing idempotency records
var recordCache = cache.NewStructKeyspace[model.IdempotencyKey, model.IdempotencyRecord](
	Cluster,
	cache.KeyspaceConfig{
		KeyPattern:    "idempotency/:Scope/:Key",
		DefaultExpiry: cache.ExpireIn(time.Hour),
	},
)

type cacheStore struct {
	scope        string
	completedTTL time.Duration
	now          func() time.Time
}

// NewCacheStore returns a Store on the idempotency keyspace. Records for
// different scopes never collide; completed records live for completedTTL.
func NewCacheStore(scope string, completedTTL time.Duration) Store {
	return &cacheStore{
		scope:        scope,
		completedTTL: completedTTL,
		now:          time.Now,
	}
}

func (s *cacheStore) cacheKey(key string) model.IdempotencyKey {
	return model.IdempotencyKey{Scope: s.scope, Key: key}
}

func (s *cacheStore) Get(ctx context.Context, key string) (*model.IdempotencyRecord, error) {
	record, err := recordCache.Get(ctx, s.cacheKey(key))
	if err != nil {
		if errors.Is(err, cache.Miss) {
			return nil, nil
		}
		return nil, fmt.Errorf("get idempotency record %s: %w", key, err)
	}
	return &record, nil
}

func (s *cacheStore) PutIfAbsent(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	now := s.now()
	err := recordCache.With(cache.ExpireIn(ttl)).SetIfNotExists(ctx, s.cacheKey(key), model.IdempotencyRecord{
		Status:    model.IdempotencyStatusInProgress,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	})
	if err != nil {
		if errors.Is(err, cache.KeyExists) {
			return false, nil
		}
		return false, fmt.Errorf("put idempotency record %s: %w", key, err)
	}
	return true, nil
}

func (s *cacheStore) Complete(ctx context.Context, key string, result json.RawMessage) error {
	now := s.now()
	err := recordCache.With(cache.ExpireIn(s.completedTTL)).Set(ctx, s.cacheKey(key), model.IdempotencyRecord{
		Status:    model.IdempotencyStatusComplete,
		Result:    result,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.completedTTL),
	})
	if err != nil {
		return fmt.Errorf("complete idempotency record %s: %w", key, err)
	}
	return nil
}

func (s *cacheStore) Fail(ctx context.Context, key string) error {
	if _, err := recordCache.Delete(ctx, s.cacheKey(key)); err != nil {
		return fmt.Errorf("clear idempotency record %s: %w", key, err)
	}
	return nil
}
