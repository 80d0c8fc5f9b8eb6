// Package idempotencytest provides an in-memory idempotency.Store for tests.
package idempotencytest

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"bigmouth.app/notification/model"
)

// Store keeps records in memory and honors time-to-live like the cache does.
// The *Err fields inject failures into the matching operation.
type Store struct {
	mu      sync.Mutex
	records map[string]model.IdempotencyRecord

	CompletedTTL time.Duration
	Now          func() time.Time

	GetErr      error
	PutErr      error
	CompleteErr error
	FailErr     error
}

func NewStore() *Store {
	return &Store{
		records:      make(map[string]model.IdempotencyRecord),
		CompletedTTL: time.Hour,
		Now:          time.Now,
	}
}

func (s *Store) Get(ctx context.Context, key string) (*model.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.GetErr != nil {
		return nil, s.GetErr
	}
	record, ok := s.live(key)
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (s *Store) PutIfAbsent(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.PutErr != nil {
		return false, s.PutErr
	}
	if _, ok := s.live(key); ok {
		return false, nil
	}

	now := s.Now()
	s.records[key] = model.IdempotencyRecord{
		Status:    model.IdempotencyStatusInProgress,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	return true, nil
}

func (s *Store) Complete(ctx context.Context, key string, result json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CompleteErr != nil {
		return s.CompleteErr
	}

	now := s.Now()
	s.records[key] = model.IdempotencyRecord{
		Status:    model.IdempotencyStatusComplete,
		Result:    result,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.CompletedTTL),
	}
	return nil
}

func (s *Store) Fail(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailErr != nil {
		return s.FailErr
	}
	delete(s.records, key)
	return nil
}

// Put seeds a record directly, bypassing the atomic insert.
func (s *Store) Put(key string, record model.IdempotencyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = record
}

// Record returns the live record for key, if any.
func (s *Store) Record(key string) (model.IdempotencyRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live(key)
}

func (s *Store) live(key string) (model.IdempotencyRecord, bool) {
	record, ok := s.records[key]
	if !ok {
		return record, false
	}
	if record.Expired(s.Now()) {
		delete(s.records, key)
		return record, false
	}
	return record, true
}
