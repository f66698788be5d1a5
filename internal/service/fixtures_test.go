package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/noah-isme/exam-portal/internal/models"
	"github.com/noah-isme/exam-portal/pkg/docstore"
)

// countingStore records every write that reaches the wrapped store.
type countingStore struct {
	docstore.Store
	writes int64
}

func newCountingStore() *countingStore {
	return &countingStore{Store: docstore.NewMemory()}
}

func (s *countingStore) Set(ctx context.Context, collection, id string, doc interface{}) error {
	atomic.AddInt64(&s.writes, 1)
	return s.Store.Set(ctx, collection, id, doc)
}

func (s *countingStore) Add(ctx context.Context, collection string, doc interface{}) (string, error) {
	atomic.AddInt64(&s.writes, 1)
	return s.Store.Add(ctx, collection, doc)
}

func (s *countingStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	atomic.AddInt64(&s.writes, 1)
	return s.Store.Update(ctx, collection, id, fields)
}

func (s *countingStore) Delete(ctx context.Context, collection, id string) error {
	atomic.AddInt64(&s.writes, 1)
	return s.Store.Delete(ctx, collection, id)
}

func (s *countingStore) Writes() int64 {
	return atomic.LoadInt64(&s.writes)
}

func principal(id string, role models.Role) *models.Principal {
	return &models.Principal{UserID: id, Email: id + "@example.com", Name: id, Role: role}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
