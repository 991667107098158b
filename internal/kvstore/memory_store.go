package kvstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is an in-process Store used by tests and local development.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]Record)}
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (Record, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.Clone(), nil
}

func (s *MemoryStore) Put(ctx context.Context, collection string, rec Record) error {
	_ = ctx
	id := rec.ID()
	if id == "" {
		return fmt.Errorf("put %s: record has no id", collection)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]Record)
	}
	s.collections[collection][id] = rec.Clone()
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, changes map[string]string) (Record, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}

	updated := rec.Clone()
	for k, v := range changes {
		updated[k] = v
	}
	s.collections[collection][id] = updated
	return updated.Clone(), nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], id)
	return nil
}

func (s *MemoryStore) Scan(ctx context.Context, collection string, pred func(Record) bool) ([]Record, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.collections[collection]))
	for id := range s.collections[collection] {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	records := make([]Record, 0, len(ids))
	for _, id := range ids {
		rec := s.collections[collection][id]
		if pred == nil || pred(rec) {
			records = append(records, rec.Clone())
		}
	}
	return records, nil
}
