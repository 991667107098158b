package blobstore

import (
	"context"
	"sync"
)

type memoryObject struct {
	data        []byte
	contentType string
	meta        Metadata
}

// MemoryStore is an in-process ObjectStore used by tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]memoryObject)}
}

func (s *MemoryStore) Put(ctx context.Context, key string, data []byte, contentType string, meta Metadata) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[key] = memoryObject{data: buf, contentType: contentType, meta: meta.Clone()}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	if !ok {
		return nil, ErrNotFound
	}
	buf := make([]byte, len(obj.data))
	copy(buf, obj.data)
	return buf, nil
}

func (s *MemoryStore) Head(ctx context.Context, key string) (Metadata, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	if !ok {
		return nil, ErrNotFound
	}
	return obj.meta.Clone(), nil
}

func (s *MemoryStore) CopyWithMetadata(ctx context.Context, key string, meta Metadata) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[key]
	if !ok {
		return ErrNotFound
	}
	obj.meta = meta.Clone()
	s.objects[key] = obj
	return nil
}
