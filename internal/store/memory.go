package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps documents in process. Reads and writes copy field maps so
// callers never share state with the store.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]Document)}
}

func (s *MemoryStore) ReadAll(ctx context.Context, collection string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.collections[collection]
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, Document{ID: d.ID, Fields: cloneFields(d.Fields)})
	}
	return out, nil
}

func (s *MemoryStore) ReadWhere(ctx context.Context, collection, field string, value any) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Document, 0)
	for _, d := range s.collections[collection] {
		if matches(d.Fields, field, value) {
			out = append(out, Document{ID: d.ID, Fields: cloneFields(d.Fields)})
		}
	}
	return out, nil
}

func (s *MemoryStore) Read(ctx context.Context, collection, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.collections[collection] {
		if d.ID == id {
			return Document{ID: d.ID, Fields: cloneFields(d.Fields)}, nil
		}
	}
	return Document{}, fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
}

func (s *MemoryStore) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = append(s.collections[collection], Document{ID: id, Fields: cloneFields(fields)})
	return id, nil
}

func (s *MemoryStore) UpdateField(ctx context.Context, collection, id, field string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.collections[collection] {
		if d.ID == id {
			if d.Fields == nil {
				return fmt.Errorf("%s/%s: body is not a document", collection, id)
			}
			setPath(d.Fields, field, cloneValue(value))
			return nil
		}
	}
	return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i, d := range docs {
		if d.ID == id {
			s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
}

// Put stores a document under a caller-chosen id, replacing any existing one.
// Seeders and tests use it; a nil fields value records an undecodable body.
func (s *MemoryStore) Put(collection, id string, fields map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i, d := range docs {
		if d.ID == id {
			docs[i].Fields = cloneFields(fields)
			return
		}
	}
	s.collections[collection] = append(docs, Document{ID: id, Fields: cloneFields(fields)})
}
