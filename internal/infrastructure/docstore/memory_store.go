package docstore

import (
	"context"
	"sync"

	domain "github.com/deikotec/socialflow/internal/domain/docstore"
	"github.com/deikotec/socialflow/internal/utils/idgen"
)

// MemoryStore is a thread-safe document store useful for local runs and tests.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: map[string]map[string]map[string]any{}}
}

// Get returns a copy of the stored document.
func (s *MemoryStore) Get(ctx context.Context, collection, id string) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.collections[collection][id]
	if !ok {
		return domain.Document{}, domain.NotFound(ctx, collection, id)
	}
	return domain.Document{ID: id, Data: domain.Clone(data)}, nil
}

// Set stores data, merging nested maps when merge is true.
func (s *MemoryStore) Set(ctx context.Context, collection, id string, data map[string]any, merge bool) error {
	normalized, err := normalizeMap(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collection(collection)
	existing, ok := docs[id]
	if merge && ok {
		domain.Merge(existing, normalized)
		return nil
	}
	docs[id] = normalized
	return nil
}

// Update writes dot-path fields of an existing document.
func (s *MemoryStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.collections[collection][id]
	if !ok {
		return domain.NotFound(ctx, collection, id)
	}
	for path, value := range fields {
		normalized, err := domain.Normalize(value)
		if err != nil {
			return err
		}
		domain.SetPath(existing, path, normalized)
	}
	return nil
}

// Query scans the collection.
func (s *MemoryStore) Query(ctx context.Context, collection string, q domain.Query) ([]domain.Document, error) {
	s.mu.RLock()
	docs := make([]domain.Document, 0, len(s.collections[collection]))
	for id, data := range s.collections[collection] {
		docs = append(docs, domain.Document{ID: id, Data: domain.Clone(data)})
	}
	s.mu.RUnlock()

	return domain.Apply(docs, q)
}

// NewID returns a fresh document id.
func (s *MemoryStore) NewID(collection string) string {
	return idgen.New("")
}

func (s *MemoryStore) collection(name string) map[string]map[string]any {
	docs, ok := s.collections[name]
	if !ok {
		docs = map[string]map[string]any{}
		s.collections[name] = docs
	}
	return docs
}

func normalizeMap(data map[string]any) (map[string]any, error) {
	normalized, err := domain.Normalize(data)
	if err != nil {
		return nil, err
	}
	m, _ := normalized.(map[string]any)
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}
