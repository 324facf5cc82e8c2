package store

import (
	"context"
	"sort"
	"sync"

	"github.com/catalog-lab/catalog-api/pkg/model"
)

// MemoryStore is a mutex-guarded in-memory Store with the same semantics
// as DynamoStore. It backs tests and local development (CATALOG_STORE=memory).
type MemoryStore struct {
	mu       sync.RWMutex
	products map[string]model.Product
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{products: make(map[string]model.Product)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) PutIfAbsent(_ context.Context, p model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.ID]; exists {
		return ErrAlreadyExists
	}
	s.products[p.ID] = p
	return nil
}

func (s *MemoryStore) Update(_ context.Context, id string, patch model.ProductPatch) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	updated := patch.Apply(cur)
	s.products[id] = updated
	return &updated, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.products, id)
	return nil
}

func (s *MemoryStore) Scan(_ context.Context, opts ScanOptions) ([]model.Product, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Stable id order so pagination cursors behave deterministically.
	ids := make([]string, 0, len(s.products))
	for id := range s.products {
		if opts.Cursor != "" && id <= opts.Cursor {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if opts.Limit > 0 && int32(len(ids)) > opts.Limit {
		ids = ids[:opts.Limit]
	}

	products := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		products = append(products, s.products[id])
	}

	cursor := ""
	if opts.Limit > 0 && int32(len(products)) == opts.Limit {
		remaining := false
		last := ids[len(ids)-1]
		for id := range s.products {
			if id > last {
				remaining = true
				break
			}
		}
		if remaining {
			cursor = last
		}
	}
	return products, cursor, nil
}

func (s *MemoryStore) HealthCheck(_ context.Context) error {
	return nil
}
