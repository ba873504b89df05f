package watchlist

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is the default backend: a map guarded by a single
// lock. The lock is held only for map access, never across network calls,
// so a slow catalog lookup can never block the control API.
type InMemoryRepository struct {
	mu      sync.RWMutex
	entries map[string]*int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		entries: make(map[string]*int64),
	}
}

func (r *InMemoryRepository) Add(ctx context.Context, productID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[productID]; exists {
		return false, nil
	}
	r.entries[productID] = nil
	return true, nil
}

func (r *InMemoryRepository) ProductIDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *InMemoryRepository) LastPrice(ctx context.Context, productID string) (*int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	price, ok := r.entries[productID]
	if !ok || price == nil {
		return nil, nil
	}
	p := *price
	return &p, nil
}

func (r *InMemoryRepository) SetLastPrice(ctx context.Context, productID string, price int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := price
	r.entries[productID] = &p
	return nil
}

func (r *InMemoryRepository) Entries(ctx context.Context) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, len(r.entries))
	for id, price := range r.entries {
		e := Entry{ProductID: id}
		if price != nil {
			p := *price
			e.LastPrice = &p
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ProductID < entries[j].ProductID })
	return entries, nil
}
