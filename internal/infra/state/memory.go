package state

import (
	"context"
	"sync"

	"storefront-cart/internal/domain/cart"
)

// MemoryRepository keeps the persisted state in process memory. Used as the
// default backend in tests and for ephemeral deployments.
type MemoryRepository struct {
	mu    sync.RWMutex
	state cart.State
	saved bool
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Load(_ context.Context) (cart.State, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.saved {
		return cart.NewState(), false, nil
	}
	return r.state, true, nil
}

func (r *MemoryRepository) Save(_ context.Context, st cart.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = st
	r.saved = true
	return nil
}
