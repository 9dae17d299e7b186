package recent

import (
	"context"
	"sync"
)

// MemoryRepository keeps lists in process memory.
type MemoryRepository struct {
	mu    sync.Mutex
	lists map[string][]int64
}

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{lists: make(map[string][]int64)}
}

func (r *MemoryRepository) List(_ context.Context, owner string) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64{}, r.lists[owner]...), nil
}

func (r *MemoryRepository) Add(_ context.Context, owner string, id int64) ([]int64, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists[owner] = Push(r.lists[owner], id)
	return append([]int64{}, r.lists[owner]...), nil
}

func (r *MemoryRepository) Remove(_ context.Context, owner string, id int64) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := Without(r.lists[owner], id)
	if len(next) == 0 {
		delete(r.lists, owner)
	} else {
		r.lists[owner] = next
	}
	return append([]int64{}, next...), nil
}

func (r *MemoryRepository) Clear(_ context.Context, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lists, owner)
	return nil
}
