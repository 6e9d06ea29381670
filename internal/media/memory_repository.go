package media

import (
	"sort"
	"sync"
	"time"
)

// MemoryRepository is an in-memory catalog used by tests.
type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	items  []*Media
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

func (r *MemoryRepository) Insert(m *Media) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.ID = r.nextID
	r.nextID++
	m.CreatedAt = time.Now().Unix()

	stored := *m
	r.items = append(r.items, &stored)
	return nil
}

func (r *MemoryRepository) ListAll() ([]*Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]*Media, 0, len(r.items))
	for _, m := range r.items {
		copied := *m
		items = append(items, &copied)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt != items[j].CreatedAt {
			return items[i].CreatedAt > items[j].CreatedAt
		}
		return items[i].ID > items[j].ID
	})

	return items, nil
}

func (r *MemoryRepository) GetByID(id int64) (*Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.items {
		if m.ID == id {
			copied := *m
			return &copied, nil
		}
	}

	return nil, ErrNotFound
}
