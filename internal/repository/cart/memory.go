package cart

import (
	"sync"

	"printcart/internal/domain"
)

type memoryRepo struct {
	mu    sync.Mutex
	slots map[string][]domain.CartLineItem
}

// NewMemory returns an in-memory Repository for tests and ephemeral sessions.
func NewMemory() Repository {
	return &memoryRepo{slots: make(map[string][]domain.CartLineItem)}
}

func (r *memoryRepo) Slot(sessionID string) Slot {
	return &memorySlot{repo: r, key: sessionID}
}

type memorySlot struct {
	repo *memoryRepo
	key  string
}

func (s *memorySlot) Load() ([]domain.CartLineItem, error) {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	stored := s.repo.slots[s.key]
	items := make([]domain.CartLineItem, len(stored))
	for i, line := range stored {
		items[i] = line.Clone()
	}
	return items, nil
}

func (s *memorySlot) Save(items []domain.CartLineItem) error {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	stored := make([]domain.CartLineItem, len(items))
	for i, line := range items {
		stored[i] = line.Clone()
	}
	s.repo.slots[s.key] = stored
	return nil
}
