package cart

import (
	"log"
	"sync"

	cartstore "printcart/internal/cart"
	"printcart/internal/domain"
	cartrepo "printcart/internal/repository/cart"
)

// Service resolves sessions to their cart stores. Each session gets one
// store for the life of the process, lazily loaded from its slot on first
// use, so mutations within a session always hit the same single-writer
// store.
type Service struct {
	mu     sync.Mutex
	repo   cartrepo.Repository
	logger *log.Logger
	stores map[string]*cartstore.Store
}

func New(repo cartrepo.Repository, logger *log.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		stores: make(map[string]*cartstore.Store),
	}
}

func (s *Service) forSession(sessionID string) *cartstore.Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stores[sessionID]
	if !ok {
		st = cartstore.NewStore(s.repo.Slot(sessionID), s.logger)
		s.stores[sessionID] = st
	}
	return st
}

// AddItem appends an already-priced line item to the session's cart.
func (s *Service) AddItem(sessionID string, in cartstore.AddItemInput) domain.CartLineItem {
	return s.forSession(sessionID).AddItem(in)
}

// UpdateQuantity changes a line's quantity; invalid input is a no-op.
func (s *Service) UpdateQuantity(sessionID, lineID string, quantity int) {
	s.forSession(sessionID).UpdateQuantity(lineID, quantity)
}

// RemoveItem deletes a line; an unknown id is a no-op.
func (s *Service) RemoveItem(sessionID, lineID string) {
	s.forSession(sessionID).RemoveItem(lineID)
}

// Clear empties the session's cart after checkout created the order.
func (s *Service) Clear(sessionID string) {
	s.forSession(sessionID).Clear()
}

// Snapshot returns the session's items and summary as one consistent view.
func (s *Service) Snapshot(sessionID string) ([]domain.CartLineItem, domain.CartSummary) {
	return s.forSession(sessionID).Snapshot()
}
