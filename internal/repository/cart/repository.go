package cart

import "printcart/internal/domain"

// Slot is a single persisted cart snapshot: a JSON-encoded array of line
// items under one namespaced key. Load degrades to an empty list when the
// key is missing or the payload is unreadable; it never fails the caller
// for malformed data.
type Slot interface {
	Load() ([]domain.CartLineItem, error)
	Save(items []domain.CartLineItem) error
}

// Repository hands out one slot per session.
type Repository interface {
	Slot(sessionID string) Slot
}
