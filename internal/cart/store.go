// Package cart owns the canonical in-session line-item list and is its sole
// mutation surface. Invalid mutation input is absorbed as a no-op; the real
// validation for user input lives at the HTTP boundary.
package cart

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"printcart/internal/domain"
	cartrepo "printcart/internal/repository/cart"
	"printcart/internal/shipping"
)

// AddItemInput is an already-priced line item without its id. The unit price
// includes any selected-option price impact; the store never re-derives
// pricing from the product id.
type AddItemInput struct {
	ProductID      string
	Name           string
	ImageURL       string
	Quantity       int
	UnitPriceCents int64
	Options        map[string]string
	Desi           *float64
}

// Store holds one session's cart. Mutations are applied under a single
// mutex in invocation order and persisted to the slot after every change.
type Store struct {
	mu     sync.Mutex
	slot   cartrepo.Slot
	logger *log.Logger

	items   []domain.CartLineItem
	summary domain.CartSummary
	dirty   bool

	newLineID func() string
}

// NewStore builds a Store backed by slot, seeding items from the persisted
// snapshot. A failed load starts an empty cart instead of propagating.
func NewStore(slot cartrepo.Slot, logger *log.Logger) *Store {
	items, err := slot.Load()
	if err != nil {
		logger.Printf("load cart snapshot: %v, starting empty", err)
		items = nil
	}
	items = cloneLines(items)
	for i := range items {
		// re-assert the total-price law against drifted snapshots
		items[i].TotalPriceCents = items[i].UnitPriceCents * int64(items[i].Quantity)
	}
	return &Store{
		slot:      slot,
		logger:    logger,
		items:     items,
		dirty:     true,
		newLineID: uuid.NewString,
	}
}

// AddItem appends a new line with a fresh line id and returns it. Repeated
// adds of the same product and options stack as separate lines.
func (s *Store) AddItem(in AddItemInput) domain.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := domain.CartLineItem{
		LineID:          s.newLineID(),
		ProductID:       in.ProductID,
		Name:            in.Name,
		ImageURL:        in.ImageURL,
		Quantity:        in.Quantity,
		UnitPriceCents:  in.UnitPriceCents,
		TotalPriceCents: in.UnitPriceCents * int64(in.Quantity),
		Options:         in.Options,
		Desi:            in.Desi,
	}
	// the caller keeps its map and pointer; the cart owns its own copies
	line = line.Clone()
	s.items = append(s.items, line)
	s.changedLocked()
	return line.Clone()
}

// UpdateQuantity replaces the matching line's quantity and recomputes its
// total price in the same step. Quantities below 1 and unknown line ids
// leave the cart untouched.
func (s *Store) UpdateQuantity(lineID string, quantity int) {
	if quantity < 1 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].LineID == lineID {
			s.items[i].Quantity = quantity
			s.items[i].TotalPriceCents = s.items[i].UnitPriceCents * int64(quantity)
			s.changedLocked()
			return
		}
	}
}

// RemoveItem deletes the matching line; an unknown line id is a no-op.
func (s *Store) RemoveItem(lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].LineID == lineID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.changedLocked()
			return
		}
	}
}

// Clear empties the cart unconditionally. Checkout calls this once after
// the order was created server-side.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.changedLocked()
}

// Items returns a copy of the current line-item list.
func (s *Store) Items() []domain.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLines(s.items)
}

// Summary returns the derived totals for the current list. It is recomputed
// only when the list changed since the last call, and always as one
// consistent snapshot.
func (s *Store) Summary() domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryLocked()
}

// Snapshot returns the items and their summary from the same lock hold, so
// consumers never observe totals from a different list than the items.
func (s *Store) Snapshot() ([]domain.CartLineItem, domain.CartSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLines(s.items), s.summaryLocked()
}

func (s *Store) summaryLocked() domain.CartSummary {
	if !s.dirty {
		return s.summary
	}
	var sum domain.CartSummary
	for _, line := range s.items {
		sum.TotalCount += line.Quantity
		sum.TotalAmountCents += line.TotalPriceCents
		sum.TotalDesi += line.DesiValue() * float64(line.Quantity)
	}
	sum.RemainingForFreeShippingCents = shipping.RemainingForFreeShipping(sum.TotalAmountCents)
	sum.HasFreeShipping = sum.RemainingForFreeShippingCents == 0
	if !sum.HasFreeShipping {
		sum.ShippingCostCents = shipping.Cost(sum.TotalDesi)
	}
	sum.GrandTotalCents = sum.TotalAmountCents + sum.ShippingCostCents

	s.summary = sum
	s.dirty = false
	return sum
}

// changedLocked persists the new list and invalidates the summary. A failed
// write keeps the in-memory cart authoritative for the session.
func (s *Store) changedLocked() {
	s.dirty = true
	if err := s.slot.Save(cloneLines(s.items)); err != nil {
		s.logger.Printf("persist cart snapshot: %v", err)
	}
}

func cloneLines(items []domain.CartLineItem) []domain.CartLineItem {
	out := make([]domain.CartLineItem, len(items))
	for i, line := range items {
		out[i] = line.Clone()
	}
	return out
}
