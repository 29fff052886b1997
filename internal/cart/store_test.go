package cart

import (
	"errors"
	"fmt"
	"io"
	"log"
	"reflect"
	"testing"

	"printcart/internal/domain"
	cartrepo "printcart/internal/repository/cart"
	"printcart/internal/shipping"
)

type stubSlot struct {
	stored    []domain.CartLineItem
	loadErr   error
	saveErr   error
	saveCalls int
}

func (s *stubSlot) Load() ([]domain.CartLineItem, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	items := make([]domain.CartLineItem, len(s.stored))
	copy(items, s.stored)
	return items, nil
}

func (s *stubSlot) Save(items []domain.CartLineItem) error {
	s.saveCalls++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.stored = make([]domain.CartLineItem, len(items))
	copy(s.stored, items)
	return nil
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestStore(slot cartrepo.Slot) *Store {
	st := NewStore(slot, testLogger())
	seq := 0
	st.newLineID = func() string {
		seq++
		return fmt.Sprintf("line-%d", seq)
	}
	return st
}

func TestAddItemComputesTotals(t *testing.T) {
	st := newTestStore(&stubSlot{})

	line := st.AddItem(AddItemInput{
		ProductID:      "p1",
		Name:           "Flyers",
		Quantity:       3,
		UnitPriceCents: 10000,
	})
	if line.TotalPriceCents != 30000 {
		t.Fatalf("line total = %d, want 30000", line.TotalPriceCents)
	}

	sum := st.Summary()
	if sum.TotalAmountCents != 30000 || sum.TotalCount != 3 {
		t.Fatalf("unexpected summary %+v", sum)
	}
}

func TestAddItemNeverMerges(t *testing.T) {
	st := newTestStore(&stubSlot{})
	in := AddItemInput{ProductID: "p1", Name: "Flyers", Quantity: 1, UnitPriceCents: 500, Options: map[string]string{"paper": "170g"}}
	st.AddItem(in)
	st.AddItem(in)

	items := st.Items()
	if len(items) != 2 {
		t.Fatalf("expected two separate lines, got %d", len(items))
	}
	if items[0].LineID == items[1].LineID {
		t.Fatalf("line ids must be unique, both %q", items[0].LineID)
	}
}

func TestUpdateQuantityRecomputesTotal(t *testing.T) {
	st := newTestStore(&stubSlot{})
	line := st.AddItem(AddItemInput{ProductID: "p1", Name: "Flyers", Quantity: 3, UnitPriceCents: 10000})

	st.UpdateQuantity(line.LineID, 5)

	items := st.Items()
	if items[0].Quantity != 5 || items[0].TotalPriceCents != 50000 {
		t.Fatalf("unexpected line %+v", items[0])
	}
	if sum := st.Summary(); sum.TotalAmountCents != 50000 {
		t.Fatalf("summary amount = %d, want 50000", sum.TotalAmountCents)
	}
}

func TestUpdateQuantityInvalidIsNoOp(t *testing.T) {
	st := newTestStore(&stubSlot{})
	line := st.AddItem(AddItemInput{ProductID: "p1", Name: "Flyers", Quantity: 5, UnitPriceCents: 10000})
	before := st.Items()

	st.UpdateQuantity(line.LineID, 0)
	st.UpdateQuantity(line.LineID, -2)
	st.UpdateQuantity("missing", 4)

	if after := st.Items(); !reflect.DeepEqual(before, after) {
		t.Fatalf("cart changed:\n before %+v\n after %+v", before, after)
	}
}

func TestRemoveItemUnknownIsNoOp(t *testing.T) {
	st := newTestStore(&stubSlot{})
	st.AddItem(AddItemInput{ProductID: "p1", Name: "Flyers", Quantity: 1, UnitPriceCents: 500})
	before := st.Items()

	st.RemoveItem("missing")

	if after := st.Items(); !reflect.DeepEqual(before, after) {
		t.Fatalf("cart changed on unknown remove")
	}
}

func TestRemoveItem(t *testing.T) {
	st := newTestStore(&stubSlot{})
	first := st.AddItem(AddItemInput{ProductID: "p1", Name: "Flyers", Quantity: 1, UnitPriceCents: 500})
	second := st.AddItem(AddItemInput{ProductID: "p2", Name: "Posters", Quantity: 2, UnitPriceCents: 900})

	st.RemoveItem(first.LineID)

	items := st.Items()
	if len(items) != 1 || items[0].LineID != second.LineID {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestShippingCostFromTotalDesi(t *testing.T) {
	st := newTestStore(&stubSlot{})
	desi := 2.0
	in := AddItemInput{ProductID: "p1", Name: "Boxes", Quantity: 3, UnitPriceCents: 1000, Desi: &desi}
	st.AddItem(in)
	in.ProductID = "p2"
	st.AddItem(in)

	sum := st.Summary()
	if sum.TotalDesi != 12 {
		t.Fatalf("total desi = %v, want 12", sum.TotalDesi)
	}
	if sum.HasFreeShipping {
		t.Fatalf("subtotal %d should not reach free shipping", sum.TotalAmountCents)
	}
	if want := shipping.Cost(12); sum.ShippingCostCents != want {
		t.Fatalf("shipping = %d, want %d", sum.ShippingCostCents, want)
	}
	if sum.GrandTotalCents != sum.TotalAmountCents+sum.ShippingCostCents {
		t.Fatalf("grand total %d != %d + %d", sum.GrandTotalCents, sum.TotalAmountCents, sum.ShippingCostCents)
	}
}

func TestFreeShippingAtExactThreshold(t *testing.T) {
	st := newTestStore(&stubSlot{})
	desi := 3.0
	st.AddItem(AddItemInput{
		ProductID:      "p1",
		Name:           "Catalogs",
		Quantity:       1,
		UnitPriceCents: shipping.FreeShippingThresholdCents,
		Desi:           &desi,
	})

	sum := st.Summary()
	if !sum.HasFreeShipping {
		t.Fatalf("expected free shipping at exact threshold, got %+v", sum)
	}
	if sum.ShippingCostCents != 0 || sum.RemainingForFreeShippingCents != 0 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if sum.GrandTotalCents != sum.TotalAmountCents {
		t.Fatalf("grand total should equal subtotal, got %+v", sum)
	}
}

func TestClear(t *testing.T) {
	st := newTestStore(&stubSlot{})
	st.AddItem(AddItemInput{ProductID: "p1", Name: "Flyers", Quantity: 2, UnitPriceCents: 700})

	st.Clear()

	if items := st.Items(); len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}
	sum := st.Summary()
	if sum.TotalAmountCents != 0 || sum.ShippingCostCents != 0 || sum.GrandTotalCents != 0 {
		t.Fatalf("unexpected summary %+v", sum)
	}
}

func TestMutationsPersist(t *testing.T) {
	slot := &stubSlot{}
	st := newTestStore(slot)

	line := st.AddItem(AddItemInput{ProductID: "p1", Name: "Flyers", Quantity: 1, UnitPriceCents: 500})
	st.UpdateQuantity(line.LineID, 2)
	st.RemoveItem(line.LineID)
	st.Clear()

	if slot.saveCalls != 4 {
		t.Fatalf("expected 4 persisted writes, got %d", slot.saveCalls)
	}
	if len(slot.stored) != 0 {
		t.Fatalf("expected empty persisted cart, got %+v", slot.stored)
	}
}

func TestSaveFailureKeepsState(t *testing.T) {
	slot := &stubSlot{saveErr: errors.New("disk full")}
	st := newTestStore(slot)

	st.AddItem(AddItemInput{ProductID: "p1", Name: "Flyers", Quantity: 2, UnitPriceCents: 500})

	if items := st.Items(); len(items) != 1 || items[0].TotalPriceCents != 1000 {
		t.Fatalf("in-memory state lost after save failure: %+v", items)
	}
}

func TestLoadFailureStartsEmpty(t *testing.T) {
	slot := &stubSlot{loadErr: errors.New("io error")}
	st := NewStore(slot, testLogger())

	if items := st.Items(); len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}
}

func TestLoadedSnapshotReassertsTotals(t *testing.T) {
	slot := &stubSlot{stored: []domain.CartLineItem{{
		LineID:          "l1",
		ProductID:       "p1",
		Quantity:        4,
		UnitPriceCents:  250,
		TotalPriceCents: 999,
	}}}
	st := NewStore(slot, testLogger())

	items := st.Items()
	if items[0].TotalPriceCents != 1000 {
		t.Fatalf("total not re-derived from snapshot: %+v", items[0])
	}
}

func TestReturnedCopiesDoNotAliasStoreState(t *testing.T) {
	st := newTestStore(&stubSlot{})
	desi := 2.0
	input := AddItemInput{
		ProductID:      "p1",
		Name:           "Flyers",
		Quantity:       1,
		UnitPriceCents: 500,
		Options:        map[string]string{"paper": "350g"},
		Desi:           &desi,
	}
	returned := st.AddItem(input)

	// mutating the caller's payload after the add must not reach the cart
	input.Options["paper"] = "tampered"
	desi = 99

	// nor must mutating any returned copy
	returned.Options["paper"] = "tampered"
	*returned.Desi = 99
	leaked := st.Items()
	leaked[0].Options["paper"] = "tampered"
	*leaked[0].Desi = 99
	snapItems, _ := st.Snapshot()
	snapItems[0].Options["paper"] = "tampered"

	items := st.Items()
	if items[0].Options["paper"] != "350g" {
		t.Fatalf("store options mutated through a copy: %+v", items[0].Options)
	}
	if items[0].DesiValue() != 2.0 {
		t.Fatalf("store desi mutated through a copy: %v", items[0].DesiValue())
	}
	if sum := st.Summary(); sum.TotalDesi != 2.0 {
		t.Fatalf("summary sees mutated desi: %+v", sum)
	}
}

func TestSummaryMemoized(t *testing.T) {
	st := newTestStore(&stubSlot{})
	st.AddItem(AddItemInput{ProductID: "p1", Name: "Flyers", Quantity: 1, UnitPriceCents: 500})

	first := st.Summary()
	second := st.Summary()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("summary unstable without mutations: %+v vs %+v", first, second)
	}

	st.UpdateQuantity(st.Items()[0].LineID, 3)
	third := st.Summary()
	if third.TotalAmountCents != 1500 {
		t.Fatalf("summary stale after mutation: %+v", third)
	}
}
