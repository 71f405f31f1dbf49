package models

import "testing"

func TestHolding_InvestedAndValue(t *testing.T) {
	h := Holding{Symbol: "ABC", Quantity: 10, BuyPrice: 100, CurrentPrice: 120}
	if got := h.Invested(); got != 1000 {
		t.Errorf("Invested() = %v, want 1000", got)
	}
	if got := h.Value(); got != 1200 {
		t.Errorf("Value() = %v, want 1200", got)
	}

	var zero Holding
	if zero.Invested() != 0 || zero.Value() != 0 {
		t.Error("zero holding should have zero invested and value")
	}
}

func TestAllocation_Len(t *testing.T) {
	var nilAlloc *Allocation
	if nilAlloc.Len() != 0 {
		t.Error("nil allocation should have length 0")
	}
	a := &Allocation{Entries: []AllocationEntry{{Symbol: "A", Percent: 60}, {Symbol: "B", Percent: 40}}}
	if a.Len() != 2 {
		t.Errorf("Len() = %d, want 2", a.Len())
	}
}
