package cart

import (
	"testing"

	"github.com/craftel-io/backend-craftel/internal/coupon"
	"github.com/craftel-io/backend-craftel/internal/pricing"
)

func TestAddLineMergesIdenticalConfiguration(t *testing.T) {
	var state State
	first := state.AddLine(Line{ProductID: "p1", Qty: 1, Size: "M", Color: "black", PaymentMethod: "card"})
	second := state.AddLine(Line{ProductID: "p1", Qty: 2, Size: "M", Color: "black", PaymentMethod: "card"})

	if len(state.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(state.Items))
	}
	if second.ID != first.ID {
		t.Fatalf("merge must keep the original line id")
	}
	if state.Items[0].Qty != 3 {
		t.Fatalf("expected merged quantity 3, got %d", state.Items[0].Qty)
	}
}

func TestAddLineAnyDifferingFieldSplitsLines(t *testing.T) {
	base := Line{ProductID: "p1", Qty: 1, Size: "M", Color: "black", CustomDesignRef: "d1", PaymentMethod: "card"}
	variants := []Line{
		{ProductID: "p2", Qty: 1, Size: "M", Color: "black", CustomDesignRef: "d1", PaymentMethod: "card"},
		{ProductID: "p1", Qty: 1, Size: "L", Color: "black", CustomDesignRef: "d1", PaymentMethod: "card"},
		{ProductID: "p1", Qty: 1, Size: "M", Color: "white", CustomDesignRef: "d1", PaymentMethod: "card"},
		{ProductID: "p1", Qty: 1, Size: "M", Color: "black", CustomDesignRef: "d2", PaymentMethod: "card"},
		{ProductID: "p1", Qty: 1, Size: "M", Color: "black", CustomDesignRef: "d1", PaymentMethod: "credit"},
	}
	for i, variant := range variants {
		var state State
		state.AddLine(base)
		state.AddLine(variant)
		if len(state.Items) != 2 {
			t.Fatalf("variant %d: expected two distinct lines, got %d", i, len(state.Items))
		}
	}
}

func TestSetQuantityFloorRemovesLine(t *testing.T) {
	var state State
	line := state.AddLine(Line{ProductID: "p1", Qty: 2})

	if !state.SetQuantity(line.ID, 0) {
		t.Fatal("expected the line to be found")
	}
	if len(state.Items) != 0 {
		t.Fatalf("line with zero quantity must be removed, got %d items", len(state.Items))
	}

	line = state.AddLine(Line{ProductID: "p1", Qty: 2})
	state.SetQuantity(line.ID, -1)
	if len(state.Items) != 0 {
		t.Fatal("negative quantity must remove the line as well")
	}
}

func TestRemoveLineAbsentIsNoop(t *testing.T) {
	var state State
	state.AddLine(Line{ProductID: "p1", Qty: 1})
	state.RemoveLine("missing")
	if len(state.Items) != 1 {
		t.Fatalf("removing an absent line must not touch other lines, got %d", len(state.Items))
	}
}

func TestClearDropsItemsAndCoupon(t *testing.T) {
	var state State
	state.AddLine(Line{ProductID: "p1", Qty: 1})
	state.Coupon = &coupon.Applied{Code: "SAVE10", Discount: 10}

	state.Clear()
	if len(state.Items) != 0 || state.Coupon != nil {
		t.Fatalf("clear must drop items and coupon, got %+v", state)
	}
}

func TestSummarizeAppliesDiscountWithFloor(t *testing.T) {
	var state State
	state.AddLine(Line{ProductID: "p1", Qty: 1, UnitPrice: 10})
	state.Coupon = &coupon.Applied{Code: "BIG", Discount: 15}

	summary := state.Summarize(pricing.Config{})
	if summary.Pricing.Total != 10 {
		t.Fatalf("expected pre-coupon total 10, got %v", summary.Pricing.Total)
	}
	if summary.FinalTotal != 0 {
		t.Fatalf("final total must floor at zero, got %v", summary.FinalTotal)
	}
}
