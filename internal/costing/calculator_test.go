package costing

import (
	"errors"
	"testing"
)

var testRates = Rates{
	PricePerGram:    0.05,
	EnergyRateHour:  0.40,
	LaborRateHour:   12,
	PackagingFlat:   1.50,
	OverheadPercent: 10,
}

func TestCalculateComponents(t *testing.T) {
	got, err := Calculate(testRates, Input{DurationHours: 4, MassGrams: 120, MarginPercent: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MaterialCost != 6 {
		t.Fatalf("material: expected 6, got %v", got.MaterialCost)
	}
	if got.EnergyCost != 1.6 {
		t.Fatalf("energy: expected 1.6, got %v", got.EnergyCost)
	}
	if got.LaborCost != 48 {
		t.Fatalf("labor: expected 48, got %v", got.LaborCost)
	}
	if got.PackagingCost != 1.5 {
		t.Fatalf("packaging: expected 1.5, got %v", got.PackagingCost)
	}
	direct := got.MaterialCost + got.EnergyCost + got.LaborCost + got.PackagingCost
	if got.OverheadCost != direct*0.10 {
		t.Fatalf("overhead: expected %v, got %v", direct*0.10, got.OverheadCost)
	}
	if got.TotalCost != direct+got.OverheadCost {
		t.Fatalf("total: expected %v, got %v", direct+got.OverheadCost, got.TotalCost)
	}
	if got.SuggestedPrice != got.TotalCost/0.5 {
		t.Fatalf("suggested price: expected %v, got %v", got.TotalCost/0.5, got.SuggestedPrice)
	}
}

func TestCalculateLaborOverride(t *testing.T) {
	override := 0.5
	got, err := Calculate(testRates, Input{DurationHours: 8, MassGrams: 10, LaborHours: &override})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.LaborCost != 6 {
		t.Fatalf("labor should use the override duration: expected 6, got %v", got.LaborCost)
	}
	if got.EnergyCost != 8*testRates.EnergyRateHour {
		t.Fatalf("energy must still scale with build duration, got %v", got.EnergyCost)
	}
}

func TestCalculateDeterministic(t *testing.T) {
	in := Input{DurationHours: 3.25, MassGrams: 87.5, MarginPercent: 35}
	first, err := Calculate(testRates, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Calculate(testRates, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("repeated calculation diverged: %+v vs %+v", first, second)
	}
}

func TestCalculateMarginDomain(t *testing.T) {
	for _, margin := range []float64{100, 120} {
		if _, err := Calculate(testRates, Input{DurationHours: 1, MarginPercent: margin}); !errors.Is(err, ErrMarginOutOfRange) {
			t.Fatalf("margin %v: expected ErrMarginOutOfRange, got %v", margin, err)
		}
	}
	if _, err := Calculate(testRates, Input{DurationHours: 1, MarginPercent: 99.9}); err != nil {
		t.Fatalf("margin just below 100 should be accepted, got %v", err)
	}
}
