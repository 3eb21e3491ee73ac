package pricing

import "testing"

func TestComputeTotalStandardOnly(t *testing.T) {
	items := []Item{
		{Qty: 2, UnitPrice: 20},
		{Qty: 1, UnitPrice: 35.50},
	}
	got := ComputeTotal(items, Config{})
	if got.Total != 75.50 {
		t.Fatalf("expected total 75.50, got %v", got.Total)
	}
	if got.Bundle != 0 {
		t.Fatalf("expected empty bundle pool, got %v", got.Bundle)
	}
}

func TestComputeTotalBundlePoolIgnoresLineDistribution(t *testing.T) {
	cfg := Config{BundleUnitPrice: 25}
	pooled := []Item{{Qty: 2, BundleEligible: true}, {Qty: 4, BundleEligible: true}}
	single := []Item{{Qty: 6, BundleEligible: true}}

	a := ComputeTotal(pooled, cfg)
	b := ComputeTotal(single, cfg)
	if a.Total != 150 {
		t.Fatalf("expected pool total 150, got %v", a.Total)
	}
	if a.Total != b.Total {
		t.Fatalf("pool total depends on line distribution: %v vs %v", a.Total, b.Total)
	}
}

func TestComputeTotalBundleRemainderBilledAtBundlePrice(t *testing.T) {
	got := ComputeTotal([]Item{{Qty: 1, UnitPrice: 40, BundleEligible: true}}, Config{})
	if got.Bundle != DefaultBundleUnitPrice {
		t.Fatalf("single eligible unit should cost the bundle unit price, got %v", got.Bundle)
	}
}

func TestComputeTotalSurchargeAdditive(t *testing.T) {
	base := ComputeTotal([]Item{{Qty: 1, UnitPrice: 20, Size: "M"}}, Config{})
	plus := ComputeTotal([]Item{{Qty: 1, UnitPrice: 20, Size: "2XL"}}, Config{})
	if plus.Total-base.Total != DefaultPlusSizeSurcharge {
		t.Fatalf("expected surcharge delta %v, got %v", DefaultPlusSizeSurcharge, plus.Total-base.Total)
	}
	if plus.Total != 22.50 {
		t.Fatalf("expected line total 22.50, got %v", plus.Total)
	}
}

func TestComputeTotalSurchargeAppliesInsideBundlePool(t *testing.T) {
	got := ComputeTotal([]Item{{Qty: 3, Size: "3XL", BundleEligible: true}}, Config{})
	want := 3*DefaultBundleUnitPrice + 3*DefaultPlusSizeSurcharge
	if got.Total != want {
		t.Fatalf("expected %v, got %v", want, got.Total)
	}
}

func TestComputeTotalSkipsNonPositiveQuantities(t *testing.T) {
	got := ComputeTotal([]Item{{Qty: 0, UnitPrice: 10}, {Qty: -2, UnitPrice: 10}}, Config{})
	if got.Total != 0 {
		t.Fatalf("expected zero total, got %v", got.Total)
	}
}

func TestComputeTotalIdempotent(t *testing.T) {
	items := []Item{
		{Qty: 2, UnitPrice: 18.75, Size: "XXL"},
		{Qty: 5, BundleEligible: true},
	}
	first := ComputeTotal(items, Config{})
	second := ComputeTotal(items, Config{})
	if first != second {
		t.Fatalf("repeated computation diverged: %+v vs %+v", first, second)
	}
}

func TestPlusSizeTokens(t *testing.T) {
	qualifying := []string{"2XL", "2x", "xxl", "3XL Tall", "5x", "XXXXXL"}
	for _, size := range qualifying {
		if !PlusSize(size) {
			t.Fatalf("expected %q to qualify for surcharge", size)
		}
	}
	regular := []string{"", "S", "M", "L", "XL"}
	for _, size := range regular {
		if PlusSize(size) {
			t.Fatalf("expected %q not to qualify for surcharge", size)
		}
	}
}

func TestFinalTotalNeverNegative(t *testing.T) {
	if got := FinalTotal(10, 15); got != 0 {
		t.Fatalf("expected final total 0, got %v", got)
	}
	if got := FinalTotal(10, 4); got != 6 {
		t.Fatalf("expected final total 6, got %v", got)
	}
	if got := FinalTotal(10, 0); got != 10 {
		t.Fatalf("expected final total unchanged, got %v", got)
	}
}
