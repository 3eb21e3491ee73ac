package catalog

import "testing"

func TestRefNormalizesDualBundleFlags(t *testing.T) {
	cases := []struct {
		name     string
		promo    bool
		legacy   bool
		eligible bool
	}{
		{"neither", false, false, false},
		{"current only", true, false, true},
		{"legacy only", false, true, true},
		{"both", true, true, true},
	}
	for _, tc := range cases {
		p := Product{ID: "p1", BundlePromo: tc.promo, LegacyBundlePromo: tc.legacy}
		if got := p.Ref().BundleEligible; got != tc.eligible {
			t.Fatalf("%s: expected eligible=%v, got %v", tc.name, tc.eligible, got)
		}
	}
}

func TestRefCarriesPricingFields(t *testing.T) {
	p := Product{ID: "p2", Title: "Forge Tee", Slug: "forge-tee", UnitPrice: 19.95}
	ref := p.Ref()
	if ref.ID != "p2" || ref.Title != "Forge Tee" || ref.UnitPrice != 19.95 {
		t.Fatalf("ref lost pricing fields: %+v", ref)
	}
}
