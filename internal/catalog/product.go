package catalog

// Product mirrors a catalog row, including both legacy bundle-promo columns.
// Older rows carry the flag under LegacyBundlePromo only; either field makes
// the product bundle eligible.
type Product struct {
	ID                string
	Title             string
	Slug              string
	UnitPrice         float64
	BundlePromo       bool
	LegacyBundlePromo bool
}

// Ref is the read-only product view consumed by the pricing engine. The dual
// legacy flags are collapsed into one canonical boolean here so the arithmetic
// never has to check both sources.
type Ref struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Slug           string  `json:"slug,omitempty"`
	UnitPrice      float64 `json:"unitPrice"`
	BundleEligible bool    `json:"bundleEligible"`
}

// Ref derives the canonical pricing view of the product.
func (p Product) Ref() Ref {
	return Ref{
		ID:             p.ID,
		Title:          p.Title,
		Slug:           p.Slug,
		UnitPrice:      p.UnitPrice,
		BundleEligible: p.BundlePromo || p.LegacyBundlePromo,
	}
}
