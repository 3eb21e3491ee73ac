package pricing

import "strings"

// Item describes a line item used for total calculation. BundleEligible is the
// canonical flag derived at the catalog boundary; the engine never looks at the
// legacy source fields itself.
type Item struct {
	Qty            int
	UnitPrice      float64
	Size           string
	BundleEligible bool
}

// Summary aggregates computed pricing components. Standard and Bundle are base
// amounts for their pools; Surcharge is the plus-size amount across both pools.
type Summary struct {
	Standard  float64
	Bundle    float64
	Surcharge float64
	Total     float64
}

// Config carries the promotional pricing parameters. Amounts are decimal
// currency units.
type Config struct {
	BundleSize        int
	BundleUnitPrice   float64
	PlusSizeSurcharge float64
}

// Defaults for the promotional rules when the config leaves them unset.
const (
	DefaultBundleSize        = 3
	DefaultBundleUnitPrice   = 25.0
	DefaultPlusSizeSurcharge = 2.50
)

func (c Config) bundleSize() int {
	if c.BundleSize <= 0 {
		return DefaultBundleSize
	}
	return c.BundleSize
}

func (c Config) bundleUnitPrice() float64 {
	if c.BundleUnitPrice <= 0 {
		return DefaultBundleUnitPrice
	}
	return c.BundleUnitPrice
}

func (c Config) surchargeAmount() float64 {
	if c.PlusSizeSurcharge < 0 {
		return 0
	}
	if c.PlusSizeSurcharge == 0 {
		return DefaultPlusSizeSurcharge
	}
	return c.PlusSizeSurcharge
}

// plusSizeTokens are matched as substrings of the upper-cased size tag. Any
// match triggers the same flat surcharge.
var plusSizeTokens = []string{
	"2XL", "2X", "XXL",
	"3XL", "3X", "XXXL",
	"4XL", "4X", "XXXXL",
	"5XL", "5X", "XXXXXL",
}

// PlusSize reports whether the size tag qualifies for the flat surcharge.
func PlusSize(size string) bool {
	if size == "" {
		return false
	}
	upper := strings.ToUpper(size)
	for _, token := range plusSizeTokens {
		if strings.Contains(upper, token) {
			return true
		}
	}
	return false
}

// ComputeTotal prices the cart. Items are partitioned into the bundle-eligible
// pool, where every unit is billed at the flat bundle unit price regardless of
// how quantities are distributed across lines, and the standard pool, billed at
// each line's unit price. The plus-size surcharge applies per qualifying unit
// in either pool on top of the base amount.
func ComputeTotal(items []Item, cfg Config) Summary {
	var (
		standard   float64
		surcharge  float64
		bundleQty  int
		unitCharge = cfg.surchargeAmount()
	)
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		if it.BundleEligible {
			bundleQty += it.Qty
		} else {
			standard += float64(it.Qty) * it.UnitPrice
		}
		if PlusSize(it.Size) {
			surcharge += float64(it.Qty) * unitCharge
		}
	}

	var bundle float64
	if bundleQty > 0 {
		size := cfg.bundleSize()
		price := cfg.bundleUnitPrice()
		groups := bundleQty / size
		remainder := bundleQty % size
		// Remainder units are billed at the bundle unit price too; the pool is
		// never split back to full price.
		bundle = float64(groups*size)*price + float64(remainder)*price
	}

	return Summary{
		Standard:  standard,
		Bundle:    bundle,
		Surcharge: surcharge,
		Total:     standard + bundle + surcharge,
	}
}

// FinalTotal applies a resolved coupon discount to the computed total. The
// result never goes negative.
func FinalTotal(total, discount float64) float64 {
	if discount <= 0 {
		return total
	}
	final := total - discount
	if final < 0 {
		return 0
	}
	return final
}
