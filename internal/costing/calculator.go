package costing

import "errors"

// ErrMarginOutOfRange is returned when the requested margin makes the
// suggested-price formula undefined. Margin is margin-on-price, so the valid
// domain is strictly below 100 percent.
var ErrMarginOutOfRange = errors.New("costing: margin percentage must be below 100")

// Rates holds the per-unit cost inputs for a build estimate. PricePerGram and
// the hourly rates are decimal currency units; OverheadPercent is 0-100 and is
// applied on top of the direct cost sum.
type Rates struct {
	PricePerGram    float64
	EnergyRateHour  float64
	LaborRateHour   float64
	PackagingFlat   float64
	OverheadPercent float64
}

// Input describes a single build to estimate. LaborHours overrides the build
// duration for the labor component when set.
type Input struct {
	DurationHours float64
	MassGrams     float64
	LaborHours    *float64
	MarginPercent float64
}

// Breakdown is an immutable snapshot of a build cost estimate. All arithmetic
// is plain float64 with no rounding; display rounding belongs to the caller.
type Breakdown struct {
	MaterialCost   float64 `json:"materialCost"`
	EnergyCost     float64 `json:"energyCost"`
	LaborCost      float64 `json:"laborCost"`
	PackagingCost  float64 `json:"packagingCost"`
	OverheadCost   float64 `json:"overheadCost"`
	TotalCost      float64 `json:"totalCost"`
	SuggestedPrice float64 `json:"suggestedPrice"`
}

// Calculate derives the manufacturing cost breakdown and a suggested retail
// price from a target margin. The suggested price uses margin-on-price
// (total / (1 - margin/100)), not markup-on-cost. Margins at or above 100
// return ErrMarginOutOfRange instead of an undefined result.
func Calculate(rates Rates, in Input) (Breakdown, error) {
	if in.MarginPercent >= 100 {
		return Breakdown{}, ErrMarginOutOfRange
	}

	laborHours := in.DurationHours
	if in.LaborHours != nil {
		laborHours = *in.LaborHours
	}

	material := in.MassGrams * rates.PricePerGram
	energy := in.DurationHours * rates.EnergyRateHour
	labor := laborHours * rates.LaborRateHour
	packaging := rates.PackagingFlat

	direct := material + energy + labor + packaging
	overhead := direct * (rates.OverheadPercent / 100)
	total := direct + overhead

	return Breakdown{
		MaterialCost:   material,
		EnergyCost:     energy,
		LaborCost:      labor,
		PackagingCost:  packaging,
		OverheadCost:   overhead,
		TotalCost:      total,
		SuggestedPrice: total / (1 - in.MarginPercent/100),
	}, nil
}
