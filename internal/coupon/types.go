package coupon

import "context"

// Applied is the resolved discount attached to a cart session. The discount
// amount is stored verbatim from the validation service; nothing on this side
// re-derives it. Cleared on cart clear or explicit removal, never mutated.
type Applied struct {
	Code         string  `json:"code"`
	Kind         string  `json:"kind"`
	Value        float64 `json:"value"`
	Discount     float64 `json:"discount"`
	FreeShipping bool    `json:"freeShipping,omitempty"`
}

// Validator resolves a coupon code against the external validation service.
// The order total is submitted as context for percentage-based discounts.
type Validator interface {
	Validate(ctx context.Context, code string, orderTotal float64, userID string) (Applied, error)
}
