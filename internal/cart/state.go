package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/craftel-io/backend-craftel/internal/coupon"
	"github.com/craftel-io/backend-craftel/internal/pricing"
)

// Line is one cart entry. The id is assigned at insertion and is not a
// business key; identity for merging is the attribute tuple below.
type Line struct {
	ID              string  `json:"id"`
	ProductID       string  `json:"productId"`
	Title           string  `json:"title,omitempty"`
	UnitPrice       float64 `json:"unitPrice"`
	Qty             int     `json:"qty"`
	Size            string  `json:"size,omitempty"`
	Color           string  `json:"color,omitempty"`
	CustomDesignRef string  `json:"customDesignRef,omitempty"`
	PaymentMethod   string  `json:"paymentMethod,omitempty"`
	BundleEligible  bool    `json:"bundleEligible"`
}

// mergesWith reports whether two lines are the same configuration. Two
// otherwise identical lines paid with different methods stay distinct.
func (l Line) mergesWith(other Line) bool {
	return l.ProductID == other.ProductID &&
		l.CustomDesignRef == other.CustomDesignRef &&
		l.Size == other.Size &&
		l.Color == other.Color &&
		l.PaymentMethod == other.PaymentMethod
}

// State is one cart session. The total is never stored; it is recomputed from
// the items on every read so it cannot drift.
type State struct {
	ID        string          `json:"id"`
	Items     []Line          `json:"items"`
	Coupon    *coupon.Applied `json:"coupon,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// AddLine merges into an existing matching line or appends a new one. The
// quantity is taken as-is; a non-positive quantity still produces a line,
// which SetQuantity can later remove.
func (s *State) AddLine(line Line) Line {
	for i := range s.Items {
		if s.Items[i].mergesWith(line) {
			s.Items[i].Qty += line.Qty
			return s.Items[i]
		}
	}
	line.ID = uuid.NewString()
	s.Items = append(s.Items, line)
	return line
}

// RemoveLine drops the line with the given id. Removing an absent line is a
// no-op, not an error.
func (s *State) RemoveLine(lineID string) {
	for i := range s.Items {
		if s.Items[i].ID == lineID {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return
		}
	}
}

// SetQuantity updates the line quantity. A quantity at or below zero removes
// the line entirely. It reports whether the line existed.
func (s *State) SetQuantity(lineID string, qty int) bool {
	for i := range s.Items {
		if s.Items[i].ID != lineID {
			continue
		}
		if qty <= 0 {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return true
		}
		s.Items[i].Qty = qty
		return true
	}
	return false
}

// Clear empties the cart and drops any applied coupon.
func (s *State) Clear() {
	s.Items = nil
	s.Coupon = nil
}

// PricingItems projects the cart lines into the pricing engine's input shape.
func (s State) PricingItems() []pricing.Item {
	items := make([]pricing.Item, 0, len(s.Items))
	for _, l := range s.Items {
		items = append(items, pricing.Item{
			Qty:            l.Qty,
			UnitPrice:      l.UnitPrice,
			Size:           l.Size,
			BundleEligible: l.BundleEligible,
		})
	}
	return items
}

// Summary is the priced view of a cart session.
type Summary struct {
	Pricing    pricing.Summary `json:"pricing"`
	Discount   float64         `json:"discount"`
	FinalTotal float64         `json:"finalTotal"`
}

// Summarize prices the cart and applies the stored coupon discount, flooring
// the final total at zero.
func (s State) Summarize(cfg pricing.Config) Summary {
	summary := pricing.ComputeTotal(s.PricingItems(), cfg)
	var discount float64
	if s.Coupon != nil {
		discount = s.Coupon.Discount
	}
	return Summary{
		Pricing:    summary,
		Discount:   discount,
		FinalTotal: pricing.FinalTotal(summary.Total, discount),
	}
}
