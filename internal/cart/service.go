package cart

import (
	"context"
	"errors"
	"strings"

	"github.com/craftel-io/backend-craftel/internal/catalog"
	"github.com/craftel-io/backend-craftel/internal/coupon"
	"github.com/craftel-io/backend-craftel/internal/pricing"
)

// ErrLineNotFound indicates the referenced line is not in the cart.
var ErrLineNotFound = errors.New("cart: line not found")

// CatalogResolver supplies pricing-ready product refs.
type CatalogResolver interface {
	GetRef(ctx context.Context, id string) (catalog.Ref, error)
}

// Service encapsulates cart session operations.
type Service struct {
	Store   Store
	Catalog CatalogResolver
	Coupons coupon.Validator
	Pricing pricing.Config
}

// AddLineInput captures an add-to-cart request.
type AddLineInput struct {
	ProductID       string
	Qty             int
	Size            string
	Color           string
	CustomDesignRef string
	PaymentMethod   string
}

// Create starts a new cart session.
func (s *Service) Create(ctx context.Context) (State, error) {
	if s == nil {
		return State{}, errors.New("cart: service not configured")
	}
	return s.Store.Create(ctx)
}

// Get loads a session together with its priced summary.
func (s *Service) Get(ctx context.Context, cartID string) (State, Summary, error) {
	if s == nil {
		return State{}, Summary{}, errors.New("cart: service not configured")
	}
	state, err := s.Store.Get(ctx, cartID)
	if err != nil {
		return State{}, Summary{}, err
	}
	return state, state.Summarize(s.Pricing), nil
}

// AddLine resolves the product and merges the line into the session. The
// quantity is stored as given; callers should send at least 1, but a smaller
// value still yields a well-defined cart.
func (s *Service) AddLine(ctx context.Context, cartID string, in AddLineInput) (State, error) {
	if s == nil || s.Catalog == nil {
		return State{}, errors.New("cart: service not configured")
	}
	state, err := s.Store.Get(ctx, cartID)
	if err != nil {
		return State{}, err
	}
	ref, err := s.Catalog.GetRef(ctx, in.ProductID)
	if err != nil {
		return State{}, err
	}
	state.AddLine(Line{
		ProductID:       ref.ID,
		Title:           ref.Title,
		UnitPrice:       ref.UnitPrice,
		Qty:             in.Qty,
		Size:            strings.TrimSpace(in.Size),
		Color:           strings.TrimSpace(in.Color),
		CustomDesignRef: strings.TrimSpace(in.CustomDesignRef),
		PaymentMethod:   strings.TrimSpace(in.PaymentMethod),
		BundleEligible:  ref.BundleEligible,
	})
	if err := s.Store.Save(ctx, &state); err != nil {
		return State{}, err
	}
	return state, nil
}

// RemoveLine drops a line. A missing line is a no-op.
func (s *Service) RemoveLine(ctx context.Context, cartID, lineID string) (State, error) {
	if s == nil {
		return State{}, errors.New("cart: service not configured")
	}
	state, err := s.Store.Get(ctx, cartID)
	if err != nil {
		return State{}, err
	}
	state.RemoveLine(lineID)
	if err := s.Store.Save(ctx, &state); err != nil {
		return State{}, err
	}
	return state, nil
}

// SetQuantity updates the line quantity; zero or below removes the line.
func (s *Service) SetQuantity(ctx context.Context, cartID, lineID string, qty int) (State, error) {
	if s == nil {
		return State{}, errors.New("cart: service not configured")
	}
	state, err := s.Store.Get(ctx, cartID)
	if err != nil {
		return State{}, err
	}
	if !state.SetQuantity(lineID, qty) {
		return State{}, ErrLineNotFound
	}
	if err := s.Store.Save(ctx, &state); err != nil {
		return State{}, err
	}
	return state, nil
}

// Clear empties the session and drops any applied coupon.
func (s *Service) Clear(ctx context.Context, cartID string) (State, error) {
	if s == nil {
		return State{}, errors.New("cart: service not configured")
	}
	state, err := s.Store.Get(ctx, cartID)
	if err != nil {
		return State{}, err
	}
	state.Clear()
	if err := s.Store.Save(ctx, &state); err != nil {
		return State{}, err
	}
	return state, nil
}

// ApplyCoupon validates the code externally against the pre-coupon total and
// stores the resolved discount verbatim on success.
func (s *Service) ApplyCoupon(ctx context.Context, cartID, code, userID string) (State, error) {
	if s == nil || s.Coupons == nil {
		return State{}, errors.New("cart: service not configured")
	}
	state, err := s.Store.Get(ctx, cartID)
	if err != nil {
		return State{}, err
	}
	total := pricing.ComputeTotal(state.PricingItems(), s.Pricing).Total
	applied, err := s.Coupons.Validate(ctx, code, total, userID)
	if err != nil {
		return State{}, err
	}
	state.Coupon = &applied
	if err := s.Store.Save(ctx, &state); err != nil {
		return State{}, err
	}
	return state, nil
}

// RemoveCoupon clears the applied coupon without touching the items.
func (s *Service) RemoveCoupon(ctx context.Context, cartID string) (State, error) {
	if s == nil {
		return State{}, errors.New("cart: service not configured")
	}
	state, err := s.Store.Get(ctx, cartID)
	if err != nil {
		return State{}, err
	}
	state.Coupon = nil
	if err := s.Store.Save(ctx, &state); err != nil {
		return State{}, err
	}
	return state, nil
}
