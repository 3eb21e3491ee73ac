package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/craftel-io/backend-craftel/internal/catalog"
	"github.com/craftel-io/backend-craftel/internal/coupon"
	"github.com/craftel-io/backend-craftel/internal/pricing"
)

type fakeCatalog map[string]catalog.Ref

func (f fakeCatalog) GetRef(_ context.Context, id string) (catalog.Ref, error) {
	ref, ok := f[id]
	if !ok {
		return catalog.Ref{}, catalog.ErrNotFound
	}
	return ref, nil
}

type fakeValidator struct {
	applied coupon.Applied
	err     error
	gotCode string
	gotSum  float64
}

func (f *fakeValidator) Validate(_ context.Context, code string, orderTotal float64, _ string) (coupon.Applied, error) {
	f.gotCode = code
	f.gotSum = orderTotal
	if f.err != nil {
		return coupon.Applied{}, f.err
	}
	return f.applied, nil
}

func newTestService(t *testing.T, validator coupon.Validator) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return &Service{
		Store: Store{R: client},
		Catalog: fakeCatalog{
			"tee":   {ID: "tee", Title: "Forge Tee", UnitPrice: 20},
			"promo": {ID: "promo", Title: "Promo Print", UnitPrice: 40, BundleEligible: true},
		},
		Coupons: validator,
	}
}

func TestServiceAddLineMergesAndPrices(t *testing.T) {
	svc := newTestService(t, &fakeValidator{})
	ctx := context.Background()

	state, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.AddLine(ctx, state.ID, AddLineInput{ProductID: "tee", Qty: 1, Size: "2XL"})
	require.NoError(t, err)
	state, err = svc.AddLine(ctx, state.ID, AddLineInput{ProductID: "tee", Qty: 1, Size: "2XL"})
	require.NoError(t, err)

	require.Len(t, state.Items, 1)
	require.Equal(t, 2, state.Items[0].Qty)

	summary := state.Summarize(svc.Pricing)
	require.InDelta(t, 2*20+2*pricing.DefaultPlusSizeSurcharge, summary.Pricing.Total, 1e-9)
}

func TestServiceBundleEligibilityComesFromCatalog(t *testing.T) {
	svc := newTestService(t, &fakeValidator{})
	ctx := context.Background()

	state, err := svc.Create(ctx)
	require.NoError(t, err)
	state, err = svc.AddLine(ctx, state.ID, AddLineInput{ProductID: "promo", Qty: 1})
	require.NoError(t, err)

	summary := state.Summarize(svc.Pricing)
	require.InDelta(t, pricing.DefaultBundleUnitPrice, summary.Pricing.Total, 1e-9,
		"a single bundle-eligible unit is billed at the bundle unit price, not the catalog price")
}

func TestServiceAddLineUnknownProduct(t *testing.T) {
	svc := newTestService(t, &fakeValidator{})
	ctx := context.Background()

	state, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.AddLine(ctx, state.ID, AddLineInput{ProductID: "ghost", Qty: 1})
	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestServiceSetQuantityRemovesAtZero(t *testing.T) {
	svc := newTestService(t, &fakeValidator{})
	ctx := context.Background()

	state, err := svc.Create(ctx)
	require.NoError(t, err)
	state, err = svc.AddLine(ctx, state.ID, AddLineInput{ProductID: "tee", Qty: 3})
	require.NoError(t, err)

	state, err = svc.SetQuantity(ctx, state.ID, state.Items[0].ID, 0)
	require.NoError(t, err)
	require.Empty(t, state.Items)

	// and the removal survives a reload
	state, _, err = svc.Get(ctx, state.ID)
	require.NoError(t, err)
	require.Empty(t, state.Items)
}

func TestServiceSetQuantityMissingLine(t *testing.T) {
	svc := newTestService(t, &fakeValidator{})
	ctx := context.Background()

	state, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.SetQuantity(ctx, state.ID, "missing", 2)
	require.ErrorIs(t, err, ErrLineNotFound)
}

func TestServiceApplyCouponStoresDiscountVerbatim(t *testing.T) {
	validator := &fakeValidator{applied: coupon.Applied{Code: "SAVE10", Kind: "flat", Value: 10, Discount: 10}}
	svc := newTestService(t, validator)
	ctx := context.Background()

	state, err := svc.Create(ctx)
	require.NoError(t, err)
	state, err = svc.AddLine(ctx, state.ID, AddLineInput{ProductID: "tee", Qty: 2})
	require.NoError(t, err)

	state, err = svc.ApplyCoupon(ctx, state.ID, "save10", "user-1")
	require.NoError(t, err)
	require.NotNil(t, state.Coupon)
	require.Equal(t, 10.0, state.Coupon.Discount)
	require.InDelta(t, 40.0, validator.gotSum, 1e-9, "pre-coupon total must be submitted as context")

	summary := state.Summarize(svc.Pricing)
	require.InDelta(t, 30.0, summary.FinalTotal, 1e-9)
}

func TestServiceApplyCouponRejectionPropagates(t *testing.T) {
	rejection := &coupon.ValidationError{Message: "coupon expired"}
	svc := newTestService(t, &fakeValidator{err: rejection})
	ctx := context.Background()

	state, err := svc.Create(ctx)
	require.NoError(t, err)
	state, err = svc.AddLine(ctx, state.ID, AddLineInput{ProductID: "tee", Qty: 1})
	require.NoError(t, err)

	_, err = svc.ApplyCoupon(ctx, state.ID, "OLD", "")
	var validationErr *coupon.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "coupon expired", validationErr.Message)

	// a failed validation must not attach anything
	state, _, err = svc.Get(ctx, state.ID)
	require.NoError(t, err)
	require.Nil(t, state.Coupon)
}

func TestServiceClearDropsCoupon(t *testing.T) {
	validator := &fakeValidator{applied: coupon.Applied{Code: "SAVE5", Discount: 5}}
	svc := newTestService(t, validator)
	ctx := context.Background()

	state, err := svc.Create(ctx)
	require.NoError(t, err)
	state, err = svc.AddLine(ctx, state.ID, AddLineInput{ProductID: "tee", Qty: 1})
	require.NoError(t, err)
	state, err = svc.ApplyCoupon(ctx, state.ID, "SAVE5", "")
	require.NoError(t, err)
	require.NotNil(t, state.Coupon)

	state, err = svc.Clear(ctx, state.ID)
	require.NoError(t, err)
	require.Empty(t, state.Items)
	require.Nil(t, state.Coupon)
}

func TestServiceGetMissingCart(t *testing.T) {
	svc := newTestService(t, &fakeValidator{})
	_, _, err := svc.Get(context.Background(), "nope")
	require.True(t, errors.Is(err, ErrNotFound))
}
