package earnings

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Service applies the configured fee rates to incoming sales and keeps the
// founder ledger. Rates are 0-1 fractions, normalized at the config boundary.
type Service struct {
	Store             *Store
	ProcessorFeeRate  float64
	FounderPercentage float64
	Now               func() time.Time
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Attribute splits the sale and records the resulting ledger entry.
func (s *Service) Attribute(ctx context.Context, orderID string, saleAmount, costOfGoods float64) (Entry, error) {
	if s == nil || s.Store == nil {
		return Entry{}, errors.New("earnings: service not configured")
	}
	if strings.TrimSpace(orderID) == "" {
		return Entry{}, errors.New("earnings: order id required")
	}
	breakdown := AttributeSale(saleAmount, costOfGoods, s.ProcessorFeeRate, s.FounderPercentage)
	return s.Store.Attribute(ctx, orderID, breakdown)
}

// Payout marks every calculated entry paid at the current instant and reports
// how many entries were settled.
func (s *Service) Payout(ctx context.Context) (int64, error) {
	if s == nil || s.Store == nil {
		return 0, errors.New("earnings: service not configured")
	}
	return s.Store.PayoutCalculated(ctx, s.now())
}

// List returns ledger entries, optionally filtered by status.
func (s *Service) List(ctx context.Context, status Status, limit, offset int) ([]Entry, error) {
	if s == nil || s.Store == nil {
		return nil, errors.New("earnings: service not configured")
	}
	if status != "" && !status.Valid() {
		return nil, errors.New("earnings: unknown status filter")
	}
	return s.Store.List(ctx, status, limit, offset)
}
