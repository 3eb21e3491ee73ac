package earnings

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateOrder indicates a sale has already been attributed.
var ErrDuplicateOrder = errors.New("earnings: order already attributed")

const uniqueViolation = "23505"

// Store persists founder earnings entries in Postgres.
type Store struct {
	Pool *pgxpool.Pool
}

// NewStore constructs a store bound to the provided pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{Pool: pool}
}

const insertEntrySQL = `
INSERT INTO founder_earnings (
    order_id, sale_amount, cost_of_goods, processor_fee,
    gross_profit, founder_share, retained_earnings, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at`

const markCalculatedSQL = `
UPDATE founder_earnings SET status = $2
WHERE id = $1 AND status = $3`

// Attribute records a freshly attributed sale. The entry is inserted as
// pending and promoted to calculated in the same transaction so the ledger
// only ever contains forward status steps.
func (s *Store) Attribute(ctx context.Context, orderID string, b Breakdown) (Entry, error) {
	if s == nil || s.Pool == nil {
		return Entry{}, errors.New("earnings: store not configured")
	}
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Entry{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	entry := Entry{OrderID: orderID, Breakdown: b, Status: StatusPending}
	err = tx.QueryRow(ctx, insertEntrySQL,
		orderID, b.SaleAmount, b.CostOfGoods, b.ProcessorFee,
		b.GrossProfit, b.FounderShare, b.RetainedEarnings, string(StatusPending),
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Entry{}, ErrDuplicateOrder
		}
		return Entry{}, err
	}

	if !entry.Status.CanTransition(StatusCalculated) {
		return Entry{}, ErrIllegalTransition{From: entry.Status, To: StatusCalculated}
	}
	tag, err := tx.Exec(ctx, markCalculatedSQL, entry.ID, string(StatusCalculated), string(StatusPending))
	if err != nil {
		return Entry{}, err
	}
	if tag.RowsAffected() == 0 {
		return Entry{}, ErrIllegalTransition{From: entry.Status, To: StatusCalculated}
	}
	entry.Status = StatusCalculated

	if err := tx.Commit(ctx); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

const listEntriesSQL = `
SELECT id, order_id, sale_amount, cost_of_goods, processor_fee,
       gross_profit, founder_share, retained_earnings, status, created_at, paid_at
FROM founder_earnings
WHERE ($1 = '' OR status = $1)
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

// List returns entries newest first, optionally filtered by status.
func (s *Store) List(ctx context.Context, status Status, limit, offset int) ([]Entry, error) {
	if s == nil || s.Pool == nil {
		return nil, errors.New("earnings: store not configured")
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.Pool.Query(ctx, listEntriesSQL, string(status), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e      Entry
			st     string
			paidAt *time.Time
		)
		if err := rows.Scan(
			&e.ID, &e.OrderID,
			&e.Breakdown.SaleAmount, &e.Breakdown.CostOfGoods, &e.Breakdown.ProcessorFee,
			&e.Breakdown.GrossProfit, &e.Breakdown.FounderShare, &e.Breakdown.RetainedEarnings,
			&st, &e.CreatedAt, &paidAt,
		); err != nil {
			return nil, err
		}
		e.Status = Status(st)
		e.PaidAt = paidAt
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

const payoutSQL = `
UPDATE founder_earnings SET status = $1, paid_at = $2
WHERE status = $3`

// PayoutCalculated transitions every calculated entry to paid, stamping the
// provided payout instant. Entries already paid are untouched, which makes a
// repeated payout a no-op rather than a double payment.
func (s *Store) PayoutCalculated(ctx context.Context, paidAt time.Time) (int64, error) {
	if s == nil || s.Pool == nil {
		return 0, errors.New("earnings: store not configured")
	}
	tag, err := s.Pool.Exec(ctx, payoutSQL, string(StatusPaid), paidAt, string(StatusCalculated))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const pendingShareSQL = `
SELECT COALESCE(SUM(founder_share), 0) FROM founder_earnings WHERE status = $1`

// UnpaidFounderShare sums the founder share of entries awaiting payout.
func (s *Store) UnpaidFounderShare(ctx context.Context) (float64, error) {
	if s == nil || s.Pool == nil {
		return 0, errors.New("earnings: store not configured")
	}
	var total float64
	err := s.Pool.QueryRow(ctx, pendingShareSQL, string(StatusCalculated)).Scan(&total)
	return total, err
}
