package earnings

import (
	"fmt"
	"time"
)

// Status tracks the lifecycle of a founder earnings entry. Transitions are
// monotonic: pending -> calculated -> paid. Entries are never deleted.
type Status string

const (
	StatusPending    Status = "pending"
	StatusCalculated Status = "calculated"
	StatusPaid       Status = "paid"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCalculated, StatusPaid:
		return true
	}
	return false
}

// CanTransition reports whether moving to the target status is a legal forward
// step. Reverse transitions and skips are rejected.
func (s Status) CanTransition(to Status) bool {
	switch s {
	case StatusPending:
		return to == StatusCalculated
	case StatusCalculated:
		return to == StatusPaid
	}
	return false
}

// ErrIllegalTransition wraps a rejected status change.
type ErrIllegalTransition struct {
	From Status
	To   Status
}

func (e ErrIllegalTransition) Error() string {
	return fmt.Sprintf("earnings: illegal status transition %s -> %s", e.From, e.To)
}

// Entry is one founder earnings attribution for a completed sale.
type Entry struct {
	ID        string     `json:"id"`
	OrderID   string     `json:"orderId"`
	Breakdown Breakdown  `json:"breakdown"`
	Status    Status     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
}
