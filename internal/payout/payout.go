package payout

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/craftel-io/backend-craftel/internal/lock"
	"github.com/craftel-io/backend-craftel/internal/obs"
	"github.com/craftel-io/backend-craftel/internal/queue"
)

// TaskKind names the queue topic carrying payout run requests.
const TaskKind = "founder-payout"

// lockKey serialises payout runs across worker replicas.
const lockKey = "lock:founder-payout"

// Payer settles every calculated ledger entry and reports how many were paid.
type Payer interface {
	Payout(ctx context.Context) (int64, error)
}

type taskPayload struct {
	RequestedBy string    `json:"requestedBy,omitempty"`
	RequestedAt time.Time `json:"requestedAt"`
}

// Trigger enqueues payout run requests for asynchronous processing.
type Trigger struct {
	Queue queue.Enqueuer
}

// Request schedules a payout run. Repeated requests within the same minute
// collapse into one task.
func (t Trigger) Request(ctx context.Context, requestedBy string) error {
	payload, err := json.Marshal(taskPayload{RequestedBy: requestedBy, RequestedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	return t.Queue.Enqueue(ctx, queue.Task{
		Kind:           TaskKind,
		Payload:        payload,
		IdempotencyKey: time.Now().UTC().Format("2006-01-02T15:04"),
		MaxAttempts:    5,
	})
}

// Runner executes payout runs under a distributed lock.
type Runner struct {
	Earnings Payer
	Locker   lock.Locker
	LockTTL  time.Duration
	Logger   zerolog.Logger
}

// Handle processes one payout task. Safe to retry: entries already paid are
// never paid twice.
func (r Runner) Handle(ctx context.Context, task queue.Task) error {
	if r.Earnings == nil {
		return errors.New("payout: earnings service not configured")
	}
	var payload taskPayload
	if len(task.Payload) > 0 {
		if err := json.Unmarshal(task.Payload, &payload); err != nil {
			return err
		}
	}

	ttl := r.LockTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return r.Locker.WithLock(ctx, lockKey, ttl, func(ctx context.Context) error {
		paid, err := r.Earnings.Payout(ctx)
		if err != nil {
			obs.PayoutRunsTotal.WithLabelValues("error").Inc()
			return err
		}
		obs.PayoutRunsTotal.WithLabelValues("ok").Inc()
		obs.PayoutEntriesPaid.Add(float64(paid))
		r.Logger.Info().
			Int64("entries_paid", paid).
			Str("requested_by", payload.RequestedBy).
			Msg("payout_run_complete")
		return nil
	})
}
