package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CartMutationTotal counts cart mutations by operation.
	CartMutationTotal *prometheus.CounterVec
	// CouponValidationTotal counts coupon validation outcomes.
	CouponValidationTotal *prometheus.CounterVec
	// AttributionTotal counts sale attribution outcomes.
	AttributionTotal *prometheus.CounterVec
	// PayoutRunsTotal counts founder payout run outcomes.
	PayoutRunsTotal *prometheus.CounterVec
	// PayoutEntriesPaid counts ledger entries marked paid across all runs.
	PayoutEntriesPaid prometheus.Counter
	// UnpaidFounderShare tracks the accumulated unpaid founder share in dollars.
	UnpaidFounderShare prometheus.Gauge
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CartMutationTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_mutation_total",
			Help:      "Count of cart mutations by operation.",
		}, []string{"op"})
		CouponValidationTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coupon_validation_total",
			Help:      "Count of coupon validation outcomes.",
		}, []string{"result"})
		AttributionTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "earnings_attribution_total",
			Help:      "Count of sale attribution outcomes.",
		}, []string{"result"})
		PayoutRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payout_runs_total",
			Help:      "Count of founder payout run outcomes.",
		}, []string{"result"})
		PayoutEntriesPaid = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payout_entries_paid_total",
			Help:      "Number of ledger entries transitioned to paid.",
		})
		UnpaidFounderShare = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "unpaid_founder_share_dollars",
			Help:      "Founder share accumulated in calculated entries awaiting payout.",
		})

		mustRegisterCollector(reg, CartMutationTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CartMutationTotal = v
			}
		})
		mustRegisterCollector(reg, CouponValidationTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CouponValidationTotal = v
			}
		})
		mustRegisterCollector(reg, AttributionTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				AttributionTotal = v
			}
		})
		mustRegisterCollector(reg, PayoutRunsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				PayoutRunsTotal = v
			}
		})
		mustRegisterCollector(reg, PayoutEntriesPaid, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				PayoutEntriesPaid = v
			}
		})
		mustRegisterCollector(reg, UnpaidFounderShare, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Gauge); ok {
				UnpaidFounderShare = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
