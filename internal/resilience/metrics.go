package resilience

import "github.com/prometheus/client_golang/prometheus"

// Breaker gauges are labelled by logical target name, set via WithTarget.
var (
	OutboundBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "outbound_breaker_state",
			Help: "Outbound breaker state per target: 0=closed,1=open,2=half-open",
		},
		[]string{"target"},
	)

	OutboundBreakerTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbound_breaker_transition_total",
			Help: "Outbound breaker state transitions per target",
		},
		[]string{"target", "from", "to"},
	)
)

func init() {
	prometheus.MustRegister(OutboundBreakerState, OutboundBreakerTransitions)
}
