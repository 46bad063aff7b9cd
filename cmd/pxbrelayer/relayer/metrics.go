package relayer

import (
	metricsPkg "github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	// claims broadcast, labeled by msg type
	ClaimsSubmitted metricsPkg.Counter
	// claims that could not be broadcast after all retries
	ClaimsFailed metricsPkg.Counter
	// mainchain transfers to the multisig seen by the watcher
	DepositsSeen metricsPkg.Counter
	// cosign obligations waiting for their deadline
	PendingObligations metricsPkg.Gauge
	// height of the last peg zone tx event handled
	EventHeight metricsPkg.Gauge
}

func PrometheusMetrics() *Metrics {
	return &Metrics{
		ClaimsSubmitted: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Subsystem: "relayer",
			Name:      "claims_submitted",
			Help:      "Number of claims broadcast to the peg zone",
		}, []string{"msg_type"}),
		ClaimsFailed: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Subsystem: "relayer",
			Name:      "claims_failed",
			Help:      "Number of claims that failed to broadcast",
		}, []string{"msg_type"}),
		DepositsSeen: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Subsystem: "relayer",
			Name:      "deposits_seen",
			Help:      "Number of mainchain deposits to the multisig",
		}, []string{}),
		PendingObligations: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Subsystem: "relayer",
			Name:      "pending_obligations",
			Help:      "Cosign obligations waiting for their deadline",
		}, []string{}),
		EventHeight: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Subsystem: "relayer",
			Name:      "event_height",
			Help:      "Height of the last handled tx event",
		}, []string{}),
	}
}

func NopMetrics() *Metrics {
	return &Metrics{
		ClaimsSubmitted:    discard.NewCounter(),
		ClaimsFailed:       discard.NewCounter(),
		DepositsSeen:       discard.NewCounter(),
		PendingObligations: discard.NewGauge(),
		EventHeight:        discard.NewGauge(),
	}
}
