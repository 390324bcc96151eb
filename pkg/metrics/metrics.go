package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TokensIssued counts one-time login tokens issued
	TokensIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "passlink_tokens_issued_total",
		Help: "Number of one-time login tokens issued.",
	})

	// TokensInvalidated counts tokens removed by explicit invalidation
	TokensInvalidated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "passlink_tokens_invalidated_total",
		Help: "Number of login tokens removed by explicit invalidation.",
	})

	// TokensConsumed counts successful at-most-once consumptions
	TokensConsumed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "passlink_tokens_consumed_total",
		Help: "Number of login tokens successfully consumed.",
	})

	// ExchangeOutcomes counts terminal exchange states by outcome label
	ExchangeOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "passlink_exchange_outcomes_total",
		Help: "Terminal exchange outcomes, labelled resolved or by failure reason.",
	}, []string{"outcome"})

	// TokensReaped counts rows removed by the retention cleanup job
	TokensReaped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "passlink_cleanup_reaped_total",
		Help: "Rows removed by the retention cleanup job, by store.",
	}, []string{"store"})
)
