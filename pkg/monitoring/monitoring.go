package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	WebhookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Total number of payment webhook events received, by outcome code",
		},
		[]string{"code"},
	)

	PipelineStageFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_stage_failures_total",
			Help: "Total number of non-fatal reconciliation pipeline stage failures",
		},
		[]string{"stage"},
	)

	PipelineDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pipeline_duration_seconds",
			Help:    "Duration of the webhook reconciliation pipeline",
			Buckets: prometheus.DefBuckets,
		},
	)

	CheckoutTransactionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_transactions_total",
			Help: "Total number of checkout transactions initiated, by result",
		},
		[]string{"result"},
	)
)

func Register() {
	prometheus.MustRegister(
		WebhookEventsTotal,
		PipelineStageFailuresTotal,
		PipelineDuration,
		CheckoutTransactionsTotal,
	)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
