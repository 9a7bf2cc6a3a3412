package order_events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PublishRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_publish_retries_total",
			Help: "Total number of kafka publish retry attempts",
		},
		[]string{"topic"},
	)

	PublishDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kafka_publish_duration_seconds",
			Help:    "Duration of kafka publishes including retries",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"topic", "result"},
	)
)
