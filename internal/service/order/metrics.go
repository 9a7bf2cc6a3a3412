package order

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_transitions_total",
			Help: "Total number of order status transition requests by outcome",
		},
		[]string{"role", "status", "result"},
	)

	StatusEventPublishFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_status_event_publish_failures_total",
			Help: "Total number of committed transitions whose event could not be published",
		},
	)
)
