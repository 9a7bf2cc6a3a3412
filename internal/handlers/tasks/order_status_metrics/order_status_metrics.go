package order_status_metrics

import (
	"context"
	"fmt"
	"time"

	"orderflow/internal/entities"
	"orderflow/pkg/logger"
)

// systemActor читает сводку от имени сервиса.
var systemActor = entities.Actor{Role: entities.RoleAdmin, ID: "order-status-metrics"}

// OrderStatusMetrics periodically publishes the dashboard counters as gauges.
type OrderStatusMetrics struct {
	log      taskLogger
	service  Service
	interval time.Duration
}

func New(log taskLogger, service Service, interval time.Duration) *OrderStatusMetrics {
	return &OrderStatusMetrics{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (o *OrderStatusMetrics) TTL() time.Duration {
	return o.interval
}

func (o *OrderStatusMetrics) Do(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, o.interval)
	defer cancel()

	summary, err := o.service.GetCategorySummary(ctx, systemActor)
	if err != nil {
		return fmt.Errorf("order status metrics: %w", err)
	}

	var total int64
	for _, category := range summary {
		OrdersByStatus.WithLabelValues(category.Status.String()).Set(float64(category.Count))
		total += category.Count
	}

	o.log.With(logger.NewField("orders", total)).Info("order status metrics refreshed")
	return nil
}

func (o *OrderStatusMetrics) Info() string {
	return "order status metrics"
}
