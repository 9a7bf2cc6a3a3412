package order_generator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"orderflow/pkg/logger"
)

var (
	EventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_generator_events_total",
			Help: "Generated order.created events by publish result",
		},
		[]string{"result"},
	)

	PublishDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_generator_publish_duration_seconds",
			Help:    "Time to publish one generated order",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.3, 0.5, 1, 2},
		},
	)
)

type producer interface {
	SendMessage(msg *sarama.ProducerMessage) (partition int32, offset int64, err error)
}

type publisherLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

// Run makes count publish attempts, one per interval. count <= 0 means until
// ctx is done. Failed sends are logged and counted, they do not stop the run.
func Run(
	ctx context.Context,
	log publisherLogger,
	gen *Generator,
	producer producer,
	topic string,
	count int,
	interval time.Duration,
) (sent int, err error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for attempt := 0; count <= 0 || attempt < count; attempt++ {
		event := gen.Next()
		payload, err := json.Marshal(event)
		if err != nil {
			return sent, fmt.Errorf("marshal order %s: %w", event.OrderID, err)
		}

		start := time.Now()
		_, _, err = producer.SendMessage(&sarama.ProducerMessage{
			Topic: topic,
			Key:   sarama.StringEncoder(event.OrderID),
			Value: sarama.ByteEncoder(payload),
		})
		PublishDuration.Observe(time.Since(start).Seconds())

		if err != nil {
			EventsTotal.WithLabelValues("error").Inc()
			log.With(
				logger.NewField("order_id", event.OrderID),
				logger.NewField("error", err),
			).Warn("publish generated order")
		} else {
			EventsTotal.WithLabelValues("ok").Inc()
			sent++
		}

		select {
		case <-ctx.Done():
			log.With(logger.NewField("sent", sent)).Info("generator stopped")
			return sent, ctx.Err()
		case <-ticker.C:
		}
	}

	log.With(logger.NewField("sent", sent)).Info("generator finished")
	return sent, nil
}
