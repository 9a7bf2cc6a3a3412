package order_events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"orderflow/internal/entities"
	retrierconfig "orderflow/pkg/retrier"
	"orderflow/pkg/retrier/backoff_adapter"
)

const (
	initialInterval = 50 * time.Millisecond
	maxInterval     = 500 * time.Millisecond
	maxElapsedTime  = 2 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

// Publisher пишет события order.status.changed, ключ сообщения это id заказа.
type Publisher struct {
	producer producer
	topic    string
	retrier  retrierconfig.Retrier
}

func New(producer producer, topic string) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		retrier: backoff_adapter.New(retrierconfig.Config{
			InitialInterval: initialInterval,
			MaxInterval:     maxInterval,
			MaxElapsedTime:  maxElapsedTime,
			Randomization:   randomization,
			Multiplier:      multiplier,
		}),
	}
}

func (p *Publisher) PublishStatusChanged(ctx context.Context, event entities.StatusChangedEvent) error {
	payload, err := json.Marshal(fromDomain(event))
	if err != nil {
		return fmt.Errorf("encode status changed event %s: %w", event.EventID, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_id"), Value: []byte(event.EventID)},
		},
	}

	start := time.Now()
	attempt := 0
	err = p.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		if attempt > 0 {
			PublishRetriesTotal.WithLabelValues(p.topic).Inc()
		}
		attempt++

		if err := ctx.Err(); err != nil {
			return err
		}
		_, _, err := p.producer.SendMessage(msg)
		return err
	})

	result := "ok"
	if err != nil {
		result = "error"
	}
	PublishDuration.WithLabelValues(p.topic, result).Observe(time.Since(start).Seconds())

	if err != nil {
		return fmt.Errorf("publish status changed event %s for order %s: %w", event.EventID, event.OrderID, err)
	}
	return nil
}
