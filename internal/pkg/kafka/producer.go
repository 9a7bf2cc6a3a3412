package kafka

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"orderflow/internal/pkg/config"
	"orderflow/pkg/logger"
)

const producerMaxRetries = 3

func newProducerConfig(cfg *config.Kafka) (*sarama.Config, error) {
	saramaConfig, err := newBaseConfig(cfg.Sarama.Version)
	if err != nil {
		return nil, err
	}

	// SyncProducer требует Return.Successes
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.Retry.Max = producerMaxRetries
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	return saramaConfig, nil
}

// NewSyncProducer returns a producer that waits for all in-sync replicas.
// Messages with the same key land in the same partition.
func NewSyncProducer(ctx context.Context, log logger.Logger, cfg *config.Kafka) (sarama.SyncProducer, error) {
	saramaConfig, err := newProducerConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("build sarama config: %w", err)
	}

	brokers := cfg.BrokerList()
	kafkaLog := log.With(
		logger.NewField("brokers", brokers),
		logger.NewField("topic", cfg.StatusChangedTopic),
	)

	if err := pingKafka(ctx, kafkaLog, brokers, saramaConfig); err != nil {
		return nil, fmt.Errorf("kafka connection: %w", err)
	}

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("create sync producer: %w", err)
	}
	return producer, nil
}
