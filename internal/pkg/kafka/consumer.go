package kafka

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"orderflow/internal/pkg/config"
	"orderflow/pkg/logger"
)

type Consumer struct {
	log     logger.Logger
	client  sarama.ConsumerGroup
	topics  []string
	handler sarama.ConsumerGroupHandler
}

func newConsumerConfig(cfg *config.Kafka) (*sarama.Config, error) {
	saramaConfig, err := newBaseConfig(cfg.Sarama.Version)
	if err != nil {
		return nil, err
	}

	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = cfg.Sarama.ConsumerOffsetsAutocommit
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{
		sarama.NewBalanceStrategyRoundRobin(),
	}
	return saramaConfig, nil
}

// NewConsumer подключается к группе cfg.ConsumerGroup и подписывает handler на cfg.Topic.
func NewConsumer(ctx context.Context, log logger.Logger, cfg *config.Kafka, handler sarama.ConsumerGroupHandler) (*Consumer, error) {
	saramaConfig, err := newConsumerConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("build sarama config: %w", err)
	}

	brokers := cfg.BrokerList()
	topics := []string{cfg.Topic}

	kafkaLog := log.With(
		logger.NewField("brokers", brokers),
		logger.NewField("group", cfg.ConsumerGroup),
		logger.NewField("topics", topics),
	)

	if err := pingKafka(ctx, kafkaLog, brokers, saramaConfig); err != nil {
		return nil, fmt.Errorf("kafka connection: %w", err)
	}

	client, err := sarama.NewConsumerGroup(brokers, cfg.ConsumerGroup, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("create consumer group: %w", err)
	}

	return &Consumer{
		log:     kafkaLog,
		client:  client,
		topics:  topics,
		handler: handler,
	}, nil
}

// Start блокируется, пока ctx не отменён или группа не вернула ошибку.
func (c *Consumer) Start(ctx context.Context) error {
	c.log.Info("kafka consumer starting")

	for {
		if err := c.client.Consume(ctx, c.topics, c.handler); err != nil {
			c.log.With(logger.NewField("error", err)).Error("consumer group error")
			return fmt.Errorf("consumer error: %w", err)
		}

		if ctx.Err() != nil {
			c.log.Warn("context cancelled, stopping consumer")
			return ctx.Err()
		}
	}
}

func (c *Consumer) Close() error {
	return c.client.Close()
}
