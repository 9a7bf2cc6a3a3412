package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"orderflow/pkg/logger"
	retrierconfig "orderflow/pkg/retrier"
	"orderflow/pkg/retrier/backoff_adapter"
)

const (
	initialInterval = 1 * time.Second
	maxInterval     = 30 * time.Second
	maxElapsedTime  = 2 * time.Minute
	randomization   = 0.5
	multiplier      = 2
)

func newBaseConfig(versionStr string) (*sarama.Config, error) {
	cfg := sarama.NewConfig()

	version, err := sarama.ParseKafkaVersion(versionStr)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", versionStr, err)
	}
	cfg.Version = version
	cfg.ClientID = "orderflow"

	return cfg, nil
}

func pingKafka(ctx context.Context, log logger.Logger, brokers []string, cfg *sarama.Config) error {
	retrier := backoff_adapter.New(retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
	})

	var attempt uint64
	err := retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		log.With(logger.NewField("attempt", attempt)).Info("attempting kafka connection")

		client, err := sarama.NewClient(brokers, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.With(logger.NewField("error", err)).Warn("close kafka ping client")
			}
		}()

		_, err = client.Topics()
		return err
	})
	if err != nil {
		log.With(
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		).Error("kafka connection failed after retries")
		return fmt.Errorf("connect to kafka: %w", err)
	}

	log.With(logger.NewField("attempts", attempt)).Info("kafka connection established")
	return nil
}
