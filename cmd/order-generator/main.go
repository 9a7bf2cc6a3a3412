package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"orderflow/internal/pkg/config"
	"orderflow/internal/pkg/dotenv"
	"orderflow/internal/pkg/kafka"
	"orderflow/internal/pkg/order_generator"
	"orderflow/pkg/logger"
	"orderflow/pkg/logger/zap_adapter"
)

// order-generator публикует синтетические order.created события для нагрузочных прогонов.
func main() {
	if _, err := dotenv.Load(".env"); err != nil {
		stdlog.Fatalf("failed to load .env file: %v", err)
	}

	var (
		brokers     = flag.String("brokers", os.Getenv("KAFKA_BROKERS"), "comma separated broker list")
		topic       = flag.String("topic", os.Getenv("KAFKA_TOPIC"), "order.created topic")
		version     = flag.String("sarama-version", os.Getenv("KAFKA_SARAMA_VERSION"), "kafka protocol version")
		vendors     = flag.String("vendors", "", "comma separated vendor ids")
		count       = flag.Int("count", 100, "orders to publish, 0 runs until interrupted")
		interval    = flag.Duration("interval", 200*time.Millisecond, "delay between orders")
		seed        = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		metricsPort = flag.String("metrics-port", "2112", "port for /metrics")
	)
	flag.Parse()

	zapLogger, err := zap_adapter.NewZapAdapter(zap_adapter.WithService("order-generator"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	var log logger.Logger = zapLogger

	cfg := config.Kafka{
		Brokers: *brokers,
		Topic:   *topic,
		Sarama:  config.Sarama{Version: *version},
	}
	if err := run(log, cfg, splitList(*vendors), *count, *interval, *seed, *metricsPort); err != nil {
		log.With(logger.NewField("error", err)).Error("generator failed")
		_ = zapLogger.Sync()
		os.Exit(1)
	}
	_ = zapLogger.Sync()
}

func run(
	log logger.Logger,
	cfg config.Kafka,
	vendors []string,
	count int,
	interval time.Duration,
	seed int64,
	metricsPort string,
) error {
	if len(cfg.BrokerList()) == 0 || cfg.Topic == "" || cfg.Sarama.Version == "" {
		return errors.New("brokers, topic and sarama version are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", metricsPort),
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.With(logger.NewField("error", err)).Error("metrics server")
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx) //nolint:contextcheck // ctx уже отменён
	}()

	producer, err := kafka.NewSyncProducer(ctx, log, &cfg)
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			log.With(logger.NewField("error", err)).Error("failed to close kafka producer")
		}
	}()

	gen := order_generator.New(seed, vendors)
	_, err = order_generator.Run(ctx, log, gen, producer, cfg.Topic, count, interval)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func splitList(s string) []string {
	var res []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			res = append(res, part)
		}
	}
	return res
}
