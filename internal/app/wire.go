//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	"orderflow/internal/gateway/kafka/order_events"
	"orderflow/internal/handlers/tasks/order_status_metrics"
	"orderflow/internal/pkg/config"
	historyRepo "orderflow/internal/repository/history"
	orderRepo "orderflow/internal/repository/order"
	orderService "orderflow/internal/service/order"
	"orderflow/pkg/logger"
	"orderflow/pkg/tx"
)

var orderSet = wire.NewSet(
	provideTxManager,
	provideQuerier,

	provideOrderRepository,
	provideHistoryRepository,
	provideStatusPublisher,
	provideOrderService,

	wire.Bind(new(orderService.Repository), new(*orderRepo.Repository)),
	wire.Bind(new(orderService.HistoryRepository), new(*historyRepo.Repository)),
	wire.Bind(new(orderService.EventPublisher), new(*order_events.Publisher)),
	wire.Bind(new(orderService.TxManager), new(*tx.Manager)),
)

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		orderSet,

		provideOrderStatusMetricsTask,
		provideSystemCollector,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceOrder), new(*orderService.Service)),
		wire.Bind(new(order_status_metrics.Service), new(*orderService.Service)),
	)
	return &Application{}, nil
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-order-created)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		orderSet,

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}
