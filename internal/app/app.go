package app

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"orderflow/internal/gateway/kafka/order_events"
	"orderflow/internal/handlers/rest/order_get"
	"orderflow/internal/handlers/rest/order_history_get"
	"orderflow/internal/handlers/rest/order_status_put"
	"orderflow/internal/handlers/rest/order_vendor_ready_put"
	"orderflow/internal/handlers/rest/order_vendor_status_put"
	"orderflow/internal/handlers/rest/orders_by_status_get"
	"orderflow/internal/handlers/rest/orders_by_vendor_get"
	"orderflow/internal/handlers/rest/orders_summary_get"
	"orderflow/internal/handlers/tasks/order_status_metrics"
	"orderflow/internal/pkg/config"
	system_metrics "orderflow/internal/pkg/metrics"
	historyRepo "orderflow/internal/repository/history"
	orderRepo "orderflow/internal/repository/order"
	orderService "orderflow/internal/service/order"
	"orderflow/pkg/background"
	"orderflow/pkg/logger"
	"orderflow/pkg/querier"
	"orderflow/pkg/tx"
)

const systemMetricsInterval = 15 * time.Second

type Application struct {
	ServiceOrder      ServiceOrder
	BackgroundWorkers *background.Worker
}

// ServiceOrder is everything the REST handlers need from the order service.
type ServiceOrder interface {
	orders_by_status_get.Service
	orders_by_vendor_get.Service
	orders_summary_get.Service
	order_get.Service
	order_history_get.Service
	order_status_put.Service
	order_vendor_status_put.Service
	order_vendor_ready_put.Service
}

type KafkaWorkerApp struct {
	OrderService *orderService.Service
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func provideHistoryRepository(querier *querier.Querier) *historyRepo.Repository {
	return historyRepo.New(querier)
}

func provideStatusPublisher(producer sarama.SyncProducer, cfg *config.Config) *order_events.Publisher {
	return order_events.New(producer, cfg.Kafka.StatusChangedTopic)
}

func provideOrderService(
	repository orderService.Repository,
	history orderService.HistoryRepository,
	publisher orderService.EventPublisher,
	txManager orderService.TxManager,
	log logger.Logger,
) *orderService.Service {
	return orderService.New(repository, history, publisher, txManager, log)
}

func provideOrderStatusMetricsTask(
	log logger.Logger,
	service order_status_metrics.Service,
	cfg *config.Config,
) *order_status_metrics.OrderStatusMetrics {
	return order_status_metrics.New(log, service, cfg.Tasks.OrderStatusMetricsInterval)
}

func provideSystemCollector() *system_metrics.SystemCollector {
	return system_metrics.NewSystemCollector(systemMetricsInterval)
}

func provideTaskList(
	orderStatusMetricsTask *order_status_metrics.OrderStatusMetrics,
	systemCollector *system_metrics.SystemCollector,
) []background.Task {
	return []background.Task{
		orderStatusMetricsTask,
		systemCollector,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
