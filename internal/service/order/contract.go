//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_test
package order

import (
	"context"

	"orderflow/internal/entities"
	"orderflow/pkg/logger"
)

type Repository interface {
	Create(ctx context.Context, orderCreate entities.OrderCreate) (*entities.Order, error)
	GetByID(ctx context.Context, orderID string) (*entities.Order, error)
	GetByIDForUpdate(ctx context.Context, orderID string) (*entities.Order, error)
	ListByStatus(ctx context.Context, status entities.OrderStatus) ([]entities.Order, error)
	ListByVendor(ctx context.Context, vendorID string) ([]entities.Order, error)
	CountByStatus(ctx context.Context) (map[entities.OrderStatus]int64, error)
	ApplyItemStatusChange(ctx context.Context, change entities.ItemStatusChange) (*entities.Order, error)
}

type HistoryRepository interface {
	Append(ctx context.Context, entry entities.HistoryEntry) error
	ListByOrderID(ctx context.Context, orderID string) ([]entities.HistoryEntry, error)
}

type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, event entities.StatusChangedEvent) error
}

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
