//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_history_get_test
package order_history_get

import (
	"context"

	"orderflow/internal/entities"
	"orderflow/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	GetHistory(ctx context.Context, actor entities.Actor, orderID string) ([]entities.HistoryEntry, error)
}
