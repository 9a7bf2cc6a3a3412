//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=orders_by_status_get_test
package orders_by_status_get

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
	ListOrdersForCategory(ctx context.Context, actor entities.Actor, category entities.OrderStatus, query string) ([]entities.Order, error)
}
