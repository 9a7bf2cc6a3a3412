//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_status_metrics_test
package order_status_metrics

import (
	"context"

	"orderflow/internal/entities"
	"orderflow/pkg/logger"
)

type taskLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	GetCategorySummary(ctx context.Context, actor entities.Actor) ([]entities.CategoryCount, error)
}
