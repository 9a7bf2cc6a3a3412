//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_vendor_ready_put_test
package order_vendor_ready_put

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
	Transition(ctx context.Context, req entities.TransitionRequest) (*entities.Order, error)
}
