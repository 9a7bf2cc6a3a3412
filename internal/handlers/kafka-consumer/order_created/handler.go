package order_created

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"
	orderservice "orderflow/internal/service/order"
	"orderflow/pkg/logger"
)

type Handler struct {
	orderService             Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, orderService Service, timeout time.Duration) *Handler {
	return &Handler{
		orderService:             orderService,
		log:                      log.With(logger.NewField("handler", "order.created")),
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("order.created: claim messages closed, exiting ConsumeClaim")
				return nil
			}

			if stop := h.messageProcessing(sess, message); stop {
				return nil
			}

		case <-sess.Context().Done():
			h.log.Info("order.created: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing обрабатывает одно сообщение.
// true означает, что сообщение не закоммичено и ConsumeClaim нужно прервать,
// чтобы оно пришло повторно.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event CreatedEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("order.created: bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("order", event.OrderID),
		logger.NewField("items", len(event.Items)),
		logger.NewField("offset", message.Offset),
	)
	msgLog.Info("order.created processing")

	order, err := h.orderService.CreateOrder(ctx, event.toDomain())
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(logger.NewField("error", err)).
				Warn("order.created: context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, orderservice.ErrOrderAlreadyExists):
			msgLog.Info("order.created: order already exists, skipping")

		case errors.Is(err, orderservice.ErrValidation):
			msgLog.With(logger.NewField("error", err)).
				Warn("order.created: invalid order, skipping")

		default:
			msgLog.With(logger.NewField("error", err)).
				Error("order.created: failed to create order, message will be reprocessed")
			return true
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.With(
		logger.NewField("status", order.Status.String()),
	).Info("order.created: processed")

	sess.MarkMessage(message, "")
	return false
}
