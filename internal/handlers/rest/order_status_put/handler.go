package order_status_put

import (
	"net/http"

	"github.com/gorilla/mux"
	"orderflow/internal/entities"
	"orderflow/internal/handlers/rest/dto"
	"orderflow/internal/handlers/rest/respond"
	"orderflow/internal/pkg/session"
	"orderflow/pkg/logger"
)

// Handler moves every item of the order to the requested status.
type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		service: service,
		log:     handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor, ok := session.ActorFromContext(r.Context())
	if !ok {
		respond.Unauthenticated(w, h.log)
		return
	}

	vars := mux.Vars(r)
	status, ok := entities.ParseItemStatus(vars["status"])
	if !ok {
		status = entities.ItemStatus(vars["status"])
	}

	order, err := h.service.Transition(r.Context(), entities.TransitionRequest{
		OrderID: vars["orderId"],
		Status:  status,
		Actor:   actor,
	})
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	h.log.With(
		logger.NewField("order_id", order.ID),
		logger.NewField("status", order.Status.String()),
		logger.NewField("actor_role", actor.Role.String()),
	).Info("order status updated")

	respond.JSON(w, h.log, http.StatusOK, dto.FromOrder(order))
}
