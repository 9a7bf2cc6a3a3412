package order_vendor_status_put

import (
	"net/http"

	"github.com/gorilla/mux"
	"orderflow/internal/entities"
	"orderflow/internal/handlers/rest/dto"
	"orderflow/internal/handlers/rest/respond"
	"orderflow/internal/pkg/session"
	"orderflow/pkg/logger"
)

// Handler changes the status of one vendor's items inside an order.
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
	vendorID := vars["vendorId"]

	order, err := h.service.Transition(r.Context(), entities.TransitionRequest{
		OrderID:  vars["orderId"],
		VendorID: &vendorID,
		Status:   status,
		Actor:    actor,
	})
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	h.log.With(
		logger.NewField("order_id", order.ID),
		logger.NewField("vendor_id", vendorID),
		logger.NewField("status", order.Status.String()),
	).Info("vendor items status updated")

	respond.JSON(w, h.log, http.StatusOK, dto.FromOrder(order))
}
