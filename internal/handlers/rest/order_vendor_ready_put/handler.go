package order_vendor_ready_put

import (
	"net/http"

	"github.com/AlekSi/pointer"
	"github.com/gorilla/mux"
	"orderflow/internal/entities"
	"orderflow/internal/handlers/rest/dto"
	"orderflow/internal/handlers/rest/respond"
	"orderflow/internal/pkg/session"
	"orderflow/pkg/logger"
)

// Handler is the vendor portal action: mark own items ready for pickup.
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
	order, err := h.service.Transition(r.Context(), entities.TransitionRequest{
		OrderID:  vars["orderId"],
		VendorID: pointer.To(vars["vendorId"]),
		Status:   entities.ItemVendorReady,
		Actor:    actor,
	})
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	h.log.With(
		logger.NewField("order_id", order.ID),
		logger.NewField("vendor_id", vars["vendorId"]),
	).Info("vendor items ready")

	respond.JSON(w, h.log, http.StatusOK, dto.FromOrder(order))
}
