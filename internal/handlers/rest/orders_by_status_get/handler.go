package orders_by_status_get

import (
	"net/http"

	"orderflow/internal/entities"
	"orderflow/internal/handlers/rest/dto"
	"orderflow/internal/handlers/rest/respond"
	"orderflow/internal/pkg/session"
)

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

	params := r.URL.Query()
	raw := params.Get("status")
	category, ok := entities.ParseOrderStatus(raw)
	if !ok {
		// неизвестную категорию отклонит сервис после проверки прав
		category = entities.OrderStatus(raw)
	}

	orders, err := h.service.ListOrdersForCategory(r.Context(), actor, category, params.Get("q"))
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	respond.JSON(w, h.log, http.StatusOK, dto.FromOrders(orders))
}
