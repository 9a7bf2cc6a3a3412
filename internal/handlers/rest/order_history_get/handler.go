package order_history_get

import (
	"net/http"

	"github.com/gorilla/mux"
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

	entries, err := h.service.GetHistory(r.Context(), actor, mux.Vars(r)["orderId"])
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	respond.JSON(w, h.log, http.StatusOK, dto.FromHistory(entries))
}
