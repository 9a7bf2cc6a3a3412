package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"orderflow/internal/handlers/rest/dto"
	"orderflow/internal/service/order"
	"orderflow/pkg/logger"
)

const (
	KindUnauthenticated = "Unauthenticated"
	KindInternal        = "Internal"
)

type errorLogger interface {
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

func JSON(w http.ResponseWriter, log errorLogger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

// Error maps a service error onto its HTTP status. Internal errors are logged
// and their text is not sent to the client.
func Error(w http.ResponseWriter, log errorLogger, err error) {
	body := dto.Error{
		Kind:    string(order.KindOf(err)),
		Message: err.Error(),
	}

	var typed *order.Error
	if errors.As(err, &typed) {
		body.OrderID = typed.OrderID
		body.VendorID = typed.VendorID
	}

	status := statusOf(order.Kind(body.Kind))
	if status == http.StatusInternalServerError {
		log.With(
			logger.NewField("error", err),
		).Error("request failed")
		body = dto.Error{Kind: KindInternal, Message: "internal error"}
	}

	JSON(w, log, status, body)
}

func Unauthenticated(w http.ResponseWriter, log errorLogger) {
	JSON(w, log, http.StatusUnauthorized, dto.Error{
		Kind:    KindUnauthenticated,
		Message: "missing or invalid session",
	})
}

func statusOf(kind order.Kind) int {
	switch kind {
	case order.KindValidation:
		return http.StatusBadRequest
	case order.KindAuthorization:
		return http.StatusForbidden
	case order.KindNotFound:
		return http.StatusNotFound
	case order.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
