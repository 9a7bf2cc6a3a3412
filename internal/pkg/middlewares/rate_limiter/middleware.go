package rate_limiter

import (
	"encoding/json"
	"net/http"
	"strconv"

	"orderflow/internal/pkg/middlewares/metrics"
	"orderflow/pkg/logger"
)

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Middleware answers 429 once the limiter runs dry. limit is only advertised
// in X-RateLimit-Limit.
func Middleware(log handlerLogger, limit int, limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			route := metrics.RouteTemplate(r)
			RateLimitExceededTotal.WithLabelValues(r.Method, route).Inc()

			log.With(
				logger.NewField("method", r.Method),
				logger.NewField("route", route),
				logger.NewField("remote_addr", r.RemoteAddr),
			).Warn("rate limit exceeded")

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)

			err := json.NewEncoder(w).Encode(errorBody{
				Kind:    "RateLimited",
				Message: "rate limit exceeded, try again later",
			})
			if err != nil {
				log.With(logger.NewField("error", err)).Error("encode JSON response")
			}
		})
	}
}
