package graceful_shutdown

import (
	"net/http"
	"sync/atomic"
)

// Middleware rejects new requests with 503 once shutdown has begun.
// Requests already inside next run to completion.
func Middleware(isShuttingDown *atomic.Bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isShuttingDown.Load() {
				w.Header().Set("Connection", "close")
				http.Error(w, "service is shutting down", http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
