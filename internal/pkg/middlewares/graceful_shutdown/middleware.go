package graceful_shutdown

import (
	"context"
	"net/http"
	"sync/atomic"

	"foodshare/internal/pkg/httpresponse"
)

// Middleware отбивает запросы, пришедшие после отмены ongoingCtx.
// Во время readiness drain флаг уже выставлен, но запросы еще обслуживаются.
func Middleware(isShuttingDown *atomic.Bool, ongoingCtx context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ongoingCtx.Err() != nil && isShuttingDown.Load() {
				w.Header().Set("Connection", "close")
				httpresponse.Error(w, http.StatusServiceUnavailable, "service is shutting down")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
