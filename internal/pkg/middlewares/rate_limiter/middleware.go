package rate_limiter

import (
	"net"
	"net/http"
	"strconv"

	"foodshare/internal/pkg/httpresponse"
	"foodshare/internal/pkg/middlewares/auth"
	"foodshare/pkg/logger"

	"github.com/gorilla/mux"
)

const (
	keyKindUser = "user"
	keyKindAddr = "addr"
)

// Middleware ограничивает частоту запросов отдельно для каждого клиента.
// Клиент это пользователь из сессии, а без сессии адрес подключения,
// поэтому ставить после auth.
func Middleware(log handlerLogger, rateLimiterQPS int, limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, kind := clientKey(r)
			if limiter.Allow(key) {
				next.ServeHTTP(w, r)
				return
			}

			handlerPath := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					handlerPath = template
				}
			}

			log.With(
				logger.NewField("method", r.Method),
				logger.NewField("route", handlerPath),
				logger.NewField("client", key),
			).Warn("rate limit exceeded")

			RateLimitExceededTotal.WithLabelValues(r.Method, handlerPath, kind).Inc()

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rateLimiterQPS))
			w.Header().Set("Retry-After", "1")
			httpresponse.Error(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
		})
	}
}

func clientKey(r *http.Request) (string, string) {
	if session, ok := auth.SessionFromContext(r.Context()); ok {
		return keyKindUser + ":" + session.UserID.String(), keyKindUser
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return keyKindAddr + ":" + host, keyKindAddr
}
