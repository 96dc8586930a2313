package auth

import (
	"errors"
	"net/http"

	"foodshare/internal/pkg/httpresponse"
	"foodshare/internal/service/session"
	"foodshare/pkg/logger"
)

// Middleware пропускает дальше только запросы с валидным токеном и
// существующим профилем. Сессия кладется в контекст запроса.
func Middleware(log handlerLogger, verifier *Verifier, resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r.Header.Get("Authorization"))
			if err != nil {
				httpresponse.Error(w, http.StatusUnauthorized, err.Error())
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				log.With(
					logger.NewField("path", r.URL.Path),
					logger.NewField("error", err),
				).Warn("rejected token")
				httpresponse.Error(w, http.StatusUnauthorized, ErrInvalidToken.Error())
				return
			}

			sess, err := resolver.Resolve(r.Context(), userID)
			if err != nil {
				if errors.Is(err, session.ErrProfileNotFound) || errors.Is(err, session.ErrInvalidProfile) {
					httpresponse.Error(w, http.StatusUnauthorized, err.Error())
					return
				}
				log.With(
					logger.NewField("user_id", userID),
					logger.NewField("error", err),
				).Error("resolve session")
				httpresponse.InternalError(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), *sess)))
		})
	}
}
