package auth

import (
	"context"

	"foodshare/internal/entities"
)

type sessionKey struct{}

func WithSession(ctx context.Context, session entities.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext сессия, положенная Middleware.
func SessionFromContext(ctx context.Context) (entities.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(entities.Session)
	return session, ok
}
