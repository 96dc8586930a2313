package request

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"foodshare/internal/entities"
	"foodshare/internal/pkg/httpresponse"
	"foodshare/internal/pkg/middlewares/auth"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

var ErrInvalidQuery = errors.New("invalid query parameter")

// PathID разбирает {id} из маршрута.
func PathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id: %w", err)
	}
	return id, nil
}

// Session достает сессию. Без нее пишет 401 и возвращает false.
func Session(w http.ResponseWriter, r *http.Request) (entities.Session, bool) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		httpresponse.Error(w, http.StatusUnauthorized, "authentication required")
		return entities.Session{}, false
	}
	return session, true
}

// Page limit/offset из query. Лимит ограничен сверху.
func Page(r *http.Request) (uint64, uint64, error) {
	limit, err := queryUint(r, "limit", defaultLimit)
	if err != nil {
		return 0, 0, err
	}
	if limit == 0 || limit > maxLimit {
		limit = maxLimit
	}

	offset, err := queryUint(r, "offset", 0)
	if err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}

func QueryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrInvalidQuery, name)
	}
	return v, nil
}

func queryUint(r *http.Request, name string, fallback uint64) (uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidQuery, name)
	}
	return v, nil
}
