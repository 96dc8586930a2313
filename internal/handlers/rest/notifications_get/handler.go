package notifications_get

import (
	"net/http"

	"foodshare/internal/entities"
	"foodshare/internal/generated/dto"
	"foodshare/internal/handlers/rest/converters"
	"foodshare/internal/handlers/rest/request"
	"foodshare/internal/pkg/httpresponse"
	"foodshare/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "notifications_get"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	session, ok := request.Session(w, r)
	if !ok {
		return
	}

	limit, offset, err := request.Page(r)
	if err != nil {
		httpresponse.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	unreadOnly, err := request.QueryBool(r, "unread")
	if err != nil {
		httpresponse.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	notifications, err := h.service.List(r.Context(), session, entities.NotificationFilter{
		UnreadOnly: unreadOnly,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		h.log.With(logger.NewField("error", err)).Error("list notifications")
		httpresponse.InternalError(w)
		return
	}

	unread, err := h.service.UnreadCount(r.Context(), session)
	if err != nil {
		h.log.With(logger.NewField("error", err)).Error("count unread notifications")
		httpresponse.InternalError(w)
		return
	}

	response := dto.NotificationList{
		Items:       converters.Notifications(notifications),
		UnreadCount: unread,
	}
	if err := httpresponse.JSON(w, http.StatusOK, response); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
