package notification_read_post

import (
	"errors"
	"net/http"

	"foodshare/internal/handlers/rest/request"
	"foodshare/internal/pkg/httpresponse"
	"foodshare/internal/service/notification"
	"foodshare/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "notification_read_post"))

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

	id, err := request.PathID(r)
	if err != nil {
		httpresponse.Error(w, http.StatusBadRequest, notification.ErrInvalidNotification.Error())
		return
	}

	err = h.service.MarkRead(r.Context(), session, id)
	if err != nil {
		switch {
		case errors.Is(err, notification.ErrInvalidNotification):
			httpresponse.Error(w, http.StatusBadRequest, notification.ErrInvalidNotification.Error())
		case errors.Is(err, notification.ErrNotificationNotFound):
			httpresponse.Error(w, http.StatusNotFound, notification.ErrNotificationNotFound.Error())
		default:
			h.log.With(logger.NewField("error", err)).Error("mark notification read")
			httpresponse.InternalError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
