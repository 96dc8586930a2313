package deliveries_mine_get

import (
	"net/http"

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
	handlerLog := log.With(logger.NewField("handler", "deliveries_mine_get"))

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

	deliveries, err := h.service.ListByVolunteer(r.Context(), session)
	if err != nil {
		h.log.With(logger.NewField("error", err)).Error("list volunteer deliveries")
		httpresponse.InternalError(w)
		return
	}

	if err := httpresponse.JSON(w, http.StatusOK, converters.Deliveries(deliveries)); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
