package deliveries_get

import (
	"net/http"

	"foodshare/internal/handlers/rest/converters"
	"foodshare/internal/pkg/httpresponse"
	"foodshare/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "deliveries_get"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	deliveries, err := h.service.ListOpen(r.Context())
	if err != nil {
		h.log.With(logger.NewField("error", err)).Error("list open deliveries")
		httpresponse.InternalError(w)
		return
	}

	if err := httpresponse.JSON(w, http.StatusOK, converters.Deliveries(deliveries)); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
