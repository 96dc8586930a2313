package donations_stats_get

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
	handlerLog := log.With(logger.NewField("handler", "donations_stats_get"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.log.With(logger.NewField("error", err)).Error("donation stats")
		httpresponse.InternalError(w)
		return
	}

	if err := httpresponse.JSON(w, http.StatusOK, converters.DonationStats(stats)); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
