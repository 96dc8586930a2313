package donations_get

import (
	"net/http"

	"foodshare/internal/entities"
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
	handlerLog := log.With(logger.NewField("handler", "donations_get"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := request.Page(r)
	if err != nil {
		httpresponse.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := entities.DonationFilter{Limit: limit, Offset: offset}
	if raw := r.URL.Query().Get("unit"); raw != "" {
		unit := entities.Unit(raw)
		if !unit.Valid() {
			httpresponse.Error(w, http.StatusBadRequest, "unknown unit")
			return
		}
		filter.Unit = &unit
	}

	donations, err := h.service.ListAvailable(r.Context(), filter)
	if err != nil {
		h.log.With(logger.NewField("error", err)).Error("list available donations")
		httpresponse.InternalError(w)
		return
	}

	if err := httpresponse.JSON(w, http.StatusOK, converters.Donations(donations)); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
