package delivery_get

import (
	"errors"
	"net/http"

	"foodshare/internal/handlers/rest/converters"
	"foodshare/internal/handlers/rest/request"
	"foodshare/internal/pkg/httpresponse"
	"foodshare/internal/service/delivery"
	"foodshare/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "delivery_get"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := request.PathID(r)
	if err != nil {
		httpresponse.Error(w, http.StatusBadRequest, delivery.ErrInvalidDeliveryID.Error())
		return
	}

	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrDeliveryNotFound):
			httpresponse.Error(w, http.StatusNotFound, delivery.ErrDeliveryNotFound.Error())
		case errors.Is(err, delivery.ErrInvalidDeliveryID):
			httpresponse.Error(w, http.StatusBadRequest, delivery.ErrInvalidDeliveryID.Error())
		default:
			h.log.With(logger.NewField("error", err)).Error("get delivery")
			httpresponse.InternalError(w)
		}
		return
	}

	if err := httpresponse.JSON(w, http.StatusOK, converters.Delivery(*found)); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
