package donation_get

import (
	"errors"
	"net/http"

	"foodshare/internal/handlers/rest/converters"
	"foodshare/internal/handlers/rest/request"
	"foodshare/internal/pkg/httpresponse"
	"foodshare/internal/service/donation"
	"foodshare/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "donation_get"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := request.PathID(r)
	if err != nil {
		httpresponse.Error(w, http.StatusBadRequest, donation.ErrInvalidDonationID.Error())
		return
	}

	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, donation.ErrDonationNotFound):
			httpresponse.Error(w, http.StatusNotFound, donation.ErrDonationNotFound.Error())
		case errors.Is(err, donation.ErrInvalidDonationID):
			httpresponse.Error(w, http.StatusBadRequest, donation.ErrInvalidDonationID.Error())
		default:
			h.log.With(logger.NewField("error", err)).Error("get donation")
			httpresponse.InternalError(w)
		}
		return
	}

	if err := httpresponse.JSON(w, http.StatusOK, converters.Donation(*found)); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
