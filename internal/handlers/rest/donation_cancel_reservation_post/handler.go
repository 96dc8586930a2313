package donation_cancel_reservation_post

import (
	"errors"
	"net/http"

	"foodshare/internal/handlers/rest/converters"
	"foodshare/internal/handlers/rest/request"
	"foodshare/internal/pkg/authz"
	"foodshare/internal/pkg/httpresponse"
	"foodshare/internal/service/reservation"
	"foodshare/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "donation_cancel_reservation_post"))

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
		httpresponse.Error(w, http.StatusBadRequest, reservation.ErrInvalidDonationID.Error())
		return
	}

	released, err := h.service.Cancel(r.Context(), session, id)
	if err != nil {
		switch {
		case errors.Is(err, reservation.ErrInvalidDonationID):
			httpresponse.Error(w, http.StatusBadRequest, reservation.ErrInvalidDonationID.Error())
		case errors.Is(err, reservation.ErrDonationNotFound):
			httpresponse.Error(w, http.StatusNotFound, reservation.ErrDonationNotFound.Error())
		case errors.Is(err, reservation.ErrNotOwner):
			httpresponse.Error(w, http.StatusForbidden, reservation.ErrNotOwner.Error())
		case errors.Is(err, authz.ErrForbidden):
			httpresponse.Error(w, http.StatusForbidden, "only organizations can cancel reservations")
		case errors.Is(err, reservation.ErrAlreadyMoved):
			httpresponse.Error(w, http.StatusConflict, httpresponse.Reason(err, reservation.ErrAlreadyMoved))
		default:
			h.log.With(logger.NewField("error", err)).Error("cancel reservation")
			httpresponse.InternalError(w)
		}
		return
	}

	if err := httpresponse.JSON(w, http.StatusOK, converters.Donation(*released)); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
