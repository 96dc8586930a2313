package donation_reserve_post

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
	handlerLog := log.With(logger.NewField("handler", "donation_reserve_post"))

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

	reserved, err := h.service.Reserve(r.Context(), session, id)
	if err != nil {
		switch {
		case errors.Is(err, reservation.ErrInvalidDonationID):
			httpresponse.Error(w, http.StatusBadRequest, reservation.ErrInvalidDonationID.Error())
		case errors.Is(err, reservation.ErrDonationNotFound):
			httpresponse.Error(w, http.StatusNotFound, reservation.ErrDonationNotFound.Error())
		case errors.Is(err, reservation.ErrAlreadyTaken):
			httpresponse.Error(w, http.StatusConflict, httpresponse.Reason(err, reservation.ErrAlreadyTaken))
		case errors.Is(err, authz.ErrForbidden):
			httpresponse.Error(w, http.StatusForbidden, "only organizations can reserve donations of other users")
		case errors.Is(err, reservation.ErrTransientFailure):
			h.log.With(logger.NewField("error", err)).Warn("reservation failed")
			httpresponse.Error(w, http.StatusServiceUnavailable, reservation.ErrTransientFailure.Error())
		default:
			h.log.With(logger.NewField("error", err)).Error("reserve donation")
			httpresponse.InternalError(w)
		}
		return
	}

	if err := httpresponse.JSON(w, http.StatusOK, converters.Donation(*reserved)); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
