package donation_delete

import (
	"errors"
	"net/http"

	"foodshare/internal/handlers/rest/request"
	"foodshare/internal/pkg/authz"
	"foodshare/internal/pkg/httpresponse"
	"foodshare/internal/service/donation"
	"foodshare/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "donation_delete"))

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
		httpresponse.Error(w, http.StatusBadRequest, donation.ErrInvalidDonationID.Error())
		return
	}

	err = h.service.Delete(r.Context(), session, id)
	if err != nil {
		switch {
		case errors.Is(err, donation.ErrDonationNotFound):
			httpresponse.Error(w, http.StatusNotFound, donation.ErrDonationNotFound.Error())
		case errors.Is(err, donation.ErrInvalidDonationID):
			httpresponse.Error(w, http.StatusBadRequest, donation.ErrInvalidDonationID.Error())
		case errors.Is(err, authz.ErrForbidden):
			httpresponse.Error(w, http.StatusForbidden, "only the donor can delete this donation")
		case errors.Is(err, donation.ErrNotDeletable):
			httpresponse.Error(w, http.StatusConflict, httpresponse.Reason(err, donation.ErrNotDeletable))
		default:
			h.log.With(logger.NewField("error", err)).Error("delete donation")
			httpresponse.InternalError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
