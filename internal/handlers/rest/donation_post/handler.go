package donation_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"foodshare/internal/generated/dto"
	"foodshare/internal/handlers/rest/converters"
	"foodshare/internal/handlers/rest/request"
	"foodshare/internal/pkg/authz"
	"foodshare/internal/pkg/httpresponse"
	"foodshare/internal/service/donation"
	"foodshare/pkg/logger"
)

var validationErrors = []error{
	donation.ErrInvalidFoodName,
	donation.ErrInvalidQuantity,
	donation.ErrInvalidUnit,
	donation.ErrInvalidExpiryDate,
	donation.ErrInvalidAddress,
	donation.ErrInvalidOptionalTxt,
	donation.ErrInvalidDonation,
	donation.ErrDonorNotFound,
}

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "donation_post"))

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

	var createDTO dto.DonationCreate
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		httpresponse.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), session, converters.DonationCreate(session, createDTO))
	if err != nil {
		for _, target := range validationErrors {
			if errors.Is(err, target) {
				httpresponse.Error(w, http.StatusBadRequest, httpresponse.Reason(err, target))
				return
			}
		}
		if errors.Is(err, authz.ErrForbidden) {
			httpresponse.Error(w, http.StatusForbidden, "only donors can create donations")
			return
		}

		h.log.With(logger.NewField("error", err)).Error("create donation")
		httpresponse.InternalError(w)
		return
	}

	if err := httpresponse.JSON(w, http.StatusCreated, converters.Donation(*created)); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
