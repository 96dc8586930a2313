package delivery_action_post

import (
	"errors"
	"net/http"

	"foodshare/internal/entities"
	"foodshare/internal/handlers/rest/converters"
	"foodshare/internal/handlers/rest/request"
	"foodshare/internal/pkg/authz"
	"foodshare/internal/pkg/httpresponse"
	"foodshare/internal/service/delivery"
	"foodshare/pkg/logger"

	"github.com/gorilla/mux"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "delivery_action_post"))

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
		httpresponse.Error(w, http.StatusBadRequest, delivery.ErrInvalidDeliveryID.Error())
		return
	}

	action := entities.DeliveryAction(mux.Vars(r)["action"])
	if _, known := action.Target(); !known {
		httpresponse.Error(w, http.StatusBadRequest, delivery.ErrInvalidAction.Error())
		return
	}

	updated, err := h.service.Apply(r.Context(), session, id, action)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrInvalidDeliveryID), errors.Is(err, delivery.ErrInvalidAction):
			httpresponse.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, delivery.ErrDeliveryNotFound):
			httpresponse.Error(w, http.StatusNotFound, delivery.ErrDeliveryNotFound.Error())
		case errors.Is(err, delivery.ErrNotAssignedVolunteer):
			httpresponse.Error(w, http.StatusForbidden, delivery.ErrNotAssignedVolunteer.Error())
		case errors.Is(err, authz.ErrForbidden):
			httpresponse.Error(w, http.StatusForbidden, "action is not allowed for your account")
		case errors.Is(err, delivery.ErrInvalidTransition):
			httpresponse.Error(w, http.StatusConflict, httpresponse.Reason(err, delivery.ErrInvalidTransition))
		case errors.Is(err, delivery.ErrDonationStateConflict):
			httpresponse.Error(w, http.StatusConflict, httpresponse.Reason(err, delivery.ErrDonationStateConflict))
		default:
			h.log.With(
				logger.NewField("action", string(action)),
				logger.NewField("error", err),
			).Error("apply delivery action")
			httpresponse.InternalError(w)
		}
		return
	}

	if err := httpresponse.JSON(w, http.StatusOK, converters.Delivery(*updated)); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
