package donation_status_changed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"foodshare/internal/entities"
	donationService "foodshare/internal/service/donation"
	"foodshare/internal/service/transport"
	"foodshare/pkg/logger"

	"github.com/IBM/sarama"
)

type Handler struct {
	transportService         Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, transportService Service, timeout time.Duration) *Handler {
	handlerLog := log.With(logger.NewField("handler", "donation.status.changed"))

	return &Handler{
		transportService:         transportService,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("claim messages closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// rebalance или остановка consumer group
			h.log.Info("session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing обрабатывает одно сообщение.
// true - прервать ConsumeClaim без коммита, сообщение будет перечитано.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event entities.DonationStatusChanged
	err := json.Unmarshal(message.Value, &event)
	if err != nil {
		h.log.Error("received bad message",
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		)
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("donation", event.DonationID),
		logger.NewField("status", event.Status),
		logger.NewField("offset", message.Offset),
	)

	msgLog.Info("processing")

	donation, err := h.transportService.ProcessDonationStatusChange(ctx, event)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.Warn("context cancelled, message will be reprocessed",
				logger.NewField("error", err),
			)
			return true

		case errors.Is(err, transport.ErrStatusMismatch):
			// обработали по текущему статусу, событие просто устарело
			msgLog.Info("stale event processed by current status",
				logger.NewField("error", err),
			)

		case errors.Is(err, donationService.ErrDonationNotFound) || errors.Is(err, transport.ErrInvalidEvent):
			msgLog.Warn("donation gone, skipping",
				logger.NewField("error", err),
			)

		default:
			msgLog.Error("failed to process donation status change",
				logger.NewField("error", err),
			)
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.Info("processed",
		logger.NewField("current_status", donation.Status.String()),
	)

	sess.MarkMessage(message, "")
	return false
}
