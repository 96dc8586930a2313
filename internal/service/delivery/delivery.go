package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodshare/internal/entities"
	"foodshare/internal/pkg/authz"
	"foodshare/pkg/logger"

	"github.com/google/uuid"
)

const (
	pickupTitle   = "Donation Pickup Started"
	deliveryTitle = "Donation Successfully Delivered"
)

// backfillBatch сколько пожертвований добирается за один проход.
const backfillBatch = 100

// cancellableByDonation доставки, которые снимаются при отмене резерва.
// in_progress не снимается: пожертвование уже в пути и резерв не отменить.
var cancellableByDonation = []entities.DeliveryStatus{entities.DeliveryPending, entities.DeliveryAssigned}

type Delivery struct {
	repository Repository
	authorizer Authorizer
	notifier   Notifier
	publisher  EventPublisher
	txManager  TxManager
	log        serviceLogger
}

func New(
	repository Repository,
	authorizer Authorizer,
	notifier Notifier,
	publisher EventPublisher,
	txManager TxManager,
	log serviceLogger,
) *Delivery {
	return &Delivery{
		repository: repository,
		authorizer: authorizer,
		notifier:   notifier,
		publisher:  publisher,
		txManager:  txManager,
		log:        log.With(logger.NewField("component", "delivery")),
	}
}

// CreateForDonation заводит pending доставку для зарезервированного пожертвования.
// Активная доставка от прошлого резерва снимается, и вставка повторяется один раз.
func (d *Delivery) CreateForDonation(ctx context.Context, donationID uuid.UUID, ngoID *uuid.UUID) (*entities.Delivery, error) {
	if donationID == uuid.Nil {
		return nil, ErrInvalidDonationID
	}
	if ngoID == nil {
		return nil, ErrDonationNotReserved
	}

	delivery, err := d.repository.Create(ctx, donationID, *ngoID)
	if errors.Is(err, ErrDeliveryAlreadyExists) {
		cancelled, cancelErr := d.repository.CancelOrphaned(ctx, donationID)
		if cancelErr != nil {
			return nil, fmt.Errorf("cancel orphaned deliveries: %w", cancelErr)
		}
		if cancelled > 0 {
			d.log.Warn("orphaned deliveries cancelled",
				logger.NewField("donation_id", donationID),
				logger.NewField("count", cancelled),
			)
			delivery, err = d.repository.Create(ctx, donationID, *ngoID)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("create delivery: %w", err)
	}
	return delivery, nil
}

// ReconcileDeliveries снимает доставки, чье пожертвование ушло из резерва
// или перешло к другой НКО, а событие об этом не дошло.
func (d *Delivery) ReconcileDeliveries(ctx context.Context) (int64, error) {
	cancelled, err := d.repository.CancelOrphaned(ctx, uuid.Nil)
	if err != nil {
		return 0, fmt.Errorf("cancel orphaned deliveries: %w", err)
	}

	if cancelled > 0 {
		d.log.Info("orphaned deliveries cancelled",
			logger.NewField("count", cancelled),
		)
	}
	return cancelled, nil
}

// CancelForDonation снимает еще не начатую доставку после отмены резерва.
func (d *Delivery) CancelForDonation(ctx context.Context, donationID uuid.UUID) (int64, error) {
	if donationID == uuid.Nil {
		return 0, ErrInvalidDonationID
	}

	cancelled, err := d.repository.CancelByDonation(ctx, donationID, cancellableByDonation)
	if err != nil {
		return 0, fmt.Errorf("cancel deliveries for donation: %w", err)
	}
	return cancelled, nil
}

// BackfillDeliveries заводит доставки для зарезервированных пожертвований,
// событие о которых не дошло до воркера. Возвращает новый курсор по reserved_at.
func (d *Delivery) BackfillDeliveries(ctx context.Context, cursor time.Time) (time.Time, error) {
	donations, err := d.repository.ListAwaitingDelivery(ctx, cursor, backfillBatch)
	if err != nil {
		return cursor, fmt.Errorf("list donations awaiting delivery: %w", err)
	}

	next := cursor
	for _, donation := range donations {
		_, err := d.CreateForDonation(ctx, donation.ID, donation.ReservedBy)
		if err != nil && !errors.Is(err, ErrDeliveryAlreadyExists) && !errors.Is(err, ErrDonationNotReserved) {
			// курсор не двигаем дальше необработанного пожертвования
			return next, err
		}
		if donation.ReservedAt != nil && donation.ReservedAt.After(next) {
			next = *donation.ReservedAt
		}
	}

	if len(donations) > 0 {
		d.log.Info("deliveries backfilled",
			logger.NewField("count", len(donations)),
		)
	}

	return next, nil
}

func (d *Delivery) Get(ctx context.Context, id uuid.UUID) (*entities.Delivery, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidDeliveryID
	}

	delivery, err := d.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return delivery, nil
}

// ListOpen доставки, которые ждут волонтера.
func (d *Delivery) ListOpen(ctx context.Context) ([]entities.Delivery, error) {
	deliveries, err := d.repository.ListByStatus(ctx, entities.DeliveryPending)
	if err != nil {
		return nil, fmt.Errorf("list open deliveries: %w", err)
	}
	return deliveries, nil
}

func (d *Delivery) ListByVolunteer(ctx context.Context, session entities.Session) ([]entities.Delivery, error) {
	deliveries, err := d.repository.ListByVolunteer(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("list volunteer deliveries: %w", err)
	}
	return deliveries, nil
}

// Apply выполняет действие волонтера.
func (d *Delivery) Apply(ctx context.Context, session entities.Session, id uuid.UUID, action entities.DeliveryAction) (*entities.Delivery, error) {
	switch action {
	case entities.DeliveryActionClaim:
		return d.Claim(ctx, session, id)
	case entities.DeliveryActionPickup:
		return d.StartPickup(ctx, session, id)
	case entities.DeliveryActionComplete:
		return d.Complete(ctx, session, id)
	case entities.DeliveryActionCancel:
		return d.Cancel(ctx, session, id)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
}

// Claim pending -> assigned. Единственный переход, открытый любому волонтеру.
func (d *Delivery) Claim(ctx context.Context, session entities.Session, id uuid.UUID) (*entities.Delivery, error) {
	delivery, err := d.load(ctx, id)
	if err != nil {
		return nil, err
	}

	err = d.authorize(ctx, session, authz.ActionDeliveryClaim, delivery)
	if err != nil {
		return nil, err
	}

	claimed, err := d.repository.Claim(ctx, id, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("claim delivery: %w", err)
	}
	if !claimed {
		return nil, d.classify(ctx, id, session.UserID, entities.DeliveryAssigned)
	}

	d.log.Info("delivery claimed",
		logger.NewField("delivery_id", id),
		logger.NewField("volunteer_id", session.UserID),
	)
	return d.reread(ctx, id)
}

// StartPickup assigned -> in_progress, пожертвование pending -> in_transit в той же транзакции.
func (d *Delivery) StartPickup(ctx context.Context, session entities.Session, id uuid.UUID) (*entities.Delivery, error) {
	delivery, err := d.load(ctx, id)
	if err != nil {
		return nil, err
	}

	err = d.authorize(ctx, session, authz.ActionDeliveryPickup, delivery)
	if err != nil {
		return nil, err
	}

	err = d.txManager.Do(ctx, func(ctx context.Context) error {
		started, err := d.repository.StartPickup(ctx, id, session.UserID)
		if err != nil {
			return fmt.Errorf("start pickup: %w", err)
		}
		if !started {
			return d.classify(ctx, id, session.UserID, entities.DeliveryInProgress)
		}

		return d.advanceDonation(ctx, delivery.DonationID, entities.DonationPending, entities.DonationInTransit)
	})
	if err != nil {
		return nil, err
	}

	d.log.Info("delivery pickup started",
		logger.NewField("delivery_id", id),
		logger.NewField("donation_id", delivery.DonationID),
	)

	d.afterDonationChange(ctx, delivery.DonationID, func(donation *entities.Donation) (string, string) {
		return pickupTitle, fmt.Sprintf("A volunteer has picked up your donation %q", donation.FoodName)
	})
	return d.reread(ctx, id)
}

// Complete in_progress -> completed, пожертвование in_transit -> completed.
func (d *Delivery) Complete(ctx context.Context, session entities.Session, id uuid.UUID) (*entities.Delivery, error) {
	delivery, err := d.load(ctx, id)
	if err != nil {
		return nil, err
	}

	err = d.authorize(ctx, session, authz.ActionDeliveryComplete, delivery)
	if err != nil {
		return nil, err
	}

	err = d.txManager.Do(ctx, func(ctx context.Context) error {
		completed, err := d.repository.Complete(ctx, id, session.UserID)
		if err != nil {
			return fmt.Errorf("complete delivery: %w", err)
		}
		if !completed {
			return d.classify(ctx, id, session.UserID, entities.DeliveryCompleted)
		}

		return d.advanceDonation(ctx, delivery.DonationID, entities.DonationInTransit, entities.DonationCompleted)
	})
	if err != nil {
		return nil, err
	}

	d.log.Info("delivery completed",
		logger.NewField("delivery_id", id),
		logger.NewField("donation_id", delivery.DonationID),
	)

	d.afterDonationChange(ctx, delivery.DonationID, func(donation *entities.Donation) (string, string) {
		return deliveryTitle, fmt.Sprintf("Your donation %q has been successfully delivered", donation.FoodName)
	})
	return d.reread(ctx, id)
}

// Cancel снимает доставку. Кто может отменять, решает политика авторизации.
// Если доставка уже шла, пожертвование возвращается in_transit -> pending,
// а событие о смене статуса заводит для него новую доставку.
func (d *Delivery) Cancel(ctx context.Context, session entities.Session, id uuid.UUID) (*entities.Delivery, error) {
	delivery, err := d.load(ctx, id)
	if err != nil {
		return nil, err
	}

	err = d.authorize(ctx, session, authz.ActionDeliveryCancel, delivery)
	if err != nil {
		return nil, err
	}

	var donationChanged bool
	err = d.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := d.repository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("lock delivery: %w", err)
		}
		if !entities.CanTransition(current.Status, entities.DeliveryCancelled) {
			return invalidTransition(current.Status, entities.DeliveryCancelled)
		}

		cancelled, err := d.repository.Cancel(ctx, id, current.Status)
		if err != nil {
			return fmt.Errorf("cancel delivery: %w", err)
		}
		if !cancelled {
			return d.classify(ctx, id, session.UserID, entities.DeliveryCancelled)
		}

		if current.Status == entities.DeliveryInProgress {
			donationChanged = true
			return d.advanceDonation(ctx, current.DonationID, entities.DonationInTransit, entities.DonationPending)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.log.Info("delivery cancelled",
		logger.NewField("delivery_id", id),
		logger.NewField("donation_id", delivery.DonationID),
		logger.NewField("donation_reverted", donationChanged),
	)

	// пожертвование снова ждет доставку
	d.publishDonation(ctx, delivery.DonationID)
	return d.reread(ctx, id)
}

func (d *Delivery) load(ctx context.Context, id uuid.UUID) (*entities.Delivery, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidDeliveryID
	}

	delivery, err := d.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return delivery, nil
}

func (d *Delivery) authorize(ctx context.Context, session entities.Session, action authz.Action, delivery *entities.Delivery) error {
	return d.authorizer.Authorize(ctx, session, action, authz.Resource{
		ID:         delivery.ID,
		AssigneeID: delivery.VolunteerID,
	})
}

// classify объясняет, почему условный UPDATE не затронул строку.
func (d *Delivery) classify(ctx context.Context, id, volunteerID uuid.UUID, target entities.DeliveryStatus) error {
	current, err := d.repository.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get delivery: %w", err)
	}

	if !entities.CanTransition(current.Status, target) {
		return invalidTransition(current.Status, target)
	}
	if target != entities.DeliveryAssigned && target != entities.DeliveryCancelled && !current.IsAssignedTo(volunteerID) {
		return ErrNotAssignedVolunteer
	}
	// переход допустим, но строку успели поменять между UPDATE и чтением
	return invalidTransition(current.Status, target)
}

func (d *Delivery) advanceDonation(ctx context.Context, donationID uuid.UUID, from, to entities.DonationStatus) error {
	advanced, err := d.repository.AdvanceDonation(ctx, donationID, from, to)
	if err != nil {
		return fmt.Errorf("advance donation: %w", err)
	}
	if !advanced {
		return fmt.Errorf("%w: expected %s before moving to %s", ErrDonationStateConflict, from, to)
	}
	return nil
}

func (d *Delivery) reread(ctx context.Context, id uuid.UUID) (*entities.Delivery, error) {
	delivery, err := d.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return delivery, nil
}

// afterDonationChange уведомляет донора и публикует событие. Ошибки только логируются.
func (d *Delivery) afterDonationChange(
	ctx context.Context,
	donationID uuid.UUID,
	message func(donation *entities.Donation) (title, text string),
) {
	donation, err := d.repository.GetDonation(ctx, donationID)
	if err != nil {
		d.log.Error("load donation for notification",
			logger.NewField("donation_id", donationID),
			logger.NewField("error", err),
		)
		return
	}

	title, text := message(donation)
	related := entities.RelatedDonation
	_, err = d.notifier.Notify(ctx, entities.NotificationCreate{
		UserID:    donation.DonorID,
		Title:     title,
		Message:   text,
		RelatedTo: &related,
		RelatedID: &donation.ID,
	})
	if err != nil {
		d.log.Error("notify donor about delivery",
			logger.NewField("donation_id", donationID),
			logger.NewField("title", title),
			logger.NewField("error", err),
		)
	}

	d.publish(ctx, donation)
}

func (d *Delivery) publishDonation(ctx context.Context, donationID uuid.UUID) {
	donation, err := d.repository.GetDonation(ctx, donationID)
	if err != nil {
		if !errors.Is(err, ErrDonationNotFound) {
			d.log.Error("load donation for event",
				logger.NewField("donation_id", donationID),
				logger.NewField("error", err),
			)
		}
		return
	}
	d.publish(ctx, donation)
}

func (d *Delivery) publish(ctx context.Context, donation *entities.Donation) {
	event := entities.NewDonationStatusChanged(*donation, time.Now().UTC())
	if err := d.publisher.PublishDonationStatusChanged(ctx, event); err != nil {
		d.log.Error("publish donation status changed",
			logger.NewField("donation_id", donation.ID),
			logger.NewField("error", err),
		)
	}
}
