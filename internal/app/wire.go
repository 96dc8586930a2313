//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"foodshare/internal/gateway/kafka/donation_events"
	"foodshare/internal/handlers/kafka-consumer/donation_status_changed"
	"foodshare/internal/handlers/rest/deliveries_get"
	"foodshare/internal/handlers/rest/deliveries_mine_get"
	"foodshare/internal/handlers/rest/delivery_action_post"
	"foodshare/internal/handlers/rest/delivery_get"
	"foodshare/internal/handlers/rest/donation_cancel_reservation_post"
	"foodshare/internal/handlers/rest/donation_delete"
	"foodshare/internal/handlers/rest/donation_get"
	"foodshare/internal/handlers/rest/donation_post"
	"foodshare/internal/handlers/rest/donation_reserve_post"
	"foodshare/internal/handlers/rest/donations_get"
	"foodshare/internal/handlers/rest/donations_mine_get"
	"foodshare/internal/handlers/rest/donations_stats_get"
	"foodshare/internal/handlers/rest/notification_read_post"
	"foodshare/internal/handlers/rest/notifications_get"
	"foodshare/internal/handlers/rest/notifications_read_all_post"
	"foodshare/internal/handlers/rest/reservations_get"
	"foodshare/internal/handlers/tasks/delivery_backfill"
	"foodshare/internal/handlers/tasks/donation_expiry"
	"foodshare/internal/pkg/authz"
	"foodshare/internal/pkg/config"
	"foodshare/internal/pkg/factory/donation_event_handle"

	deliveryRepo "foodshare/internal/repository/delivery"
	donationRepo "foodshare/internal/repository/donation"
	notificationRepo "foodshare/internal/repository/notification"
	profileRepo "foodshare/internal/repository/profile"
	reservationRepo "foodshare/internal/repository/reservation"
	deliveryService "foodshare/internal/service/delivery"
	donationService "foodshare/internal/service/donation"
	notificationService "foodshare/internal/service/notification"
	reservationService "foodshare/internal/service/reservation"
	sessionService "foodshare/internal/service/session"
	transportService "foodshare/internal/service/transport"

	"foodshare/pkg/background"
	"foodshare/pkg/logger"
	"foodshare/pkg/querier"
	"foodshare/pkg/tx"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

type (
	ExpiryInterval   time.Duration
	BackfillInterval time.Duration
	BackfillLookback time.Duration
)

type Application struct {
	ServiceDonation     ServiceDonation
	ServiceReservation  ServiceReservation
	ServiceDelivery     ServiceDelivery
	ServiceNotification ServiceNotification
	SessionResolver     *sessionService.Resolver
	Querier             *querier.Querier
	BackgroundWorkers   *background.Worker
}

type ServiceDonation interface {
	donation_post.Service
	donations_get.Service
	donations_mine_get.Service
	donations_stats_get.Service
	donation_get.Service
	donation_delete.Service
}

type ServiceReservation interface {
	donation_reserve_post.Service
	donation_cancel_reservation_post.Service
	reservations_get.Service
}

type ServiceDelivery interface {
	deliveries_get.Service
	deliveries_mine_get.Service
	delivery_get.Service
	delivery_action_post.Service
}

type ServiceNotification interface {
	notifications_get.Service
	notification_read_post.Service
	notifications_read_all_post.Service
}

var repositorySet = wire.NewSet(
	provideTxManager,
	provideQuerier,

	provideDonationRepository,
	provideReservationRepository,
	provideDeliveryRepository,
	provideNotificationRepository,
	provideProfileRepository,

	wire.Bind(new(donationService.Repository), new(*donationRepo.Repository)),
	wire.Bind(new(reservationService.Repository), new(*reservationRepo.Repository)),
	wire.Bind(new(deliveryService.Repository), new(*deliveryRepo.Repository)),
	wire.Bind(new(notificationService.Repository), new(*notificationRepo.Repository)),
	wire.Bind(new(sessionService.ProfileRepository), new(*profileRepo.Repository)),
)

var serviceSet = wire.NewSet(
	providePolicy,
	providePublisher,

	provideNotificationService,
	provideDonationService,
	provideDeliveryService,

	wire.Bind(new(donationService.Authorizer), new(*authz.Policy)),
	wire.Bind(new(reservationService.Authorizer), new(*authz.Policy)),
	wire.Bind(new(deliveryService.Authorizer), new(*authz.Policy)),

	wire.Bind(new(reservationService.Notifier), new(*notificationService.Notification)),
	wire.Bind(new(deliveryService.Notifier), new(*notificationService.Notification)),

	wire.Bind(new(reservationService.EventPublisher), new(*donation_events.Publisher)),
	wire.Bind(new(deliveryService.EventPublisher), new(*donation_events.Publisher)),

	wire.Bind(new(deliveryService.TxManager), new(*tx.Manager)),
)

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		repositorySet,
		serviceSet,

		provideReservationService,
		provideSessionResolver,

		provideExpiryInterval,
		provideBackfillInterval,
		provideBackfillLookback,
		provideDonationExpiryTask,
		provideDeliveryBackfillTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceDonation), new(*donationService.Donation)),
		wire.Bind(new(ServiceReservation), new(*reservationService.Reservation)),
		wire.Bind(new(ServiceDelivery), new(*deliveryService.Delivery)),
		wire.Bind(new(ServiceNotification), new(*notificationService.Notification)),

		wire.Bind(new(donation_expiry.Service), new(*donationService.Donation)),
		wire.Bind(new(delivery_backfill.Service), new(*deliveryService.Delivery)),
	)
	return &Application{}, nil
}

type KafkaWorkerApp struct {
	TransportService donation_status_changed.Service
	Querier          *querier.Querier
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-donation-status-changed)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		repositorySet,
		serviceSet,

		provideStatusHandlerFactory,
		provideTransportService,

		wire.Bind(new(transportService.DonationReader), new(*donationService.Donation)),
		wire.Bind(new(transportService.DeliveryService), new(*deliveryService.Delivery)),
		wire.Bind(new(transportService.HandlerFactory), new(*donation_event_handle.StatusHandlerFactory)),
		wire.Bind(new(donation_status_changed.Service), new(*transportService.Service)),

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideDonationRepository(querier *querier.Querier) *donationRepo.Repository {
	return donationRepo.New(querier)
}

func provideReservationRepository(querier *querier.Querier) *reservationRepo.Repository {
	return reservationRepo.New(querier)
}

func provideDeliveryRepository(querier *querier.Querier) *deliveryRepo.Repository {
	return deliveryRepo.New(querier)
}

func provideNotificationRepository(querier *querier.Querier) *notificationRepo.Repository {
	return notificationRepo.New(querier)
}

func provideProfileRepository(querier *querier.Querier) *profileRepo.Repository {
	return profileRepo.New(querier)
}

func providePolicy() *authz.Policy {
	return authz.NewPolicy()
}

func providePublisher(producer sarama.SyncProducer, cfg *config.Config) *donation_events.Publisher {
	return donation_events.New(producer, cfg.Kafka.Topic, cfg.Kafka.PublishTimeout)
}

func provideNotificationService(repository notificationService.Repository) *notificationService.Notification {
	return notificationService.New(repository)
}

func provideDonationService(
	repository donationService.Repository,
	authorizer donationService.Authorizer,
) *donationService.Donation {
	return donationService.New(repository, authorizer)
}

func provideReservationService(
	repository reservationService.Repository,
	authorizer reservationService.Authorizer,
	notifier reservationService.Notifier,
	publisher reservationService.EventPublisher,
	log logger.Logger,
	cfg *config.Config,
) (*reservationService.Reservation, error) {
	strategies, err := reservationService.ParseStrategies(strings.Join(cfg.Reservation.Strategies, ","))
	if err != nil {
		return nil, fmt.Errorf("reservation strategies: %w", err)
	}

	return reservationService.New(
		repository,
		authorizer,
		notifier,
		publisher,
		log,
		reservationService.Config{
			Strategies:     strategies,
			MaxAttempts:    cfg.Reservation.MaxAttempts,
			RetryDelay:     cfg.Reservation.RetryDelay,
			AttemptTimeout: cfg.Reservation.AttemptTimeout,
		},
	), nil
}

func provideDeliveryService(
	repository deliveryService.Repository,
	authorizer deliveryService.Authorizer,
	notifier deliveryService.Notifier,
	publisher deliveryService.EventPublisher,
	txManager deliveryService.TxManager,
	log logger.Logger,
) *deliveryService.Delivery {
	return deliveryService.New(
		repository,
		authorizer,
		notifier,
		publisher,
		txManager,
		log,
	)
}

func provideSessionResolver(repository sessionService.ProfileRepository, cfg *config.Config) *sessionService.Resolver {
	return sessionService.New(repository, sessionService.Config{
		MaxRetries: cfg.Session.ProfileMaxRetries,
		RetryDelay: cfg.Session.ProfileRetryDelay,
	})
}

func provideStatusHandlerFactory(deliveries transportService.DeliveryService) *donation_event_handle.StatusHandlerFactory {
	return donation_event_handle.NewStatusHandlerFactory(deliveries)
}

// provideTransportService обрабатывает события смены статуса пожертвования из Kafka
func provideTransportService(
	donations transportService.DonationReader,
	deliveries transportService.DeliveryService,
	handlerFactory transportService.HandlerFactory,
) *transportService.Service {
	return transportService.New(donations, deliveries, handlerFactory)
}

func provideExpiryInterval(cfg *config.Config) ExpiryInterval {
	return ExpiryInterval(cfg.Tasks.DonationExpiryInterval)
}

func provideBackfillInterval(cfg *config.Config) BackfillInterval {
	return BackfillInterval(cfg.Tasks.DeliveryBackfillInterval)
}

func provideBackfillLookback(cfg *config.Config) BackfillLookback {
	return BackfillLookback(cfg.Tasks.DeliveryBackfillLookback)
}

func provideDonationExpiryTask(
	log logger.Logger,
	donations donation_expiry.Service,
	interval ExpiryInterval,
) *donation_expiry.DonationExpiry {
	return donation_expiry.NewDonationExpiry(log, donations, time.Duration(interval))
}

func provideDeliveryBackfillTask(
	deliveries delivery_backfill.Service,
	interval BackfillInterval,
	lookback BackfillLookback,
) *delivery_backfill.DeliveryBackfill {
	return delivery_backfill.NewDeliveryBackfill(deliveries, time.Duration(interval), time.Duration(lookback))
}

func provideTaskList(
	donationExpiryTask *donation_expiry.DonationExpiry,
	deliveryBackfillTask *delivery_backfill.DeliveryBackfill,
) []background.Task {
	return []background.Task{
		donationExpiryTask,
		deliveryBackfillTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
