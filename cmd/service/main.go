package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	application "foodshare/internal/app"
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
	"foodshare/internal/handlers/rest/healthcheck_head"
	"foodshare/internal/handlers/rest/notification_read_post"
	"foodshare/internal/handlers/rest/notifications_get"
	"foodshare/internal/handlers/rest/notifications_read_all_post"
	"foodshare/internal/handlers/rest/reservations_get"
	"foodshare/internal/pkg/config"
	"foodshare/internal/pkg/dotenv"
	"foodshare/internal/pkg/grpchealth"
	"foodshare/internal/pkg/kafka"
	metrics_system "foodshare/internal/pkg/metrics"
	"foodshare/internal/pkg/middlewares/auth"
	"foodshare/internal/pkg/middlewares/graceful_shutdown"
	"foodshare/internal/pkg/middlewares/metrics"
	"foodshare/internal/pkg/middlewares/rate_limiter"
	"foodshare/internal/pkg/middlewares/timeout"
	"foodshare/internal/pkg/postgres"
	"foodshare/pkg/logger"
	"foodshare/pkg/logger/zap_adapter"
	"foodshare/pkg/token_bucket"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "foodshare-api"

func main() {
	if err := dotenv.Load(); err != nil {
		stdlog.Fatalf("failed to load environment: %v", err)
	}

	zapLogger, err := zap_adapter.NewZapAdapter(os.Getenv("LOG_LEVEL"), serviceName)
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting foodshare application")

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // Получаю предупреждения от линтера в местах де наследуюсь от context.Background(), хотя это часть gracefull shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	producer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka)
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			runLog.Error("failed to close kafka producer",
				logger.NewField("error", err),
			)
		}
	}()

	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, producer, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	metricsDone := metrics_system.StartSystemMetricsCollector(ctx, 0)

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, cfg),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	// основной http сервер

	// gRPC health
	healthServer := grpchealth.New(log, cfg.GRPCHealth.Port, serviceName)
	healthServerErr := make(chan error, 1)
	go func() {
		defer close(healthServerErr)
		if err := healthServer.Serve(ongoingCtx); err != nil {
			healthServerErr <- err
		}
	}()
	healthServer.SetServing()
	// gRPC health

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown, businessApp.Querier),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-healthServerErr:
		return fmt.Errorf("gRPC health server: %w", err)
	case err := <-pprofServerErr: // if !cfg.Server.PprofEnabled будет nil по умолчанию, и данный кейс будет проигнорирован
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)

	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}
	healthServer.Shutdown(shutdownCtx)

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	businessApp.BackgroundWorkers.Wait()
	<-metricsDone

	runLog.Info("Server stopped")
	return nil
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	app *application.Application,
	cfg *config.Config,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(timeout.Middleware(cfg.Server.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, app.Querier)).Methods("HEAD")

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	limiter := token_bucket.NewKeyedLimiter(
		cfg.Server.RateLimiterQPS,
		float64(cfg.Server.RateLimiterBurst),
		cfg.Server.RateLimiterIdleTTL,
	)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(auth.Middleware(log, verifier, app.SessionResolver))
	api.Use(rate_limiter.Middleware(log, cfg.Server.RateLimiterQPS, limiter))

	// статические пути регистрируются раньше /{id}
	api.Handle("/donations/mine", donations_mine_get.New(log, app.ServiceDonation)).Methods("GET")
	api.Handle("/donations/stats", donations_stats_get.New(log, app.ServiceDonation)).Methods("GET")
	api.Handle("/donations", donations_get.New(log, app.ServiceDonation)).Methods("GET")
	api.Handle("/donations", donation_post.New(log, app.ServiceDonation)).Methods("POST")
	api.Handle("/donations/{id}", donation_get.New(log, app.ServiceDonation)).Methods("GET")
	api.Handle("/donations/{id}", donation_delete.New(log, app.ServiceDonation)).Methods("DELETE")

	api.Handle("/donations/{id}/reserve", donation_reserve_post.New(log, app.ServiceReservation)).Methods("POST")
	api.Handle("/donations/{id}/cancel-reservation", donation_cancel_reservation_post.New(log, app.ServiceReservation)).Methods("POST")
	api.Handle("/reservations", reservations_get.New(log, app.ServiceReservation)).Methods("GET")

	api.Handle("/deliveries/mine", deliveries_mine_get.New(log, app.ServiceDelivery)).Methods("GET")
	api.Handle("/deliveries", deliveries_get.New(log, app.ServiceDelivery)).Methods("GET")
	api.Handle("/deliveries/{id}", delivery_get.New(log, app.ServiceDelivery)).Methods("GET")
	api.Handle("/deliveries/{id}/{action}", delivery_action_post.New(log, app.ServiceDelivery)).Methods("POST")

	api.Handle("/notifications/read-all", notifications_read_all_post.New(log, app.ServiceNotification)).Methods("POST")
	api.Handle("/notifications", notifications_get.New(log, app.ServiceNotification)).Methods("GET")
	api.Handle("/notifications/{id}/read", notification_read_post.New(log, app.ServiceNotification)).Methods("POST")

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool, pinger healthcheck_head.Pinger) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, pinger)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
