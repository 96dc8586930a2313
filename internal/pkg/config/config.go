package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultReservationStrategies     = "atomic_routine,conditional_update,alternate_literal"
	defaultReservationMaxAttempts    = 2
	defaultReservationRetryDelay     = time.Second
	// MIDDLEWARE_REQUEST_TIMEOUT не может быть меньше Reservation.Budget(),
	// иначе повторная попытка резерва не успевает начаться.
	defaultReservationAttemptTimeout = 5 * time.Second

	defaultSessionProfileMaxRetries = 3
	defaultSessionProfileRetryDelay = time.Second

	defaultDeliveryBackfillInterval = time.Minute
	defaultDeliveryBackfillLookback = 24 * time.Hour

	defaultPostgresMaxConns = 10
	defaultPostgresMinConns = 5
	defaultPostgresAppName  = "foodshare"

	defaultRateLimiterIdleTTL = 10 * time.Minute
	defaultPublishTimeout     = 5 * time.Second
)

type (
	Tasks struct {
		DonationExpiryInterval   time.Duration
		DeliveryBackfillInterval time.Duration
		DeliveryBackfillLookback time.Duration
	}

	HTTPServer struct {
		Port               string
		RequestTimeout     time.Duration // middleware timeout
		RateLimiterQPS     int           // middleware rate limiter capacity
		RateLimiterBurst   int           // middleware rate limiter burst/refill
		RateLimiterIdleTTL time.Duration // сколько хранить bucket неактивного клиента
		PprofEnabled       bool
		PprofPort          string
	}

	GRPCHealth struct {
		Port string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string

		MaxConns int32
		MinConns int32
		AppName  string // application_name в pg_stat_activity
	}

	Auth struct {
		JWTSecret string
		JWTIssuer string
	}

	Log struct {
		Level string
	}

	Reservation struct {
		Strategies     []string
		MaxAttempts    uint64
		RetryDelay     time.Duration
		AttemptTimeout time.Duration
	}

	Session struct {
		ProfileMaxRetries uint64
		ProfileRetryDelay time.Duration
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		Topic           string
		ConsumerGroup   string
		PublishTimeout  time.Duration
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		DonationStatusChanged DonationStatusChanged
	}

	DonationStatusChanged struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		Tasks       Tasks
		Server      HTTPServer
		GRPCHealth  GRPCHealth
		Database    Database
		Auth        Auth
		Log         Log
		Reservation Reservation
		Session     Session
		Kafka       Kafka
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

// LoadDatabase только подключение к базе, для утилит вроде cmd/migrate.
func LoadDatabase() (*Database, error) {
	cfg, err := loadDatabase()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := validateDatabase(&cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return &cfg, nil
}

func loadFromEnv() (*Config, error) {
	database, err := loadDatabase()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	expiryInterval, err := osGetEnvDuration("BACKGROUND_DONATION_EXPIRY_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	backfillInterval, err := osGetEnvDurationOr("BACKGROUND_DELIVERY_BACKFILL_INTERVAL", defaultDeliveryBackfillInterval)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	backfillLookback, err := osGetEnvDurationOr("BACKGROUND_DELIVERY_BACKFILL_LOOKBACK", defaultDeliveryBackfillLookback)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	statusChangedTimeout, err := osGetEnvDuration("KAFKA_HANDLER_DONATION_STATUS_CHANGED_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	publishTimeout, err := osGetEnvDurationOr("KAFKA_PUBLISH_TIMEOUT", defaultPublishTimeout)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterIdleTTL, err := osGetEnvDurationOr("MIDDLEWARE_RATE_LIMIT_IDLE_TTL", defaultRateLimiterIdleTTL)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	reservationMaxAttempts, err := osGetUintOr("RESERVATION_MAX_ATTEMPTS", defaultReservationMaxAttempts)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	reservationRetryDelay, err := osGetEnvDurationOr("RESERVATION_RETRY_DELAY", defaultReservationRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	reservationAttemptTimeout, err := osGetEnvDurationOr("RESERVATION_ATTEMPT_TIMEOUT", defaultReservationAttemptTimeout)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	profileMaxRetries, err := osGetUintOr("SESSION_PROFILE_MAX_RETRIES", defaultSessionProfileMaxRetries)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	profileRetryDelay, err := osGetEnvDurationOr("SESSION_PROFILE_RETRY_DELAY", defaultSessionProfileRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			DonationExpiryInterval:   expiryInterval,
			DeliveryBackfillInterval: backfillInterval,
			DeliveryBackfillLookback: backfillLookback,
		},
		Server: HTTPServer{
			Port:               os.Getenv("PORT"),
			RequestTimeout:     requestTimeout,
			RateLimiterQPS:     rateLimiterQPS,
			RateLimiterBurst:   rateLimiterBurst,
			RateLimiterIdleTTL: rateLimiterIdleTTL,
			PprofEnabled:       pprofEnabled,
			PprofPort:          os.Getenv("PPROF_PORT"),
		},
		GRPCHealth: GRPCHealth{
			Port: os.Getenv("GRPC_HEALTH_PORT"),
		},
		Database: database,
		Auth: Auth{
			JWTSecret: os.Getenv("AUTH_JWT_SECRET"),
			JWTIssuer: os.Getenv("AUTH_JWT_ISSUER"),
		},
		Log: Log{
			Level: os.Getenv("LOG_LEVEL"),
		},
		Reservation: Reservation{
			Strategies:     splitList(osGetEnvOr("RESERVATION_STRATEGIES", defaultReservationStrategies)),
			MaxAttempts:    reservationMaxAttempts,
			RetryDelay:     reservationRetryDelay,
			AttemptTimeout: reservationAttemptTimeout,
		},
		Session: Session{
			ProfileMaxRetries: profileMaxRetries,
			ProfileRetryDelay: profileRetryDelay,
		},
		Kafka: Kafka{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			Topic:           os.Getenv("KAFKA_TOPIC"),
			ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			PublishTimeout:  publishTimeout,
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				DonationStatusChanged: DonationStatusChanged{
					ProcessTimeout: statusChangedTimeout,
				},
			},
		},
	}, nil
}

func loadDatabase() (Database, error) {
	maxConns, err := osGetUintOr("POSTGRES_MAX_CONNS", defaultPostgresMaxConns)
	if err != nil {
		return Database{}, err
	}

	minConns, err := osGetUintOr("POSTGRES_MIN_CONNS", defaultPostgresMinConns)
	if err != nil {
		return Database{}, err
	}

	return Database{
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		DBName:   os.Getenv("POSTGRES_DB"),
		SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		MaxConns: int32(min(maxConns, math.MaxInt32)), //nolint:gosec // ограничено сверху
		MinConns: int32(min(minConns, math.MaxInt32)), //nolint:gosec // ограничено сверху
		AppName:  osGetEnvOr("POSTGRES_APP_NAME", defaultPostgresAppName),
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}
	if cfg.GRPCHealth.Port == "" {
		return errors.New("GRPC_HEALTH_PORT is required")
	}

	if err := validateDatabase(&cfg.Database); err != nil {
		return err
	}

	if cfg.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET is required")
	}

	if len(cfg.Reservation.Strategies) == 0 {
		return errors.New("RESERVATION_STRATEGIES must name at least one strategy")
	}
	if cfg.Reservation.MaxAttempts == 0 {
		return errors.New("RESERVATION_MAX_ATTEMPTS must be positive")
	}
	if cfg.Reservation.AttemptTimeout == time.Duration(0) {
		return errors.New("RESERVATION_ATTEMPT_TIMEOUT must be positive")
	}
	if budget := cfg.Reservation.Budget(); cfg.Server.RequestTimeout < budget {
		return fmt.Errorf(
			"MIDDLEWARE_REQUEST_TIMEOUT=%s is shorter than the reservation budget %s "+
				"(RESERVATION_MAX_ATTEMPTS x RESERVATION_ATTEMPT_TIMEOUT + retry delays)",
			cfg.Server.RequestTimeout, budget,
		)
	}

	if cfg.Tasks.DonationExpiryInterval == time.Duration(0) {
		return errors.New("BACKGROUND_DONATION_EXPIRY_INTERVAL is required")
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}

	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	if cfg.Kafka.Handlers.DonationStatusChanged.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_DONATION_STATUS_CHANGED_PROCESS_TIMEOUT is required")
	}

	return nil
}

func validateDatabase(cfg *Database) error {
	if cfg.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}
	if cfg.MaxConns < 1 {
		return errors.New("POSTGRES_MAX_CONNS must be positive")
	}
	if cfg.MinConns > cfg.MaxConns {
		return errors.New("POSTGRES_MIN_CONNS must not exceed POSTGRES_MAX_CONNS")
	}
	return nil
}

// Budget худшее время резерва: все попытки по таймауту плюс паузы между ними.
func (r Reservation) Budget() time.Duration {
	if r.MaxAttempts == 0 {
		return 0
	}
	attempts := time.Duration(r.MaxAttempts) //nolint:gosec // число попыток мало
	return attempts*r.AttemptTimeout + (attempts-1)*r.RetryDelay
}

// BrokerList список брокеров без пробелов.
func (k Kafka) BrokerList() []string {
	return splitList(k.Brokers)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func osGetEnvOr(s, fallback string) string {
	if val := os.Getenv(s); val != "" {
		return val
	}
	return fallback
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetUintOr(s string, fallback uint64) (uint64, error) {
	val := os.Getenv(s)
	if val == "" {
		return fallback, nil
	}

	res, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid unsigned int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	return osGetEnvDurationOr(s, time.Duration(0))
}

func osGetEnvDurationOr(s string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return fallback, nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
