package donation_events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"foodshare/internal/entities"
	retrierconfig "foodshare/pkg/retrier"
	"foodshare/pkg/retrier/backoff_adapter"

	"github.com/IBM/sarama"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = time.Second
	maxElapsedTime  = 3 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

type Publisher struct {
	producer producer
	retrier  retrier
	topic    string
	timeout  time.Duration
}

func New(producer producer, topic string, timeout time.Duration) *Publisher {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryable,
	}

	return newPublisher(producer, backoff_adapter.New(retryConfig), topic, timeout)
}

func newPublisher(producer producer, retrier retrier, topic string, timeout time.Duration) *Publisher {
	return &Publisher{
		producer: producer,
		retrier:  retrier,
		topic:    topic,
		timeout:  timeout,
	}
}

// PublishDonationStatusChanged ключ сообщения id пожертвования, чтобы события
// одного пожертвования шли в одну партицию по порядку.
func (p *Publisher) PublishDonationStatusChanged(ctx context.Context, event entities.DonationStatusChanged) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal donation status changed: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(event.DonationID.String()),
		Value:     sarama.ByteEncoder(payload),
		Timestamp: event.OccurredAt,
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	err = p.executeWithMetrics(ctx, func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, _, err := p.producer.SendMessage(msg)
		return err
	})
	if err != nil {
		return fmt.Errorf("gateway kafka, publish %s: %w", event.DonationID, err)
	}

	return nil
}

func (p *Publisher) executeWithMetrics(ctx context.Context, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := p.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	outcome := outcomeOK
	if err != nil {
		outcome = outcomeError
	}

	PublishDuration.WithLabelValues(p.topic, outcome).Observe(time.Since(start).Seconds())
	if attempt > 1 {
		PublishRetriesTotal.WithLabelValues(p.topic, outcome).Inc()
	}

	return err
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, sarama.ErrClosedClient) {
		return false
	}

	var kerr sarama.KError
	if errors.As(err, &kerr) {
		switch kerr {
		case sarama.ErrInvalidMessage,
			sarama.ErrMessageSizeTooLarge,
			sarama.ErrTopicAuthorizationFailed,
			sarama.ErrInvalidTopic:
			return false
		}
	}
	return true
}
