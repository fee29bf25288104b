package rabbitmq

//go:generate go run go.uber.org/mock/mockgen -source=./rabbitmq.go -destination=./mocks/rabbitmq_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/isaaccomputerscience/isaac-api-sub002/config"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/constant"
)

type Message struct {
	Key   string
	Value any
}

// ToPublishing encodes the message as a persistent JSON delivery.
func (m *Message) ToPublishing(now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(m.Value)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	return amqp.Publishing{
		ContentType:  constant.ContentTypeJSON,
		DeliveryMode: amqp.Persistent,
		MessageId:    m.Key,
		Timestamp:    now.UTC(),
		Body:         body,
	}, nil
}

type Client interface {
	Publish(ctx context.Context, queue string, messages ...Message) error
}

type rabbitClientImpl struct {
	url string
}

func New(config *config.Config) Client {
	log.Info().Msg("RabbitMQ client initialized")

	return &rabbitClientImpl{url: config.RabbitMQ.URL}
}

// Publish declares queue as durable and publishes to it through the default
// exchange. A connection is opened per call.
func (r *rabbitClientImpl) Publish(ctx context.Context, queue string, messages ...Message) error {
	conn, err := amqp.Dial(r.url)
	if err != nil {
		log.Error().Err(err).Msg("Failed to dial RabbitMQ.")

		return fmt.Errorf("failed to dial rabbitmq: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err = ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("Failed to declare RabbitMQ queue.")

		return fmt.Errorf("failed to declare rabbitmq queue: %w", err)
	}

	for _, message := range messages {
		pub, err := message.ToPublishing(time.Now())
		if err != nil {
			return err
		}

		if err = ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("Failed to publish to RabbitMQ.")

			return fmt.Errorf("failed to publish to rabbitmq: %w", err)
		}
	}

	log.Debug().Str("queue", queue).Int("count", len(messages)).Msg("Published message successfully.")

	return nil
}
