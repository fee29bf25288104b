package service

//go:generate go run go.uber.org/mock/mockgen -source=./publisher.go -destination=./mocks/publisher_mock.go -package=mocks

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/isaaccomputerscience/isaac-api-sub002/config"
	"github.com/isaaccomputerscience/isaac-api-sub002/infras/kafka"
	"github.com/isaaccomputerscience/isaac-api-sub002/infras/rabbitmq"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/notification/model"
)

const (
	TransportKafka    = "kafka"
	TransportRabbitMQ = "rabbitmq"
)

// Publisher hands a notification to the broker the mailer consumes from.
type Publisher interface {
	Publish(ctx context.Context, msg model.Message) error
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
}

func NewKafkaPublisher(client kafka.Client, topic string) Publisher {
	return &kafkaPublisher{client: client, topic: topic}
}

// Publish keys by recipient so one user's notifications stay ordered.
func (p *kafkaPublisher) Publish(ctx context.Context, msg model.Message) error {
	return p.client.SendMessages(ctx, p.topic, kafka.Message{Key: msg.Recipient.UserID, Value: msg}) //nolint:wrapcheck
}

type rabbitPublisher struct {
	client rabbitmq.Client
	queue  string
}

func NewRabbitMQPublisher(client rabbitmq.Client, queue string) Publisher {
	return &rabbitPublisher{client: client, queue: queue}
}

func (p *rabbitPublisher) Publish(ctx context.Context, msg model.Message) error {
	return p.client.Publish(ctx, p.queue, rabbitmq.Message{Key: msg.ID, Value: msg}) //nolint:wrapcheck
}

// NewPublisher picks the broker named by NOTIFICATION_TRANSPORT.
func NewPublisher(cfg *config.Config, kafkaClient kafka.Client, rabbitClient rabbitmq.Client) Publisher {
	if cfg.Notification.Transport == TransportRabbitMQ {
		log.Info().Str("queue", cfg.Notification.Topic).Msg("notifications published to rabbitmq")

		return NewRabbitMQPublisher(rabbitClient, cfg.Notification.Topic)
	}

	log.Info().Str("topic", cfg.Notification.Topic).Msg("notifications published to kafka")

	return NewKafkaPublisher(kafkaClient, cfg.Notification.Topic)
}
