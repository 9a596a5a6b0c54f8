package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/raushankrgupta/music-profile-api/models"
	"github.com/rs/zerolog/log"
)

type Publisher interface {
	PublishProfileEvent(ctx context.Context, event *models.ProfileEvent) error
	Close() error
}

// NewProfileEvent stamps an event id and time.
func NewProfileEvent(eventType models.ProfileEventType, profileID string, profile *models.Profile) *models.ProfileEvent {
	return &models.ProfileEvent{
		ID:         uuid.NewString(),
		EventType:  eventType,
		ProfileID:  profileID,
		Profile:    profile,
		OccurredAt: time.Now().UTC(),
	}
}

// EventPublisher publishes profile events to a RabbitMQ topic exchange.
// With no broker URI it is disabled and every publish is a no-op.
type EventPublisher struct {
	mu       sync.Mutex
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	enabled  bool
}

func NewEventPublisher(rabbitURI, exchange string) (*EventPublisher, error) {
	if rabbitURI == "" {
		log.Info().Msg("RABBITMQ_URI is empty, event publishing is disabled")
		return &EventPublisher{exchange: exchange}, nil
	}

	conn, err := amqp091.Dial(rabbitURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	log.Info().Str("exchange", exchange).Msg("Event publisher initialized")
	return &EventPublisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		enabled:  true,
	}, nil
}

func (p *EventPublisher) PublishProfileEvent(ctx context.Context, event *models.ProfileEvent) error {
	if !p.enabled {
		log.Debug().Str("event_type", string(event.EventType)).Msg("event publishing disabled, skipping")
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// amqp091 channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx,
		p.exchange,              // exchange
		string(event.EventType), // routing key
		false,                   // mandatory
		false,                   // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    event.ID,
			Timestamp:    event.OccurredAt,
			Body:         body,
			Headers: amqp091.Table{
				"event_type": string(event.EventType),
				"profile_id": event.ProfileID,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	log.Debug().Str("event_type", string(event.EventType)).Str("profile_id", event.ProfileID).Msg("published event")
	return nil
}

func (p *EventPublisher) Close() error {
	if !p.enabled {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			return fmt.Errorf("failed to close channel: %w", err)
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("failed to close connection: %w", err)
		}
	}
	return nil
}
