package rabbitmq

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	amqp "github.com/streadway/amqp"
)

// UserEventsQueue is the default queue user lifecycle events go to.
const UserEventsQueue = "user_events"

const (
	UserCreated = "user.created"
	UserUpdated = "user.updated"
	UserDeleted = "user.deleted"
)

// UserEvent is the message published for every change to a user.
type UserEvent struct {
	Event      string    `json:"event"`
	UserID     uint      `json:"user_id"`
	Username   string    `json:"username"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewUserEvent stamps an event with the current time.
func NewUserEvent(event string, userID uint, username string) UserEvent {
	return UserEvent{
		Event:      event,
		UserID:     userID,
		Username:   username,
		OccurredAt: time.Now().UTC(),
	}
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	mu      sync.Mutex // amqp.Channel is not safe for concurrent publishing
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// NewClient connects to RabbitMQ, opens a channel and declares the events
// queue.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Queue == "" {
		cfg.Queue = UserEventsQueue
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declare(ch, cfg.Queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Info().Str("queue", cfg.Queue).Msg("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   cfg.Queue,
	}, nil
}

func declare(ch *amqp.Channel, queue string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return q, fmt.Errorf("failed to declare %s: %w", queue, err)
	}
	return q, nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishUserEvent publishes a persistent JSON message to the events queue.
func (c *Client) PublishUserEvent(event UserEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := EncodeUserEvent(event)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Type:         event.Event,
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Event, err)
	}
	return nil
}

// ConsumeUserEvents hands every event on the queue to handler in a
// background goroutine. Messages the handler fails on are requeued;
// messages that do not decode are dropped.
func (c *Client) ConsumeUserEvents(handler func(UserEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	c.mu.Lock()
	msgs, err := c.channel.Consume(
		c.queue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			event, err := DecodeUserEvent(msg.Body)
			if err != nil {
				log.Warn().Err(err).Uint64("delivery_tag", msg.DeliveryTag).Msg("dropping malformed user event")
				if nackErr := msg.Nack(false, false); nackErr != nil {
					log.Error().Err(nackErr).Uint64("delivery_tag", msg.DeliveryTag).Msg("failed to nack message")
				}
				continue
			}
			if err := handler(event); err != nil {
				log.Error().Err(err).Uint64("delivery_tag", msg.DeliveryTag).Msg("failed to process user event")
				if nackErr := msg.Nack(false, true); nackErr != nil {
					log.Error().Err(nackErr).Uint64("delivery_tag", msg.DeliveryTag).Msg("failed to nack message")
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				log.Error().Err(ackErr).Uint64("delivery_tag", msg.DeliveryTag).Msg("failed to ack message")
			}
		}
	}()

	return nil
}

func EncodeUserEvent(event UserEvent) ([]byte, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user event to JSON: %w", err)
	}
	return body, nil
}

// DecodeUserEvent parses a message body and rejects events without a name.
func DecodeUserEvent(body []byte) (UserEvent, error) {
	var event UserEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return UserEvent{}, fmt.Errorf("failed to unmarshal user event: %w", err)
	}
	if event.Event == "" {
		return UserEvent{}, fmt.Errorf("user event has no name")
	}
	return event, nil
}
