package amqp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	applog "discipline/internal/log"
	"discipline/internal/logstore"
)

const defaultPublishTimeout = 5 * time.Second

// channel is the subset of *amqp091.Channel the client uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Client publishes log events to a topic exchange.
type Client struct {
	conn         *amqp091.Connection
	channel      channel
	exchangeName string
	routingKey   string
	timeout      time.Duration
	now          func() time.Time
}

func NewClient(url, exchangeName, routingKey string, timeout time.Duration) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := newClient(ch, exchangeName, routingKey, timeout)
	client.conn = conn

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange: %w", err)
	}

	return client, nil
}

func newClient(ch channel, exchangeName, routingKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	return &Client{
		channel:      ch,
		exchangeName: exchangeName,
		routingKey:   routingKey,
		timeout:      timeout,
		now:          time.Now,
	}
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	return nil
}

// RoutingKey returns the key a message of the given type is published with.
func (c *Client) RoutingKey(eventType string) string {
	return c.routingKey + "." + eventType
}

// Publish sends msg as a persistent JSON message.
func (c *Client) Publish(ctx context.Context, msg *LogEventMessage) error {
	if c == nil || c.channel == nil {
		return errors.New("amqp client not connected")
	}

	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchangeName,         // exchange
		c.RoutingKey(msg.Type), // routing key
		false,                  // mandatory
		false,                  // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    msg.Timestamp,
			Type:         msg.Type,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

// Subscriber returns a store observer that publishes every event. Publish
// failures are logged and never reach the store.
func (c *Client) Subscriber(ctx context.Context, loc *time.Location, logger *applog.Logger) func(logstore.Event) {
	if logger == nil {
		logger = applog.Nop()
	}
	logger = logger.WithComponent(applog.ComponentAMQP)

	return func(e logstore.Event) {
		msg := NewLogEventMessage(e, loc, c.now())
		if err := c.Publish(ctx, msg); err != nil {
			logger.LogError(ctx, "Failed to publish log event", err, applog.OpPublish,
				applog.NewFields().WithCount(e.Count))
			return
		}
		logger.DebugContext(ctx, "Published log event",
			applog.FieldOperation, applog.OpPublish,
			applog.FieldEvent, msg.Type,
			applog.FieldCount, msg.Count)
	}
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
