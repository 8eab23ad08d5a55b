package broker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/ponto-eletronico/internal/core/events"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 2 * time.Second

type connection struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// dial opens a channel and makes sure the durable queue exists.
func dial(uri, queue string) (*connection, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return &connection{conn: conn, ch: ch, queue: queue}, nil
}

func (c *connection) Close() error {
	var errCh, errConn error
	if c.ch != nil {
		errCh = c.ch.Close()
	}
	if c.conn != nil {
		errConn = c.conn.Close()
	}
	return errors.Join(errCh, errConn)
}

// Publisher writes events to a durable queue through the default exchange.
// It satisfies events.Publisher.
type Publisher struct {
	*connection
}

func NewPublisher(uri, queue string) (*Publisher, error) {
	c, err := dial(uri, queue)
	if err != nil {
		return nil, err
	}
	return &Publisher{connection: c}, nil
}

func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	body, err := Encode(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.ch.PublishWithContext(
		ctx,
		"",      // default exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.EventID(),
			Type:         event.EventType(),
			Timestamp:    event.OccurredAt(),
			Body:         body,
		},
	)
}

// MessageHandler processes one decoded delivery.
type MessageHandler func(ctx context.Context, msg Message) error

type Consumer struct {
	*connection
	logger *slog.Logger
}

func NewConsumer(uri, queue string, logger *slog.Logger) (*Consumer, error) {
	c, err := dial(uri, queue)
	if err != nil {
		return nil, err
	}
	return &Consumer{connection: c, logger: logger}, nil
}

// Consume delivers messages to handler until ctx is done or the channel
// closes. Undecodable messages are dropped, handler failures are requeued.
func (c *Consumer) Consume(ctx context.Context, handler MessageHandler) error {
	deliveries, err := c.ch.Consume(
		c.queue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}

	c.logger.Info("consuming events", "queue", c.queue)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.handle(ctx, d, handler)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery, handler MessageHandler) {
	msg, err := Decode(d.Body)
	if err != nil {
		c.logger.Error("discarding malformed message", "message_id", d.MessageId, "error", err)
		_ = d.Nack(false, false)
		return
	}

	if err := handler(ctx, msg); err != nil {
		c.logger.Error("event handler failed", "event_type", msg.Type, "event_id", msg.ID, "error", err)
		_ = d.Nack(false, !d.Redelivered)
		return
	}

	_ = d.Ack(false)
}
