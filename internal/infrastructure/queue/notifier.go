package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/sharedcustody/custody-calendar/internal/core/ports"
)

const DefaultSavedQueue = "custody.document.saved"

// AMQPNotifier publishes DocumentSavedEvent messages to a durable RabbitMQ
// queue. Each publish opens its own connection; saves are debounced upstream
// so the rate stays low.
type AMQPNotifier struct {
	url   string
	queue string
	log   zerolog.Logger
}

func NewAMQPNotifier(url, queue string, log zerolog.Logger) *AMQPNotifier {
	if queue == "" {
		queue = DefaultSavedQueue
	}
	return &AMQPNotifier{url: url, queue: queue, log: log}
}

// DocumentSaved publishes ev as a persistent JSON message on the default exchange.
func (n *AMQPNotifier) DocumentSaved(ctx context.Context, ev ports.DocumentSavedEvent) error {
	conn, err := amqp.Dial(n.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		n.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("rabbitmq marshal: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", n.queue, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}

	n.log.Debug().Str("username", ev.Username).Str("queue", n.queue).Msg("document saved event published")
	return nil
}

// NopNotifier discards events. It is used when no broker is configured.
type NopNotifier struct{}

func (NopNotifier) DocumentSaved(context.Context, ports.DocumentSavedEvent) error { return nil }
