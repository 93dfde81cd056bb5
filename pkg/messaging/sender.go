package messaging

import (
	"context"

	"github.com/blubolt/blubolt-centra-frontend/pkg/common/jsoncompat"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Declare creates the durable topic exchange.
func (t Topic) Declare(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		t.Name(), // name
		"topic",  // type
		true,     // durable
		false,    // auto-delete
		false,    // internal
		false,    // noWait
		nil,      // arguments
	)
}

// DeclareRetained declares the exchange plus a durable queue of the same name bound to
// it, so messages published while no consumer is connected are kept.
func (t Topic) DeclareRetained(ch *amqp.Channel) error {
	if err := t.Declare(ch); err != nil {
		return err
	}
	q, err := ch.QueueDeclare(
		t.Name(), // name of the queue
		true,     // durable
		false,    // delete when unused
		false,    // exclusive
		false,    // noWait
		nil,      // arguments
	)
	if err != nil {
		return err
	}
	return ch.QueueBind(q.Name, t.Name(), t.Name(), false, nil)
}

func Publishing[V any](data V) (amqp.Publishing, error) {
	bytes, err := jsoncompat.Marshal(data)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         bytes,
	}, nil
}

// Publish encodes data as json and sends it on an already open channel.
func (t Topic) Publish(ctx context.Context, ch *amqp.Channel, data any) error {
	msg, err := Publishing(data)
	if err != nil {
		return err
	}
	return ch.PublishWithContext(ctx, t.Name(), t.Name(), false, false, msg)
}

// SendChange opens a channel, makes sure the exchange exists and publishes one message.
func SendChange[V any](ctx context.Context, c *amqp.Connection, topic Topic, data V) error {
	ch, err := c.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	if err := topic.Declare(ch); err != nil {
		return err
	}
	return topic.Publish(ctx, ch, data)
}
