package messaging

import (
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// consume binds a private, exclusive queue to the topic. Every subscriber gets its own
// copy of each message.
func (t Topic) consume(ch *amqp.Channel) (<-chan amqp.Delivery, error) {
	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}
	if err = ch.QueueBind(q.Name, t.Name(), t.Name(), false, nil); err != nil {
		return nil, err
	}
	return ch.Consume(q.Name, "", false, true, false, false, nil)
}

// Subscribe declares the topic and hands every delivery to handler until the channel
// closes. The channel is owned by the subscription afterwards. Deliveries the handler
// fails on are dropped without requeue.
func (t Topic) Subscribe(ch *amqp.Channel, handler func(amqp.Delivery) error) error {
	if err := t.Declare(ch); err != nil {
		return err
	}
	msgs, err := t.consume(ch)
	if err != nil {
		return err
	}
	go func() {
		defer ch.Close()
		for d := range msgs {
			if err := handler(d); err != nil {
				zap.S().Errorf("Error processing %s message: %v", t, err)
				d.Nack(false, false)
				continue
			}
			d.Ack(false)
		}
		zap.S().Infof("Stopped listening to %s", t)
	}()
	return nil
}
