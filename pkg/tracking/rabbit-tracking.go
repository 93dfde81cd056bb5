package tracking

import (
	"context"
	"net/http"
	"time"

	"github.com/blubolt/blubolt-centra-frontend/pkg/common"
	"github.com/blubolt/blubolt-centra-frontend/pkg/messaging"
	"github.com/blubolt/blubolt-centra-frontend/pkg/types"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var trackingTopic = messaging.NewTopic("global", messaging.TrackingEvents)

// RabbitTracking publishes events to the global tracking topic. Events are queued and
// sent in batches so request handlers never wait on the broker.
type RabbitTracking struct {
	country    string
	connection *amqp.Connection
	queue      *common.QueueHandler[any]
}

func NewRabbitTracking(conn *amqp.Connection, country string) (*RabbitTracking, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	defer ch.Close()
	if err := trackingTopic.DeclareRetained(ch); err != nil {
		return nil, err
	}
	ret := &RabbitTracking{
		country:    country,
		connection: conn,
	}
	ret.queue = common.NewQueueHandler(ret.publish, 100, time.Second)
	return ret, nil
}

func (rt *RabbitTracking) publish(events []any) {
	ch, err := rt.connection.Channel()
	if err != nil {
		zap.S().Errorf("Error opening tracking channel, dropping %d events: %v", len(events), err)
		return
	}
	defer ch.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	failed := 0
	for _, event := range events {
		if err := trackingTopic.Publish(ctx, ch, event); err != nil {
			failed++
			zap.S().Debugf("Error sending tracking event: %v", err)
		}
	}
	if failed > 0 {
		zap.S().Warnf("Failed to send %d of %d tracking events", failed, len(events))
	}
}

func (rt *RabbitTracking) TrackSession(sessionId string, r *http.Request) {
	rt.queue.Add(NewSessionEvent(rt.country, sessionId, r))
}

func (rt *RabbitTracking) TrackFilter(sessionId string, selection types.Selection, sort types.SortOption, results int, r *http.Request) {
	rt.queue.Add(NewFilterEvent(rt.country, sessionId, selection, sort, results, r))
}

func (rt *RabbitTracking) TrackAddToCart(sessionId string, id types.ProductId, quantity int) {
	rt.queue.Add(NewCartEvent(rt.country, sessionId, id, quantity))
}

// Close sends the queued events. The connection is owned by the caller.
func (rt *RabbitTracking) Close() error {
	rt.queue.Stop()
	return nil
}
