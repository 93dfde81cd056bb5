package messaging

import (
	"testing"

	"github.com/blubolt/blubolt-centra-frontend/pkg/common/jsoncompat"
	amqp "github.com/rabbitmq/amqp091-go"
)

func TestTopicName(t *testing.T) {
	tests := []struct {
		topic Topic
		want  string
	}{
		{NewTopic("se", CatalogChanged), "se_catalog_changed"},
		{NewTopic("no", CatalogChanged), "no_catalog_changed"},
		{NewTopic("global", TrackingEvents), "global_tracking"},
	}
	for _, tt := range tests {
		if got := tt.topic.Name(); got != tt.want {
			t.Errorf("expected %s, got %s", tt.want, got)
		}
	}
}

func TestPublishing(t *testing.T) {
	msg, err := Publishing(map[string]int{"count": 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.ContentType != "application/json" {
		t.Errorf("expected json content type, got %s", msg.ContentType)
	}
	if msg.DeliveryMode != amqp.Persistent {
		t.Errorf("expected persistent delivery, got %d", msg.DeliveryMode)
	}
	var got map[string]int
	if err := jsoncompat.Unmarshal(msg.Body, &got); err != nil || got["count"] != 2 {
		t.Errorf("unexpected body %s: %v", msg.Body, err)
	}
}

func TestPublishingRejectsUnencodable(t *testing.T) {
	if _, err := Publishing(make(chan int)); err == nil {
		t.Errorf("expected an error for a channel value")
	}
}
