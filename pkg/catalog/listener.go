package catalog

import (
	"fmt"

	"github.com/blubolt/blubolt-centra-frontend/pkg/common/jsoncompat"
	"github.com/blubolt/blubolt-centra-frontend/pkg/messaging"
	"github.com/blubolt/blubolt-centra-frontend/pkg/types"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// CatalogChange replaces the whole catalog.
type CatalogChange struct {
	Products []types.Product `json:"products"`
}

// HandleChange decodes a change message and installs it as the new snapshot.
func (s *Store) HandleChange(body []byte) error {
	var change CatalogChange
	if err := jsoncompat.Unmarshal(body, &change); err != nil {
		return fmt.Errorf("decode catalog change: %w", err)
	}
	snapshot, err := s.Replace(change.Products)
	if err != nil {
		return err
	}
	zap.S().Infof("Catalog replaced, version %d with %d products", snapshot.Version, snapshot.Len())
	return nil
}

// ConnectAmqp listens for catalog replacements on <country>_catalog_changed.
func (s *Store) ConnectAmqp(conn *amqp.Connection, country string) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	topic := messaging.NewTopic(country, messaging.CatalogChanged)
	if err := topic.Subscribe(ch, func(d amqp.Delivery) error {
		return s.HandleChange(d.Body)
	}); err != nil {
		ch.Close()
		return err
	}
	zap.S().Infof("Listening for catalog changes on %s", topic)
	return nil
}
