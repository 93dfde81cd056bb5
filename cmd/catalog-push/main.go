package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/blubolt/blubolt-centra-frontend/pkg/catalog"
	"github.com/blubolt/blubolt-centra-frontend/pkg/messaging"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var rabbitUrl = os.Getenv("RABBIT_URL")
var file = flag.String("file", "", "catalog json file, the embedded sample when empty")
var country = flag.String("country", "se", "topic prefix")

func main() {
	flag.Parse()
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if rabbitUrl == "" {
		zap.S().Fatal("RABBIT_URL is required")
	}
	products := catalog.SampleProducts()
	if *file != "" {
		var err error
		if products, err = catalog.LoadFile(*file); err != nil {
			zap.S().Fatalf("Failed to read catalog: %v", err)
		}
	}
	if err := catalog.Validate(products); err != nil {
		zap.S().Fatalf("Refusing to publish: %v", err)
	}

	conn, err := amqp.Dial(rabbitUrl)
	if err != nil {
		zap.S().Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer conn.Close()
	topic := messaging.NewTopic(*country, messaging.CatalogChanged)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := messaging.SendChange(ctx, conn, topic, catalog.CatalogChange{Products: products}); err != nil {
		zap.S().Fatalf("Failed to publish catalog: %v", err)
	}
	zap.S().Infof("Published %d products to %s", len(products), topic)
}
