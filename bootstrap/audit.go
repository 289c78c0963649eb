package bootstrap

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/octabyte/campus-portal/config"
	"github.com/octabyte/campus-portal/navigation"
	"github.com/octabyte/campus-portal/queue"
	"github.com/octabyte/campus-portal/utils/logger"
)

func newAuditNavigator(cfg *config.Config, next navigation.Navigator) (navigation.Navigator, func(), error) {
	conn, err := queue.NewConnection(queue.ConnectionConfig{
		URI:      cfg.Audit.AMQPURL,
		Exchange: queue.ExchangeConfig{Name: cfg.Audit.Exchange, Durable: true},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("bootstrap: audit: %w", err)
	}

	pub := queue.NewPublisher(conn.Ch, queue.PublishConfig{
		Exchange:     cfg.Audit.Exchange,
		RoutingKey:   cfg.Audit.RoutingKey,
		DeliveryMode: amqp.Persistent,
	})
	closeFn := func() {
		if err := conn.Close(); err != nil {
			logger.LogErrorf("closing audit connection: %v", err)
		}
	}
	return queue.NewAuditNavigator(next, pub), closeFn, nil
}
