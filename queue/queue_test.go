package queue

import (
	"context"
	"fmt"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
	tContainer "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/octabyte/campus-portal/navigation"
)

type RabbitMQTestSuite struct {
	suite.Suite
	ctx       context.Context
	container tContainer.Container
	conn      *Connection
}

func (s *RabbitMQTestSuite) SetupSuite() {
	if testing.Short() {
		s.T().Skip("skipping RabbitMQ integration tests in short mode")
	}
	s.ctx = context.Background()

	req := tContainer.ContainerRequest{
		Image:        "rabbitmq:3-management",
		ExposedPorts: []string{"5672/tcp"},
		WaitingFor:   wait.ForLog("Server startup complete"),
	}
	container, err := tContainer.GenericContainer(s.ctx, tContainer.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	s.Require().NoError(err)
	s.container = container

	host, err := container.Host(s.ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(s.ctx, "5672")
	s.Require().NoError(err)

	conn, err := NewConnection(ConnectionConfig{
		URI:      fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port()),
		Exchange: ExchangeConfig{Name: "campus-portal.audit", Durable: true},
	})
	s.Require().NoError(err)
	s.conn = conn
}

func (s *RabbitMQTestSuite) TearDownSuite() {
	if s.conn != nil {
		_ = s.conn.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(s.ctx))
	}
}

func (s *RabbitMQTestSuite) TestSessionEventsReachBoundQueue() {
	q, err := s.conn.Ch.QueueDeclare("audit.test", false, true, false, false, nil)
	s.Require().NoError(err)
	s.Require().NoError(s.conn.Ch.QueueBind(q.Name, "session.#", "campus-portal.audit", false, nil))

	pubCh, err := s.conn.Conn.Channel()
	s.Require().NoError(err)
	pub := NewPublisher(pubCh, PublishConfig{
		Exchange:     "campus-portal.audit",
		RoutingKey:   "session.navigation",
		DeliveryMode: amqp.Persistent,
	})
	defer pub.Close()

	nav := NewAuditNavigator(navigation.Discard, pub)
	nav.Navigate(s.ctx, navigation.DefaultRoutes().Intent(navigation.TargetAnonymousEntry, "refresh_failed"))

	msgs, err := s.conn.Ch.Consume(q.Name, "", true, false, false, false, nil)
	s.Require().NoError(err)

	select {
	case msg := <-msgs:
		s.Equal("application/json", msg.ContentType)
		s.Contains(string(msg.Body), `"reason":"refresh_failed"`)
	case <-time.After(5 * time.Second):
		s.Fail("session event not received")
	}
}

func TestRabbitMQSuite(t *testing.T) {
	suite.Run(t, new(RabbitMQTestSuite))
}
