package queue

type ConnectionConfig struct {
	// URI is the AMQP URI, including credentials.
	URI string
	// Exchange is declared on connect so publishing never hits a missing
	// exchange.
	Exchange ExchangeConfig
}

type ExchangeConfig struct {
	Name    string
	Kind    string // direct, topic, fanout; defaults to topic
	Durable bool
}

type PublishConfig struct {
	Exchange   string
	RoutingKey string
	// ContentType defaults to application/json.
	ContentType string
	// DeliveryMode: 1 = transient, 2 = persistent.
	DeliveryMode uint8
}
