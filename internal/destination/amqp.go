package destination

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/GustavoCaso/expenselog/internal/config"
	"github.com/GustavoCaso/expenselog/internal/logger"
)

const AMQPName = "amqp"

const amqpHandshakeTimeout = 30 * time.Second

// AMQP publishes the export to a durable direct exchange. Each delivery opens
// and closes its own connection.
type AMQP struct {
	url        string
	exchange   string
	routingKey string
	logger     *logger.Logger
}

func NewAMQP(conf config.AMQP, logger *logger.Logger) (*AMQP, error) {
	if !conf.Configured() {
		return nil, fmt.Errorf("%w: amqp url is required", ErrNotConfigured)
	}

	return &AMQP{
		url:        conf.URL,
		exchange:   conf.Exchange,
		routingKey: conf.RoutingKey,
		logger:     logger.WithComponent("amqp"),
	}, nil
}

func (a *AMQP) Name() string {
	return AMQPName
}

// Deliver publishes content with target as routing key, or the configured key.
func (a *AMQP) Deliver(ctx context.Context, content Content, target string) (Outcome, error) {
	routingKey := target
	if routingKey == "" {
		routingKey = a.routingKey
	}

	conn, err := amqp091.DialConfig(a.url, amqp091.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      dialContext(ctx),
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("dial AMQP: %w", err)
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		return Outcome{}, fmt.Errorf("open channel: %w", err)
	}
	defer channel.Close()

	err = channel.ExchangeDeclare(
		a.exchange, // name
		"direct",   // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return Outcome{}, fmt.Errorf("declare exchange: %w", err)
	}

	err = channel.PublishWithContext(
		ctx,
		a.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		publishing(content, time.Now()),
	)
	if err != nil {
		return Outcome{}, fmt.Errorf("publish export: %w", err)
	}

	a.logger.Info("Published export",
		"exchange", a.exchange,
		"routing_key", routingKey,
		"filename", content.Filename)

	return Outcome{
		Destination: AMQPName,
		Location:    a.exchange + "/" + routingKey,
		Bytes:       len(content.Data),
	}, nil
}

// dialContext connects under ctx and bounds the AMQP handshake by the earlier
// of ctx's deadline and amqpHandshakeTimeout. The client clears the deadline
// once the connection is open.
func dialContext(ctx context.Context) func(network, addr string) (net.Conn, error) {
	return func(network, addr string) (net.Conn, error) {
		var dialer net.Dialer
		conn, err := dialer.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}

		deadline := time.Now().Add(amqpHandshakeTimeout)
		if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
			deadline = d
		}
		if err := conn.SetDeadline(deadline); err != nil {
			conn.Close()
			return nil, err
		}
		return conn, nil
	}
}

func publishing(content Content, now time.Time) amqp091.Publishing {
	return amqp091.Publishing{
		ContentType:  content.MIMEType,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    now,
		Type:         "expenselog.export",
		Headers: amqp091.Table{
			"filename":     content.Filename,
			"record_count": int32(len(content.Expenses)),
		},
		Body: content.Data,
	}
}
