package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/clinibox/box-availability-service/internal/config"
	"github.com/clinibox/box-availability-service/internal/core/ports/out"
	amqp "github.com/rabbitmq/amqp091-go"
)

// EventPublisher publica eventos de auditoría y mensajes de correo hacia
// los colaboradores externos. Mejor esfuerzo: nunca se reintenta.
type EventPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewEventPublisher(cfg *config.Config, logger out.LoggerPort) (*EventPublisher, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.publisher.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, events will not be published",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.AmqpURI)
	if err != nil {
		logger.Error("rabbitmq.publisher.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMQ.AmqpURI,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.publisher.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	if err := channel.ExchangeDeclare(
		cfg.RabbitMQ.EventsExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,   // arguments
	); err != nil {
		channel.Close()
		conn.Close()
		logger.Error("rabbitmq.publisher.exchange.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &EventPublisher{
		conn:    conn,
		channel: channel,
		cfg:     cfg,
		logger:  logger.WithModule("EventPublisher"),
	}, nil
}

type auditEvent struct {
	Action    string                 `json:"action"`
	Payload   map[string]interface{} `json:"payload"`
	Timestamp time.Time              `json:"timestamp"`
}

func (p *EventPublisher) PublishAudit(ctx context.Context, action string, payload map[string]interface{}) error {
	body, err := json.Marshal(auditEvent{
		Action:    action,
		Payload:   payload,
		Timestamp: time.Now(),
	})
	if err != nil {
		return err
	}

	return p.publish(ctx, p.cfg.RabbitMQ.AuditRoutingKey, body)
}

func (p *EventPublisher) PublishMail(ctx context.Context, message out.MailMessage) error {
	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	return p.publish(ctx, p.cfg.RabbitMQ.MailRoutingKey, body)
}

func (p *EventPublisher) publish(ctx context.Context, routingKey string, body []byte) error {
	err := p.channel.PublishWithContext(ctx,
		p.cfg.RabbitMQ.EventsExchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		p.logger.Warn("rabbitmq.publish.failed", out.LogFields{
			"routingKey": routingKey,
			"error":      err.Error(),
		})
		return err
	}

	p.logger.Debug("rabbitmq.publish.ok", out.LogFields{
		"routingKey": routingKey,
	})
	return nil
}

func (p *EventPublisher) Close() error {
	if p == nil || p.channel == nil {
		return nil
	}

	if err := p.channel.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}
