package rabbitmq

import (
	"context"

	"github.com/clinibox/box-availability-service/internal/config"
	"github.com/clinibox/box-availability-service/internal/core/ports/in"
	"github.com/clinibox/box-availability-service/internal/core/ports/out"
	amqp "github.com/rabbitmq/amqp091-go"
)

// BlockListener consume los eventos de bloqueos escritos por otras
// instancias u otros sistemas e invalida el caché de disponibilidad.
type BlockListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.AvailabilityUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewBlockListener(useCase in.AvailabilityUseCase, cfg *config.Config, logger out.LoggerPort) (*BlockListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.AmqpURI)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMQ.AmqpURI,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &BlockListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *BlockListener) Start(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.BlockQueueName,
		true,  // durable
		true,  // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	err = l.channel.QueueBind(
		queue.Name,
		l.cfg.RabbitMQ.BlockQueueBind,
		l.cfg.RabbitMQ.EventsExchange,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				l.processBlockMessage(ctx, msg)
				msg.Ack(false)
			}
		}
	}()

	l.logger.Info("blocks.queue.started", out.LogFields{
		"queue": queue.Name,
	})

	return nil
}

// El contenido del mensaje no importa: cualquier cambio de bloqueo deja
// obsoletos los resultados cacheados del rango completo.
func (l *BlockListener) processBlockMessage(ctx context.Context, msg amqp.Delivery) {
	l.logger.Debug("blocks.message.received", out.LogFields{
		"routingKey": msg.RoutingKey,
	})

	l.useCase.InvalidateAvailabilityCache(ctx)
}

func (l *BlockListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}
