package rmqconsumer

import (
	"fmt"

	"github.com/rabbitmq/amqp091-go"

	"files-manager-api/config"
)

const (
	retrySuffix = ".retry"
	deadSuffix  = ".dead"

	// HeaderAttempt carries the 1-based delivery attempt of a message.
	HeaderAttempt = "x-attempt"
	// HeaderError carries the last failure reason of a dead-lettered message.
	HeaderError = "x-error"
)

type Declarer interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp091.Table) error
}

func RetryQueue(queue string) string { return queue + retrySuffix }
func DeadQueue(queue string) string  { return queue + deadSuffix }

// Declare sets up the work exchange and queue plus the retry and dead queues.
// Messages expiring in the retry queue are routed back to the work exchange.
// Publisher and consumer both call it, declarations are idempotent.
func Declare(ch Declarer, cfg config.MQ) error {
	if err := ch.ExchangeDeclare(
		cfg.Exchange,
		cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err := ch.QueueDeclare(
		cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	if err := ch.QueueBind(cfg.QueueName, cfg.QueueName, cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("queue bind %s: %w", cfg.QueueName, err)
	}
	if _, err := ch.QueueDeclare(
		RetryQueue(cfg.QueueName),
		true,
		false,
		false,
		false,
		amqp091.Table{
			"x-dead-letter-exchange":    cfg.Exchange,
			"x-dead-letter-routing-key": cfg.QueueName,
		},
	); err != nil {
		return fmt.Errorf("retry queue declare: %w", err)
	}
	if _, err := ch.QueueDeclare(
		DeadQueue(cfg.QueueName),
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("dead queue declare: %w", err)
	}

	return nil
}
