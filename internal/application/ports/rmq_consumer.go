package ports

import (
	"context"

	"github.com/rabbitmq/amqp091-go"
)

type RMQConsumer interface {
	Connect(dsn string) error
	Init() error
	Run(ctx context.Context) error
	GetConn() *amqp091.Connection
}
