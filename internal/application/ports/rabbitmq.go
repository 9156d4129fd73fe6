package ports

import (
	"context"

	"github.com/rabbitmq/amqp091-go"

	"files-manager-api/internal/domain/job"
)

type JobQueue interface {
	Enqueue(ctx context.Context, j job.DerivationJob) error
}

type RabbitMQ interface {
	JobQueue
	Connect(ctx context.Context, dsn string) error
	Init() error
	PublisherWorker(ctx context.Context)
	GetConn() *amqp091.Connection
}
