package mq

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"files-manager-api/config"
	"files-manager-api/internal/domain/job"
	"files-manager-api/pkg/rmqconsumer"
)

// "Rely on metrics, not guesses."
const bufferSize = 128

var ErrQueueFull = errors.New("derivation job buffer is full")

type (
	Channel interface {
		rmqconsumer.Declarer
		rmqconsumer.Publisher
		Close() error
	}
	RabbitMQ struct {
		cfg   config.MQ
		log   *zap.Logger
		conn  *amqp091.Connection
		pubCh Channel
		in    chan job.DerivationJob
	}
)

func New(cfg config.MQ, logger *zap.Logger) *RabbitMQ {
	return &RabbitMQ{
		cfg: cfg,
		log: logger,
		in:  make(chan job.DerivationJob, bufferSize),
	}
}

func (r *RabbitMQ) Connect(ctx context.Context, dsn string) error {
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	amqpCfg := amqp091.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Properties: amqp091.Table{
			"connection_name": "filemanager-publisher",
		},
		Dial: func(network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
	}

	var err error
	r.conn, err = amqp091.DialConfig(dsn, amqpCfg)
	if err != nil {
		return err
	}
	ch, err := r.conn.Channel()
	if err != nil {
		_ = r.conn.Close()
		return err
	}
	r.pubCh = ch

	r.log.Info("rabbitmq connected successfully")

	return nil
}

func (r *RabbitMQ) Init() error {
	if err := rmqconsumer.Declare(r.pubCh, r.cfg); err != nil {
		_ = r.pubCh.Close()
		return err
	}
	return nil
}

// Enqueue hands j to the publisher worker without blocking the request path.
func (r *RabbitMQ) Enqueue(_ context.Context, j job.DerivationJob) error {
	select {
	case r.in <- j:
		return nil
	default:
		return ErrQueueFull
	}
}

func (r *RabbitMQ) PublisherWorker(ctx context.Context) {
	r.log.Info("starting publisher worker")

	defer func() {
		r.log.Info("publisher worker gracefully stopped")
	}()

	for {
		select {
		case j := <-r.in:
			if err := r.publish(ctx, j); err != nil {
				// alert
				r.log.Error("mq publish error", zap.String("job_id", j.ID.String()), zap.String("file_id", j.FileID), zap.Error(err))
			}
		case <-ctx.Done():
			r.drain()
			if r.pubCh != nil {
				_ = r.pubCh.Close()
			}
			return
		}
	}
}

// drain publishes whatever is still buffered so accepted uploads keep their job.
func (r *RabbitMQ) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for {
		select {
		case j := <-r.in:
			if err := r.publish(ctx, j); err != nil {
				r.log.Error("mq publish error on shutdown", zap.String("job_id", j.ID.String()), zap.Error(err))
			}
		default:
			return
		}
	}
}

func (r *RabbitMQ) publish(ctx context.Context, j job.DerivationJob) error {
	b, err := json.Marshal(j)
	if err != nil {
		return err
	}

	pub := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    j.ID.String(),
		Timestamp:    time.Now(),
		Type:         "derivation_job",
		Headers:      amqp091.Table{rmqconsumer.HeaderAttempt: int32(1)},
		Body:         b,
	}

	return r.pubCh.PublishWithContext(
		ctx,
		r.cfg.Exchange,
		r.cfg.QueueName,
		false,
		false,
		pub,
	)
}

func (r *RabbitMQ) GetConn() *amqp091.Connection { return r.conn }
