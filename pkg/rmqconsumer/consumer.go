package rmqconsumer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"files-manager-api/config"
)

const maxRetryDelay = time.Minute

var ErrDeliveriesClosed = errors.New("amqp delivery channel closed")

type (
	Message struct {
		ID      string
		Body    []byte
		Attempt int
	}

	// Handler processes one message. A nil error acks it, an error marked
	// Permanent or returned on the last attempt dead-letters it, any other
	// error schedules a delayed retry.
	Handler interface {
		Handle(ctx context.Context, msg Message) error
		DeadLetter(ctx context.Context, msg Message, cause error)
	}

	Publisher interface {
		PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	}
)

type Consumer struct {
	cfg        config.MQ
	log        *zap.Logger
	handler    Handler
	conn       *amqp091.Connection
	chConsume  *amqp091.Channel
	pub        Publisher
	chDelivery <-chan amqp091.Delivery
}

func New(cfg config.MQ, logger *zap.Logger, handler Handler) *Consumer {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Consumer{
		cfg:     cfg,
		log:     logger,
		handler: handler,
	}
}

func (c *Consumer) Connect(dsn string) error {
	var err error
	c.conn, err = amqp091.Dial(dsn)
	if err != nil {
		c.conn = nil
		return fmt.Errorf("amqp dial: %w", err)
	}
	c.chConsume, err = c.conn.Channel()
	if err != nil {
		_ = c.conn.Close()
		c.conn = nil
		return fmt.Errorf("amqp channel: %w", err)
	}
	c.pub = c.chConsume

	c.log.Info("rabbitmq consumer connected successfully")

	return nil
}

func (c *Consumer) Init() error {
	if err := Declare(c.chConsume, c.cfg); err != nil {
		return err
	}

	// one unacked message per worker
	if err := c.chConsume.Qos(c.cfg.Workers, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	var err error
	c.chDelivery, err = c.chConsume.Consume(
		c.cfg.QueueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	return nil
}

// Run starts cfg.Workers delivery workers and blocks until ctx is done.
// Workers finish the message in hand before returning.
func (c *Consumer) Run(ctx context.Context) error {
	c.log.Info("starting delivery workers", zap.Int("workers", c.cfg.Workers))

	defer func() {
		if c.chConsume != nil {
			_ = c.chConsume.Close()
		}
		c.log.Info("delivery workers gracefully stopped")
	}()

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < c.cfg.Workers; i++ {
		g.Go(func() error {
			return c.DeliveryWorker(ctx)
		})
	}

	return g.Wait()
}

func (c *Consumer) DeliveryWorker(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-c.chDelivery:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return ErrDeliveriesClosed
			}
			c.process(ctx, msg)
		}
	}
}

func (c *Consumer) process(ctx context.Context, d amqp091.Delivery) {
	// shutdown must not abort a message half-way
	ctx = context.WithoutCancel(ctx)

	msg := Message{ID: d.MessageId, Body: d.Body, Attempt: AttemptOf(d.Headers)}
	log := c.log.With(zap.String("message_id", msg.ID), zap.Int("attempt", msg.Attempt))

	err := c.handler.Handle(ctx, msg)
	switch {
	case err == nil:
		if aerr := d.Ack(false); aerr != nil {
			log.Error("mq ack error", zap.Error(aerr))
		}
		return
	case IsPermanent(err) || msg.Attempt >= c.cfg.MaxAttempts:
		log.Warn("message dead-lettered", zap.Error(err))
		c.handler.DeadLetter(ctx, msg, err)
		err = c.forward(ctx, d, DeadQueue(c.cfg.QueueName), msg.Attempt, "", err)
	default:
		delay := RetryDelay(c.cfg.RetryBackoff, msg.Attempt)
		log.Info("message scheduled for retry", zap.Duration("delay", delay), zap.Error(err))
		err = c.forward(ctx, d, RetryQueue(c.cfg.QueueName), msg.Attempt+1, strconv.FormatInt(delay.Milliseconds(), 10), err)
	}

	if err != nil {
		// alert
		log.Error("mq forward error, requeueing", zap.Error(err))
		if nerr := d.Nack(false, true); nerr != nil {
			log.Error("mq nack error", zap.Error(nerr))
		}
		return
	}
	if aerr := d.Ack(false); aerr != nil {
		log.Error("mq ack error", zap.Error(aerr))
	}
}

// forward republishes d to queue through the default exchange.
func (c *Consumer) forward(ctx context.Context, d amqp091.Delivery, queue string, attempt int, expiration string, cause error) error {
	headers := amqp091.Table{HeaderAttempt: int32(attempt)}
	if cause != nil {
		headers[HeaderError] = cause.Error()
	}

	return c.pub.PublishWithContext(ctx, "", queue, false, false, amqp091.Publishing{
		Headers:      headers,
		ContentType:  d.ContentType,
		DeliveryMode: amqp091.Persistent,
		MessageId:    d.MessageId,
		Timestamp:    time.Now(),
		Type:         d.Type,
		Expiration:   expiration,
		Body:         d.Body,
	})
}

// AttemptOf reads the attempt header. Missing or malformed means first attempt.
func AttemptOf(h amqp091.Table) int {
	var n int64
	switch v := h[HeaderAttempt].(type) {
	case int32:
		n = int64(v)
	case int64:
		n = v
	case int:
		n = int64(v)
	case int16:
		n = int64(v)
	case int8:
		n = int64(v)
	case uint8:
		n = int64(v)
	case uint16:
		n = int64(v)
	case uint32:
		n = int64(v)
	}
	if n < 1 {
		return 1
	}
	return int(n)
}

// RetryDelay doubles base for every failed attempt, capped at one minute.
func RetryDelay(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		base = time.Second
	}
	d := base
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= maxRetryDelay {
			return maxRetryDelay
		}
	}
	if d > maxRetryDelay {
		return maxRetryDelay
	}
	return d
}

func (c *Consumer) GetConn() *amqp091.Connection { return c.conn }
