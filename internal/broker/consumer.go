package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	exchangeName = "erp.sync.topic"
	queueName    = "netsuite.orders.sync"
	routingKey   = "netsuite.order.batch"
)

// BatchMessage is the trigger payload the scheduler publishes: which orders
// to synchronize, nothing more.
type BatchMessage struct {
	BatchID  string   `json:"batch_id"`
	OrderIDs []string `json:"order_ids"`
}

// BatchRunner is the pipeline entry point as seen from the trigger side.
// It returns nothing: outcomes live in the audit log.
type BatchRunner interface {
	RunBatch(ctx context.Context, orderIDs []string)
}

// BatchConsumer receives scheduler triggers from RabbitMQ and invokes the
// synchronization pipeline once per message.
type BatchConsumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	runner  BatchRunner
	logger  *slog.Logger
}

func NewBatchConsumer(url string, runner BatchRunner, logger *slog.Logger) (*BatchConsumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %v", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %v", err)
	}

	// QoS: Prefetch 1 keeps batches strictly one at a time; two concurrent
	// batches could race on the same order's write-back
	if err := ch.Qos(1, 0, false); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %v", err)
	}

	return &BatchConsumer{
		conn:    conn,
		channel: ch,
		runner:  runner,
		logger:  logger,
	}, nil
}

// Listen declares the trigger topology and blocks consuming batch messages
// until the context is canceled or the connection drops.
func (c *BatchConsumer) Listen(ctx context.Context) error {
	if err := c.channel.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %v", err)
	}

	q, err := c.channel.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %v", err)
	}

	if err := c.channel.QueueBind(q.Name, routingKey, exchangeName, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %v", err)
	}

	msgs, err := c.channel.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %v", err)
	}

	c.logger.Info("Consumer is online and waiting for batch triggers", "queue", q.Name, "routing_key", routingKey)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}

			var msg BatchMessage
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				c.logger.Error("Failed to unmarshal batch trigger", "error", err)
				d.Nack(false, false) // Drop malformed messages
				continue
			}

			c.logger.Info("Batch trigger received", "batch_id", msg.BatchID, "orders", len(msg.OrderIDs))

			// RunBatch is fire-and-forget; a batch is consumed once no
			// matter what happened inside it. Failures are in the audit log,
			// requeueing would re-attempt orders the contract says get one
			// attempt per trigger.
			c.runner.RunBatch(ctx, msg.OrderIDs)

			if err := d.Ack(false); err != nil {
				c.logger.Error("Failed to Ack batch trigger", "batch_id", msg.BatchID, "error", err)
			}
		}
	}
}

// Close gracefully terminates RabbitMQ resources
func (c *BatchConsumer) Close() {
	c.logger.Info("Shutting down batch consumer")
	c.channel.Close()
	c.conn.Close()
}
