package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// PaymentEventHandler processes one decoded settlement event.
type PaymentEventHandler func(ctx context.Context, event PaymentEvent) error

// Consumer feeds settled-payment events to the notification worker. Decoding
// lives here so handlers only ever see typed events, the same way Producer
// owns marshalling.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume blocks reading payment events until the context is canceled or the
// handler fails. Payloads that do not decode are logged and skipped so one
// bad message cannot wedge the consumer group.
func (c *Consumer) Consume(ctx context.Context, handler PaymentEventHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}
		if err := dispatch(ctx, msg, handler); err != nil {
			return err
		}
	}
}

func dispatch(ctx context.Context, msg kafka.Message, handler PaymentEventHandler) error {
	var event PaymentEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		slog.Warn("skip undecodable payment event",
			"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset, "error", err)
		return nil
	}
	return handler(ctx, event)
}
