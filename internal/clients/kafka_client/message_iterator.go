package kafka_client

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

const (
	maxReadRetries = 5
	readRetryDelay = 2 * time.Second
)

type MessageIterator struct {
	consumer *kafka.Consumer
	ctx      context.Context
}

func NewMessageIterator(ctx context.Context, consumer *kafka.Consumer) *MessageIterator {
	return &MessageIterator{consumer: consumer, ctx: ctx}
}

// Next blocks for the next message, retrying transient read failures.
// It aborts when the context is cancelled or all brokers are gone.
func (it *MessageIterator) Next() (*kafka.Message, error) {
	for attempt := 0; attempt < maxReadRetries; attempt++ {
		select {
		case <-it.ctx.Done():
			return nil, it.ctx.Err()
		default:
		}

		msg, err := it.consumer.ReadMessage(time.Second)
		if err == nil {
			return msg, nil
		}

		var kafkaErr kafka.Error
		if errors.As(err, &kafkaErr) {
			if kafkaErr.Code() == kafka.ErrTimedOut {
				attempt--
				continue
			}
			if kafkaErr.Code() == kafka.ErrAllBrokersDown {
				slog.Error("[KafkaIterator] All Kafka brokers are down, aborting")
				return nil, err
			}
		}

		slog.Warn("[KafkaIterator] Failed to read message, retrying...",
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()))
		time.Sleep(readRetryDelay)
	}

	return nil, errors.New("[KafkaIterator] failed to read message after retries")
}
