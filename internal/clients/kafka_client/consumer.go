package kafka_client

import (
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// NewConsumer creates a manually-committed consumer subscribed to the
// given topics. Offsets are committed only after a message's work is
// durably stored, so a crash replays rather than drops.
func NewConsumer(cfg KafkaConfig, topics ...string) (*kafka.Consumer, error) {
	slog.Info("[KafkaClient] Initializing Kafka consumer...",
		slog.String("broker", cfg.Broker),
		slog.String("group_id", cfg.GroupID))

	c, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":  cfg.Broker,
		"group.id":           cfg.GroupID,
		"auto.offset.reset":  "earliest",
		"enable.auto.commit": false,
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] failed to create consumer: %w", err)
	}

	if err := c.SubscribeTopics(topics, nil); err != nil {
		c.Close()
		return nil, fmt.Errorf("[KafkaClient] failed to subscribe to topics: %w", err)
	}

	slog.Info("[KafkaClient] Kafka consumer initialized successfully")
	return c, nil
}

func CommitMessage(consumer *kafka.Consumer, msg *kafka.Message) error {
	if _, err := consumer.CommitMessage(msg); err != nil {
		slog.Warn("[KafkaClient] Failed to commit offset",
			slog.Int("partition", int(msg.TopicPartition.Partition)),
			slog.String("offset", msg.TopicPartition.Offset.String()),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}
