// Package queue publishes todo change events to Kafka. The stream is an
// optional side channel: when no brokers are configured the store simply runs
// without a publisher.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"statelab/internal/models"
	"statelab/pkg/logger"
)

// EnsureTopic creates the event topic if it does not exist (idempotent).
// Failures are logged and tolerated; the app still runs without the stream.
func EnsureTopic(ctx context.Context, brokers []string, topic string) {
	if len(brokers) == 0 {
		return
	}
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		logger.Debug(ctx, "Kafka dial for topic creation failed", "error", err)
		return
	}
	defer conn.Close()
	controller, err := conn.Controller()
	if err != nil {
		logger.Debug(ctx, "Kafka controller lookup failed", "error", err)
		return
	}
	ctrlConn, err := kafka.Dial("tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	if err != nil {
		logger.Debug(ctx, "Kafka controller dial failed", "error", err)
		return
	}
	defer ctrlConn.Close()
	err = ctrlConn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		logger.Debug(ctx, "Kafka create topic failed (topic may already exist)", "error", err)
		return
	}
	logger.Info(ctx, "Kafka topic ensured", "topic", topic)
}

// Kafka publishes TodoEvents to a topic. It satisfies todo.Publisher.
type Kafka struct {
	writer *kafka.Writer
}

// NewKafka builds an async producer for the given brokers and topic.
func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			Async:        true,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Publish sends one change event. Non-blocking with the async writer.
func (k *Kafka) Publish(ctx context.Context, ev *models.TodoEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	// Key by record id so events for one record stay ordered per partition.
	key := ev.TodoID
	if key == "" {
		key = ev.Action
	}
	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
}

// Close flushes and releases the producer.
func (k *Kafka) Close() error {
	return k.writer.Close()
}
