// Package worker consumes the todo event stream and replays it onto a mirror
// store. It demonstrates the change-event pipeline end to end; it is not a
// multi-user synchronization protocol.
package worker

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"statelab/internal/models"
	"statelab/internal/todo"
	"statelab/pkg/logger"
)

// Run consumes events from the topic and applies them to store until ctx is
// cancelled. One consumer per process; replicas share partitions via the
// consumer group.
func Run(ctx context.Context, store *todo.Store, brokers []string, topic string) {
	if len(brokers) == 0 {
		logger.Info(ctx, "Mirror worker disabled (no Kafka brokers)")
		return
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  "todo-mirror",
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	logger.Info(ctx, "Mirror worker started", "topic", topic)
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error(ctx, "Mirror fetch failed", "error", err)
			continue
		}
		var ev models.TodoEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			logger.Error(ctx, "Mirror decode failed", "error", err, "payload", string(msg.Value))
			// Commit anyway to avoid a poison pill blocking the partition.
			_ = reader.CommitMessages(ctx, msg)
			continue
		}
		store.Apply(ctx, &ev)
		if err := reader.CommitMessages(ctx, msg); err != nil {
			logger.Error(ctx, "Mirror commit failed", "error", err)
		}
	}
}
