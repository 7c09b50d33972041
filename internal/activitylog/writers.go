package activitylog

import (
	"context"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type ZapWriter struct {
	logger *zap.Logger
}

func NewZapWriter(logger *zap.Logger) *ZapWriter {
	if logger == nil {
		logger = zap.L()
	}
	return &ZapWriter{logger: logger.Named("audit")}
}

func (w *ZapWriter) Write(_ context.Context, e Entry) error {
	w.logger.Info("activity",
		zap.String("timestamp", e.OccurredAt.Format(time.RFC3339)),
		zap.String("organization_id", e.OrganizationID),
		zap.String("actor_id", e.ActorID),
		zap.String("action", e.Action),
		zap.String("entity_type", e.EntityType),
		zap.String("entity_id", e.EntityID),
		zap.String("message", e.Message),
		zap.String("request_id", e.RequestID),
		zap.Any("meta", e.Meta),
	)
	return nil
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// KafkaWriter publishes entries to a topic keyed by organization.
type KafkaWriter struct {
	writer MessageWriter
	topic  string
}

func NewKafkaWriter(writer MessageWriter, topic string) *KafkaWriter {
	return &KafkaWriter{writer: writer, topic: topic}
}

func (w *KafkaWriter) Write(ctx context.Context, e Entry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return w.writer.WriteMessages(ctx, kafkago.Message{
		Topic: w.topic,
		Key:   []byte(e.OrganizationID),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte("activity_logged")},
			{Key: "action", Value: []byte(e.Action)},
		},
	})
}
