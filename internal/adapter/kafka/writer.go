package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/design-value-explorer/internal/config"
	"github.com/couchcryptid/design-value-explorer/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces colourbar messages to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes colourbar messages to the sink topic in
// a single WriteMessages call.
func (w *Writer) LoadBatch(ctx context.Context, msgs []domain.ColourbarMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]kafkago.Message, len(msgs))
	for i := range msgs {
		msg, err := serializeToMessage(msgs[i])
		if err != nil {
			return err
		}
		out[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, out...); err != nil {
		return err
	}
	w.logger.Debug("colourbars published", "count", len(out), "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a ColourbarMessage into a Kafka message keyed
// by dataset.
func serializeToMessage(m domain.ColourbarMessage) (kafkago.Message, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize colourbar message: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(m.Key),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "design_value", Value: []byte(m.DesignValue)},
			{Key: "regime", Value: []byte(m.Regime)},
			{Key: "published_at", Value: []byte(m.PublishedAt.Format(time.RFC3339))},
		},
	}, nil
}
