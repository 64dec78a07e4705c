// Package kafka publishes normalized alerts to a downstream topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/golgrax/bayanihan-alerts/internal/domain"
	"github.com/golgrax/bayanihan-alerts/internal/observability"
)

// Writer produces alert messages to a Kafka topic.
type Writer struct {
	writer  *kafkago.Writer
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewWriter creates a Kafka producer for the alert topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger, metrics *observability.Metrics) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger, metrics: metrics}
}

// PublishAlerts serializes and publishes the alerts in a single
// WriteMessages call. The message key is the stable feed entry ID, so a
// re-published alert lands on the same partition as its earlier versions.
func (w *Writer) PublishAlerts(ctx context.Context, alerts []domain.AlertSummary) error {
	if len(alerts) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(alerts))
	for i := range alerts {
		msg, err := serializeToMessage(alerts[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish alerts: %w", err)
	}
	w.metrics.AlertsPublished.Add(float64(len(alerts)))
	w.logger.Debug("alerts published", "count", len(alerts))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an alert into a Kafka message.
func serializeToMessage(alert domain.AlertSummary) (kafkago.Message, error) {
	data, err := json.Marshal(alert)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize alert: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(alert.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "severity", Value: []byte(alert.Severity)},
			{Key: "region", Value: []byte(alert.Region)},
			{Key: "updated", Value: []byte(alert.Updated.Format(time.RFC3339))},
		},
	}, nil
}
