package alert

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/sitewatch/sitewatch/internal/domain"
)

// messageWriter is the slice of kafka.Writer we use, extracted so tests can
// fake the broker.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// TransitionEvent is the payload published for every status change.
type TransitionEvent struct {
	URL            string    `json:"url"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status"`
	Reason         string    `json:"reason,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// KafkaHandler publishes transition events to a topic, keyed by site URL so
// per-site ordering survives partitioning. Publish failures are logged and
// dropped; the checker never blocks on the broker.
type KafkaHandler struct {
	writer  messageWriter
	logger  *zap.Logger
	timeout time.Duration
}

func NewKafkaHandler(brokers []string, topic string, l *zap.Logger) *KafkaHandler {
	if len(brokers) == 0 || topic == "" {
		return nil
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaHandler{writer: w, logger: l, timeout: 10 * time.Second}
}

func (h *KafkaHandler) OnCheckComplete(domain.CheckResult) {}

func (h *KafkaHandler) OnStatusChange(r domain.CheckResult, prev domain.Status) {
	ev := TransitionEvent{
		URL:            r.URL,
		Status:         string(r.Status),
		PreviousStatus: string(prev),
		Reason:         r.Reason(),
		Timestamp:      r.Timestamp,
	}
	value, err := json.Marshal(ev)
	if err != nil {
		h.logger.Warn("kafka_marshal_failed", zap.String("url", r.URL), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	err = h.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(r.URL),
		Value: value,
	})
	if err != nil {
		h.logger.Warn("kafka_publish_failed", zap.String("url", r.URL), zap.Error(err))
		return
	}
	h.logger.Debug("kafka_published", zap.String("url", r.URL), zap.String("status", string(r.Status)))
}

// Close flushes and closes the underlying writer when one is attached.
func (h *KafkaHandler) Close() error {
	if c, ok := h.writer.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
