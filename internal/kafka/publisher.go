package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/lawchemical/Draft-Order-App/internal/config"
	"github.com/lawchemical/Draft-Order-App/internal/domain"
)

//go:generate mockgen -source internal/kafka/publisher.go -destination=internal/kafka/publisher_mock_test.go -package=kafka

const HeaderEventType = "event-type"

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// NewWriter returns a writer keyed by draft id so events of one draft stay
// on one partition.
func NewWriter(cfg config.Kafka) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
}

type Publisher struct {
	writer Writer
	logger *zap.Logger
}

func NewPublisher(writer Writer, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

// Publish writes ev as JSON with the trace context in the message headers.
func (p *Publisher) Publish(ctx context.Context, ev domain.DraftEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	msg := kafkago.Message{
		Key:     []byte(ev.DraftID),
		Value:   value,
		Headers: []kafkago.Header{{Key: HeaderEventType, Value: []byte(ev.Type)}},
	}
	otel.GetTextMapPropagator().Inject(ctx, (*headerCarrier)(&msg.Headers))

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write event %s: %w", ev.ID, err)
	}
	p.logger.Debug("Draft event published",
		zap.String("event_id", ev.ID),
		zap.String("draft_id", ev.DraftID),
	)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// headerCarrier adapts kafka headers to otel propagation.
type headerCarrier []kafkago.Header

func (c *headerCarrier) Get(key string) string {
	for _, h := range *c {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *headerCarrier) Set(key, value string) {
	for i, h := range *c {
		if h.Key == key {
			(*c)[i].Value = []byte(value)
			return
		}
	}
	*c = append(*c, kafkago.Header{Key: key, Value: []byte(value)})
}

func (c *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(*c))
	for _, h := range *c {
		keys = append(keys, h.Key)
	}
	return keys
}
