package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/stock-service/internal/domain"
)

// Producer publishes order lifecycle events to Kafka. With no brokers
// configured it is disabled and every publish is a no-op, so the server runs
// standalone without a broker.
type Producer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewProducer(brokersCSV string, logger *zap.Logger) *Producer {
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	p := &Producer{logger: logger}
	if len(brokers) == 0 {
		return p
	}
	p.writer = &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    "order-events",
		Balancer: &kafka.LeastBytes{},
	}
	return p
}

func (p *Producer) Enabled() bool {
	return p.writer != nil
}

// PublishOrder emits one lifecycle event for an order. Failures are logged
// and swallowed; event delivery never blocks or fails a client command.
func (p *Producer) PublishOrder(eventType string, order *domain.Order, sessionID string) {
	if !p.Enabled() {
		return
	}

	event := OrderEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		OrderID:   order.ID(),
		SessionID: sessionID,
		Status:    string(order.Status()),
		Timestamp: time.Now().UTC(),
	}
	if eventType == TypeOrderCreated {
		event.Items = order.Items()
		event.Total = order.Total().String()
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal order event", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("ORDER#%d", order.ID())),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish order event",
			zap.String("event_id", event.EventID),
			zap.String("type", eventType),
			zap.Int64("order_id", order.ID()),
			zap.Error(err))
		return
	}

	p.logger.Info("order event published",
		zap.String("type", eventType),
		zap.Int64("order_id", order.ID()))
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
