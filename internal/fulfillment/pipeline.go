// Package fulfillment simulates order delivery. Every placed order gets its
// own goroutine that walks the status sequence with randomized delays; the
// dispatcher never waits on it.
package fulfillment

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/stock-service/internal/domain"
	"github.com/cloud-wave-best-zizon/stock-service/internal/events"
	"github.com/cloud-wave-best-zizon/stock-service/pkg/metrics"
)

type Pipeline struct {
	base     time.Duration // minimum stage delay
	jitter   time.Duration // extra random delay in [0, jitter)
	producer *events.Producer
	metrics  *metrics.ServerMetrics
	logger   *zap.Logger
}

func New(base, jitter time.Duration, producer *events.Producer, m *metrics.ServerMetrics, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		base:     base,
		jitter:   jitter,
		producer: producer,
		metrics:  m,
		logger:   logger,
	}
}

// Dispatch hands an order to the pipeline and returns immediately. The
// delivery goroutine runs to completion or is abandoned at process exit.
func (p *Pipeline) Dispatch(order *domain.Order, sessionID string) {
	p.metrics.DeliveriesInFlight.Inc()
	go p.deliver(order, sessionID)
}

func (p *Pipeline) deliver(order *domain.Order, sessionID string) {
	defer p.metrics.DeliveriesInFlight.Dec()

	p.sleep()
	order.SetStatus(domain.OrderStatusShipped)
	p.producer.PublishOrder(events.TypeOrderShipped, order, sessionID)
	p.logger.Info("order shipped", zap.Int64("order_id", order.ID()))

	p.sleep()
	order.SetStatus(domain.OrderStatusDelivered)
	p.producer.PublishOrder(events.TypeOrderDelivered, order, sessionID)
	p.logger.Info("order delivered", zap.Int64("order_id", order.ID()))
}

func (p *Pipeline) sleep() {
	d := p.base
	if p.jitter > 0 {
		d += time.Duration(rand.Int63n(int64(p.jitter)))
	}
	time.Sleep(d)
}
