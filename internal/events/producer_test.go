package events

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/stock-service/internal/domain"
)

func TestProducerDisabledWithoutBrokers(t *testing.T) {
	t.Parallel()

	for _, brokers := range []string{"", "  ", " , , "} {
		p := NewProducer(brokers, zap.NewNop())
		assert.False(t, p.Enabled())

		// publishing through a disabled producer is a safe no-op
		p.PublishOrder(TypeOrderCreated, domain.NewOrder(1, nil, decimal.Zero), "session-1")
		assert.NoError(t, p.Close())
	}
}

func TestProducerEnabledWithBrokers(t *testing.T) {
	t.Parallel()

	p := NewProducer("localhost:9092, localhost:9093", zap.NewNop())
	assert.True(t, p.Enabled())
	assert.NoError(t, p.Close())
}
