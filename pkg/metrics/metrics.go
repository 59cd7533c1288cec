package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	Commands           *prometheus.CounterVec
	OrdersPlaced       prometheus.Counter
	DeliveriesInFlight prometheus.Gauge
}

func NewServerMetrics(reg prometheus.Registerer) *ServerMetrics {
	commands := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stockservice",
		Name:      "commands_total",
		Help:      "Total number of dispatched commands.",
	}, []string{"command", "status"})
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "stockservice",
		Name:      "orders_placed_total",
		Help:      "Total number of successfully placed orders.",
	})
	inFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "stockservice",
		Name:      "deliveries_in_flight",
		Help:      "Number of orders currently in the fulfillment pipeline.",
	})

	reg.MustRegister(commands, ordersPlaced, inFlight)
	return &ServerMetrics{
		Commands:           commands,
		OrdersPlaced:       ordersPlaced,
		DeliveriesInFlight: inFlight,
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
