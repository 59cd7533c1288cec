// Package dispatch implements the per-session command interpreter: line
// parsing, role assignment, and both command sets.
package dispatch

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/stock-service/internal/catalog"
	"github.com/cloud-wave-best-zizon/stock-service/internal/domain"
	"github.com/cloud-wave-best-zizon/stock-service/internal/events"
	"github.com/cloud-wave-best-zizon/stock-service/internal/fulfillment"
	"github.com/cloud-wave-best-zizon/stock-service/internal/session"
	"github.com/cloud-wave-best-zizon/stock-service/pkg/metrics"
)

// QuitCommand ends a session's command loop.
const QuitCommand = "quitter"

// Dispatcher holds the state shared by every session.
type Dispatcher struct {
	catalog  *catalog.Catalog
	registry *session.Registry
	seat     *session.AdminSeat
	orderIDs *domain.OrderSequence
	pipeline *fulfillment.Pipeline
	producer *events.Producer
	metrics  *metrics.ServerMetrics
	logger   *zap.Logger
}

func New(
	cat *catalog.Catalog,
	registry *session.Registry,
	seat *session.AdminSeat,
	orderIDs *domain.OrderSequence,
	pipeline *fulfillment.Pipeline,
	producer *events.Producer,
	m *metrics.ServerMetrics,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		catalog:  cat,
		registry: registry,
		seat:     seat,
		orderIDs: orderIDs,
		pipeline: pipeline,
		producer: producer,
		metrics:  m,
		logger:   logger,
	}
}

// Interpreter is the command state machine for one connection. The role is
// assigned on the first line received and never changes afterwards.
type Interpreter struct {
	d      *Dispatcher
	id     string
	sess   *session.Session
	logger *zap.Logger
}

// NewInterpreter creates the interpreter for a new connection.
func (d *Dispatcher) NewInterpreter() *Interpreter {
	id := session.NewSessionID()
	return &Interpreter{
		d:      d,
		id:     id,
		logger: d.logger.With(zap.String("session_id", id)),
	}
}

// Handle interprets one input line and returns the content lines of the
// response block, plus whether the session is done. Domain failures become a
// single response line and never end the session.
func (it *Interpreter) Handle(line string) (out []string, done bool) {
	if it.sess == nil {
		out = append(out, it.assignRole())
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return out, false
	}
	command := fields[0]

	if command == QuitCommand {
		it.logger.Info("session quit")
		return out, true
	}

	var lines []string
	var err error
	if it.sess.Role == session.RoleAdmin {
		lines, err = it.handleAdmin(command, fields[1:])
	} else {
		lines, err = it.handleCustomer(command, fields[1:])
	}
	if err != nil {
		it.d.metrics.Commands.WithLabelValues(command, "error").Inc()
		it.logger.Warn("command failed", zap.String("command", command), zap.Error(err))
		return append(out, "Error: "+err.Error()), false
	}

	it.d.metrics.Commands.WithLabelValues(command, "ok").Inc()
	return append(out, lines...), false
}

func (it *Interpreter) assignRole() string {
	role := session.RoleCustomer
	if it.d.seat.TryAcquire() {
		role = session.RoleAdmin
	}
	it.sess = it.d.registry.Attach(it.id, role)
	it.logger.Info("session established", zap.String("role", string(role)))

	if role == session.RoleAdmin {
		return "Welcome, Administrator!"
	}
	return "Welcome, Customer!"
}

func (it *Interpreter) handleAdmin(command string, args []string) ([]string, error) {
	switch command {
	case "add-product":
		if len(args) != 4 {
			return nil, invalidFormat(command)
		}
		quantity, err := parseQuantity(command, args[2])
		if err != nil {
			return nil, err
		}
		price, err := parsePrice(command, args[3])
		if err != nil {
			return nil, err
		}
		it.d.catalog.Add(args[0], args[1], quantity, price)
		return []string{"Product added: " + args[0]}, nil

	case "update-product":
		if len(args) != 3 {
			return nil, invalidFormat(command)
		}
		quantity, err := parseQuantity(command, args[1])
		if err != nil {
			return nil, err
		}
		price, err := parsePrice(command, args[2])
		if err != nil {
			return nil, err
		}
		if err := it.d.catalog.Update(args[0], quantity, price); err != nil {
			return nil, err
		}
		return []string{"Product updated: " + args[0]}, nil

	case "remove-product":
		if len(args) != 1 {
			return nil, invalidFormat(command)
		}
		if err := it.d.catalog.Remove(args[0]); err != nil {
			return nil, err
		}
		return []string{"Product removed: " + args[0]}, nil

	default:
		return []string{"Unknown administrator command."}, nil
	}
}

func (it *Interpreter) handleCustomer(command string, args []string) ([]string, error) {
	switch command {
	case "list-catalog":
		var lines []string
		for _, p := range it.d.catalog.List() {
			lines = append(lines, p.String())
		}
		return lines, nil

	case "add-to-cart":
		if len(args) != 2 {
			return nil, invalidFormat(command)
		}
		quantity, err := parseQuantity(command, args[1])
		if err != nil {
			return nil, err
		}
		if _, ok := it.d.catalog.Get(args[0]); !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, args[0])
		}
		if err := it.sess.Cart.AddItem(args[0], quantity); err != nil {
			return nil, err
		}
		return []string{"Added to cart: " + args[0]}, nil

	case "place-order":
		return it.placeOrder()

	case "show-cart":
		lines := []string{"Cart:"}
		for _, item := range sortedItems(it.sess.Cart.Snapshot()) {
			lines = append(lines, fmt.Sprintf("Product ID: %s, Quantity: %d", item.id, item.qty))
		}
		return lines, nil

	case "list-orders":
		var lines []string
		for _, o := range it.sess.Orders() {
			lines = append(lines, renderOrder(o)...)
		}
		return lines, nil

	default:
		return []string{"Unknown customer command."}, nil
	}
}

// placeOrder reserves stock item by item. On the first shortfall it stops
// with the error: items reserved before it stay decremented and no order is
// created. On success the order is frozen, the cart cleared, and delivery
// starts asynchronously.
func (it *Interpreter) placeOrder() ([]string, error) {
	snapshot := it.sess.Cart.Snapshot()

	total := decimal.Zero
	for _, item := range sortedItems(snapshot) {
		price, err := it.d.catalog.DecrementForOrder(item.id, item.qty)
		if err != nil {
			return nil, err
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.qty))))
	}

	order := domain.NewOrder(it.d.orderIDs.Next(), snapshot, total)
	it.sess.AppendOrder(order)
	it.sess.Cart.Clear()

	it.d.metrics.OrdersPlaced.Inc()
	it.d.producer.PublishOrder(events.TypeOrderCreated, order, it.id)
	it.d.pipeline.Dispatch(order, it.id)

	it.logger.Info("order placed",
		zap.Int64("order_id", order.ID()),
		zap.String("total", total.String()))

	return []string{"Order placed. Total: " + total.String()}, nil
}

func renderOrder(o *domain.Order) []string {
	lines := []string{fmt.Sprintf("Order ID: %d", o.ID())}
	for _, item := range sortedItems(o.Items()) {
		lines = append(lines, fmt.Sprintf("Product ID: %s, Quantity: %d", item.id, item.qty))
	}
	lines = append(lines,
		"Total: "+o.Total().String(),
		"Status: "+string(o.Status()))
	return lines
}

type cartItem struct {
	id  string
	qty int
}

func sortedItems(items map[string]int) []cartItem {
	out := make([]cartItem, 0, len(items))
	for id, qty := range items {
		out = append(out, cartItem{id: id, qty: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func invalidFormat(command string) error {
	return fmt.Errorf("%w: invalid format for %s", domain.ErrInvalidCommand, command)
}

func parseQuantity(command, raw string) (int, error) {
	quantity, err := strconv.Atoi(raw)
	if err != nil || quantity < 0 {
		return 0, fmt.Errorf("%w: invalid quantity for %s", domain.ErrInvalidCommand, command)
	}
	return quantity, nil
}

func parsePrice(command, raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil || price.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: invalid price for %s", domain.ErrInvalidCommand, command)
	}
	return price, nil
}
