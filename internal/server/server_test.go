package server

import (
	"bufio"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/stock-service/internal/catalog"
	"github.com/cloud-wave-best-zizon/stock-service/internal/dispatch"
	"github.com/cloud-wave-best-zizon/stock-service/internal/domain"
	"github.com/cloud-wave-best-zizon/stock-service/internal/events"
	"github.com/cloud-wave-best-zizon/stock-service/internal/fulfillment"
	"github.com/cloud-wave-best-zizon/stock-service/internal/session"
	"github.com/cloud-wave-best-zizon/stock-service/pkg/metrics"
)

func startTestServer(t *testing.T) *Server {
	t.Helper()

	logger := zap.NewNop()
	m := metrics.NewServerMetrics(prometheus.NewRegistry())
	producer := events.NewProducer("", logger)
	pipeline := fulfillment.New(time.Millisecond, time.Millisecond, producer, m, logger)

	cat := catalog.New()
	cat.Add("P001", "Laptop", 10, decimal.NewFromFloat(700.0))

	d := dispatch.New(cat, session.NewRegistry(), &session.AdminSeat{}, &domain.OrderSequence{}, pipeline, producer, m, logger)

	srv := New("127.0.0.1:0", d, logger)
	require.NoError(t, srv.Start())
	t.Cleanup(func() { srv.Shutdown() })
	return srv
}

type testClient struct {
	conn    net.Conn
	scanner *bufio.Scanner
}

func dialTestServer(t *testing.T, addr string) *testClient {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &testClient{conn: conn, scanner: bufio.NewScanner(conn)}
}

// send writes one command and reads the response block up to the sentinel.
func (c *testClient) send(t *testing.T, line string) []string {
	t.Helper()
	_, err := fmt.Fprintln(c.conn, line)
	require.NoError(t, err)

	var lines []string
	for c.scanner.Scan() {
		if c.scanner.Text() == Sentinel {
			return lines
		}
		lines = append(lines, c.scanner.Text())
	}
	t.Fatalf("connection closed before sentinel: %v", c.scanner.Err())
	return nil
}

func TestServerRoundTrip(t *testing.T) {
	t.Parallel()

	srv := startTestServer(t)

	admin := dialTestServer(t, srv.Addr())
	out := admin.send(t, "add-product P005 Webcam 5 35.0")
	assert.Equal(t, []string{"Welcome, Administrator!", "Product added: P005"}, out)

	customer := dialTestServer(t, srv.Addr())
	out = customer.send(t, "list-catalog")
	assert.Equal(t, []string{
		"Welcome, Customer!",
		"P001 | Laptop | Quantity: 10 | Price: 700",
		"P005 | Webcam | Quantity: 5 | Price: 35",
	}, out)

	out = customer.send(t, "add-to-cart P001 3")
	assert.Equal(t, []string{"Added to cart: P001"}, out)
	out = customer.send(t, "place-order")
	assert.Equal(t, []string{"Order placed. Total: 2100"}, out)
}

func TestServerErrorKeepsSessionOpen(t *testing.T) {
	t.Parallel()

	srv := startTestServer(t)
	client := dialTestServer(t, srv.Addr())

	client.send(t, "show-cart") // admin seat; respond and continue
	out := client.send(t, "update-product P999 1 1.0")
	assert.Equal(t, []string{"Error: product not found: P999"}, out)

	// still responsive after a failed command
	out = client.send(t, "add-product P009 Cable 3 5.0")
	assert.Equal(t, []string{"Product added: P009"}, out)
}

func TestServerClosesSessionOnQuit(t *testing.T) {
	t.Parallel()

	srv := startTestServer(t)
	client := dialTestServer(t, srv.Addr())

	client.send(t, "list-catalog")

	_, err := fmt.Fprintln(client.conn, "quitter")
	require.NoError(t, err)

	// server answers the final sentinel and closes the connection
	for client.scanner.Scan() {
		assert.Equal(t, Sentinel, client.scanner.Text())
	}
	assert.NoError(t, client.scanner.Err())
}

func TestServerSurvivesAbruptDisconnect(t *testing.T) {
	t.Parallel()

	srv := startTestServer(t)

	first := dialTestServer(t, srv.Addr())
	first.send(t, "list-catalog")
	first.conn.Close()

	// a later connection is still served
	second := dialTestServer(t, srv.Addr())
	out := second.send(t, "list-catalog")
	require.NotEmpty(t, out)
}
