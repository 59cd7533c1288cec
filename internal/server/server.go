// Package server carries the line transport: the TCP accept loop and the
// per-connection read/write loop. All decision logic lives in dispatch.
package server

import (
	"bufio"
	"errors"
	"net"

	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/stock-service/internal/dispatch"
)

// Sentinel terminates every response block on the wire.
const Sentinel = "FIN"

type Server struct {
	addr       string
	dispatcher *dispatch.Dispatcher
	logger     *zap.Logger

	ln net.Listener
}

func New(addr string, dispatcher *dispatch.Dispatcher, logger *zap.Logger) *Server {
	return &Server{addr: addr, dispatcher: dispatcher, logger: logger}
}

// Start binds the listener and spawns the accept loop. One goroutine serves
// each connection.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.logger.Info("server listening", zap.String("addr", ln.Addr().String()))

	go s.acceptLoop()
	return nil
}

// Addr returns the bound address, valid after Start.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Shutdown closes the listener. Connections already being served run until
// their client disconnects.
func (s *Server) Shutdown() error {
	return s.ln.Close()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Error("accept failed", zap.Error(err))
			continue
		}
		go s.serve(conn)
	}
}

func (s *Server) serve(conn net.Conn) {
	defer conn.Close()

	interp := s.dispatcher.NewInterpreter()
	scanner := bufio.NewScanner(conn)
	writer := bufio.NewWriter(conn)

	for scanner.Scan() {
		lines, done := interp.Handle(scanner.Text())
		for _, line := range lines {
			writer.WriteString(line)
			writer.WriteByte('\n')
		}
		writer.WriteString(Sentinel)
		writer.WriteByte('\n')
		if err := writer.Flush(); err != nil {
			s.logger.Warn("connection write failed",
				zap.String("remote", conn.RemoteAddr().String()),
				zap.Error(err))
			return
		}
		if done {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		s.logger.Warn("connection read failed",
			zap.String("remote", conn.RemoteAddr().String()),
			zap.Error(err))
	}
}
