package network

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/spaghettifunk/lumina/engine/core"
)

// DEFAULT_ADDRESS is where live updates are accepted unless configured otherwise.
const DEFAULT_ADDRESS = "127.0.0.1:7654"

const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

// acceptBackoff doubles the wait after a failed Accept, capped at maxAcceptDelay.
func acceptBackoff(d time.Duration) time.Duration {
	if d == 0 {
		return minAcceptDelay
	}
	return min(d*2, maxAcceptDelay)
}

/**
 * @brief Accepts TCP connections and feeds their frames into the emitter
 * table. Each connection runs on its own goroutine; a failing connection
 * only ends itself. The server never touches the renderer.
 */
type Server struct {
	addr   string
	table  *EmitterTable
	stats  *Stats
	logger *log.Logger

	mu       sync.Mutex
	listener net.Listener
	conns    map[uuid.UUID]net.Conn
	wg       sync.WaitGroup
}

func NewServer(addr string, table *EmitterTable, stats *Stats) *Server {
	if addr == "" {
		addr = DEFAULT_ADDRESS
	}
	if stats == nil {
		stats = NewStats()
	}
	return &Server{
		addr:   addr,
		table:  table,
		stats:  stats,
		logger: core.Logger().WithPrefix("tcp"),
		conns:  map[uuid.UUID]net.Conn{},
	}
}

// Listen binds the listening socket. Serve calls it when needed.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return nil
	}
	l, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	s.listener = l
	s.logger.Info("listening", "addr", l.Addr().String(), "emitters", s.table.Len())
	return nil
}

// Addr is the bound address, nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) Stats() *Stats {
	return s.stats
}

/**
 * @brief Accepts connections until ctx is cancelled. Cancelling closes the
 * listener and every open connection, then waits for the workers to exit.
 * Returns nil on cancellation.
 */
func (s *Server) Serve(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	s.mu.Lock()
	l := s.listener
	s.mu.Unlock()

	stop := context.AfterFunc(ctx, func() {
		_ = l.Close()
		s.closeAll()
	})
	defer stop()

	var delay time.Duration
	for {
		conn, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				s.logger.Info("stopped")
				return nil
			}
			delay = acceptBackoff(delay)
			s.logger.Warn("accept failed", "err", err, "retry", delay)
			select {
			case <-ctx.Done():
			case <-time.After(delay):
			}
			continue
		}
		delay = 0
		s.wg.Add(1)
		go s.handle(conn)
	}
}

func (s *Server) track(conn net.Conn) (uuid.UUID, bool) {
	id := uuid.New()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conns == nil {
		return id, false
	}
	s.conns[id] = conn
	return id, true
}

func (s *Server) untrack(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conns != nil {
		delete(s.conns, id)
	}
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.conns {
		_ = c.Close()
	}
	s.conns = nil
}

func (s *Server) handle(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	id, ok := s.track(conn)
	if !ok {
		return
	}
	defer s.untrack(id)

	logger := s.logger.With("conn", id.String(), "peer", conn.RemoteAddr().String())
	logger.Info("connection opened")
	s.stats.connOpened()
	defer s.stats.connClosed()

	reader := bufio.NewReader(conn)
	for {
		records, err := ReadFrame(reader)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				logger.Info("connection closed")
			} else {
				logger.Warn("connection dropped", "err", err)
			}
			return
		}
		if _, discarded := s.stats.deliver(s.table, records); discarded > 0 {
			logger.Debug("discarded records for unknown emitters", "count", discarded)
		}
	}
}
