package appender

import (
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/xy-planning-network/lumber"
	"github.com/xy-planning-network/lumber/logger"
)

// A Socket writes one line per message to a network peer.
// When a write fails, the Socket redials once and retries.
type Socket struct {
	logger.Base

	network string
	addr    string
	timeout time.Duration

	mu    sync.Mutex
	conn  net.Conn
	onErr ErrorHandler
}

// NewSocket dials addr on network, constructs a *Socket writing to it and attaches it to hub.
// A timeout of zero waits as long as the operating system does.
func NewSocket(hub *logger.Hub, network, addr string, timeout time.Duration) (*Socket, error) {
	if addr == "" {
		return nil, fmt.Errorf("%w: socket: addr", lumber.ErrMissingData)
	}

	s := &Socket{network: network, addr: addr, timeout: timeout, onErr: Stderr}
	if err := s.dial(); err != nil {
		return nil, err
	}

	s.SetFormat(logger.DefaultFormat)
	s.Attach(hub, s)
	return s, nil
}

// Addr returns the address of the peer.
func (s *Socket) Addr() string { return s.addr }

// Append writes text on its own line.
func (s *Socket) Append(_ logger.Level, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := text + "\n"
	err := s.write(line)
	if err != nil {
		s.closeConn()
		if err = s.dial(); err == nil {
			err = s.write(line)
		}
	}

	if err != nil && s.onErr != nil {
		s.onErr(fmt.Errorf("socket %s: failed to write message: %w", s.addr, err))
	}
}

// SetErrorHandler replaces the ErrorHandler write failures are reported to.
func (s *Socket) SetErrorHandler(h ErrorHandler) {
	s.mu.Lock()
	s.onErr = h
	s.mu.Unlock()
}

// Close unregisters the Socket and closes the connection.
func (s *Socket) Close() error {
	s.Unregister()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}

	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *Socket) dial() error {
	conn, err := net.DialTimeout(s.network, s.addr, s.timeout)
	if err != nil {
		return fmt.Errorf("socket %s: failed dialing: %w", s.addr, err)
	}

	s.conn = conn
	return nil
}

func (s *Socket) write(line string) error {
	if s.conn == nil {
		return net.ErrClosed
	}

	if s.timeout > 0 {
		_ = s.conn.SetWriteDeadline(time.Now().Add(s.timeout))
	}

	_, err := io.WriteString(s.conn, line)
	return err
}

func (s *Socket) closeConn() {
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
}
