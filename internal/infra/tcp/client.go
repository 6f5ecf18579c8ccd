package tcp

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"
)

const (
	DefaultDialTimeout  = 5 * time.Second
	DefaultWriteTimeout = 5 * time.Second
	DefaultMaxBuffered  = 4096

	readChunk = 512
)

var (
	ErrNotConnected = errors.New("not connected")
	ErrTerminated   = errors.New("client terminated")
)

// Handler receives the events of a Client. Events are delivered from the client's own
// goroutines and never while the client holds its lock, so handlers may call back into it.
type Handler interface {
	OnConnect()
	OnFailedConnectionAttempt()
	OnDisconnect()
	OnIdle()
	// OnData is called with every byte received and not yet consumed. It returns how many
	// leading bytes it consumed.
	OnData(buf []byte) int
}

type Option func(*Client)

// DialFunc opens the connection to addr.
type DialFunc func(network, addr string, timeout time.Duration) (net.Conn, error)

func WithDialer(dial DialFunc) Option {
	return func(c *Client) { c.dialer = dial }
}

func WithDialTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.dialTimeout = timeout }
}

func WithWriteTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.writeTimeout = timeout }
}

func WithMaxBuffered(size int) Option {
	return func(c *Client) { c.maxBuffered = size }
}

func NewClient(handler Handler, opts ...Option) *Client {
	c := &Client{
		handler:      handler,
		dialTimeout:  DefaultDialTimeout,
		writeTimeout: DefaultWriteTimeout,
		maxBuffered:  DefaultMaxBuffered,
		dialer:       net.DialTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Client is a reconnectable TCP client. Connect and ScheduleConnect return immediately and
// report their outcome through the Handler.
type Client struct {
	mu           sync.Mutex
	handler      Handler
	dialTimeout  time.Duration
	writeTimeout time.Duration
	maxBuffered  int
	idleTimeout  time.Duration
	dialer       DialFunc

	conn       net.Conn
	connecting bool
	// cancelled is set by Disconnect while a dial is in progress.
	cancelled  bool
	terminated bool
	reconnect  *time.Timer
}

// SetIdleTimeout sets how long the connection may stay silent before OnIdle. Zero disables
// idle detection.
func (c *Client) SetIdleTimeout(timeout time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.idleTimeout = timeout
}

func (c *Client) Connect(host string, port int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.terminated {
		slog.Warn("tcp client terminated, not connecting")
		return
	}
	if c.conn != nil || c.connecting {
		slog.Debug("tcp client already connected or connecting", slog.String("address", address(host, port)))
		return
	}
	c.connecting = true
	c.cancelled = false
	go c.dial(address(host, port))
}

// ScheduleConnect connects after delay. A pending scheduled connect is replaced.
func (c *Client) ScheduleConnect(host string, port int, delay time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.terminated {
		return
	}
	if c.reconnect != nil {
		c.reconnect.Stop()
	}
	slog.Debug("scheduling connect", slog.String("address", address(host, port)), slog.Duration("delay", delay))
	c.reconnect = time.AfterFunc(delay, func() { c.Connect(host, port) })
}

// Disconnect closes the current connection, or abandons the dial in progress. OnDisconnect
// follows once the reader or the dial notices.
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.reconnect != nil {
		c.reconnect.Stop()
		c.reconnect = nil
	}
	if c.connecting {
		c.cancelled = true
	}
	if c.conn != nil {
		c.conn.Close()
	}
}

// Terminate closes the client for good. No handler is called afterwards.
func (c *Client) Terminate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.terminated = true
	if c.reconnect != nil {
		c.reconnect.Stop()
		c.reconnect = nil
	}
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *Client) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.terminated {
		return ErrTerminated
	}
	if c.conn == nil {
		return ErrNotConnected
	}
	if c.writeTimeout > 0 {
		c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	if _, err := c.conn.Write(data); err != nil {
		return fmt.Errorf("writing %d bytes: %w", len(data), err)
	}
	return nil
}

func (c *Client) dial(addr string) {
	conn, err := c.dialer("tcp", addr, c.dialTimeout)

	c.mu.Lock()
	c.connecting = false
	if c.cancelled && !c.terminated {
		c.cancelled = false
		c.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		slog.Debug("tcp connect abandoned", slog.String("address", addr))
		c.handler.OnDisconnect()
		return
	}
	if c.terminated {
		c.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		return
	}
	if err != nil {
		c.mu.Unlock()
		slog.Debug("tcp connect failed", slog.String("address", addr), slog.Any("error", err))
		c.handler.OnFailedConnectionAttempt()
		return
	}
	c.conn = conn
	c.mu.Unlock()

	slog.Debug("tcp connected", slog.String("address", addr))
	c.handler.OnConnect()
	c.readLoop(conn)
}

func (c *Client) readLoop(conn net.Conn) {
	var buf []byte
	chunk := make([]byte, readChunk)

	for {
		if timeout := c.currentIdleTimeout(); timeout > 0 {
			conn.SetReadDeadline(time.Now().Add(timeout))
		} else {
			conn.SetReadDeadline(time.Time{})
		}

		n, err := conn.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			buf = c.deliver(conn, buf)
		}
		if err == nil {
			continue
		}

		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			if c.active(conn) {
				c.handler.OnIdle()
				continue
			}
		}

		c.closed(conn, err)
		return
	}
}

func (c *Client) deliver(conn net.Conn, buf []byte) []byte {
	if !c.active(conn) {
		return nil
	}
	for len(buf) > 0 {
		consumed := c.handler.OnData(buf)
		if consumed <= 0 {
			break
		}
		buf = buf[consumed:]
	}
	if len(buf) > c.maxBuffered {
		slog.Warn("discarding unframed bytes", slog.Int("bytes", len(buf)))
		return nil
	}
	return buf
}

func (c *Client) closed(conn net.Conn, err error) {
	c.mu.Lock()
	conn.Close()
	current := c.conn == conn
	if current {
		c.conn = nil
	}
	terminated := c.terminated
	c.mu.Unlock()

	slog.Debug("tcp connection closed", slog.Any("error", err))
	if current && !terminated {
		c.handler.OnDisconnect()
	}
}

func (c *Client) active(conn net.Conn) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn == conn && !c.terminated
}

func (c *Client) currentIdleTimeout() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.idleTimeout
}

func address(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
