package network

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
)

// RGB is an 8-bit colour as sent on the wire.
type RGB struct {
	R, G, B uint8
}

/**
 * @brief Drives a simulator (or the real sculpture) over TCP. The client
 * keeps the desired colour of every emitter and Update sends only the ones
 * that changed since the last send.
 */
type Client struct {
	conn net.Conn

	mu      sync.Mutex
	colours []RGB
	sent    []RGB
}

// Dial connects to addr and sends every emitter's colour (all black) once.
func Dial(ctx context.Context, addr string, emitters int) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	c, err := NewClient(conn, emitters)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return c, nil
}

// NewClient wraps an established connection and forces a full initial update.
func NewClient(conn net.Conn, emitters int) (*Client, error) {
	if emitters < 0 || emitters > MAX_EMITTERS {
		return nil, fmt.Errorf("client for %d emitters: %w", emitters, errOutOfRange)
	}
	c := &Client{
		conn:    conn,
		colours: make([]RGB, emitters),
		sent:    make([]RGB, emitters),
	}
	if err := c.Update(true); err != nil {
		return nil, err
	}
	return c, nil
}

var errOutOfRange = errors.New("emitter index out of range")

func (c *Client) Len() int {
	return len(c.colours)
}

func (c *Client) Set(i int, colour RGB) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.colours) {
		return fmt.Errorf("%w: %d", errOutOfRange, i)
	}
	c.colours[i] = colour
	return nil
}

// SetAll assigns colours to emitters 0..len(colours)-1.
func (c *Client) SetAll(colours []RGB) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(colours) > len(c.colours) {
		return fmt.Errorf("%w: %d colours for %d emitters", errOutOfRange, len(colours), len(c.colours))
	}
	copy(c.colours, colours)
	return nil
}

func (c *Client) Get(i int) (RGB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.colours) {
		return RGB{}, fmt.Errorf("%w: %d", errOutOfRange, i)
	}
	return c.colours[i], nil
}

/**
 * @brief Sends the colours that differ from the last update, or all of them
 * when force is set. Nothing is written when nothing changed.
 */
func (c *Client) Update(force bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var records []Record
	for i, col := range c.colours {
		if force || col != c.sent[i] {
			records = append(records, Record{ID: uint8(i), R: col.R, G: col.G, B: col.B})
		}
	}
	if len(records) == 0 {
		return nil
	}
	if _, err := c.conn.Write(EncodeFrame(records)); err != nil {
		return fmt.Errorf("send %d records: %w", len(records), err)
	}
	copy(c.sent, c.colours)
	return nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}
