package telnet

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
)

const readBufferSize = 4096

// Client owns a connection and drives an Engine over it: it reads from the
// transport, performs the compression stream switch when MCCP2 starts, and
// exposes the outbound operations. The Engine itself is single-threaded;
// the Client serializes access so outbound calls may come from a different
// goroutine than Run.
type Client struct {
	conn         net.Conn
	engine       *Engine
	decompressor Decompressor
	logger       *slog.Logger

	mu sync.Mutex
}

func NewClient(conn net.Conn, config Config) (*Client, error) {
	engine, err := NewEngine(conn, config)
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		conn:   conn,
		engine: engine,
		logger: logger,
	}, nil
}

// Engine returns the underlying protocol engine. Direct use must happen on
// the goroutine running Run, or while it is not running.
func (c *Client) Engine() *Engine {
	return c.engine
}

// Run reads from the connection until it closes, the context is cancelled,
// or the engine reports a fatal protocol error. Cancelling the context
// closes the connection to unwind the blocking read.
func (c *Client) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = c.conn.Close()
	})
	defer stop()

	buf := make([]byte, readBufferSize)
	for {
		var src io.Reader = c.conn
		if c.decompressor.Active() {
			src = &c.decompressor
		}

		n, err := src.Read(buf)
		if n > 0 {
			if perr := c.receive(buf[:n]); perr != nil {
				return perr
			}
		}

		if err != nil {
			if ctx.Err() != nil {
				if errors.Is(ctx.Err(), context.Canceled) {
					return nil
				}
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
	}
}

func (c *Client) receive(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rest, err := c.engine.Receive(data)
	if err != nil {
		return err
	}
	if rest == nil {
		return nil
	}

	// The remote switched to compressed mode mid-delivery. Everything we
	// already read past the switch belongs to the zlib stream, as does all
	// further transport input. The read buffer is reused, so the leftover
	// must be copied.
	c.logger.Debug("compression started", "leftover", len(rest))
	leftover := bytes.Clone(rest)
	return c.decompressor.Begin(io.MultiReader(bytes.NewReader(leftover), c.conn))
}

// Send transmits application data, escaping as needed. goAhead marks the
// end of a line/turn in half-duplex style.
func (c *Client) Send(data []byte, goAhead bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.Submit(data, goAhead)
}

// SendGMCP transmits a GMCP message.
func (c *Client) SendGMCP(msg GMCPMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.SendGMCP(msg)
}

// SetWindowSize records the local window dimensions, announcing them when
// NAWS is active.
func (c *Client) SetWindowSize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.SetWindowSize(width, height)
}

// Reset restores the protocol session to its initial state, releasing the
// decompression stream. Used on reconnect.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.decompressor.End()
	c.engine.Reset()
}

// Close resets the session and closes the connection.
func (c *Client) Close() error {
	c.Reset()
	return c.conn.Close()
}
