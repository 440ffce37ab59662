package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/xde-mcp/zgsm-sub005/internal/retry"
)

// Client dials a host's attach endpoint on behalf of a UI front-end.
// Connection state is a single-owner state machine: at most one connect
// attempt (and its backoff timer) is in flight at a time.
type Client struct {
	url   string
	token string
	cfg   retry.Config

	mu         sync.Mutex
	conn       *websocket.Conn
	connecting bool
	retryCount int
	onMessage  func(json.RawMessage)
	closed     bool
}

// ClientOptions configures a Client.
type ClientOptions struct {
	// URL is the ws:// attach endpoint.
	URL string
	// Token, when non-empty, is presented as a query parameter.
	Token string
	// Retry bounds the reconnect loop; zero values take defaults.
	Retry retry.Config
	// OnMessage receives every relayed extension message.
	OnMessage func(json.RawMessage)
}

// NewClient constructs a Client. Connect must be called before Send.
func NewClient(opts ClientOptions) *Client {
	return &Client{
		url:       opts.URL,
		token:     opts.Token,
		cfg:       opts.Retry,
		onMessage: opts.OnMessage,
	}
}

// Connect dials the endpoint with exponential backoff. Refused or absent
// sockets are retried; authentication rejections are permanent. A second
// Connect while one is in flight is refused.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return errors.New("client closed")
	}
	if c.conn != nil {
		c.mu.Unlock()
		return nil
	}
	if c.connecting {
		c.mu.Unlock()
		return errors.New("connect already in progress")
	}
	c.connecting = true
	c.retryCount = 0
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.connecting = false
		c.mu.Unlock()
	}()

	return retry.Do(ctx, c.cfg, "attach", func(ctx context.Context) error {
		c.mu.Lock()
		c.retryCount++
		c.mu.Unlock()

		dialURL, err := attachURL(c.url, c.token)
		if err != nil {
			return retry.Permanent(err)
		}
		conn, resp, err := websocket.DefaultDialer.DialContext(ctx, dialURL, nil)
		if err != nil {
			if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
				return retry.Permanent(fmt.Errorf("attach rejected: %s", resp.Status))
			}
			return fmt.Errorf("dial %s: %w", c.url, err)
		}

		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			conn.Close()
			return retry.Permanent(errors.New("client closed"))
		}
		c.conn = conn
		c.mu.Unlock()

		go c.readLoop(conn)
		return nil
	})
}

// RetryCount returns the attempts made by the last Connect.
func (c *Client) RetryCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.retryCount
}

// Connected reports whether a live connection exists.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Send relays a message toward the extension.
func (c *Client) Send(message json.RawMessage) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return errors.New("not connected")
	}
	return conn.WriteMessage(websocket.TextMessage, message)
}

// Close tears the connection down. Idempotent.
func (c *Client) Close() error {
	c.mu.Lock()
	c.closed = true
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()
	if conn != nil {
		return conn.Close()
	}
	return nil
}

// attachURL appends the token as an escaped query parameter.
func attachURL(base, token string) (string, error) {
	if token == "" {
		return base, nil
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse attach url %q: %w", base, err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			if c.conn == conn {
				c.conn = nil
			}
			closed := c.closed
			c.mu.Unlock()
			if !closed {
				slog.Debug("attach connection lost", "error", err)
			}
			return
		}
		if c.onMessage != nil {
			c.onMessage(data)
		}
	}
}
