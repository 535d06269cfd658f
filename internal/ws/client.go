package ws

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

const sendBufferSize = 32

// Client wraps one websocket connection behind a buffered send channel so
// that a slow reader never blocks the session that is broadcasting to it.
// The write pump is the only goroutine that writes to the socket.
type Client struct {
	conn *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// Send enqueues a frame for the write pump. If the buffer is full the
// frame is dropped rather than blocking the broadcaster.
func (c *Client) Send(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("ws: send buffer full, dropping frame")
	}
}

// Close stops the write pump. Safe to call more than once; Send after
// Close is a no-op.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// WritePump drains the send channel onto the socket until Close is called
// or the connection fails. Run it in its own goroutine.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
