package server

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Connection wraps a websocket with a write lock so hand events and action
// requests can be sent from different goroutines.
type Connection struct {
	ws     *websocket.Conn
	logger *log.Logger

	writeMu sync.Mutex
	player  string
}

// NewConnection wraps an upgraded websocket.
func NewConnection(ws *websocket.Conn, logger *log.Logger) *Connection {
	return &Connection{ws: ws, logger: logger}
}

// Player returns the player name announced on join, or "".
func (c *Connection) Player() string { return c.player }

// SetPlayer records the player name after a successful join.
func (c *Connection) SetPlayer(name string) { c.player = name }

// Send writes a message to the client.
func (c *Connection) Send(msg *Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteJSON(msg)
}

// Read blocks for the next client message.
func (c *Connection) Read() (*Message, error) {
	var msg Message
	if err := c.ws.ReadJSON(&msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SendError reports a protocol error to the client. Send failures are only
// logged; an unreachable client is handled by the read loop.
func (c *Connection) SendError(code, message string) {
	msg, err := NewMessage(MessageTypeError, ErrorData{Code: code, Message: message})
	if err != nil {
		return
	}
	if err := c.Send(msg); err != nil {
		c.logger.Debug("failed to send error", "code", code, "error", err)
	}
}

// Close closes the underlying websocket.
func (c *Connection) Close() error {
	return c.ws.Close()
}
