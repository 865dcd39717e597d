package websocket

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const sendBufferSize = 16

// Message is the bidirectional event envelope of the socket channel.
type Message struct {
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// Client wraps one live websocket connection. Outbound messages go
// through a buffered channel drained by writePump, so Send never blocks
// event processing; a peer that cannot keep up loses messages instead.
type Client struct {
	id     string
	logger *slog.Logger
	conn   *websocket.Conn

	send chan Message
	done chan struct{}

	closeOnce sync.Once
}

func newClient(logger *slog.Logger, conn *websocket.Conn) *Client {
	return &Client{
		id:     uuid.NewString(),
		logger: logger,
		conn:   conn,
		send:   make(chan Message, sendBufferSize),
		done:   make(chan struct{}),
	}
}

func (that *Client) ID() string { return that.id }

func (that *Client) Send(event string, payload any) {
	msg := Message{Event: event, Payload: payload}

	select {
	case <-that.done:
	case that.send <- msg:
	default:
		that.logger.Warn("send buffer full, dropping message", "connID", that.id, "event", event)
	}
}

func (that *Client) Alive() bool {
	select {
	case <-that.done:
		return false
	default:
		return true
	}
}

func (that *Client) close() {
	that.closeOnce.Do(func() {
		close(that.done)
		if err := that.conn.Close(); err != nil {
			that.logger.Debug("failed to close connection", "connID", that.id, "error", err)
		}
	})
}

func (that *Client) writePump() {
	defer that.close()

	for {
		select {
		case <-that.done:
			return
		case msg := <-that.send:
			if err := that.conn.WriteJSON(msg); err != nil {
				that.logger.Debug("failed to write message", "connID", that.id, "error", err)
				return
			}
		}
	}
}
