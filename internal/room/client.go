package room

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"github.com/harlowdev/imposter-arena/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 32 * 1024
)

// Client is one live connection, bridging the gorilla/websocket transport
// to the Hub/Room command channels. Structured as a ReadPump/WritePump
// pair, same shape as internal/websocket/client.go.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	session *domain.Session

	displayName string
	avatarTag   string

	room *Room

	handler *CommandHandler
}

// NewClient wraps one live connection around a domain.Session, binding
// userID (or "" for a guest) exactly once per the immutable-auth-binding
// rule: a session's identity never changes after the handshake.
func NewClient(hub *Hub, conn *websocket.Conn, sessionID, userID string, isAnonymous bool) *Client {
	session := domain.NewSession(sessionID)
	if !isAnonymous {
		session.BindUser(userID)
	} else {
		session.BindUser("")
	}

	return &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, 256),
		session: session,
		handler: NewCommandHandler(hub),
	}
}

func (c *Client) SessionID() string { return c.session.SessionID }
func (c *Client) UserID() string    { return c.session.UserID() }
func (c *Client) IsAnonymous() bool { return c.session.IsAnonymous() }

func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError(ErrInvalidPayload.Error())
			continue
		}

		c.handler.Handle(c, &msg)
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)
			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) sendError(code string) {
	msg, _ := NewMessage(MessageTypeError, ErrorPayload{Code: code})
	c.Send(msg)
}

func (c *Client) sendFriendError(code, message string) {
	msg, _ := NewMessage(MessageTypeFriendError, FriendErrorPayload{Code: code, Message: message})
	c.Send(msg)
}

// Send marshals and enqueues msg on this client's write channel. It
// recovers from sending on a closed channel so a disconnect race never
// panics the caller's goroutine.
func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("room: failed to marshal message: %v", err)
		return
	}

	defer func() {
		recover()
	}()

	select {
	case c.send <- data:
	default:
		// buffer full, drop rather than block the room's event loop
	}
}

// Close closes the client's send channel, unblocking WritePump.
func (c *Client) Close() {
	defer func() {
		recover()
	}()
	close(c.send)
}
