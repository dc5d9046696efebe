package livefeed

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// ClientCommand is what the browser sends over the socket.
type ClientCommand struct {
	Action string `json:"action"` // "subscribe" | "unsubscribe"
	Topic  string `json:"topic"`
}

type WebSocketClient struct {
	ConnID string
	UserID uuid.UUID
	Role   string
	Conn   *websocket.Conn
	Hub    *Hub
	Send   chan Snapshot
}

func (c *WebSocketClient) GetConnID() string               { return c.ConnID }
func (c *WebSocketClient) GetUserID() uuid.UUID            { return c.UserID }
func (c *WebSocketClient) GetRole() string                 { return c.Role }
func (c *WebSocketClient) GetSendChannel() chan<- Snapshot { return c.Send }

func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

func (c *WebSocketClient) Close() {
	close(c.Send)
}

func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}

		var cmd ClientCommand
		if err := json.Unmarshal(payload, &cmd); err != nil {
			log.Printf("Error decoding command from %s: %v", c.ConnID, err)
			continue
		}

		if !Authorized(c.UserID, c.Role, cmd.Topic) {
			log.Printf("Rejected topic %q for user %s", cmd.Topic, c.UserID)
			continue
		}

		switch cmd.Action {
		case "subscribe":
			c.Hub.Subscribe(c, cmd.Topic)
		case "unsubscribe":
			c.Hub.Unsubscribe(c, cmd.Topic)
		}
	}
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case snap, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteJSON(snap); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
