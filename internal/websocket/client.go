package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second

	pongWait = 60 * time.Second

	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 512 * 1024 // 512KB
)

// EventHandler обрабатывает доменные события (send-message, delete-message)
type EventHandler interface {
	HandleEvent(client *Client, env *Envelope) error
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID) *Client {
	return &Client{
		ID:       uuid.New(),
		UserID:   userID,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		Channels: make(map[uuid.UUID]bool),
		Hub:      hub,
	}
}

// ReadPump читает кадры от клиента; join/leave обрабатываются на месте,
// остальное уходит в EventHandler
func (c *Client) ReadPump(handler EventHandler) {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var env Envelope
		err := c.Conn.ReadJSON(&env)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error: %v", err)
			}
			break
		}

		switch env.Event {
		case EventJoinChannel:
			var payload ChannelPayload
			if err := json.Unmarshal(env.Data, &payload); err == nil && payload.ChannelID != uuid.Nil {
				c.Hub.JoinChannel(c, payload.ChannelID)
			}
			continue

		case EventLeaveChannel:
			var payload ChannelPayload
			if err := json.Unmarshal(env.Data, &payload); err == nil && payload.ChannelID != uuid.Nil {
				c.Hub.LeaveChannel(c, payload.ChannelID)
			}
			continue
		}

		if handler != nil {
			if err := handler.HandleEvent(c, &env); err != nil {
				log.Printf("error handling %s event: %v", env.Event, err)
				c.SendError(err.Error())
			}
		}
	}
}

// WritePump отправляет кадры клиенту и пингует соединение
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub закрыл канал
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			c.Conn.WriteMessage(websocket.TextMessage, message)

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) SendEvent(event string, data interface{}) error {
	msg, err := MarshalEvent(event, data)
	if err != nil {
		return err
	}

	select {
	case c.Send <- msg:
		return nil
	default:
		return ErrClientQueueFull
	}
}

func (c *Client) SendError(errorMsg string) {
	c.SendEvent(EventError, map[string]string{"message": errorMsg})
}

func (c *Client) IsSubscribed(channelID uuid.UUID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Channels[channelID]
}
