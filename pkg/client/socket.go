package client

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Event — кадр realtime-протокола
type Event struct {
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type MessageEvent struct {
	ID        uuid.UUID `json:"_id"`
	Text      string    `json:"text"`
	ChannelID uuid.UUID `json:"channelId"`
	Sender    struct {
		ID   uuid.UUID `json:"_id"`
		Name string    `json:"name"`
	} `json:"sender"`
	CreatedAt time.Time `json:"createdAt"`
}

type PresenceEvent struct {
	UserID uuid.UUID `json:"userId"`
}

// Conn — открытое realtime-соединение
type Conn struct {
	ws *websocket.Conn
}

// Connect открывает websocket-соединение с токеном сессии.
// Без токена соединение не устанавливается
func (c *Client) Connect() (*Conn, error) {
	if c.Token == "" {
		return nil, errors.New("no session token")
	}

	wsURL := strings.Replace(c.BaseURL, "http", "ws", 1) + "/ws?token=" + c.Token

	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return nil, err
	}

	return &Conn{ws: ws}, nil
}

func (c *Conn) JoinChannel(channelID uuid.UUID) error {
	return c.emit("join-channel", map[string]uuid.UUID{"channelId": channelID})
}

func (c *Conn) LeaveChannel(channelID uuid.UUID) error {
	return c.emit("leave-channel", map[string]uuid.UUID{"channelId": channelID})
}

func (c *Conn) SendMessage(channelID uuid.UUID, text string) error {
	return c.emit("send-message", map[string]interface{}{
		"channelId": channelID,
		"text":      text,
	})
}

func (c *Conn) DeleteMessage(messageID uuid.UUID) error {
	return c.emit("delete-message", map[string]uuid.UUID{"messageId": messageID})
}

// ReadEvent блокируется до следующего события от сервера
func (c *Conn) ReadEvent() (*Event, error) {
	var event Event
	if err := c.ws.ReadJSON(&event); err != nil {
		return nil, err
	}
	return &event, nil
}

// ReadEventTimeout — ReadEvent с дедлайном
func (c *Conn) ReadEventTimeout(timeout time.Duration) (*Event, error) {
	if err := c.ws.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}
	defer c.ws.SetReadDeadline(time.Time{})

	return c.ReadEvent()
}

func (c *Conn) Close() error {
	c.ws.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.ws.Close()
}

func (c *Conn) emit(event string, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.ws.WriteJSON(Event{Event: event, Data: raw, Timestamp: time.Now()})
}
