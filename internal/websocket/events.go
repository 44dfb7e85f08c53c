package websocket

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Имена событий — контракт с фронтендом, менять нельзя
const (
	EventJoinChannel    = "join-channel"
	EventLeaveChannel   = "leave-channel"
	EventSendMessage    = "send-message"
	EventDeleteMessage  = "delete-message"
	EventReceiveMessage = "receive-message"
	EventMessageDeleted = "message-deleted"
	EventUserOnline     = "user-online"
	EventUserOffline    = "user-offline"
	EventError          = "error"
)

// Envelope — кадр протокола в обе стороны
type Envelope struct {
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type ChannelPayload struct {
	ChannelID uuid.UUID `json:"channelId"`
}

type SendMessagePayload struct {
	ChannelID uuid.UUID `json:"channelId"`
	Text      string    `json:"text"`
}

type DeleteMessagePayload struct {
	MessageID uuid.UUID `json:"messageId"`
}

type PresencePayload struct {
	UserID uuid.UUID `json:"userId"`
}

func MarshalEvent(event string, data interface{}) ([]byte, error) {
	env := Envelope{
		Event:     event,
		Timestamp: time.Now(),
	}

	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		env.Data = raw
	}

	return json.Marshal(env)
}
