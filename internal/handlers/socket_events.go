package handlers

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"

	"github.com/thereayou/teamchat/internal/database"
	"github.com/thereayou/teamchat/internal/handlers/dto"
	"github.com/thereayou/teamchat/internal/models"
	ws "github.com/thereayou/teamchat/internal/websocket"
)

// SocketEventHandler обрабатывает доменные события realtime-шлюза
type SocketEventHandler struct {
	db  *database.Database
	hub *ws.Hub
}

func NewSocketEventHandler(db *database.Database, hub *ws.Hub) *SocketEventHandler {
	return &SocketEventHandler{db: db, hub: hub}
}

func (h *SocketEventHandler) HandleEvent(client *ws.Client, env *ws.Envelope) error {
	switch env.Event {
	case ws.EventSendMessage:
		return h.handleSendMessage(client, env)

	case ws.EventDeleteMessage:
		return h.handleDeleteMessage(client, env)

	default:
		log.Printf("unknown event type: %s", env.Event)
		return nil
	}
}

// handleSendMessage сохраняет сообщение и рассылает его подписчикам канала.
// Пустой канал или текст — молчаливый no-op, как в исходном шлюзе
func (h *SocketEventHandler) handleSendMessage(client *ws.Client, env *ws.Envelope) error {
	var payload ws.SendMessagePayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return ws.ErrInvalidEvent
	}

	if payload.ChannelID == uuid.Nil || payload.Text == "" {
		return nil
	}

	message := &models.Message{
		ChannelID: payload.ChannelID,
		SenderID:  client.UserID,
		Text:      payload.Text,
	}

	if err := h.db.SaveMessage(message); err != nil {
		log.Printf("failed to save message: %v", err)
		return err
	}

	full, err := h.db.GetMessage(message.ID.String())
	if err != nil {
		log.Printf("failed to load message sender: %v", err)
		return err
	}

	data, err := ws.MarshalEvent(ws.EventReceiveMessage, dto.NewMessageResponse(full))
	if err != nil {
		return err
	}

	h.hub.SendToChannel(payload.ChannelID, data)

	return nil
}

func (h *SocketEventHandler) handleDeleteMessage(client *ws.Client, env *ws.Envelope) error {
	var payload ws.DeleteMessagePayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return ws.ErrInvalidEvent
	}

	msg, err := softDeleteMessage(h.db, payload.MessageID.String(), client.UserID)
	if err != nil {
		return err
	}

	data, err := ws.MarshalEvent(ws.EventMessageDeleted, dto.MessageDeletedPayload{
		MessageID: msg.ID,
		ChannelID: msg.ChannelID,
	})
	if err != nil {
		return err
	}

	h.hub.SendToChannel(msg.ChannelID, data)

	return nil
}
