package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/thereayou/teamchat/internal/models"
)

type MessageResponse struct {
	ID        uuid.UUID  `json:"_id"`
	Text      string     `json:"text"`
	ChannelID uuid.UUID  `json:"channelId"`
	Sender    UserRef    `json:"sender"`
	Deleted   bool       `json:"deleted,omitempty"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// MessagePage — страница истории; Count == 0 сигнализирует клиенту конец пагинации
type MessagePage struct {
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
	Count    int               `json:"count"`
	Messages []MessageResponse `json:"messages"`
}

// MessageDeletedPayload — данные события message-deleted
type MessageDeletedPayload struct {
	MessageID uuid.UUID `json:"messageId"`
	ChannelID uuid.UUID `json:"channelId"`
}

func NewMessageResponse(msg *models.Message) MessageResponse {
	return MessageResponse{
		ID:        msg.ID,
		Text:      msg.Text,
		ChannelID: msg.ChannelID,
		Sender:    UserRef{ID: msg.Sender.ID, Name: msg.Sender.Name},
		Deleted:   msg.Deleted,
		DeletedAt: msg.DeletedAt,
		CreatedAt: msg.CreatedAt,
	}
}
