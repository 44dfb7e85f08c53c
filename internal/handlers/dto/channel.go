package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/thereayou/teamchat/internal/models"
)

type CreateChannelRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UserRef — ссылка на пользователя c отображаемым именем
type UserRef struct {
	ID   uuid.UUID `json:"_id"`
	Name string    `json:"name"`
}

type ChannelResponse struct {
	ID          uuid.UUID   `json:"_id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	CreatedBy   *UserRef    `json:"createdBy,omitempty"`
	Members     []uuid.UUID `json:"members"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type ChannelActionResponse struct {
	Message string          `json:"message"`
	Channel ChannelResponse `json:"channel"`
}

func NewChannelResponse(channel *models.Channel) ChannelResponse {
	members := make([]uuid.UUID, len(channel.Members))
	for i, m := range channel.Members {
		members[i] = m.ID
	}

	resp := ChannelResponse{
		ID:          channel.ID,
		Name:        channel.Name,
		Description: channel.Description,
		Members:     members,
		CreatedAt:   channel.CreatedAt,
		UpdatedAt:   channel.UpdatedAt,
	}

	if channel.CreatedBy != nil {
		resp.CreatedBy = &UserRef{ID: channel.CreatedBy.ID, Name: channel.CreatedBy.Name}
	}

	return resp
}
