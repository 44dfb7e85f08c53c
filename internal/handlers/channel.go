package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/teamchat/internal/apperr"
	"github.com/thereayou/teamchat/internal/database"
	"github.com/thereayou/teamchat/internal/handlers/dto"
	"github.com/thereayou/teamchat/internal/middleware"
	"github.com/thereayou/teamchat/internal/models"
)

type ChannelHandler struct {
	db *database.Database
}

func NewChannelHandler(db *database.Database) *ChannelHandler {
	return &ChannelHandler{db: db}
}

// CreateChannel создаёт канал, создатель становится первым участником
func (h *ChannelHandler) CreateChannel(c *gin.Context) {
	user := c.MustGet(middleware.UserKey).(*models.User)

	var req dto.CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		apperr.JSON(c, apperr.Validation("Name is required"))
		return
	}

	if existing, _ := h.db.FindChannelByName(req.Name); existing != nil {
		apperr.JSON(c, apperr.Conflict("Channel name already exists"))
		return
	}

	channel := &models.Channel{
		Name:        req.Name,
		Description: req.Description,
		CreatedByID: user.ID,
		Members:     []models.User{*user},
	}

	if err := h.db.CreateChannel(channel); err != nil {
		apperr.JSON(c, apperr.Internal(err))
		return
	}

	full, err := h.db.GetChannel(channel.ID.String())
	if err != nil {
		apperr.JSON(c, apperr.Internal(err))
		return
	}

	c.JSON(http.StatusCreated, dto.NewChannelResponse(full))
}

func (h *ChannelHandler) GetChannels(c *gin.Context) {
	channels, err := h.db.ListChannels()
	if err != nil {
		apperr.JSON(c, apperr.Internal(err))
		return
	}

	result := make([]dto.ChannelResponse, len(channels))
	for i := range channels {
		result[i] = dto.NewChannelResponse(&channels[i])
	}

	c.JSON(http.StatusOK, result)
}

// JoinChannel идемпотентен: повторное вступление не меняет состав участников
func (h *ChannelHandler) JoinChannel(c *gin.Context) {
	user := c.MustGet(middleware.UserKey).(*models.User)
	channelID := c.Param("id")

	channel, err := h.db.GetChannel(channelID)
	if err != nil {
		apperr.JSON(c, apperr.NotFound("Channel not found"))
		return
	}

	if !channel.HasMember(user.ID) {
		if err := h.db.AddChannelMember(channelID, user.ID.String()); err != nil {
			apperr.JSON(c, apperr.Internal(err))
			return
		}
		channel, err = h.db.GetChannel(channelID)
		if err != nil {
			apperr.JSON(c, apperr.Internal(err))
			return
		}
	}

	c.JSON(http.StatusOK, dto.ChannelActionResponse{
		Message: "Joined channel",
		Channel: dto.NewChannelResponse(channel),
	})
}

// LeaveChannel идемпотентен: выход не-участника — успешный no-op
func (h *ChannelHandler) LeaveChannel(c *gin.Context) {
	user := c.MustGet(middleware.UserKey).(*models.User)
	channelID := c.Param("id")

	channel, err := h.db.GetChannel(channelID)
	if err != nil {
		apperr.JSON(c, apperr.NotFound("Channel not found"))
		return
	}

	if channel.HasMember(user.ID) {
		if err := h.db.RemoveChannelMember(channelID, user.ID.String()); err != nil {
			apperr.JSON(c, apperr.Internal(err))
			return
		}
		channel, err = h.db.GetChannel(channelID)
		if err != nil {
			apperr.JSON(c, apperr.Internal(err))
			return
		}
	}

	c.JSON(http.StatusOK, dto.ChannelActionResponse{
		Message: "Left channel",
		Channel: dto.NewChannelResponse(channel),
	})
}
