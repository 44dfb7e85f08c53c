package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thereayou/teamchat/internal/apperr"
	"github.com/thereayou/teamchat/internal/database"
	"github.com/thereayou/teamchat/internal/handlers/dto"
	"github.com/thereayou/teamchat/internal/middleware"
	"github.com/thereayou/teamchat/internal/models"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

type MessageHandler struct {
	db *database.Database
}

func NewMessageHandler(db *database.Database) *MessageHandler {
	return &MessageHandler{db: db}
}

// GetMessages отдаёт страницу истории канала в хронологическом порядке.
// page/limit по умолчанию 1/20, limit ограничен сверху
func (h *MessageHandler) GetMessages(c *gin.Context) {
	channelID := c.Param("channelId")

	page := defaultPage
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}

	limit := defaultLimit
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		limit = l
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	messages, err := h.db.GetChannelMessages(channelID, page, limit)
	if err != nil {
		apperr.JSON(c, apperr.Internal(err))
		return
	}

	result := make([]dto.MessageResponse, len(messages))
	for i := range messages {
		result[i] = dto.NewMessageResponse(&messages[i])
	}

	c.JSON(http.StatusOK, dto.MessagePage{
		Page:     page,
		Limit:    limit,
		Count:    len(result),
		Messages: result,
	})
}

// DeleteMessage выполняет мягкое удаление, доступно только отправителю
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	user := c.MustGet(middleware.UserKey).(*models.User)

	if _, err := softDeleteMessage(h.db, c.Param("messageId"), user.ID); err != nil {
		apperr.JSON(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}

// softDeleteMessage — общий путь удаления для REST и websocket-события.
// Возвращает сообщение в состоянии до удаления (нужен channelId для рассылки)
func softDeleteMessage(db *database.Database, messageID string, requesterID uuid.UUID) (*models.Message, error) {
	msg, err := db.GetMessage(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Message not found")
		}
		return nil, apperr.Internal(err)
	}

	if msg.SenderID != requesterID {
		return nil, apperr.Authorization("Not allowed")
	}

	if err := db.SoftDeleteMessage(messageID, time.Now()); err != nil {
		return nil, apperr.Internal(err)
	}

	return msg, nil
}
