package database

import (
	"time"

	"github.com/thereayou/teamchat/internal/models"
)

func (d *Database) SaveMessage(message *models.Message) error {
	return d.db.Create(message).Error
}

func (d *Database) GetMessage(id string) (*models.Message, error) {
	var message models.Message
	if err := d.db.Preload("Sender").First(&message, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// SoftDeleteMessage очищает текст и помечает сообщение удалённым одной записью,
// строка остаётся в базе
func (d *Database) SoftDeleteMessage(id string, deletedAt time.Time) error {
	return d.db.Model(&models.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"text":       "",
			"deleted":    true,
			"deleted_at": deletedAt,
		}).Error
}

// GetChannelMessages получает страницу истории: свежие сообщения первыми из базы,
// затем порядок разворачивается в хронологический
func (d *Database) GetChannelMessages(channelID string, page, limit int) ([]models.Message, error) {
	var messages []models.Message

	err := d.db.
		Where("channel_id = ?", channelID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Preload("Sender").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
