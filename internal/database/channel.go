package database

import (
	"github.com/thereayou/teamchat/internal/models"
)

func (d *Database) CreateChannel(channel *models.Channel) error {
	return d.db.Create(channel).Error
}

func (d *Database) GetChannel(id string) (*models.Channel, error) {
	var channel models.Channel
	err := d.db.
		Preload("CreatedBy").
		Preload("Members").
		First(&channel, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

func (d *Database) FindChannelByName(name string) (*models.Channel, error) {
	var channel models.Channel
	if err := d.db.Where("name = ?", name).First(&channel).Error; err != nil {
		return nil, err
	}
	return &channel, nil
}

func (d *Database) ListChannels() ([]models.Channel, error) {
	var channels []models.Channel
	err := d.db.
		Preload("CreatedBy").
		Preload("Members").
		Order("created_at ASC").
		Find(&channels).Error
	return channels, err
}

// AddChannelMember идемпотентен: Append по many2many делает INSERT ... ON CONFLICT DO NOTHING,
// повторное добавление не создаёт дубликата
func (d *Database) AddChannelMember(channelID, userID string) error {
	var user models.User
	var channel models.Channel

	if err := d.db.First(&channel, "id = ?", channelID).Error; err != nil {
		return err
	}

	if err := d.db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	return d.db.Model(&channel).Association("Members").Append(&user)
}

// RemoveChannelMember идемпотентен: удаление отсутствующего участника — no-op
func (d *Database) RemoveChannelMember(channelID, userID string) error {
	var user models.User
	var channel models.Channel

	if err := d.db.First(&channel, "id = ?", channelID).Error; err != nil {
		return err
	}

	if err := d.db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	return d.db.Model(&channel).Association("Members").Delete(&user)
}
