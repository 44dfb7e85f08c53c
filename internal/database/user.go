package database

import (
	"github.com/google/uuid"

	"github.com/thereayou/teamchat/internal/models"
)

func (d *Database) SaveUser(user *models.User) error {
	return d.db.Create(user).Error
}

func (d *Database) GetUser(id string) (*models.User, error) {
	user := models.User{}
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByEmail(email string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SetUserOnline выставляет флаг присутствия, вызывается шлюзом на connect/disconnect
func (d *Database) SetUserOnline(id uuid.UUID, online bool) error {
	return d.db.Model(&models.User{}).Where("id = ?", id).Update("online", online).Error
}
