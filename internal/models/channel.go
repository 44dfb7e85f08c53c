package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Channel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description string
	CreatedByID uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Связи
	CreatedBy *User     `gorm:"foreignKey:CreatedByID"`
	Members   []User    `gorm:"many2many:channel_members"`
	Messages  []Message `gorm:"foreignKey:ChannelID"`
}

func (ch *Channel) BeforeCreate(_ *gorm.DB) error {
	if ch.ID == uuid.Nil {
		ch.ID = uuid.New()
	}
	return nil
}

// HasMember проверяет членство по загруженному списку участников
func (ch *Channel) HasMember(userID uuid.UUID) bool {
	for _, m := range ch.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}
