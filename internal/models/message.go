package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message никогда не удаляется физически: при удалении очищается текст
// и выставляются Deleted/DeletedAt.
type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChannelID uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderID  uuid.UUID `gorm:"type:uuid;not null"`
	Text      string
	Deleted   bool `gorm:"default:false"`
	DeletedAt *time.Time
	CreatedAt time.Time

	// Связи
	Sender  User    `gorm:"foreignKey:SenderID"`
	Channel Channel `gorm:"foreignKey:ChannelID"`
}

func (m *Message) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
