package models

import (
	"time"

	"lokalhunt/internal/domain"

	"gorm.io/gorm"
)

// Notification is the persisted in-app record for a dispatch. It is written
// on every dispatch once template rendering succeeds, regardless of whether
// push delivery happens.
type Notification struct {
	ID        uint                    `gorm:"primaryKey" json:"id"`
	UserID    uint                    `gorm:"not null;index" json:"user_id"`
	Type      domain.NotificationType `gorm:"size:50;not null;index" json:"type"`
	Title     string                  `gorm:"size:255" json:"title"`
	Message   string                  `gorm:"type:text" json:"message"`
	Data      string                  `gorm:"type:text" json:"data"` // JSON payload (substitution variables)
	Read      bool                    `gorm:"not null;default:false;index" json:"read"`
	ReadAt    *time.Time              `json:"read_at,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
	DeletedAt gorm.DeletedAt          `gorm:"index" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}
