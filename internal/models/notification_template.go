package models

import "time"

// NotificationTemplate holds a named title/body pair with {var} placeholder
// tokens. Managed by administrative seeding; read-only to the dispatcher.
// At most one active template exists per type (unique index on type).
type NotificationTemplate struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Type        string    `gorm:"size:50;uniqueIndex;not null" json:"type"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	Variables   string    `gorm:"type:text" json:"variables"` // JSON array of placeholder names
	Description string    `gorm:"size:255" json:"description"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (NotificationTemplate) TableName() string {
	return "notification_templates"
}
