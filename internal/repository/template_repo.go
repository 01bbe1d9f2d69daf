package repository

import (
	"errors"

	"lokalhunt/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// GetActiveByType returns the active template for a type, ErrNotFound if no
// active template matches.
func (r *TemplateRepository) GetActiveByType(notifType string) (*models.NotificationTemplate, error) {
	var t models.NotificationTemplate
	err := r.db.Where("type = ? AND is_active = ?", notifType, true).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Upsert creates the template or refreshes an existing row for the same type.
// Used by seeding.
func (r *TemplateRepository) Upsert(t *models.NotificationTemplate) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "type"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "body", "variables", "description", "is_active",
		}),
	}).Create(t).Error
}
