package repository

import (
	"errors"
	"time"

	"lokalhunt/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepository) CreateMany(ns []models.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.Create(&ns).Error
}

// ListByUserID returns the user's notifications newest-first.
func (r *NotificationRepository) ListByUserID(userID uint, limit, offset int) ([]models.Notification, error) {
	var list []models.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

func (r *NotificationRepository) CountUnread(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND `read` = ?", userID, false).
		Count(&count).Error
	return count, err
}

// getOwned loads a notification and enforces ownership: ErrNotFound if the id
// does not exist, ErrForbidden if it belongs to a different user.
func (r *NotificationRepository) getOwned(id, userID uint) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if n.UserID != userID {
		return nil, ErrForbidden
	}
	return &n, nil
}

func (r *NotificationRepository) MarkRead(id, userID uint) error {
	n, err := r.getOwned(id, userID)
	if err != nil {
		return err
	}
	now := time.Now()
	return r.db.Model(n).Updates(map[string]interface{}{
		"read":    true,
		"read_at": &now,
	}).Error
}

// MarkAllRead marks every notification of the user read. Idempotent.
func (r *NotificationRepository) MarkAllRead(userID uint) error {
	now := time.Now()
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND `read` = ?", userID, false).
		Updates(map[string]interface{}{"read": true, "read_at": &now}).Error
}

func (r *NotificationRepository) Delete(id, userID uint) error {
	n, err := r.getOwned(id, userID)
	if err != nil {
		return err
	}
	return r.db.Delete(n).Error
}
