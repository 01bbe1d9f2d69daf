package repository

import (
	"errors"
	"time"

	"lokalhunt/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TrackerRepository struct {
	db *gorm.DB
}

func NewTrackerRepository(db *gorm.DB) *TrackerRepository {
	return &TrackerRepository{db: db}
}

// Count returns the send count for (user, type) on the UTC day containing at.
// A missing row counts as zero.
func (r *TrackerRepository) Count(userID uint, notifType string, at time.Time) (int, error) {
	var t models.DailyNotificationTracker
	err := r.db.Where("user_id = ? AND notification_type = ? AND date = ?",
		userID, notifType, models.DayUTC(at)).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return t.Count, nil
}

// Increment bumps the counter for (user, type, day) by one, creating the row
// with count=1 if absent. The upsert is a single atomic statement so
// concurrent dispatches cannot lose updates.
func (r *TrackerRepository) Increment(userID uint, notifType string, at time.Time) error {
	t := models.DailyNotificationTracker{
		UserID:           userID,
		NotificationType: notifType,
		Date:             models.DayUTC(at),
		Count:            1,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "notification_type"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("count + 1")}),
	}).Create(&t).Error
}
