package models

import "time"

// DailyNotificationTracker counts sends per (user, type, calendar day).
// Day boundaries are UTC: Date is always midnight UTC, so the passage of the
// day rolls the composite key over and no reset job is needed.
type DailyNotificationTracker struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;uniqueIndex:idx_tracker_user_type_day" json:"user_id"`
	NotificationType string    `gorm:"size:50;not null;uniqueIndex:idx_tracker_user_type_day" json:"notification_type"`
	Date             time.Time `gorm:"not null;uniqueIndex:idx_tracker_user_type_day" json:"date"`
	Count            int       `gorm:"not null;default:0" json:"count"`
}

func (DailyNotificationTracker) TableName() string {
	return "daily_notification_trackers"
}

// DayUTC truncates t to its UTC calendar day.
func DayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
