package models

import "time"

// UserNotificationPreference holds per-user opt-in flags. A missing row means
// default-allow: the gate treats the absent user as DefaultPreferences().
// PushNotifications=false suppresses all push delivery regardless of the
// per-category flags.
type UserNotificationPreference struct {
	ID     uint `gorm:"primaryKey" json:"-"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	PushNotifications  bool `gorm:"not null;default:true" json:"pushNotifications"`
	EmailNotifications bool `gorm:"not null;default:true" json:"emailNotifications"`
	SMSNotifications   bool `gorm:"not null;default:false" json:"smsNotifications"`

	JobAlerts           bool `gorm:"not null;default:true" json:"jobAlerts"`
	ApplicationUpdates  bool `gorm:"not null;default:true" json:"applicationUpdates"`
	InterviewReminders  bool `gorm:"not null;default:true" json:"interviewReminders"`
	ProfileUpdates      bool `gorm:"not null;default:true" json:"profileUpdates"`
	SystemNotifications bool `gorm:"not null;default:true" json:"systemNotifications"`
	PromotionalOffers   bool `gorm:"not null;default:true" json:"promotionalOffers"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (UserNotificationPreference) TableName() string {
	return "user_notification_preferences"
}

// DefaultPreferences returns the implied preferences for a user with no row.
func DefaultPreferences(userID uint) *UserNotificationPreference {
	return &UserNotificationPreference{
		UserID:              userID,
		PushNotifications:   true,
		EmailNotifications:  true,
		SMSNotifications:    false,
		JobAlerts:           true,
		ApplicationUpdates:  true,
		InterviewReminders:  true,
		ProfileUpdates:      true,
		SystemNotifications: true,
		PromotionalOffers:   true,
	}
}

// CategoryEnabled maps a preference-category name to its flag. Unknown
// categories (including the empty one) are enabled.
func (p *UserNotificationPreference) CategoryEnabled(category string) bool {
	switch category {
	case "jobAlerts":
		return p.JobAlerts
	case "applicationUpdates":
		return p.ApplicationUpdates
	case "interviewReminders":
		return p.InterviewReminders
	case "profileUpdates":
		return p.ProfileUpdates
	case "systemNotifications":
		return p.SystemNotifications
	case "promotionalOffers":
		return p.PromotionalOffers
	default:
		return true
	}
}
