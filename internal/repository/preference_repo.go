package repository

import (
	"errors"

	"lokalhunt/internal/models"

	"gorm.io/gorm"
)

type PreferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// GetByUserID returns the user's preference row, ErrNotFound if none exists.
// Callers fall back to models.DefaultPreferences on ErrNotFound.
func (r *PreferenceRepository) GetByUserID(userID uint) (*models.UserNotificationPreference, error) {
	var p models.UserNotificationPreference
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// PreferencePatch carries the fields of a partial preference update. Nil
// fields keep their prior (or default) value.
type PreferencePatch struct {
	PushNotifications   *bool `json:"pushNotifications"`
	EmailNotifications  *bool `json:"emailNotifications"`
	SMSNotifications    *bool `json:"smsNotifications"`
	JobAlerts           *bool `json:"jobAlerts"`
	ApplicationUpdates  *bool `json:"applicationUpdates"`
	InterviewReminders  *bool `json:"interviewReminders"`
	ProfileUpdates      *bool `json:"profileUpdates"`
	SystemNotifications *bool `json:"systemNotifications"`
	PromotionalOffers   *bool `json:"promotionalOffers"`
}

func (p *PreferencePatch) applyTo(prefs *models.UserNotificationPreference) {
	if p.PushNotifications != nil {
		prefs.PushNotifications = *p.PushNotifications
	}
	if p.EmailNotifications != nil {
		prefs.EmailNotifications = *p.EmailNotifications
	}
	if p.SMSNotifications != nil {
		prefs.SMSNotifications = *p.SMSNotifications
	}
	if p.JobAlerts != nil {
		prefs.JobAlerts = *p.JobAlerts
	}
	if p.ApplicationUpdates != nil {
		prefs.ApplicationUpdates = *p.ApplicationUpdates
	}
	if p.InterviewReminders != nil {
		prefs.InterviewReminders = *p.InterviewReminders
	}
	if p.ProfileUpdates != nil {
		prefs.ProfileUpdates = *p.ProfileUpdates
	}
	if p.SystemNotifications != nil {
		prefs.SystemNotifications = *p.SystemNotifications
	}
	if p.PromotionalOffers != nil {
		prefs.PromotionalOffers = *p.PromotionalOffers
	}
}

// Upsert applies a partial patch. The row is created lazily on first update,
// starting from the defaults; unspecified fields are never overwritten.
func (r *PreferenceRepository) Upsert(userID uint, patch *PreferencePatch) (*models.UserNotificationPreference, error) {
	prefs, err := r.GetByUserID(userID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		prefs = models.DefaultPreferences(userID)
	}
	patch.applyTo(prefs)
	if err := r.db.Save(prefs).Error; err != nil {
		return nil, err
	}
	return prefs, nil
}
