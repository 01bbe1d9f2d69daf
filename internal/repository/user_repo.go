package repository

import (
	"lokalhunt/internal/domain"
	"lokalhunt/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	err := r.db.First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) UpdateDeviceToken(userID uint, token string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("device_token", token).Error
}

// DeviceToken returns the user's FCM token; empty string if none registered.
func (r *UserRepository) DeviceToken(userID uint) (string, error) {
	var u models.User
	if err := r.db.Select("device_token").First(&u, userID).Error; err != nil {
		return "", err
	}
	return u.DeviceToken, nil
}

// ListWithDeviceTokens returns the subset of the given users that have a
// device token registered.
func (r *UserRepository) ListWithDeviceTokens(userIDs []uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Select("id", "name", "device_token").
		Where("id IN ? AND device_token <> ''", userIDs).
		Find(&users).Error
	return users, err
}

// ListBranchAdminIDs returns the ids of all branch admins responsible for a city.
func (r *UserRepository) ListBranchAdminIDs(city string) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.User{}).
		Where("role = ? AND city = ?", domain.RoleBranchAdmin, city).
		Pluck("id", &ids).Error
	return ids, err
}

// ListCandidates returns all candidate users, used for job-alert targeting.
func (r *UserRepository) ListCandidates() ([]models.User, error) {
	var users []models.User
	err := r.db.Where("role = ?", domain.RoleCandidate).Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdateJobPreferences(userID uint, titles, locations, industries string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"preferred_job_titles": titles,
		"preferred_locations":  locations,
		"preferred_industries": industries,
	}).Error
}
