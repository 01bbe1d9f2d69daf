package repository

import (
	"errors"

	"lokalhunt/internal/models"

	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ad *models.JobAd) error {
	return r.db.Create(ad).Error
}

func (r *JobRepository) GetByID(id uint) (*models.JobAd, error) {
	var ad models.JobAd
	if err := r.db.First(&ad, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ad, nil
}

func (r *JobRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.JobAd{}).Where("id = ?", id).Update("status", status).Error
}

func (r *JobRepository) CreateApplication(app *models.Application) error {
	return r.db.Create(app).Error
}

func (r *JobRepository) GetApplication(id uint) (*models.Application, error) {
	var app models.Application
	if err := r.db.Preload("Ad").First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *JobRepository) UpdateApplicationStatus(id uint, status string) error {
	return r.db.Model(&models.Application{}).Where("id = ?", id).Update("status", status).Error
}

// ListApplicantIDs returns the candidate ids that applied to an ad.
func (r *JobRepository) ListApplicantIDs(adID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Application{}).Where("ad_id = ?", adID).Pluck("candidate_id", &ids).Error
	return ids, err
}
