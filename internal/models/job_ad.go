package models

import (
	"time"

	"gorm.io/gorm"
)

type JobAd struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	EmployerID  uint           `gorm:"not null;index" json:"employer_id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	CompanyName string         `gorm:"size:255" json:"company_name"`
	City        string         `gorm:"size:128;index" json:"city"`
	Industry    string         `gorm:"size:128" json:"industry"`
	Salary      string         `gorm:"size:128" json:"salary"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"size:30;not null;index" json:"status"` // DRAFT | PENDING_APPROVAL | APPROVED | REJECTED | CLOSED
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (JobAd) TableName() string {
	return "job_ads"
}

type Application struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AdID        uint      `gorm:"not null;index;uniqueIndex:idx_applications_ad_candidate" json:"ad_id"`
	CandidateID uint      `gorm:"not null;index;uniqueIndex:idx_applications_ad_candidate" json:"candidate_id"`
	Status      string    `gorm:"size:30;not null" json:"status"` // APPLIED | SHORTLISTED | REJECTED | HIRED
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Ad JobAd `gorm:"foreignKey:AdID" json:"-"`
}

func (Application) TableName() string {
	return "applications"
}
