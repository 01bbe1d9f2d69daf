package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Role         string         `gorm:"size:20;not null;index" json:"role"` // CANDIDATE | EMPLOYER | BRANCH_ADMIN
	City         string         `gorm:"size:128;index" json:"city"`
	CompanyName  string         `gorm:"size:255" json:"company_name,omitempty"`
	DeviceToken  string         `gorm:"size:512" json:"-"` // FCM registration token
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Candidate job-alert targeting attributes, stored comma-separated.
	PreferredJobTitles  string `gorm:"size:512" json:"preferred_job_titles,omitempty"`
	PreferredLocations  string `gorm:"size:512" json:"preferred_locations,omitempty"`
	PreferredIndustries string `gorm:"size:512" json:"preferred_industries,omitempty"`
}

func (u *User) IsCandidate() bool   { return u.Role == "CANDIDATE" }
func (u *User) IsEmployer() bool    { return u.Role == "EMPLOYER" }
func (u *User) IsBranchAdmin() bool { return u.Role == "BRANCH_ADMIN" }

// PreferredTitleList splits the comma-separated preferred titles, trimmed,
// empty entries dropped.
func (u *User) PreferredTitleList() []string { return splitPreferences(u.PreferredJobTitles) }

func (u *User) PreferredLocationList() []string { return splitPreferences(u.PreferredLocations) }

func (u *User) PreferredIndustryList() []string { return splitPreferences(u.PreferredIndustries) }

func splitPreferences(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
