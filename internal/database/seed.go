package database

import (
	"lokalhunt/internal/models"
	"lokalhunt/internal/repository"

	"gorm.io/gorm"
)

// defaultTemplates is the notification template catalog. Seeding upserts by
// type, so edits here land on restart without duplicating rows.
var defaultTemplates = []models.NotificationTemplate{
	// Candidate notifications
	{
		Type:        "WELCOME",
		Title:       "Welcome to LokalHunt! 🎉",
		Body:        "Hi {candidateName}! Your push notifications are now active. We'll keep you updated on new job opportunities!",
		Variables:   `["candidateName"]`,
		Description: "Welcome notification sent to new candidates",
	},
	{
		Type:        "JOB_ALERT",
		Title:       "New job alert: {jobTitle}",
		Body:        "New {jobTitle} position at {companyName} in {location}. Salary: {salary}. Apply now!",
		Variables:   `["jobTitle","companyName","location","salary"]`,
		Description: "Job matching candidate preferences",
	},
	{
		Type:        "APPLICATION_UPDATE",
		Title:       "Application update",
		Body:        "Your application for {jobTitle} at {companyName} has been {status}.",
		Variables:   `["jobTitle","companyName","status"]`,
		Description: "Application status changes",
	},
	{
		Type:        "PROFILE_VIEWED",
		Title:       "Profile viewed",
		Body:        "{companyName} viewed your profile. Increase your visibility by updating your skills and experience!",
		Variables:   `["companyName"]`,
		Description: "When employer views candidate profile",
	},
	{
		Type:        "JOB_CLOSED",
		Title:       "Job Application Closed",
		Body:        "The job \"{jobTitle}\" at {companyName} has been closed. Thank you for your interest!",
		Variables:   `["jobTitle","companyName"]`,
		Description: "When a job a candidate applied to is closed",
	},

	// Employer notifications
	{
		Type:        "NEW_APPLICATION",
		Title:       "New application received",
		Body:        "{candidateName} applied for {jobTitle}. Review their profile and take action.",
		Variables:   `["candidateName","jobTitle"]`,
		Description: "When candidate applies for a job",
	},
	{
		Type:        "JOB_APPROVED",
		Title:       "Job Ad Approved! ✅",
		Body:        "Great news! Your job posting \"{jobTitle}\" has been approved and is now live on LokalHunt. Start receiving applications!",
		Variables:   `["jobTitle","adId"]`,
		Description: "When branch admin approves a job ad",
	},
	{
		Type:        "JOB_REJECTED",
		Title:       "Job Ad Needs Review ❌",
		Body:        "Your job posting \"{jobTitle}\" requires some changes. Reason: {reason}. Please edit and resubmit.",
		Variables:   `["jobTitle","adId","reason"]`,
		Description: "When branch admin rejects a job ad",
	},
	{
		Type:        "JOB_VIEW_MILESTONE",
		Title:       "Job milestone reached! 🎯",
		Body:        "Your job \"{jobTitle}\" has reached {viewCount} views! Keep promoting to get more applications.",
		Variables:   `["jobTitle","viewCount"]`,
		Description: "Job view count milestones (10, 25, 50, 100)",
	},
	{
		Type:        "JOB_BOOKMARKED",
		Title:       "Job bookmarked",
		Body:        "{candidateName} bookmarked your job: {jobTitle}. They might apply soon!",
		Variables:   `["candidateName","jobTitle"]`,
		Description: "When candidate bookmarks a job",
	},
	{
		Type:        "JOB_VIEWED",
		Title:       "Job Viewed",
		Body:        "{candidateName} viewed your job posting: {jobTitle}",
		Variables:   `["candidateName","jobTitle","companyName"]`,
		Description: "When a candidate views a job posting",
	},

	// Branch admin notifications
	{
		Type:        "ADMIN_ALERT",
		Title:       "Admin Alert",
		Body:        "System alert: {message}",
		Variables:   `["message"]`,
		Description: "General admin system alerts",
	},
	{
		Type:        "NEW_EMPLOYER_REGISTERED",
		Title:       "New Employer Registration 🏢",
		Body:        "{employerName} ({employerEmail}) from {companyName} has registered in your city. Please review their profile.",
		Variables:   `["employerName","employerEmail","companyName"]`,
		Description: "When a new employer registers in the admin's city",
	},
	{
		Type:        "NEW_CANDIDATE_REGISTERED",
		Title:       "New Candidate Registration 👤",
		Body:        "{candidateName} ({candidateEmail}) has registered as a job seeker in your city.",
		Variables:   `["candidateName","candidateEmail"]`,
		Description: "When a new candidate registers in the admin's city",
	},
	{
		Type:        "NEW_AD_SUBMITTED",
		Title:       "New Job Ad Submitted ✍️",
		Body:        "{employerName} from {companyName} submitted \"{jobTitle}\" for approval. Please review the job posting.",
		Variables:   `["employerName","companyName","jobTitle","adId"]`,
		Description: "When employer submits a new job ad for approval",
	},

	// System
	{
		Type:        "SYSTEM",
		Title:       "System notification",
		Body:        "{message}",
		Variables:   `["message"]`,
		Description: "General system notifications",
	},
	{
		Type:        "TEST",
		Title:       "Test notification",
		Body:        "This is a test notification to verify your push notification setup is working correctly.",
		Variables:   `[]`,
		Description: "Test notifications for verification",
	},
}

// SeedNotificationTemplates upserts the default template catalog.
func SeedNotificationTemplates(db *gorm.DB) error {
	repo := repository.NewTemplateRepository(db)
	for i := range defaultTemplates {
		t := defaultTemplates[i]
		t.IsActive = true
		if err := repo.Upsert(&t); err != nil {
			return err
		}
	}
	return nil
}
