package handler

import (
	"errors"
	"net/http"
	"strconv"

	"lokalhunt/internal/domain"
	"lokalhunt/internal/middleware"
	"lokalhunt/internal/models"
	"lokalhunt/internal/repository"
	"lokalhunt/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JobHandler exposes the job-ad lifecycle endpoints that drive the
// notification triggers: submission, approval/rejection, application,
// application status, and closure. Dispatch failures never fail the
// underlying business action.
type JobHandler struct {
	jobs       *repository.JobRepository
	users      *repository.UserRepository
	dispatcher *service.DispatchService
	log        *zap.Logger
}

func NewJobHandler(jobs *repository.JobRepository, users *repository.UserRepository, dispatcher *service.DispatchService, log *zap.Logger) *JobHandler {
	return &JobHandler{jobs: jobs, users: users, dispatcher: dispatcher, log: log}
}

type createJobRequest struct {
	Title       string `json:"title" binding:"required"`
	City        string `json:"city" binding:"required"`
	Industry    string `json:"industry"`
	Salary      string `json:"salary"`
	Description string `json:"description"`
}

// Create submits a job ad for approval and notifies the branch admins of
// the ad's city.
func (h *JobHandler) Create(c *gin.Context) {
	employerID := middleware.GetUserID(c)
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and city are required"})
		return
	}
	employer, err := h.users.GetByID(employerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employer not found"})
		return
	}
	ad := &models.JobAd{
		EmployerID:  employerID,
		Title:       req.Title,
		CompanyName: employer.CompanyName,
		City:        req.City,
		Industry:    req.Industry,
		Salary:      req.Salary,
		Description: req.Description,
		Status:      domain.AdStatusPendingApproval,
	}
	if err := h.jobs.Create(ad); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}

	if _, err := h.dispatcher.NotifyBranchAdmins(c.Request.Context(), ad.City, domain.NotifNewAdSubmitted, map[string]interface{}{
		"employerName": employer.Name,
		"companyName":  employer.CompanyName,
		"jobTitle":     ad.Title,
		"adId":         ad.ID,
	}); err != nil {
		h.log.Warn("ad submission notification failed", zap.Uint("ad_id", ad.ID), zap.Error(err))
	}

	c.JSON(http.StatusCreated, ad)
}

// Approve publishes an ad, notifies the employer and fans JOB_ALERT out to
// matching candidates. Branch admin only.
func (h *JobHandler) Approve(c *gin.Context) {
	ad, ok := h.loadAd(c)
	if !ok {
		return
	}
	if err := h.jobs.UpdateStatus(ad.ID, domain.AdStatusApproved); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.dispatcher.Dispatch(ctx, ad.EmployerID, domain.NotifJobApproved, map[string]interface{}{
		"jobTitle": ad.Title,
		"adId":     ad.ID,
	}); err != nil {
		h.log.Warn("approval notification failed", zap.Uint("ad_id", ad.ID), zap.Error(err))
	}
	if _, err := h.dispatcher.NotifyJobAlertMatches(ctx, ad); err != nil {
		h.log.Warn("job alert fan-out failed", zap.Uint("ad_id", ad.ID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type rejectJobRequest struct {
	Reason string `json:"reason"`
}

// Reject returns an ad to the employer for changes. Branch admin only.
func (h *JobHandler) Reject(c *gin.Context) {
	ad, ok := h.loadAd(c)
	if !ok {
		return
	}
	var req rejectJobRequest
	_ = c.ShouldBindJSON(&req)
	if err := h.jobs.UpdateStatus(ad.ID, domain.AdStatusRejected); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if _, err := h.dispatcher.Dispatch(c.Request.Context(), ad.EmployerID, domain.NotifJobRejected, map[string]interface{}{
		"jobTitle": ad.Title,
		"adId":     ad.ID,
		"reason":   req.Reason,
	}); err != nil {
		h.log.Warn("rejection notification failed", zap.Uint("ad_id", ad.ID), zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Apply records a candidate application and notifies the employer.
func (h *JobHandler) Apply(c *gin.Context) {
	candidateID := middleware.GetUserID(c)
	ad, ok := h.loadAd(c)
	if !ok {
		return
	}
	if ad.Status != domain.AdStatusApproved {
		c.JSON(http.StatusConflict, gin.H{"error": "job is not open for applications"})
		return
	}
	app := &models.Application{
		AdID:        ad.ID,
		CandidateID: candidateID,
		Status:      domain.ApplicationStatusApplied,
	}
	if err := h.jobs.CreateApplication(app); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "already applied"})
		return
	}

	candidate, err := h.users.GetByID(candidateID)
	if err == nil {
		if _, err := h.dispatcher.Dispatch(c.Request.Context(), ad.EmployerID, domain.NotifNewApplication, map[string]interface{}{
			"candidateName": candidate.Name,
			"jobTitle":      ad.Title,
		}); err != nil {
			h.log.Warn("application notification failed", zap.Uint("ad_id", ad.ID), zap.Error(err))
		}
	}

	c.JSON(http.StatusCreated, app)
}

type applicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateApplicationStatus moves an application through the pipeline and
// notifies the candidate. Employer only.
func (h *JobHandler) UpdateApplicationStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application id"})
		return
	}
	var req applicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}
	app, err := h.jobs.GetApplication(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if app.Ad.EmployerID != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not own this job ad"})
		return
	}
	if err := h.jobs.UpdateApplicationStatus(app.ID, req.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}

	if _, err := h.dispatcher.Dispatch(c.Request.Context(), app.CandidateID, domain.NotifApplicationUpdate, map[string]interface{}{
		"jobTitle":    app.Ad.Title,
		"companyName": app.Ad.CompanyName,
		"status":      req.Status,
	}); err != nil {
		h.log.Warn("application status notification failed", zap.Uint("application_id", app.ID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Close deactivates an ad and notifies every candidate that applied.
func (h *JobHandler) Close(c *gin.Context) {
	ad, ok := h.loadAd(c)
	if !ok {
		return
	}
	if ad.EmployerID != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not own this job ad"})
		return
	}
	if err := h.jobs.UpdateStatus(ad.ID, domain.AdStatusClosed); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}

	applicants, err := h.jobs.ListApplicantIDs(ad.ID)
	if err == nil && len(applicants) > 0 {
		if _, err := h.dispatcher.DispatchToMany(c.Request.Context(), applicants, domain.NotifJobClosed, map[string]interface{}{
			"jobTitle":    ad.Title,
			"companyName": ad.CompanyName,
		}); err != nil {
			h.log.Warn("job closed fan-out failed", zap.Uint("ad_id", ad.ID), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *JobHandler) loadAd(c *gin.Context) (*models.JobAd, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return nil, false
	}
	ad, err := h.jobs.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return nil, false
	}
	return ad, true
}
