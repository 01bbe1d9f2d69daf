package handler

import (
	"net/http"

	"lokalhunt/internal/domain"
	"lokalhunt/internal/middleware"
	"lokalhunt/internal/repository"
	"lokalhunt/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MeHandler struct {
	users      *repository.UserRepository
	dispatcher *service.DispatchService
	log        *zap.Logger
}

func NewMeHandler(users *repository.UserRepository, dispatcher *service.DispatchService, log *zap.Logger) *MeHandler {
	return &MeHandler{users: users, dispatcher: dispatcher, log: log}
}

func (h *MeHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.users.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

type deviceTokenRequest struct {
	DeviceToken string `json:"device_token" binding:"required"`
}

// UpdateDeviceToken stores the caller's FCM token. First-time registration
// triggers the welcome dispatch; its failure never fails the update.
func (h *MeHandler) UpdateDeviceToken(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req deviceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_token is required"})
		return
	}
	u, err := h.users.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	firstToken := u.DeviceToken == ""
	if err := h.users.UpdateDeviceToken(userID, req.DeviceToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if firstToken {
		if _, err := h.dispatcher.Dispatch(c.Request.Context(), userID, domain.NotifWelcome, map[string]interface{}{
			"candidateName": u.Name,
		}); err != nil {
			h.log.Warn("welcome dispatch failed", zap.Uint("user_id", userID), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type jobPreferencesRequest struct {
	PreferredJobTitles  string `json:"preferred_job_titles"`
	PreferredLocations  string `json:"preferred_locations"`
	PreferredIndustries string `json:"preferred_industries"`
}

// UpdateJobPreferences stores the candidate's job-alert targeting attributes.
func (h *MeHandler) UpdateJobPreferences(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req jobPreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.users.UpdateJobPreferences(userID, req.PreferredJobTitles, req.PreferredLocations, req.PreferredIndustries); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
