package handler

import (
	"errors"
	"net/http"
	"strconv"

	"lokalhunt/internal/middleware"
	"lokalhunt/internal/models"
	"lokalhunt/internal/repository"
	"lokalhunt/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	repo       *repository.NotificationRepository
	prefs      *repository.PreferenceRepository
	dispatcher *service.DispatchService
}

func NewNotificationHandler(repo *repository.NotificationRepository, prefs *repository.PreferenceRepository, dispatcher *service.DispatchService) *NotificationHandler {
	return &NotificationHandler{repo: repo, prefs: prefs, dispatcher: dispatcher}
}

// List returns the caller's notifications newest-first plus the unread count.
func (h *NotificationHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	list, err := h.repo.ListByUserID(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	unread, err := h.repo.CountUnread(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list, "unreadCount": unread})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}
	if err := h.repo.MarkRead(uint(id), userID); err != nil {
		h.ownershipError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if err := h.repo.MarkAllRead(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}
	if err := h.repo.Delete(uint(id), userID); err != nil {
		h.ownershipError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *NotificationHandler) ownershipError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
	case errors.Is(err, repository.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not have permission to modify this notification"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
	}
}

// GetPreferences returns the caller's preference row, or the defaults when
// none has been saved yet.
func (h *NotificationHandler) GetPreferences(c *gin.Context) {
	userID := middleware.GetUserID(c)
	p, err := h.prefs.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusOK, models.DefaultPreferences(userID))
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdatePreferences applies a partial patch; unspecified fields keep their
// prior (or default) value.
func (h *NotificationHandler) UpdatePreferences(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var patch repository.PreferencePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p, err := h.prefs.Upsert(userID, &patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, p)
}

type pushRequest struct {
	Title string                 `json:"title" binding:"required"`
	Body  string                 `json:"body" binding:"required"`
	Data  map[string]interface{} `json:"data"`
}

// PushToUser sends a raw push to a specific user. Admin only.
func (h *NotificationHandler) PushToUser(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	var req pushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and body are required"})
		return
	}
	result, err := h.dispatcher.SendDirect(c.Request.Context(), uint(targetID), req.Title, req.Body, req.Data)
	if err != nil {
		h.pushError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message_id": result.MessageID, "timestamp": result.Timestamp})
}

type multiPushRequest struct {
	UserIDs []uint                 `json:"user_ids" binding:"required,min=1"`
	Title   string                 `json:"title" binding:"required"`
	Body    string                 `json:"body" binding:"required"`
	Data    map[string]interface{} `json:"data"`
}

// PushToUsers multicasts a raw push to several users. Admin only.
func (h *NotificationHandler) PushToUsers(c *gin.Context) {
	var req multiPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_ids, title and body are required"})
		return
	}
	result, err := h.dispatcher.SendDirectToMany(c.Request.Context(), req.UserIDs, req.Title, req.Body, req.Data)
	if err != nil {
		h.pushError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success_count": result.SuccessCount,
		"failure_count": result.FailureCount,
		"timestamp":     result.Timestamp,
	})
}

// TestPush sends a test push to the caller's own device.
func (h *NotificationHandler) TestPush(c *gin.Context) {
	userID := middleware.GetUserID(c)
	req := pushRequest{
		Title: "Test Notification",
		Body:  "This is a test push notification from LokalHunt!",
	}
	_ = c.ShouldBindJSON(&req)
	result, err := h.dispatcher.SendDirect(c.Request.Context(), userID, req.Title, req.Body, map[string]interface{}{"type": "TEST"})
	if err != nil {
		h.pushError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message_id": result.MessageID, "timestamp": result.Timestamp})
}

func (h *NotificationHandler) pushError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoDeviceToken):
		c.JSON(http.StatusNotFound, gin.H{"error": "no device token available"})
	case errors.Is(err, service.ErrPushDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "push delivery is disabled"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "push send failed"})
	}
}
