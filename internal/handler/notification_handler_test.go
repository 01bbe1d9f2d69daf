package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lokalhunt/config"
	"lokalhunt/internal/database"
	"lokalhunt/internal/domain"
	"lokalhunt/internal/models"
	"lokalhunt/internal/repository"
	"lokalhunt/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type handlerEnv struct {
	db         *gorm.DB
	users      *repository.UserRepository
	records    *repository.NotificationRepository
	dispatcher *service.DispatchService
	router     *gin.Engine
	authedAs   uint
}

// stubChannel acknowledges every push without an FCM backend.
type stubChannel struct{}

func (stubChannel) Send(context.Context, string, string, string, map[string]string) (*service.SendResult, error) {
	return &service.SendResult{MessageID: "stub-msg", Timestamp: time.Now()}, nil
}

func (stubChannel) SendMulticast(_ context.Context, tokens []string, _, _ string, _ map[string]string) (*service.MulticastResult, error) {
	return &service.MulticastResult{SuccessCount: len(tokens), Timestamp: time.Now()}, nil
}

func newHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDB(&config.DatabaseConfig{DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.SeedNotificationTemplates(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	log := zap.NewNop()
	users := repository.NewUserRepository(db)
	records := repository.NewNotificationRepository(db)
	prefs := repository.NewPreferenceRepository(db)
	trackers := repository.NewTrackerRepository(db)
	templates := repository.NewTemplateRepository(db)

	renderer := service.NewTemplateRenderer(templates)
	gate := service.NewPreferenceGate(prefs, log)
	limiter := service.NewRateLimiter(trackers, log)
	dispatcher := service.NewDispatchService(renderer, records, users, gate, limiter, stubChannel{}, nil, log)

	env := &handlerEnv{db: db, users: users, records: records, dispatcher: dispatcher}

	h := NewNotificationHandler(records, prefs, dispatcher)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", env.authedAs)
		c.Next()
	})
	r.GET("/notifications", h.List)
	r.PATCH("/notifications/read-all", h.MarkAllRead)
	r.PATCH("/notifications/:id/read", h.MarkRead)
	r.DELETE("/notifications/:id", h.Delete)
	r.GET("/notifications/preferences", h.GetPreferences)
	r.PUT("/notifications/preferences", h.UpdatePreferences)
	r.POST("/notifications/push/user/:user_id", h.PushToUser)
	env.router = r
	return env
}

func (e *handlerEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *handlerEnv) createUser(t *testing.T, deviceToken string) *models.User {
	t.Helper()
	u := &models.User{
		Name:        "Asha Verma",
		Email:       fmt.Sprintf("user%d@example.com", time.Now().UnixNano()),
		Role:        domain.RoleCandidate,
		City:        "Pune",
		DeviceToken: deviceToken,
	}
	require.NoError(t, e.users.Create(u))
	return u
}

func TestListNotifications(t *testing.T) {
	env := newHandlerEnv(t)
	u := env.createUser(t, "")
	env.authedAs = u.ID
	for i := 0; i < 3; i++ {
		require.NoError(t, env.records.Create(&models.Notification{
			UserID: u.ID, Type: domain.NotifSystem, Title: "t", Message: "m",
		}))
	}

	w := env.do(http.MethodGet, "/notifications", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Notifications []models.Notification `json:"notifications"`
		UnreadCount   int64                 `json:"unreadCount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Notifications, 3)
	assert.EqualValues(t, 3, resp.UnreadCount)

	// The envelope key is camelCase on the wire, matching the preference
	// payload fields.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Contains(t, raw, "unreadCount")
	assert.NotContains(t, raw, "unread_count")
}

func TestMarkReadStatusCodes(t *testing.T) {
	env := newHandlerEnv(t)
	owner := env.createUser(t, "")
	intruder := env.createUser(t, "")

	n := &models.Notification{UserID: owner.ID, Type: domain.NotifSystem, Title: "t", Message: "m"}
	require.NoError(t, env.records.Create(n))

	env.authedAs = intruder.ID
	w := env.do(http.MethodPatch, fmt.Sprintf("/notifications/%d/read", n.ID), "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	env.authedAs = owner.ID
	w = env.do(http.MethodPatch, fmt.Sprintf("/notifications/%d/read", n.ID), "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodPatch, "/notifications/999999/read", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodPatch, "/notifications/abc/read", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreferencesRoundTrip(t *testing.T) {
	env := newHandlerEnv(t)
	u := env.createUser(t, "")
	env.authedAs = u.ID

	// No row yet: defaults come back.
	w := env.do(http.MethodGet, "/notifications/preferences", "")
	require.Equal(t, http.StatusOK, w.Code)
	var prefs models.UserNotificationPreference
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prefs))
	assert.True(t, prefs.JobAlerts)

	w = env.do(http.MethodPut, "/notifications/preferences", `{"jobAlerts": false}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/notifications/preferences", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prefs))
	assert.False(t, prefs.JobAlerts)
	assert.True(t, prefs.ApplicationUpdates)
}

func TestPushToUser(t *testing.T) {
	env := newHandlerEnv(t)
	admin := env.createUser(t, "")
	target := env.createUser(t, "token-1")
	env.authedAs = admin.ID

	w := env.do(http.MethodPost, fmt.Sprintf("/notifications/push/user/%d", target.ID),
		`{"title": "Hello", "body": "from admin"}`)
	require.Equal(t, http.StatusOK, w.Code)

	list, err := env.records.ListByUserID(target.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Hello", list[0].Title)
}

func TestPushToUserWithoutToken(t *testing.T) {
	env := newHandlerEnv(t)
	admin := env.createUser(t, "")
	target := env.createUser(t, "")
	env.authedAs = admin.ID

	w := env.do(http.MethodPost, fmt.Sprintf("/notifications/push/user/%d", target.ID),
		`{"title": "Hello", "body": "x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPushToUserValidatesBody(t *testing.T) {
	env := newHandlerEnv(t)
	admin := env.createUser(t, "")
	env.authedAs = admin.ID

	w := env.do(http.MethodPost, "/notifications/push/user/1", `{"title": ""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
