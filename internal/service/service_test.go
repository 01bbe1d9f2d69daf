package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"lokalhunt/config"
	"lokalhunt/internal/database"
	"lokalhunt/internal/domain"
	"lokalhunt/internal/models"
	"lokalhunt/internal/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewDB(&config.DatabaseConfig{DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.SeedNotificationTemplates(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// fakeChannel records every push handed to it instead of talking to FCM.
type fakeChannel struct {
	sends      []fakeSend
	multicasts []fakeMulticast
	sendErr    error
}

type fakeSend struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

type fakeMulticast struct {
	Tokens []string
	Title  string
	Body   string
}

func (f *fakeChannel) Send(_ context.Context, token, title, body string, data map[string]string) (*SendResult, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sends = append(f.sends, fakeSend{Token: token, Title: title, Body: body, Data: data})
	return &SendResult{
		MessageID: fmt.Sprintf("msg-%d", len(f.sends)),
		Timestamp: time.Now(),
	}, nil
}

func (f *fakeChannel) SendMulticast(_ context.Context, tokens []string, title, body string, _ map[string]string) (*MulticastResult, error) {
	f.multicasts = append(f.multicasts, fakeMulticast{Tokens: tokens, Title: title, Body: body})
	res := &MulticastResult{SuccessCount: len(tokens), Timestamp: time.Now()}
	for i := range tokens {
		res.Responses = append(res.Responses, TokenResponse{
			Token:     tokens[i],
			MessageID: fmt.Sprintf("mc-%d", i),
		})
	}
	return res, nil
}

type testEnv struct {
	db         *gorm.DB
	users      *repository.UserRepository
	records    *repository.NotificationRepository
	prefs      *repository.PreferenceRepository
	trackers   *repository.TrackerRepository
	channel    *fakeChannel
	limiter    *RateLimiter
	dispatcher *DispatchService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	log := zap.NewNop()

	users := repository.NewUserRepository(db)
	records := repository.NewNotificationRepository(db)
	prefs := repository.NewPreferenceRepository(db)
	trackers := repository.NewTrackerRepository(db)
	templates := repository.NewTemplateRepository(db)

	channel := &fakeChannel{}
	renderer := NewTemplateRenderer(templates)
	gate := NewPreferenceGate(prefs, log)
	limiter := NewRateLimiter(trackers, log)

	return &testEnv{
		db:         db,
		users:      users,
		records:    records,
		prefs:      prefs,
		trackers:   trackers,
		channel:    channel,
		limiter:    limiter,
		dispatcher: NewDispatchService(renderer, records, users, gate, limiter, channel, nil, log),
	}
}

func (e *testEnv) createUser(t *testing.T, role, deviceToken string) *models.User {
	t.Helper()
	u := &models.User{
		Name:         "Asha Verma",
		Email:        fmt.Sprintf("user%d@example.com", time.Now().UnixNano()),
		PasswordHash: "x",
		Role:         role,
		City:         "Pune",
		DeviceToken:  deviceToken,
	}
	require.NoError(t, e.users.Create(u))
	return u
}

func (e *testEnv) createCandidate(t *testing.T, deviceToken string) *models.User {
	return e.createUser(t, domain.RoleCandidate, deviceToken)
}
