package repository_test

import (
	"testing"
	"time"

	"lokalhunt/internal/domain"
	"lokalhunt/internal/models"
	"lokalhunt/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNotifications(t *testing.T, repo *repository.NotificationRepository, userID uint, n int) []models.Notification {
	t.Helper()
	out := make([]models.Notification, 0, n)
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	for i := 0; i < n; i++ {
		notif := models.Notification{
			UserID:    userID,
			Type:      domain.NotifSystem,
			Title:     "title",
			Message:   "message",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(&notif))
		out = append(out, notif)
	}
	return out
}

func TestListByUserIDNewestFirst(t *testing.T) {
	repo := repository.NewNotificationRepository(newTestDB(t))
	created := seedNotifications(t, repo, 1, 5)
	seedNotifications(t, repo, 2, 3)

	list, err := repo.ListByUserID(1, 20, 0)
	require.NoError(t, err)
	require.Len(t, list, 5)

	// Last created comes back first.
	assert.Equal(t, created[4].ID, list[0].ID)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.After(list[i-1].CreatedAt))
	}
}

func TestListByUserIDPagination(t *testing.T) {
	repo := repository.NewNotificationRepository(newTestDB(t))
	seedNotifications(t, repo, 1, 5)

	page, err := repo.ListByUserID(1, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	tail, err := repo.ListByUserID(1, 10, 4)
	require.NoError(t, err)
	assert.Len(t, tail, 1)
}

func TestMarkReadAndUnreadCount(t *testing.T) {
	repo := repository.NewNotificationRepository(newTestDB(t))
	created := seedNotifications(t, repo, 1, 3)

	count, err := repo.CountUnread(1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	require.NoError(t, repo.MarkRead(created[0].ID, 1))

	count, err = repo.CountUnread(1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	list, err := repo.ListByUserID(1, 20, 0)
	require.NoError(t, err)
	for _, n := range list {
		if n.ID == created[0].ID {
			assert.True(t, n.Read)
			require.NotNil(t, n.ReadAt)
		}
	}
}

func TestMarkReadOwnership(t *testing.T) {
	repo := repository.NewNotificationRepository(newTestDB(t))
	created := seedNotifications(t, repo, 1, 1)

	err := repo.MarkRead(created[0].ID, 99)
	assert.ErrorIs(t, err, repository.ErrForbidden)

	err = repo.MarkRead(123456, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMarkAllReadIsIdempotent(t *testing.T) {
	repo := repository.NewNotificationRepository(newTestDB(t))
	seedNotifications(t, repo, 1, 4)
	seedNotifications(t, repo, 2, 2)

	require.NoError(t, repo.MarkAllRead(1))
	require.NoError(t, repo.MarkAllRead(1))

	count, err := repo.CountUnread(1)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	// Other users are untouched.
	count, err = repo.CountUnread(2)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestDeleteNotification(t *testing.T) {
	repo := repository.NewNotificationRepository(newTestDB(t))
	created := seedNotifications(t, repo, 1, 2)

	require.NoError(t, repo.Delete(created[0].ID, 1))

	list, err := repo.ListByUserID(1, 20, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.ErrorIs(t, repo.Delete(created[0].ID, 1), repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(created[1].ID, 99), repository.ErrForbidden)
}
