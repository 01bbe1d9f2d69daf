package repository_test

import (
	"sync"
	"testing"
	"time"

	"lokalhunt/internal/models"
	"lokalhunt/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerCountMissingRowIsZero(t *testing.T) {
	repo := repository.NewTrackerRepository(newTestDB(t))

	count, err := repo.Count(1, "JOB_ALERT", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestTrackerIncrementAccumulates(t *testing.T) {
	repo := repository.NewTrackerRepository(newTestDB(t))
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Increment(7, "JOB_ALERT", at))
	}

	count, err := repo.Count(7, "JOB_ALERT", at)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestTrackerKeysAreIndependent(t *testing.T) {
	repo := repository.NewTrackerRepository(newTestDB(t))
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	require.NoError(t, repo.Increment(7, "JOB_ALERT", at))
	require.NoError(t, repo.Increment(7, "WELCOME", at))
	require.NoError(t, repo.Increment(8, "JOB_ALERT", at))

	count, err := repo.Count(7, "JOB_ALERT", at)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = repo.Count(7, "WELCOME", at)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestTrackerDayRollover(t *testing.T) {
	repo := repository.NewTrackerRepository(newTestDB(t))
	lateNight := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	nextMorning := time.Date(2026, 3, 15, 0, 1, 0, 0, time.UTC)

	require.NoError(t, repo.Increment(7, "JOB_ALERT", lateNight))
	require.NoError(t, repo.Increment(7, "JOB_ALERT", lateNight))

	count, err := repo.Count(7, "JOB_ALERT", nextMorning)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "new UTC day starts a fresh counter")

	count, err = repo.Count(7, "JOB_ALERT", lateNight)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestTrackerConcurrentIncrements(t *testing.T) {
	repo := repository.NewTrackerRepository(newTestDB(t))
	at := time.Now()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Increment(7, "TEST", at)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	count, err := repo.Count(7, "TEST", at)
	require.NoError(t, err)
	assert.Equal(t, n, count, "upsert must not lose concurrent updates")
}

func TestDayUTCNormalizesZones(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	// 23:30 EST on March 14 is already March 15 in UTC.
	local := time.Date(2026, 3, 14, 23, 30, 0, 0, est)

	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), models.DayUTC(local))
}
