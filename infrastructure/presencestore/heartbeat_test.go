package presencestore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "presence.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))
	return db
}

func TestHeartbeatUpsertMonotonicGuard(t *testing.T) {
	repo := NewHeartbeatGormRepository(newTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	accepted, err := repo.Upsert(ctx, "room-1", "alice", "s1", 30000, now)
	require.NoError(t, err)
	assert.True(t, accepted)

	// Equal timestamp still counts as an accepted refresh.
	accepted, err = repo.Upsert(ctx, "room-1", "alice", "s1", 30000, now)
	require.NoError(t, err)
	assert.True(t, accepted)

	// Older timestamp must be dropped.
	accepted, err = repo.Upsert(ctx, "room-1", "alice", "s1", 30000, now.Add(-10*time.Second))
	require.NoError(t, err)
	assert.False(t, accepted)

	active, err := repo.ListActive(ctx, "room-1", now, 2)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "alice", active[0].User)
	assert.Equal(t, "s1", active[0].Session)
}

func TestHeartbeatFreshnessPerRowInterval(t *testing.T) {
	repo := NewHeartbeatGormRepository(newTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	// Same age, different intervals: only the slow beater is still fresh.
	_, err := repo.Upsert(ctx, "room-1", "fast", "s1", 1000, now.Add(-10*time.Second))
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, "room-1", "slow", "s1", 30000, now.Add(-10*time.Second))
	require.NoError(t, err)

	active, err := repo.ListActive(ctx, "room-1", now, 2)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "slow", active[0].User)

	hasFast, err := repo.HasActiveSession(ctx, "room-1", "fast", now, 2)
	require.NoError(t, err)
	assert.False(t, hasFast)

	hasSlow, err := repo.HasActiveSession(ctx, "room-1", "slow", now, 2)
	require.NoError(t, err)
	assert.True(t, hasSlow)
}

func TestHeartbeatDeleteStale(t *testing.T) {
	repo := NewHeartbeatGormRepository(newTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := repo.Upsert(ctx, "room-1", "alice", "s1", 1000, now.Add(-time.Minute))
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, "room-1", "bob", "s1", 30000, now)
	require.NoError(t, err)

	swept, err := repo.DeleteStale(ctx, now, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(1), swept)

	// The fresh row survives the sweep.
	active, err := repo.ListActive(ctx, "room-1", now, 2)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "bob", active[0].User)
}

func TestHeartbeatDeleteIdempotent(t *testing.T) {
	repo := NewHeartbeatGormRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, "room-1", "alice", "s1"))

	_, err := repo.Upsert(ctx, "room-1", "alice", "s1", 30000, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, "room-1", "alice", "s1"))
	require.NoError(t, repo.Delete(ctx, "room-1", "alice", "s1"))
}
