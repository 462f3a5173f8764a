package services

import (
	"testing"
	"time"

	"memory-arcade-core/database"
	"memory-arcade-core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	return db
}

func TestProfileService_EnsureIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)

	p1, err := svc.Ensure("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, p1.Level)
	assert.False(t, p1.Synced)

	p2, err := svc.Ensure("user-1")
	require.NoError(t, err)
	assert.Equal(t, p1.ID, p2.ID)

	var count int64
	require.NoError(t, db.Model(&models.UserProfile{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestProfileService_GetAbsentIsTyped(t *testing.T) {
	svc := NewProfileService(newTestDB(t))

	_, err := svc.Get("nobody")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestProfileService_SaveResetsSyncFlag(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)

	p, err := svc.Ensure("user-1")
	require.NoError(t, err)
	require.NoError(t, svc.MarkSynced(p.ID))

	p, err = svc.Get("user-1")
	require.NoError(t, err)
	require.True(t, p.Synced)

	p.TotalXP += 100
	require.NoError(t, svc.Save(p))

	unsynced, err := svc.GetUnsynced("user-1")
	require.NoError(t, err)
	require.Len(t, unsynced, 1, "a local write always re-queues the row for sync")
}

func TestResultService_CreateAndStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewResultService(db)

	mk := func(score, timeTaken int, accuracy float64, win bool) {
		require.NoError(t, svc.Create(&models.GameResult{
			UserID:      "user-1",
			Mode:        models.ModeClassic,
			Score:       score,
			TimeTaken:   timeTaken,
			Accuracy:    accuracy,
			IsWin:       win,
			CompletedAt: time.Now(),
		}))
	}
	mk(900, 30, 100, true)
	mk(500, 60, 75, true)
	mk(100, 90, 50, false)

	stats, err := svc.Stats("user-1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalGames)
	assert.EqualValues(t, 2, stats.Wins)
	assert.Equal(t, 900, stats.BestScore)
	assert.InDelta(t, 60.0, stats.AvgTime, 0.01)
	assert.InDelta(t, 75.0, stats.AvgAccuracy, 0.01)

	other, err := svc.Stats("someone-else")
	require.NoError(t, err)
	assert.Zero(t, other.TotalGames)
}

func TestResultService_SyncLifecycle(t *testing.T) {
	svc := NewResultService(newTestDB(t))

	r := &models.GameResult{UserID: "user-1", CompletedAt: time.Now()}
	require.NoError(t, svc.Create(r))
	require.NotEmpty(t, r.ID, "ids are client-generated")

	rows, err := svc.GetUnsynced("user-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	require.NoError(t, svc.MarkSynced(r.ID))
	rows, err = svc.GetUnsynced("user-1")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLevelService_RecordPlayMonotonic(t *testing.T) {
	db := newTestDB(t)
	svc := NewLevelService(db)

	// First clear: 2 stars, decent numbers.
	lp, err := svc.RecordPlay(db, "user-1", 1, 2, 800, 40, 10, true)
	require.NoError(t, err)
	assert.Equal(t, 2, lp.Stars)
	assert.Equal(t, 800, lp.BestScore)
	assert.Equal(t, 40, lp.BestTime)
	assert.Equal(t, 10, lp.BestMoves)
	assert.True(t, lp.IsCompleted)
	assert.Equal(t, 1, lp.TimesPlayed)

	// Worse replay: only the play counter moves.
	lp, err = svc.RecordPlay(db, "user-1", 1, 1, 300, 90, 20, true)
	require.NoError(t, err)
	assert.Equal(t, 2, lp.Stars)
	assert.Equal(t, 800, lp.BestScore)
	assert.Equal(t, 40, lp.BestTime)
	assert.Equal(t, 10, lp.BestMoves)
	assert.Equal(t, 2, lp.TimesPlayed)

	// Better replay improves everything.
	lp, err = svc.RecordPlay(db, "user-1", 1, 3, 1200, 25, 6, true)
	require.NoError(t, err)
	assert.Equal(t, 3, lp.Stars)
	assert.Equal(t, 1200, lp.BestScore)
	assert.Equal(t, 25, lp.BestTime)
	assert.Equal(t, 6, lp.BestMoves)
}

func TestLevelService_WinUnlocksNextLevel(t *testing.T) {
	db := newTestDB(t)
	svc := NewLevelService(db)

	_, err := svc.RecordPlay(db, "user-1", 1, 3, 1000, 30, 6, true)
	require.NoError(t, err)

	next, err := svc.Ensure("user-1", 2)
	require.NoError(t, err)
	assert.True(t, next.IsUnlocked)

	three, err := svc.Ensure("user-1", 3)
	require.NoError(t, err)
	assert.False(t, three.IsUnlocked)
}

func TestLevelService_LossUnlocksNothing(t *testing.T) {
	db := newTestDB(t)
	svc := NewLevelService(db)

	lp, err := svc.RecordPlay(db, "user-1", 2, 0, 50, 120, 30, false)
	require.NoError(t, err)
	assert.False(t, lp.IsCompleted)
	assert.Zero(t, lp.Stars)
	assert.Zero(t, lp.BestScore)
	assert.Equal(t, 1, lp.TimesPlayed)

	next, err := svc.Ensure("user-1", 3)
	require.NoError(t, err)
	assert.False(t, next.IsUnlocked)
}

func TestAchievementService_ApplyIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewAchievementService(db)
	now := time.Now()

	events := []AchievementEvent{
		{Type: models.AchFirstWin, Unlock: true, Progress: 100},
		{Type: models.AchWins10, Progress: 10},
	}
	unlocked, err := svc.Apply(db, "user-1", events, now)
	require.NoError(t, err)
	require.Len(t, unlocked, 1)
	assert.Equal(t, models.AchFirstWin, unlocked[0].Type)
	require.NotNil(t, unlocked[0].UnlockedAt)

	// Re-applying the same batch unlocks nothing new and touches nothing.
	unlocked, err = svc.Apply(db, "user-1", events, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, unlocked)

	rows, err := svc.ListByUser("user-1")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Progress never regresses.
	_, err = svc.Apply(db, "user-1", []AchievementEvent{{Type: models.AchWins10, Progress: 5}}, now)
	require.NoError(t, err)
	rows, err = svc.ListByUser("user-1")
	require.NoError(t, err)
	for _, a := range rows {
		if a.Type == models.AchWins10 {
			assert.Equal(t, 10, a.Progress)
		}
	}
}

func TestArcadeService_BestRounds(t *testing.T) {
	svc := NewArcadeService(newTestDB(t))

	best, err := svc.BestRounds("user-1")
	require.NoError(t, err)
	assert.Zero(t, best)

	require.NoError(t, svc.Create(&models.ArcadeSession{UserID: "user-1", RoundsCleared: 4, CompletedAt: time.Now()}))
	require.NoError(t, svc.Create(&models.ArcadeSession{UserID: "user-1", RoundsCleared: 9, CompletedAt: time.Now()}))

	best, err = svc.BestRounds("user-1")
	require.NoError(t, err)
	assert.Equal(t, 9, best)
}
