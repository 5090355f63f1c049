package gormdb

import (
	"context"
	"testing"

	"evolution/fitness-dashboard/internal/domain"
	"evolution/fitness-dashboard/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := OpenInMemory()
	require.NoError(t, err)
	return database
}

func seedExercise(t *testing.T, repo repository.ExerciseRepository, userID string) *domain.Exercise {
	t.Helper()
	exercise := &domain.Exercise{
		ID:         uuid.NewString(),
		UserID:     userID,
		Name:       "Supino Reto",
		Category:   "Peito/Tríceps",
		LastWeight: 80,
		LastDate:   "1 Out",
		PBWeight:   100,
		PBDate:     "20 Set",
		AvgVolume:  2.4,
		Progress:   78,
	}
	require.NoError(t, repo.Create(context.Background(), exercise))
	return exercise
}

func TestExerciseRepository_CreateAndGet(t *testing.T) {
	repo := NewExerciseRepository(testDB(t))
	ctx := context.Background()

	created := seedExercise(t, repo, "user-1")

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, fetched.Name)
	assert.Equal(t, created.Progress, fetched.Progress)
	assert.Empty(t, fetched.History)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestExerciseRepository_GetByUserIDScopes(t *testing.T) {
	repo := NewExerciseRepository(testDB(t))
	ctx := context.Background()

	seedExercise(t, repo, "user-1")
	seedExercise(t, repo, "user-1")
	seedExercise(t, repo, "user-2")

	mine, err := repo.GetByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	nobody, err := repo.GetByUserID(ctx, "user-3")
	require.NoError(t, err)
	assert.Empty(t, nobody)
}

func TestExerciseRepository_Update(t *testing.T) {
	repo := NewExerciseRepository(testDB(t))
	ctx := context.Background()

	created := seedExercise(t, repo, "user-1")
	created.Name = "Supino Inclinado"
	created.LastWeight = 85

	require.NoError(t, repo.Update(ctx, created))

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Supino Inclinado", fetched.Name)
	assert.Equal(t, 85.0, fetched.LastWeight)

	missing := &domain.Exercise{ID: "missing", Name: "X"}
	assert.ErrorIs(t, repo.Update(ctx, missing), repository.ErrNotFound)
}

func TestExerciseRepository_DeleteIdempotent(t *testing.T) {
	repo := NewExerciseRepository(testDB(t))
	ctx := context.Background()

	created := seedExercise(t, repo, "user-1")
	require.NoError(t, repo.InsertLogs(ctx, created.ID, []domain.WeightLog{
		{Weight: 75, Date: "20 Set", Type: domain.LogTypeLoad},
	}))

	require.NoError(t, repo.Delete(ctx, created.ID, "user-1"))
	_, err := repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Second delete and unknown ids are no-ops.
	require.NoError(t, repo.Delete(ctx, created.ID, "user-1"))
	require.NoError(t, repo.Delete(ctx, "missing", "user-1"))
}

func TestExerciseRepository_InsertLogsOrder(t *testing.T) {
	repo := NewExerciseRepository(testDB(t))
	ctx := context.Background()

	created := seedExercise(t, repo, "user-1")

	// Caller order is newest first: PR entry in front of the load entry.
	require.NoError(t, repo.InsertLogs(ctx, created.ID, []domain.WeightLog{
		{Weight: 100, Date: "20 Set", Type: domain.LogTypePR},
		{Weight: 80, Date: "1 Out", Type: domain.LogTypeLoad},
	}))

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, fetched.History, 2)
	assert.Equal(t, domain.LogTypePR, fetched.History[0].Type)
	assert.Equal(t, domain.LogTypeLoad, fetched.History[1].Type)
}

func TestExerciseRepository_InsertLogsPrunesHistory(t *testing.T) {
	repo := NewExerciseRepository(testDB(t))
	ctx := context.Background()

	created := seedExercise(t, repo, "user-1")

	weights := []float64{70, 75, 80, 85, 90}
	for _, w := range weights {
		require.NoError(t, repo.InsertLogs(ctx, created.ID, []domain.WeightLog{
			{Weight: w, Date: "1 Out", Type: domain.LogTypeLoad},
		}))
	}

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, fetched.History, domain.MaxHistoryEntries)
	assert.Equal(t, 90.0, fetched.History[0].Weight)
	assert.Equal(t, 85.0, fetched.History[1].Weight)
	assert.Equal(t, 80.0, fetched.History[2].Weight)

	// Pruning removed the rows in storage, not just on read.
	var count int64
	require.NoError(t, repo.(*gormExerciseRepository).database.
		Model(&domain.WeightLog{}).
		Where("exercise_id = ?", created.ID).
		Count(&count).Error)
	assert.EqualValues(t, domain.MaxHistoryEntries, count)
}
