package gormdb

import (
	"context"
	"errors"
	"time"

	"evolution/fitness-dashboard/internal/domain"
	"evolution/fitness-dashboard/internal/repository"

	"gorm.io/gorm"
)

// gormExerciseRepository implements repository.ExerciseRepository
type gormExerciseRepository struct {
	database *gorm.DB
}

// NewExerciseRepository creates an Exercise repository backed by GORM.
func NewExerciseRepository(database *gorm.DB) repository.ExerciseRepository {
	return &gormExerciseRepository{database: database}
}

// historyScope orders logs newest first and caps them at the history limit.
func historyScope(query *gorm.DB) *gorm.DB {
	return query.Order("created_at DESC, id DESC").Limit(domain.MaxHistoryEntries)
}

func (r *gormExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.ID == "" || exercise.UserID == "" {
		return errors.New("exercise id and user id are required")
	}
	ts := now()
	exercise.CreatedAt = ts
	exercise.UpdatedAt = ts
	return r.database.WithContext(ctx).Create(exercise).Error
}

func (r *gormExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.database.WithContext(ctx).
		Preload("History", historyScope).
		First(&exercise, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

func (r *gormExerciseRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Exercise, error) {
	exercises := make([]domain.Exercise, 0)
	err := r.database.WithContext(ctx).
		Preload("History", historyScope).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&exercises).Error
	if err != nil {
		return nil, err
	}
	return exercises, nil
}

// Update overwrites the exercise's own columns. History rows are never
// touched here; they move only through InsertLogs.
func (r *gormExerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.ID == "" {
		return errors.New("exercise ID is required for update")
	}

	exercise.UpdatedAt = now()
	result := r.database.WithContext(ctx).
		Model(&domain.Exercise{}).
		Where("id = ?", exercise.ID).
		Updates(map[string]any{
			"name":        exercise.Name,
			"category":    exercise.Category,
			"last_weight": exercise.LastWeight,
			"last_date":   exercise.LastDate,
			"pb_weight":   exercise.PBWeight,
			"pb_date":     exercise.PBDate,
			"avg_volume":  exercise.AvgVolume,
			"updated_at":  exercise.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the exercise owned by userID along with its logs. A missing
// row is not an error.
func (r *gormExerciseRepository) Delete(ctx context.Context, id string, userID string) error {
	return r.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exercise_id = ?", id).Delete(&domain.WeightLog{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Exercise{}).Error
	})
}

// InsertLogs records the superseded weight entries and prunes everything
// beyond the newest MaxHistoryEntries rows for the exercise.
func (r *gormExerciseRepository) InsertLogs(ctx context.Context, exerciseID string, logs []domain.WeightLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ts := now()
		// Insert oldest first so that "newest first" read order matches the
		// prepend order the caller established.
		for i := len(logs) - 1; i >= 0; i-- {
			entry := logs[i]
			entry.ExerciseID = exerciseID
			entry.CreatedAt = ts.Add(time.Duration(len(logs)-1-i) * time.Millisecond)
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}

		var keep []uint
		if err := tx.Model(&domain.WeightLog{}).
			Where("exercise_id = ?", exerciseID).
			Order("created_at DESC, id DESC").
			Limit(domain.MaxHistoryEntries).
			Pluck("id", &keep).Error; err != nil {
			return err
		}
		return tx.Where("exercise_id = ? AND id NOT IN ?", exerciseID, keep).
			Delete(&domain.WeightLog{}).Error
	})
}
