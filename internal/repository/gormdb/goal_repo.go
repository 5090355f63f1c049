package gormdb

import (
	"context"
	"errors"

	"evolution/fitness-dashboard/internal/domain"
	"evolution/fitness-dashboard/internal/repository"

	"gorm.io/gorm"
)

// gormGoalRepository implements repository.GoalRepository
type gormGoalRepository struct {
	database *gorm.DB
}

// NewGoalRepository creates a Goal repository backed by GORM.
func NewGoalRepository(database *gorm.DB) repository.GoalRepository {
	return &gormGoalRepository{database: database}
}

func (r *gormGoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	if goal.ID == "" || goal.UserID == "" {
		return errors.New("goal id and user id are required")
	}
	goal.CreatedAt = now()
	return r.database.WithContext(ctx).Create(goal).Error
}

func (r *gormGoalRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Goal, error) {
	goals := make([]domain.Goal, 0)
	err := r.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goals).Error
	if err != nil {
		return nil, err
	}
	return goals, nil
}

// Delete removes a goal by id. Absent ids are a no-op.
func (r *gormGoalRepository) Delete(ctx context.Context, id string, userID string) error {
	return r.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Goal{}).Error
}
