package repository

import (
	"context"

	"evolution/fitness-dashboard/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ExerciseRepository defines the interface for interacting with exercise data.
// Listed exercises come back with their weight-log histories already attached,
// newest first, capped at domain.MaxHistoryEntries.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) error
	GetByID(ctx context.Context, id string) (*domain.Exercise, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	// Delete removes an exercise and its logs. Deleting an absent id is not
	// an error; the operation is idempotent.
	Delete(ctx context.Context, id string, userID string) error

	// InsertLogs records superseded weight-log entries for an exercise and
	// prunes the stored history down to domain.MaxHistoryEntries.
	InsertLogs(ctx context.Context, exerciseID string, logs []domain.WeightLog) error
}

// GoalRepository defines the interface for interacting with goal data.
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) error
	GetByUserID(ctx context.Context, userID string) ([]domain.Goal, error)
	// Delete is idempotent: removing a nonexistent id is a no-op.
	Delete(ctx context.Context, id string, userID string) error
}

// ProfileRepository defines the interface for the single per-user profile row.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error)
	// Upsert overwrites the profile wholesale, creating it when absent.
	Upsert(ctx context.Context, profile *domain.UserProfile) error
}
