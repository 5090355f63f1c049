package gormdb

import (
	"context"
	"errors"

	"evolution/fitness-dashboard/internal/domain"
	"evolution/fitness-dashboard/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormProfileRepository implements repository.ProfileRepository
type gormProfileRepository struct {
	database *gorm.DB
}

// NewProfileRepository creates a Profile repository backed by GORM.
func NewProfileRepository(database *gorm.DB) repository.ProfileRepository {
	return &gormProfileRepository{database: database}
}

func (r *gormProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	err := r.database.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Upsert overwrites the whole profile row, inserting when absent.
func (r *gormProfileRepository) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	if profile.UserID == "" {
		return errors.New("user id is required")
	}
	profile.UpdatedAt = now()
	return r.database.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(profile).Error
}
