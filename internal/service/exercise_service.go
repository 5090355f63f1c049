package service

import (
	"context"
	"errors"

	"evolution/fitness-dashboard/internal/domain"
	"evolution/fitness-dashboard/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrValidationFailed = errors.New("exercise validation failed")
)

// ExerciseInput carries the fields accepted when creating an exercise.
type ExerciseInput struct {
	Name       string
	Category   string
	LastWeight float64
	LastDate   string
	PBWeight   float64
	PBDate     string
	AvgVolume  float64
}

// ExerciseService owns the canonical exercise list and its weight-log
// histories, including the reconciliation rules applied on update.
type ExerciseService interface {
	CreateExercise(ctx context.Context, userID string, input ExerciseInput) (*domain.Exercise, error)
	GetExercises(ctx context.Context, userID string) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, userID, exerciseID string, patch domain.ExercisePatch) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, userID, exerciseID string) error
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo}
}

// supersededLogs derives the history entries an update produces. When the
// working load changes, the PREVIOUS load and date are logged (the value being
// replaced, not the new one); same rule independently for the PR. Entries are
// prepended in push order, so when both fire the PR entry ends up first.
func supersededLogs(previous *domain.Exercise, patch domain.ExercisePatch) []domain.WeightLog {
	logs := make([]domain.WeightLog, 0, 2)
	if patch.LastWeight != previous.LastWeight {
		logs = append([]domain.WeightLog{{
			Weight: previous.LastWeight,
			Date:   previous.LastDate,
			Type:   domain.LogTypeLoad,
		}}, logs...)
	}
	if patch.PBWeight != previous.PBWeight {
		logs = append([]domain.WeightLog{{
			Weight: previous.PBWeight,
			Date:   previous.PBDate,
			Type:   domain.LogTypePR,
		}}, logs...)
	}
	return logs
}

// CreateExercise registers a new exercise with an empty history. Progress is
// assigned once here and never recomputed.
func (s *exerciseService) CreateExercise(ctx context.Context, userID string, input ExerciseInput) (*domain.Exercise, error) {
	if input.Name == "" {
		return nil, ErrValidationFailed
	}
	if userID == "" {
		return nil, errors.New("user ID is required to create an exercise")
	}

	id := uuid.NewString()
	exercise := &domain.Exercise{
		ID:         id,
		UserID:     userID,
		Name:       input.Name,
		Category:   input.Category,
		LastWeight: input.LastWeight,
		LastDate:   input.LastDate,
		PBWeight:   input.PBWeight,
		PBDate:     input.PBDate,
		AvgVolume:  input.AvgVolume,
		Progress:   InitialProgress(id),
		History:    []domain.WeightLog{},
	}

	if err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		log.WithError(err).WithField("user", userID).Error("create exercise failed")
		return nil, err
	}
	return exercise, nil
}

// GetExercises lists the user's exercises, newest first, histories attached.
func (s *exerciseService) GetExercises(ctx context.Context, userID string) ([]domain.Exercise, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}
	return s.exerciseRepo.GetByUserID(ctx, userID)
}

// UpdateExercise applies the patch and reconciles the weight-log history:
// superseded values are logged, everything else overwrites directly, and the
// stored history is truncated to the most recent entries.
func (s *exerciseService) UpdateExercise(ctx context.Context, userID, exerciseID string, patch domain.ExercisePatch) (*domain.Exercise, error) {
	if patch.Name == "" {
		return nil, ErrValidationFailed
	}

	previous, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if previous.UserID != userID {
		return nil, ErrExerciseNotFound
	}

	if logs := supersededLogs(previous, patch); len(logs) > 0 {
		if err := s.exerciseRepo.InsertLogs(ctx, exerciseID, logs); err != nil {
			log.WithError(err).WithField("exercise", exerciseID).Error("insert weight logs failed")
			return nil, err
		}
	}

	previous.Name = patch.Name
	previous.Category = patch.Category
	previous.LastWeight = patch.LastWeight
	previous.LastDate = patch.LastDate
	previous.PBWeight = patch.PBWeight
	previous.PBDate = patch.PBDate
	previous.AvgVolume = patch.AvgVolume

	if err := s.exerciseRepo.Update(ctx, previous); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	// Re-read so the returned history reflects the reconciled, truncated state.
	return s.exerciseRepo.GetByID(ctx, exerciseID)
}

// DeleteExercise removes an exercise. Deleting an id that no longer exists is
// not an error.
func (s *exerciseService) DeleteExercise(ctx context.Context, userID, exerciseID string) error {
	if userID == "" || exerciseID == "" {
		return errors.New("user ID and exercise ID are required")
	}
	return s.exerciseRepo.Delete(ctx, exerciseID, userID)
}
