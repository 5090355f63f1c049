package service

import (
	"context"
	"errors"

	"evolution/fitness-dashboard/internal/domain"
	"evolution/fitness-dashboard/internal/repository"

	"github.com/google/uuid"
)

// GoalService owns the training-goal list. Goals are created whole and
// deleted by id; there is no update operation. Required-field validation
// lives at the API binding, mirroring the client form.
type GoalService interface {
	CreateGoal(ctx context.Context, userID, title, description string) (*domain.Goal, error)
	GetGoals(ctx context.Context, userID string) ([]domain.Goal, error)
	DeleteGoal(ctx context.Context, userID, goalID string) error
}

type goalService struct {
	goalRepo repository.GoalRepository
}

// NewGoalService creates a new instance of goalService.
func NewGoalService(goalRepo repository.GoalRepository) GoalService {
	return &goalService{goalRepo: goalRepo}
}

func (s *goalService) CreateGoal(ctx context.Context, userID, title, description string) (*domain.Goal, error) {
	if userID == "" {
		return nil, errors.New("user ID is required to create a goal")
	}
	goal := &domain.Goal{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: description,
	}
	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *goalService) GetGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}
	return s.goalRepo.GetByUserID(ctx, userID)
}

// DeleteGoal removes a goal; a nonexistent id leaves the list unchanged.
func (s *goalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	if userID == "" || goalID == "" {
		return errors.New("user ID and goal ID are required")
	}
	return s.goalRepo.Delete(ctx, goalID, userID)
}
