package service

import (
	"context"
	"fmt"

	"evolution/fitness-dashboard/internal/domain"
	"evolution/fitness-dashboard/internal/repository"
)

// Fixed coach responses. The thresholds (60, 70, 85) and the strict
// comparisons are part of the product contract; ties resolve to the first
// exercise in original order.
const (
	tipEmptyMessage  = "Inicie seus registros para que eu possa analisar sua performance biomecânica."
	deepEmptyMessage = "Sem dados suficientes para gerar um relatório técnico de tendências."
)

const (
	focusProgressThreshold = 60
	linearProgressBand     = 70
	peakProgressBand       = 85
)

// CoachService produces short natural-language guidance from the athlete's
// current exercise collection. No state is retained between calls.
type CoachService interface {
	ShortTip(ctx context.Context, userID string) (string, error)
	DeepAnalysis(ctx context.Context, userID string) (string, error)
}

type coachService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewCoachService creates a new instance of coachService.
func NewCoachService(exerciseRepo repository.ExerciseRepository) CoachService {
	return &coachService{exerciseRepo: exerciseRepo}
}

func (s *coachService) ShortTip(ctx context.Context, userID string) (string, error) {
	exercises, err := s.exerciseRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	return ShortTipFor(exercises), nil
}

func (s *coachService) DeepAnalysis(ctx context.Context, userID string) (string, error) {
	exercises, err := s.exerciseRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	return DeepAnalysisFor(exercises), nil
}

// ShortTipFor ranks the collection and returns a one-line tip: the weakest
// exercise gets a technique-before-load nudge when its progress sits under
// the focus threshold; otherwise the heaviest PR earns consistency praise.
func ShortTipFor(exercises []domain.Exercise) string {
	if len(exercises) == 0 {
		return tipEmptyMessage
	}

	focus := exercises[0]
	for _, ex := range exercises[1:] {
		if ex.Progress < focus.Progress {
			focus = ex
		}
	}
	if focus.Progress < focusProgressThreshold {
		return fmt.Sprintf(
			"Foco total no %s. Sua eficiência de %d%% indica que precisamos ajustar a cadência antes de subir a carga.",
			focus.Name, focus.Progress,
		)
	}

	strongest := exercises[0]
	for _, ex := range exercises[1:] {
		if ex.PBWeight > strongest.PBWeight {
			strongest = ex
		}
	}
	return fmt.Sprintf(
		"Performance sólida no %s. Continue explorando a sobrecarga progressiva nos microciclos de força.",
		strongest.Name,
	)
}

// DeepAnalysisFor composes the trend report: exercise count, mean efficiency,
// and one of three narrative bands split at mean progress 85 and 70 (strict
// inequalities, so a mean of exactly 85.0 reads as linear progression).
func DeepAnalysisFor(exercises []domain.Exercise) string {
	if len(exercises) == 0 {
		return deepEmptyMessage
	}

	progressSum := 0
	totalVolume := 0.0
	for _, ex := range exercises {
		progressSum += ex.Progress
		totalVolume += ex.AvgVolume
	}
	avgProgress := float64(progressSum) / float64(len(exercises))

	analysis := fmt.Sprintf(
		"Baseado em %d exercícios chave, sua eficiência média está em %.1f%%. ",
		len(exercises), avgProgress,
	)

	switch {
	case avgProgress > peakProgressBand:
		analysis += "Identificamos uma fase de pico de performance. Momento ideal para testar novos RPs em exercícios compostos."
	case avgProgress > linearProgressBand:
		analysis += fmt.Sprintf(
			"Sua progressão está linear e saudável. O volume total de %.1fk indica boa capacidade de recuperação.",
			totalVolume,
		)
	default:
		analysis += "Os dados mostram um possível platô. Considere reduzir o volume e focar na qualidade técnica para reestabelecer a progressão."
	}
	return analysis
}
