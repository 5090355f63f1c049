package service

import (
	"testing"

	"evolution/fitness-dashboard/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestShortTipFor_Empty(t *testing.T) {
	assert.Equal(t,
		"Inicie seus registros para que eu possa analisar sua performance biomecânica.",
		ShortTipFor(nil),
	)
}

func TestShortTipFor_FocusOnWeakest(t *testing.T) {
	exercises := []domain.Exercise{
		{Name: "Supino Reto", Progress: 90, PBWeight: 100},
		{Name: "Agachamento", Progress: 50, PBWeight: 140},
		{Name: "Levantamento Terra", Progress: 95, PBWeight: 180},
	}

	tip := ShortTipFor(exercises)
	assert.Equal(t,
		"Foco total no Agachamento. Sua eficiência de 50% indica que precisamos ajustar a cadência antes de subir a carga.",
		tip,
	)
}

func TestShortTipFor_PraiseStrongest(t *testing.T) {
	exercises := []domain.Exercise{
		{Name: "Supino Reto", Progress: 72, PBWeight: 100},
		{Name: "Levantamento Terra", Progress: 88, PBWeight: 180},
	}

	tip := ShortTipFor(exercises)
	assert.Equal(t,
		"Performance sólida no Levantamento Terra. Continue explorando a sobrecarga progressiva nos microciclos de força.",
		tip,
	)
}

func TestShortTipFor_ExactThresholdIsNotFocus(t *testing.T) {
	// Progress of exactly 60 does not trigger the focus tip.
	exercises := []domain.Exercise{
		{Name: "Remada Curvada", Progress: 60, PBWeight: 90},
	}
	assert.Equal(t,
		"Performance sólida no Remada Curvada. Continue explorando a sobrecarga progressiva nos microciclos de força.",
		ShortTipFor(exercises),
	)
}

func TestShortTipFor_TieKeepsFirst(t *testing.T) {
	exercises := []domain.Exercise{
		{Name: "Primeiro", Progress: 55},
		{Name: "Segundo", Progress: 55},
	}
	assert.Contains(t, ShortTipFor(exercises), "Primeiro")
}

func TestDeepAnalysisFor_Empty(t *testing.T) {
	assert.Equal(t,
		"Sem dados suficientes para gerar um relatório técnico de tendências.",
		DeepAnalysisFor([]domain.Exercise{}),
	)
}

func TestDeepAnalysisFor_PeakBand(t *testing.T) {
	exercises := []domain.Exercise{
		{Progress: 90, AvgVolume: 2.0},
		{Progress: 88, AvgVolume: 1.5},
	}

	analysis := DeepAnalysisFor(exercises)
	assert.Contains(t, analysis, "Baseado em 2 exercícios chave, sua eficiência média está em 89.0%.")
	assert.Contains(t, analysis, "fase de pico de performance")
}

func TestDeepAnalysisFor_LinearBandIncludesVolume(t *testing.T) {
	exercises := []domain.Exercise{
		{Progress: 80, AvgVolume: 2.4},
		{Progress: 76, AvgVolume: 1.6},
	}

	analysis := DeepAnalysisFor(exercises)
	assert.Contains(t, analysis, "sua eficiência média está em 78.0%")
	assert.Contains(t, analysis, "O volume total de 4.0k indica boa capacidade de recuperação.")
}

func TestDeepAnalysisFor_ExactPeakBoundaryReadsLinear(t *testing.T) {
	// A mean of exactly 85.0 falls in the linear band, not peak.
	exercises := []domain.Exercise{
		{Progress: 85, AvgVolume: 1.0},
	}
	assert.Contains(t, DeepAnalysisFor(exercises), "progressão está linear")
}

func TestDeepAnalysisFor_PlateauBand(t *testing.T) {
	exercises := []domain.Exercise{
		{Progress: 65, AvgVolume: 3.0},
		{Progress: 60, AvgVolume: 2.0},
	}
	assert.Contains(t, DeepAnalysisFor(exercises), "possível platô")
}
