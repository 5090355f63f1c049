package service

import (
	"fmt"
	"math"

	"evolution/fitness-dashboard/internal/domain"
)

// Timeframe selects the dashboard display granularity. It affects only how
// volume is scaled for presentation, never the stored data.
type Timeframe string

const (
	TimeframeWeek  Timeframe = "WEEK"
	TimeframeMonth Timeframe = "MONTH"
)

// Label returns the human-facing period name used in exports.
func (t Timeframe) Label() string {
	if t == TimeframeMonth {
		return "Mensal"
	}
	return "Semanal"
}

// weeksPerMonth approximates the number of training weeks in a month.
const weeksPerMonth = 4.3

// trendPointCount is the fixed number of points in a performance trend line.
const trendPointCount = 8

// TrendPoint is one sample of the synthetic performance trend rendered as a
// sparkline next to an exercise.
type TrendPoint struct {
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
	PB     float64 `json:"pb"`
}

// charCodeSum sums the UTF-8 code points of the id string. It seeds every
// per-exercise derived value so renders stay reproducible for the same id.
func charCodeSum(id string) int {
	sum := 0
	for _, r := range id {
		sum += int(r)
	}
	return sum
}

// InitialProgress derives the 0-100 efficiency score assigned once at
// creation. It lands in [60,100) as a deterministic function of the id, so
// repeated loads of the same exercise agree.
func InitialProgress(id string) int {
	return 60 + charCodeSum(id)%40
}

// DisplayVolume scales the stored average volume for the selected timeframe.
// The monthly figure is a presentation transform only and is never persisted.
func DisplayVolume(avgVolume float64, timeframe Timeframe) float64 {
	if timeframe == TimeframeMonth {
		return round1(avgVolume * weeksPerMonth)
	}
	return avgVolume
}

// TrendPoints builds the 8-point synthetic trend for an exercise. The curve
// ramps from 85% to 100% of the current working load with a seeded sine
// fluctuation, against a PB line that steps up over the last three points.
// Pure function of the id and the current weight fields; granular history is
// too sparse to drive a real trend line.
func TrendPoints(exercise domain.Exercise) []TrendPoint {
	seed := float64(charCodeSum(exercise.ID))
	points := make([]TrendPoint, 0, trendPointCount)
	for i := 0; i < trendPointCount; i++ {
		progressFactor := float64(i) / float64(trendPointCount-1)
		fluctuation := math.Sin(seed+float64(i)) * 3
		weight := exercise.LastWeight*(0.85+0.15*progressFactor) + fluctuation

		pb := exercise.PBWeight
		if i < trendPointCount-3 {
			pb = exercise.PBWeight * 0.95
		}

		points = append(points, TrendPoint{
			Label:  fmt.Sprintf("%d Out", i+1),
			Weight: round1(weight),
			PB:     round1(pb),
		})
	}
	return points
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
