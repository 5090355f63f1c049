package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"evolution/fitness-dashboard/internal/domain"
	"evolution/fitness-dashboard/internal/repository"
)

// Window selects the recency filter applied in the analysis view.
type Window string

const (
	WindowWeek   Window = "WEEK"
	WindowMonth  Window = "MONTH"
	WindowYear   Window = "YEAR"
	WindowCustom Window = "CUSTOM"
)

// CategoryAll is the sentinel filter token matching every exercise.
const CategoryAll = "TODOS"

// emptyRangeInsight replaces the heuristic insight when filtering leaves no rows.
const emptyRangeInsight = "Sem dados para análise no período selecionado."

// windowDays maps the fixed windows to their trailing length in days.
var windowDays = map[Window]int{
	WindowWeek:  7,
	WindowMonth: 30,
	WindowYear:  365,
}

// ptMonths maps Portuguese three-letter month abbreviations to month indexes
// for parsing "12 Out" style display dates.
var ptMonths = map[string]time.Month{
	"jan": time.January, "fev": time.February, "mar": time.March,
	"abr": time.April, "mai": time.May, "jun": time.June,
	"jul": time.July, "ago": time.August, "set": time.September,
	"out": time.October, "nov": time.November, "dez": time.December,
}

// SortKey names a sortable column of the analysis table.
type SortKey string

const (
	SortByName       SortKey = "name"
	SortByCategory   SortKey = "category"
	SortByLastWeight SortKey = "lastWeight"
	SortByPBWeight   SortKey = "pbWeight"
	SortByProgress   SortKey = "progress"
)

// AnalysisQuery captures one request to the analysis engine: a category
// filter, a time window (Start/End only matter for WindowCustom), and a sort
// order. Zero values fall back to TODOS / name ascending.
type AnalysisQuery struct {
	Category string
	Window   Window
	Start    time.Time
	End      time.Time
	SortKey  SortKey
	Desc     bool
}

// AnalysisResult is the filtered, sorted view plus its derived insight.
type AnalysisResult struct {
	Categories []string
	Exercises  []domain.Exercise
	Insight    string
}

// AnalysisService filters, sorts and aggregates the exercise list for the
// trend-analysis screen.
type AnalysisService interface {
	Analyze(ctx context.Context, userID string, query AnalysisQuery) (*AnalysisResult, error)
	FilteredExercises(ctx context.Context, userID string, query AnalysisQuery) ([]domain.Exercise, error)
}

type analysisService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewAnalysisService creates a new instance of analysisService.
func NewAnalysisService(exerciseRepo repository.ExerciseRepository) AnalysisService {
	return &analysisService{exerciseRepo: exerciseRepo}
}

func (s *analysisService) Analyze(ctx context.Context, userID string, query AnalysisQuery) (*AnalysisResult, error) {
	exercises, err := s.exerciseRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	filtered := FilterExercises(exercises, query, time.Now())
	SortExercises(filtered, query.SortKey, query.Desc)

	return &AnalysisResult{
		Categories: CategoryTokens(exercises),
		Exercises:  filtered,
		Insight:    RangeInsight(filtered),
	}, nil
}

func (s *analysisService) FilteredExercises(ctx context.Context, userID string, query AnalysisQuery) ([]domain.Exercise, error) {
	exercises, err := s.exerciseRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	filtered := FilterExercises(exercises, query, time.Now())
	SortExercises(filtered, query.SortKey, query.Desc)
	return filtered, nil
}

// ParseDisplayDate turns a "12 Out" display date into a calendar date in the
// given year. The month lookup is a fixed PT-BR table; an abbreviation
// outside the table falls back to January, and an unparseable day to the
// 1st. The January fallback mirrors what historical exports produced and can
// misplace malformed rows in time-window filtering.
func ParseDisplayDate(value string, year int) time.Time {
	fields := strings.Fields(strings.ToLower(value))

	day := 1
	if len(fields) > 0 {
		if parsed, err := strconv.Atoi(fields[0]); err == nil {
			day = parsed
		}
	}

	month := time.January
	if len(fields) > 1 {
		if m, ok := ptMonths[fields[1]]; ok {
			month = m
		}
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// CategoryTokens derives the distinct primary category tokens (text before
// the first "/", trimmed and uppercased) in order of first appearance,
// prefixed with the TODOS sentinel.
func CategoryTokens(exercises []domain.Exercise) []string {
	tokens := []string{CategoryAll}
	seen := map[string]bool{}
	for _, ex := range exercises {
		primary := strings.ToUpper(strings.TrimSpace(strings.SplitN(ex.Category, "/", 2)[0]))
		if primary == "" || seen[primary] {
			continue
		}
		seen[primary] = true
		tokens = append(tokens, primary)
	}
	return tokens
}

// FilterExercises applies the category and time-window filters against the
// given reference time.
func FilterExercises(exercises []domain.Exercise, query AnalysisQuery, now time.Time) []domain.Exercise {
	category := strings.ToUpper(strings.TrimSpace(query.Category))
	result := make([]domain.Exercise, 0, len(exercises))

	for _, ex := range exercises {
		if category != "" && category != CategoryAll &&
			!strings.Contains(strings.ToUpper(ex.Category), category) {
			continue
		}
		if !inWindow(ex.LastDate, query, now) {
			continue
		}
		result = append(result, ex)
	}
	return result
}

func inWindow(lastDate string, query AnalysisQuery, now time.Time) bool {
	switch query.Window {
	case WindowCustom:
		if query.Start.IsZero() || query.End.IsZero() {
			return true
		}
		d := ParseDisplayDate(lastDate, now.Year())
		endOfDay := time.Date(query.End.Year(), query.End.Month(), query.End.Day(), 23, 59, 59, 0, query.End.Location())
		return !d.Before(query.Start) && !d.After(endOfDay)
	case WindowWeek, WindowMonth, WindowYear:
		cutoff := now.AddDate(0, 0, -windowDays[query.Window])
		return !ParseDisplayDate(lastDate, now.Year()).Before(cutoff)
	default:
		return true
	}
}

// SortExercises orders rows in place by the selected key: lexicographic for
// the string columns, numeric otherwise. The sort is stable so equal keys
// keep their original order.
func SortExercises(exercises []domain.Exercise, key SortKey, desc bool) {
	less := func(a, b domain.Exercise) bool {
		switch key {
		case SortByCategory:
			return a.Category < b.Category
		case SortByLastWeight:
			return a.LastWeight < b.LastWeight
		case SortByPBWeight:
			return a.PBWeight < b.PBWeight
		case SortByProgress:
			return a.Progress < b.Progress
		default:
			return a.Name < b.Name
		}
	}
	sort.SliceStable(exercises, func(i, j int) bool {
		if desc {
			return less(exercises[j], exercises[i])
		}
		return less(exercises[i], exercises[j])
	})
}

// RangeInsight produces the textual insight for a filtered set: the deep
// coaching analysis, or a fixed no-data message when filters removed
// every row.
func RangeInsight(filtered []domain.Exercise) string {
	if len(filtered) == 0 {
		return emptyRangeInsight
	}
	return DeepAnalysisFor(filtered)
}
