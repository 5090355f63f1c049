package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"evolution/fitness-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

const customRangeDateLayout = "2006-01-02"

// AnalysisHandler holds the analysis service dependency.
type AnalysisHandler struct {
	analysisService service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// AnalysisRowResponse is one row of the analysis table: the exercise plus
// its synthetic trend line.
type AnalysisRowResponse struct {
	ExerciseResponse
	Trend []service.TrendPoint `json:"trend"`
}

// AnalysisResponse is the full analysis screen payload.
type AnalysisResponse struct {
	Categories []string              `json:"categories"`
	Rows       []AnalysisRowResponse `json:"rows"`
	Total      int                   `json:"total"`
	Insight    string                `json:"insight"`
}

// queryFromContext builds the engine query from the request parameters.
// Unknown windows fall back to WEEK; a CUSTOM window without both dates
// filters nothing.
func queryFromContext(c *gin.Context) service.AnalysisQuery {
	query := service.AnalysisQuery{
		Category: c.DefaultQuery("category", service.CategoryAll),
		Window:   service.Window(c.DefaultQuery("window", string(service.WindowWeek))),
		SortKey:  service.SortKey(c.DefaultQuery("sort", string(service.SortByName))),
		Desc:     c.Query("dir") == "desc",
	}
	switch query.Window {
	case service.WindowWeek, service.WindowMonth, service.WindowYear, service.WindowCustom:
	default:
		query.Window = service.WindowWeek
	}
	if query.Window == service.WindowCustom {
		if start, err := time.ParseInLocation(customRangeDateLayout, c.Query("start"), time.Local); err == nil {
			query.Start = start
		}
		if end, err := time.ParseInLocation(customRangeDateLayout, c.Query("end"), time.Local); err == nil {
			query.End = end
		}
	}
	return query
}

// GetAnalysis runs the filter/sort pipeline and returns rows, category
// tokens and the derived insight for the filtered set.
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	result, err := h.analysisService.Analyze(c.Request.Context(), userID, queryFromContext(c))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to run analysis.")
		return
	}

	timeframe := timeframeFromQuery(c)
	rows := make([]AnalysisRowResponse, len(result.Exercises))
	for i, ex := range result.Exercises {
		rows[i] = AnalysisRowResponse{
			ExerciseResponse: MapExerciseToResponse(&ex, timeframe),
			Trend:            service.TrendPoints(ex),
		}
	}

	c.JSON(http.StatusOK, AnalysisResponse{
		Categories: result.Categories,
		Rows:       rows,
		Total:      len(rows),
		Insight:    result.Insight,
	})
}

// ExportAnalysisCSV streams the currently filtered rows as a CSV download.
func (h *AnalysisHandler) ExportAnalysisCSV(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	query := queryFromContext(c)
	filtered, err := h.analysisService.FilteredExercises(c.Request.Context(), userID, query)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to export analysis.")
		return
	}

	filename := fmt.Sprintf("evolution_performance_%s_%s.csv",
		strings.ToLower(query.Category), time.Now().Format(customRangeDateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(service.BuildAnalysisCSV(filtered)))
}
