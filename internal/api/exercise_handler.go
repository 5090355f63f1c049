package api

import (
	"errors"
	"net/http"

	"evolution/fitness-dashboard/internal/domain"
	"evolution/fitness-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// ExerciseRequest defines the JSON accepted when creating or updating an
// exercise. Progress and history are server-owned and not accepted here.
type ExerciseRequest struct {
	Name       string  `json:"name" binding:"required"`
	Category   string  `json:"category"`
	LastWeight float64 `json:"lastWeight"`
	LastDate   string  `json:"lastDate"`
	PBWeight   float64 `json:"pbWeight"`
	PBDate     string  `json:"pbDate"`
	AvgVolume  float64 `json:"avgVolume"`
}

// WeightLogResponse is one history entry of an exercise.
type WeightLogResponse struct {
	Weight float64 `json:"weight"`
	Date   string  `json:"date"`
	Type   string  `json:"type"`
}

// ExerciseResponse is the DTO for returning exercise details. DisplayVolume
// carries the timeframe-scaled volume; AvgVolume stays the stored weekly one.
type ExerciseResponse struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Category      string              `json:"category"`
	LastWeight    float64             `json:"lastWeight"`
	LastDate      string              `json:"lastDate"`
	PBWeight      float64             `json:"pbWeight"`
	PBDate        string              `json:"pbDate"`
	AvgVolume     float64             `json:"avgVolume"`
	DisplayVolume float64             `json:"displayVolume"`
	Progress      int                 `json:"progress"`
	History       []WeightLogResponse `json:"history"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise, timeframe service.Timeframe) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	history := make([]WeightLogResponse, 0, len(ex.History))
	for _, entry := range ex.History {
		history = append(history, WeightLogResponse{
			Weight: entry.Weight,
			Date:   entry.Date,
			Type:   string(entry.Type),
		})
	}
	return ExerciseResponse{
		ID:            ex.ID,
		Name:          ex.Name,
		Category:      ex.Category,
		LastWeight:    ex.LastWeight,
		LastDate:      ex.LastDate,
		PBWeight:      ex.PBWeight,
		PBDate:        ex.PBDate,
		AvgVolume:     ex.AvgVolume,
		DisplayVolume: service.DisplayVolume(ex.AvgVolume, timeframe),
		Progress:      ex.Progress,
		History:       history,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to response DTOs.
func MapExercisesToResponse(exercises []domain.Exercise, timeframe service.Timeframe) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i, ex := range exercises {
		responses[i] = MapExerciseToResponse(&ex, timeframe)
	}
	return responses
}

// timeframeFromQuery reads ?timeframe=, defaulting to the weekly view.
func timeframeFromQuery(c *gin.Context) service.Timeframe {
	if service.Timeframe(c.Query("timeframe")) == service.TimeframeMonth {
		return service.TimeframeMonth
	}
	return service.TimeframeWeek
}

// --- Handler Methods ---

// GetExercises returns the caller's exercises with timeframe-scaled volume.
func (h *ExerciseHandler) GetExercises(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	exercises, err := h.exerciseService.GetExercises(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises.")
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises, timeframeFromQuery(c)))
}

// CreateExercise registers a new exercise with an empty history.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), userID, service.ExerciseInput{
		Name:       req.Name,
		Category:   req.Category,
		LastWeight: req.LastWeight,
		LastDate:   req.LastDate,
		PBWeight:   req.PBWeight,
		PBDate:     req.PBDate,
		AvgVolume:  req.AvgVolume,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create exercise.")
		}
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise, timeframeFromQuery(c)))
}

// UpdateExercise applies a patch; superseded load/PR values land in the
// history log.
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	exercise, err := h.exerciseService.UpdateExercise(c.Request.Context(), userID, c.Param("id"), domain.ExercisePatch{
		Name:       req.Name,
		Category:   req.Category,
		LastWeight: req.LastWeight,
		LastDate:   req.LastDate,
		PBWeight:   req.PBWeight,
		PBDate:     req.PBDate,
		AvgVolume:  req.AvgVolume,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusNotFound, "Exercise not found.")
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update exercise.")
		}
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise, timeframeFromQuery(c)))
}

// DeleteExercise removes an exercise; deleting an absent id succeeds.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	if err := h.exerciseService.DeleteExercise(c.Request.Context(), userID, c.Param("id")); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to delete exercise.")
		return
	}
	c.Status(http.StatusNoContent)
}
