package api

import (
	"net/http"

	"evolution/fitness-dashboard/internal/domain"
	"evolution/fitness-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// GoalHandler holds the goal service dependency.
type GoalHandler struct {
	goalService service.GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoalRequest defines the expected JSON for creating a goal. The form
// layer owns required-field validation, mirrored here by the binding tags.
type CreateGoalRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// GoalResponse is the DTO for returning goal details.
type GoalResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func mapGoalToResponse(goal *domain.Goal) GoalResponse {
	return GoalResponse{ID: goal.ID, Title: goal.Title, Description: goal.Description}
}

// GetGoals lists the caller's goals, newest first.
func (h *GoalHandler) GetGoals(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	goals, err := h.goalService.GetGoals(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve goals.")
		return
	}
	responses := make([]GoalResponse, len(goals))
	for i, goal := range goals {
		responses[i] = mapGoalToResponse(&goal)
	}
	c.JSON(http.StatusOK, responses)
}

// CreateGoal registers a new training goal.
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	goal, err := h.goalService.CreateGoal(c.Request.Context(), userID, req.Title, req.Description)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create goal.")
		return
	}
	c.JSON(http.StatusCreated, mapGoalToResponse(goal))
}

// DeleteGoal removes a goal; absent ids succeed (idempotent).
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	if err := h.goalService.DeleteGoal(c.Request.Context(), userID, c.Param("id")); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to delete goal.")
		return
	}
	c.Status(http.StatusNoContent)
}
