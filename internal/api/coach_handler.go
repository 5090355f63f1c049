package api

import (
	"net/http"

	"evolution/fitness-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// CoachHandler holds the coach service dependency.
type CoachHandler struct {
	coachService service.CoachService
}

// NewCoachHandler creates a new CoachHandler.
func NewCoachHandler(coachService service.CoachService) *CoachHandler {
	return &CoachHandler{coachService: coachService}
}

// CoachMessageResponse wraps a single coaching message.
type CoachMessageResponse struct {
	Message string `json:"message"`
}

// GetTip returns the short coaching tip for the user's current exercises.
func (h *CoachHandler) GetTip(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	tip, err := h.coachService.ShortTip(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate coaching tip.")
		return
	}

	c.JSON(http.StatusOK, CoachMessageResponse{Message: tip})
}

// GetAnalysis returns the deep trend report over the user's exercises.
func (h *CoachHandler) GetAnalysis(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	report, err := h.coachService.DeepAnalysis(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate trend report.")
		return
	}

	c.JSON(http.StatusOK, CoachMessageResponse{Message: report})
}
