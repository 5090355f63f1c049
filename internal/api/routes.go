package api

import (
	"net/http"

	"evolution/fitness-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	exerciseService service.ExerciseService,
	goalService service.GoalService,
	profileService service.ProfileService,
	analysisService service.AnalysisService,
	coachService service.CoachService,
	exportService service.ExportService,
) {

	exerciseHandler := NewExerciseHandler(exerciseService)
	goalHandler := NewGoalHandler(goalService)
	profileHandler := NewProfileHandler(profileService)
	analysisHandler := NewAnalysisHandler(analysisService)
	coachHandler := NewCoachHandler(coachService)
	exportHandler := NewExportHandler(exportService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.GetExercises)
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.PUT("/:id", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
		}

		goalGroup := protected.Group("/goals")
		{
			goalGroup.GET("", goalHandler.GetGoals)
			goalGroup.POST("", goalHandler.CreateGoal)
			goalGroup.DELETE("/:id", goalHandler.DeleteGoal)
		}

		profileGroup := protected.Group("/profile")
		{
			profileGroup.GET("", profileHandler.GetProfile)
			profileGroup.PUT("", profileHandler.UpdateProfile)
			profileGroup.POST("/photo", profileHandler.CreatePhotoUpload)
		}

		analysisGroup := protected.Group("/analysis")
		{
			analysisGroup.GET("", analysisHandler.GetAnalysis)
			analysisGroup.GET("/export", analysisHandler.ExportAnalysisCSV)
		}

		coachGroup := protected.Group("/coach")
		{
			coachGroup.GET("/tip", coachHandler.GetTip)
			coachGroup.GET("/analysis", coachHandler.GetAnalysis)
		}

		exportGroup := protected.Group("/export")
		{
			exportGroup.GET("/csv", exportHandler.ExportDashboardCSV)
			exportGroup.GET("/report", exportHandler.ExportDashboardReport)
		}
	}
}
