package api

import (
	"net/http"

	"fitlog-app/internal/domain"
	"fitlog-app/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires all handlers into the gin engine.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	trainingService service.TrainingService,
	exerciseService service.ExerciseService,
	uploadService service.UploadService,
) {
	authHandler := NewAuthHandler(authService)
	trainingHandler := NewTrainingHandler(trainingService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	uploadHandler := NewUploadHandler(uploadService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.GetMe)
		protected.PATCH("/me", authHandler.UpdateMe)

		// --- Exercise catalog ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.PUT("/:id", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
		}

		// --- Training sessions ---
		trainingGroup := protected.Group("/trainings")
		{
			trainingGroup.GET("", trainingHandler.ListTrainings)
			trainingGroup.POST("", trainingHandler.CreateTraining)
			trainingGroup.GET("/:id", trainingHandler.GetTraining)
			trainingGroup.PATCH("/:id", trainingHandler.UpdateTraining)
			trainingGroup.DELETE("/:id", trainingHandler.DeleteTraining)
		}

		// --- Admin panel ---
		adminGroup := protected.Group("/admin")
		adminGroup.Use(RoleMiddleware(domain.RoleAdmin))
		{
			adminGroup.POST("/uploads/request", uploadHandler.RequestUpload)
			adminGroup.POST("/uploads/confirm", uploadHandler.ConfirmUpload)
			adminGroup.GET("/uploads", uploadHandler.ListUploads)
			adminGroup.GET("/uploads/:id/download", uploadHandler.GetDownloadURL)
			adminGroup.DELETE("/uploads/:id", uploadHandler.DeleteUpload)
		}
	}
}
