package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/thehaffk/WorkoutTracker/internal/handlers"
	"github.com/thehaffk/WorkoutTracker/internal/middleware"
	"github.com/thehaffk/WorkoutTracker/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.RegisterUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.PATCH("/me", middleware.AuthMiddleware(), handlers.UpdateUser)
		}

		exercises := api.Group("/exercises", middleware.AuthMiddleware())
		{
			exercises.GET("", handlers.ListExercises)
			exercises.POST("", handlers.CreateExercise)
			exercises.GET("/:exercise_id", handlers.GetExercise)
			exercises.PUT("/:exercise_id", handlers.UpdateExercise)
			exercises.DELETE("/:exercise_id", handlers.DeleteExercise)

			// Attachments and export
			exercises.GET("/:exercise_id/attachments", handlers.ListAttachments)
			exercises.POST("/:exercise_id/attachments", handlers.UploadAttachment)
			exercises.GET("/:exercise_id/export", handlers.ExportExercise)
		}

		attachments := api.Group("/attachments", middleware.AuthMiddleware())
		{
			attachments.GET("/:attachment_id/download", handlers.DownloadAttachment)
			attachments.DELETE("/:attachment_id", handlers.DeleteAttachment)
		}

		workouts := api.Group("/workouts", middleware.AuthMiddleware())
		{
			workouts.GET("", handlers.ListWorkouts)
			workouts.POST("", handlers.CreateWorkout)
			workouts.GET("/:workout_id", handlers.GetWorkout)
			workouts.PUT("/:workout_id", handlers.UpdateWorkout)
			workouts.DELETE("/:workout_id", handlers.DeleteWorkout)

			workouts.POST("/:workout_id/exercises", handlers.AddWorkoutExercise)
			workouts.DELETE("/:workout_id/exercises/:we_id", handlers.RemoveWorkoutExercise)

			workouts.GET("/:workout_id/export", handlers.ExportWorkout)
		}

		reports := api.Group("/reports", middleware.AuthMiddleware())
		{
			reports.GET("/volume", handlers.VolumeReportHandler)
			reports.GET("/records", handlers.RecordsReportHandler)
		}
	}

	return r
}
