package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"drivebook/handlers"
	"drivebook/middleware"
)

// RegisterInstructorRoutes registers instructor account, policy, and
// availability management endpoints.
func RegisterInstructorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/instructors")
	{
		api.POST("/register", hb.RegisterInstructorHandler)
		api.POST("/login", hb.AuthenticateInstructorHandler)

		// Public profile lookup for the marketplace listing.
		api.GET("/id/:instructorID", hb.GetInstructorByIDHandler)

		// Protected routes (require an instructor token).
		protected := api.Group("")
		protected.Use(middleware.JWTAuthInstructorMiddleware(hb.InstructorRepo))
		protected.GET("/me/policy", hb.GetPolicyHandler)
		protected.PUT("/me/policy", hb.UpdatePolicyHandler)
		protected.GET("/me/availability", hb.GetWeeklyHandler)
		protected.PUT("/me/availability", hb.ReplaceWeeklyHandler)
		protected.GET("/me/overrides", hb.ListOverridesHandler)
		protected.POST("/me/overrides", hb.CreateOverrideHandler)
		protected.DELETE("/me/overrides/:date", hb.DeleteOverrideHandler)
		protected.GET("/me/lessons", hb.ListInstructorLessonsHandler)
		protected.POST("/me/lessons/:lessonID/complete", hb.CompleteLessonHandler)
		protected.POST("/me/lessons/:lessonID/no-show", hb.NoShowHandler)
	}
}

// RegisterLearnerRoutes registers learner account and lesson endpoints.
func RegisterLearnerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/learners")
	{
		api.POST("/register", hb.RegisterLearnerHandler)
		api.POST("/login", hb.AuthenticateLearnerHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthLearnerMiddleware(hb.LearnerRepo))
		protected.GET("/me", hb.GetMeHandler)
		protected.GET("/me/lessons", hb.ListLearnerLessonsHandler)
	}
}

// RegisterSlotRoutes registers the public slot projection endpoint.
func RegisterSlotRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/slots")
	{
		api.GET("/:instructorID", hb.GetAvailableSlotsHandler)
	}
}

// RegisterLessonRoutes sets up the learner-side lesson lifecycle endpoints.
func RegisterLessonRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/lessons")
	{
		api.Use(middleware.JWTAuthLearnerMiddleware(hb.LearnerRepo))
		api.POST("", hb.BookLessonHandler)
		api.GET("/:lessonID/cancellation-preview", hb.PreviewCancellationHandler)
		api.POST("/:lessonID/cancel", hb.CancelLessonHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Drivebook"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterInstructorRoutes(r, hb)
	RegisterLearnerRoutes(r, hb)
	RegisterSlotRoutes(r, hb)
	RegisterLessonRoutes(r, hb)
	RegisterHealthRoute(r)
}
