// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Abhi-Verma2005/healthBackend/internal/config"
	"github.com/Abhi-Verma2005/healthBackend/internal/handlers"
	"github.com/Abhi-Verma2005/healthBackend/internal/middleware"
	"github.com/Abhi-Verma2005/healthBackend/internal/services"
	"github.com/Abhi-Verma2005/healthBackend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)
	authService := services.NewAuthService(db, cfg)
	dailyLogService := services.NewDailyLogService(db)
	userService := services.NewUserService(db)
	blogService := services.NewBlogService(db)
	insightService := services.NewInsightService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg)
	dailyLogHandler := handlers.NewDailyLogHandler(dailyLogService)
	userHandler := handlers.NewUserHandler(userService, storageService, authHandler)
	blogHandler := handlers.NewBlogHandler(blogService)
	insightHandler := handlers.NewInsightHandler(insightService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	authRequired := middleware.AuthRequired(db)
	optionalAuth := middleware.OptionalAuth(db)

	// Authentication routes
	auth := r.Group("/")
	auth.Use(middleware.AuthRateLimit())
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/signin", authHandler.Signin)
		auth.POST("/logout", authHandler.Logout)
	}
	r.GET("/verify-auth", authRequired, authHandler.VerifyAuth)

	// Daily log routes
	logs := r.Group("/")
	logs.Use(authRequired)
	{
		logs.POST("/daily-log", dailyLogHandler.Upsert)
		logs.GET("/daily-log/today", dailyLogHandler.Today)
		logs.GET("/daily-log/weekly", dailyLogHandler.Weekly)
		logs.GET("/daily-log/:category", dailyLogHandler.CategoryHistory)
		logs.GET("/daily-logs", dailyLogHandler.Range)
		logs.GET("/daily-progress", dailyLogHandler.Progress)
	}

	// Goal routes
	goal := r.Group("/health-goal")
	goal.Use(authRequired)
	{
		goal.POST("", userHandler.SetHealthGoal)
		goal.GET("", userHandler.GetHealthGoal)
	}

	// Insight routes
	insights := r.Group("/")
	insights.Use(authRequired)
	{
		insights.GET("/health-scores", insightHandler.HealthScores)
		insights.GET("/health-insights", insightHandler.HealthInsights)
	}

	// Profile routes
	profile := r.Group("/profile")
	profile.Use(authRequired)
	{
		profile.GET("", userHandler.GetProfile)
		profile.PUT("", userHandler.UpdateProfile)
		profile.DELETE("", userHandler.DeleteAccount)
		profile.POST("/avatar", middleware.UploadRateLimit(), userHandler.UploadAvatar)
	}

	// Blog routes
	blogs := r.Group("/blogs")
	{
		blogs.GET("", optionalAuth, blogHandler.List)
		blogs.GET("/:id", optionalAuth, blogHandler.Get)
		blogs.GET("/:id/comments", blogHandler.ListComments)

		blogs.POST("", authRequired, blogHandler.Create)
		blogs.PUT("/:id", authRequired, blogHandler.Update)
		blogs.DELETE("/:id", authRequired, blogHandler.Delete)
		blogs.POST("/:id/like", authRequired, blogHandler.ToggleLike)
		blogs.POST("/:id/comments", authRequired, blogHandler.AddComment)
	}
	r.DELETE("/comments/:id", authRequired, blogHandler.DeleteComment)

	return r
}
