package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/nexus-hub/engagement-service/internal/cache"
	"github.com/nexus-hub/engagement-service/internal/config"
	"github.com/nexus-hub/engagement-service/internal/repositories"
	"github.com/nexus-hub/engagement-service/internal/services"
	"github.com/nexus-hub/engagement-service/internal/utils"
)

type HandlerManager struct {
	authHandler        *AuthHandler
	userHandler        *UserHandler
	courseHandler      *CourseHandler
	ideaHandler        *IdeaHandler
	achievementHandler *AchievementHandler
	chatHandler        *ChatHandler
	seedHandler        *SeedHandler
	authMiddleware     *JWTAuthMiddleware

	cfg   *config.Config
	repo  repositories.Repository
	cache *cache.CacheManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	cfg *config.Config,
	repo repositories.Repository,
	cacheManager *cache.CacheManager,
) *HandlerManager {
	return &HandlerManager{
		authHandler:        NewAuthHandler(serviceManager.Auth(), logger),
		userHandler:        NewUserHandler(serviceManager.User(), logger),
		courseHandler:      NewCourseHandler(serviceManager.Course(), logger),
		ideaHandler:        NewIdeaHandler(serviceManager.Idea(), logger),
		achievementHandler: NewAchievementHandler(serviceManager.Achievement(), logger),
		chatHandler:        NewChatHandler(serviceManager.Chat(), logger),
		seedHandler:        NewSeedHandler(serviceManager.Seed(), logger),
		authMiddleware:     NewJWTAuthMiddleware(cfg.JWT),
		cfg:                cfg,
		repo:               repo,
		cache:              cacheManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", hm.authHandler.Register)
			auth.POST("/login", hm.authHandler.Login)
		}

		// Seed is for demos and local development only
		if !hm.cfg.IsProduction() {
			api.POST("/seed", hm.seedHandler.Seed)
		}

		// Authenticated routes
		protected := api.Group("")
		protected.Use(hm.authMiddleware.AuthMiddleware())
		{
			user := protected.Group("/user")
			{
				user.GET("/profile", hm.userHandler.GetProfile)
				user.PUT("/profile", hm.userHandler.UpdateProfile)
				user.GET("/dashboard", hm.userHandler.GetDashboard)
			}

			courses := protected.Group("/courses")
			{
				courses.GET("", hm.courseHandler.ListCourses)
				courses.GET("/:id", hm.courseHandler.GetCourse)
				courses.POST("/:id/enroll", hm.courseHandler.Enroll)
				courses.PUT("/:id/progress", hm.courseHandler.UpdateProgress)
			}

			ideas := protected.Group("/ideas")
			{
				ideas.GET("", hm.ideaHandler.ListIdeas)
				ideas.POST("", hm.ideaHandler.CreateIdea)
				ideas.GET("/export", hm.ideaHandler.ExportIdeas)
				ideas.POST("/:id/vote", hm.ideaHandler.ToggleVote)
				ideas.POST("/:id/comments", hm.ideaHandler.AddComment)
			}

			protected.GET("/achievements", hm.achievementHandler.ListAchievements)

			chat := protected.Group("/chat")
			{
				chat.POST("", hm.chatHandler.SendMessage)
				chat.GET("/history", hm.chatHandler.GetHistory)
			}
		}
	}

	// Health check endpoint
	router.GET("/health", hm.healthCheck)

	// Single-page client
	if hm.cfg.StaticDir != "" {
		router.StaticFile("/", filepath.Join(hm.cfg.StaticDir, "index.html"))
		router.StaticFile("/app.js", filepath.Join(hm.cfg.StaticDir, "app.js"))
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	status := http.StatusOK
	overall := "healthy"
	dbStatus := "up"
	if err := hm.repo.Ping(c.Request.Context()); err != nil {
		status = http.StatusServiceUnavailable
		overall = "unhealthy"
		dbStatus = "down"
	}

	cacheStatus := "up"
	if err := hm.cache.HealthCheck(c.Request.Context()); err != nil {
		// Cache is optional; the service degrades without it.
		cacheStatus = "down"
	}

	c.JSON(status, gin.H{
		"status":   overall,
		"service":  "engagement-service",
		"database": dbStatus,
		"cache":    cacheStatus,
	})
}
