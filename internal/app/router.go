package app

import (
	"nutricoach_backend/docs"
	"nutricoach_backend/internal/config"
	"nutricoach_backend/internal/middleware"
	"nutricoach_backend/internal/model"
	"nutricoach_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// Authenticated routes
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		goals := authGroup.Group("/goals")
		{
			goals.POST("", c.goal.AddGoal)
			goals.GET("", c.goal.ListGoals)
			goals.PUT("/priorities", c.goal.UpdatePriorities)
			goals.GET("/constraints", c.goal.GetMergedConstraints)
			goals.GET("/planner-context", c.goal.GetPlannerContext)
		}

		authGroup.POST("/meal-plan/preview", c.mealPlan.PreviewPlan)
	}

	// Admin routes
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/analytics/custom-goals", c.analytics.TrendingCustomGoals)
	}
}
