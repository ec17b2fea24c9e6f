package api

import (
	"context"
	"net/http"
	"time"

	"lazyfood/internal/api/handlers/health"
	plannerHandler "lazyfood/internal/api/handlers/planner"
	recipeHandler "lazyfood/internal/api/handlers/recipe"
	"lazyfood/internal/api/middleware"
	"lazyfood/internal/core/ai/service"
	"lazyfood/internal/core/catalog"
	plannerService "lazyfood/internal/core/planner"
	recipeService "lazyfood/internal/core/recipe"
	"lazyfood/internal/infrastructure/config"
	"lazyfood/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	timeoutDuration = 120 * time.Second
	// 10MB request body cap.
	maxBodySize = 10 << 20
)

// SetupRouter builds the gin engine: middleware stack, domain services and
// routes. The AI service and catalog store are owned by the caller.
func SetupRouter(cfg *config.Config, aiService *service.Service, store catalog.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))
	router.Use(middleware.Deduplication(cfg))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("model", cfg.Gemini.Model),
		zap.String("database_driver", cfg.Database.Driver),
		zap.Duration("timeout", timeoutDuration),
	)

	recommendationSvc := recipeService.NewRecommendationService(aiService, store, cfg)
	stepSvc := recipeService.NewStepService(aiService, store, cfg)
	planningSvc := plannerService.NewPlanningService(aiService, store, cfg)

	// Per-request timeout, plus the context values the health endpoint reads.
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)
		c.Set("ai_service", aiService)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeGatewayTimeout,
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	api := router.Group("/api/v1")
	{
		recipes := recipeHandler.NewHandler(recommendationSvc, stepSvc)
		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.POST("/recommend", recipes.HandleRecommend)
			recipeGroup.GET("/history", recipes.HandleHistory)
			recipeGroup.POST("/:id/steps", recipes.HandleGenerateSteps)
			recipeGroup.GET("/:id/steps", recipes.HandleSteps)
		}

		plans := plannerHandler.NewHandler(planningSvc)
		plannerGroup := api.Group("/planner")
		{
			plannerGroup.POST("/suggest", plans.HandleSuggest)
			plannerGroup.GET("/plan", plans.HandlePlan)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
