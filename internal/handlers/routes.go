package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"movie-catalog-api/internal/config"
	"movie-catalog-api/internal/middleware"
	"movie-catalog-api/internal/services"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	MovieService      services.MovieService
	CastMemberService services.MovieService
	Logger            *logrus.Logger
	Version           string

	// HealthCheck reports store connectivity; nil means always healthy
	HealthCheck func(ctx context.Context) error
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, cfg *RouterConfig) {
	movieHandler := NewMovieHandler(cfg.MovieService, cfg.Logger)
	castMemberHandler := NewCastMemberHandler(cfg.CastMemberService, cfg.Logger)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if cfg.HealthCheck != nil {
			if err := cfg.HealthCheck(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "unhealthy",
					"error":  err.Error(),
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   "movie-catalog-api",
			"version":   cfg.Version,
			"timestamp": time.Now().UTC(),
		})
	})

	movies := router.Group("/movies")
	{
		movies.GET("/:movieId", movieHandler.GetMovie)
		movies.GET("/:movieId/cast-members", castMemberHandler.GetCastMembers)
	}
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, rateLimit config.RateLimitConfig, logger *logrus.Logger) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())

	if rateLimit.RequestsPerSecond > 0 {
		router.Use(middleware.RateLimiter(rateLimit.RequestsPerSecond, rateLimit.Burst))
	}

	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.PerformanceMonitor(logger, time.Second))
}
