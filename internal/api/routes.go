package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"condohub/server/config"
)

// NewRouter builds the gin engine with logging, recovery and CORS.
func NewRouter(cfg config.ServerConfig, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", HeaderUserRole, HeaderCondoID},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	return router
}

func SetupRoutes(router *gin.Engine, handler *Handler, resolver TenantResolver) {
	managers := RequireTenant(resolver, RolePlatformAdmin, RoleManagement)
	staff := RequireTenant(resolver, RolePlatformAdmin, RoleManagement, RoleSecurity)

	api := router.Group("/api")
	{
		api.GET("/health", handler.Health)

		condo := api.Group("/condos/:condo_id")
		{
			condo.POST("/configurations", managers, handler.CreateConfiguration)
			condo.GET("/configurations/:configuration_id", managers, handler.GetConfiguration)

			condo.POST("/units/generate", managers, handler.GenerateUnits)
			condo.POST("/units/preview", managers, handler.PreviewUnits)
			condo.POST("/units/analyze", managers, handler.AnalyzeUnits)
			condo.GET("/units", staff, handler.ListUnits)
		}
	}
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("Handled request")
	}
}
