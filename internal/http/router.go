package http

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oceandrift/drift-api/internal/usecase"
)

// SetupRouter creates and configures the Gin router. allowedOrigins is a
// comma-separated origin list; empty allows all origins.
func SetupRouter(predictionUC *usecase.PredictionUseCase, allowedOrigins string) *gin.Engine {

	router := gin.Default()

	// Setup CORS middleware.
	corsConfig := cors.DefaultConfig()
	if allowedOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	// Create handler.
	handler := NewHandler(predictionUC)

	// API v1 routes.
	v1 := router.Group("/v1")
	drift := v1.Group("/drift")
	drift.POST("/predictions", handler.PostPrediction)

	// Object profile listing.
	v1.GET("/objects", handler.GetObjects)

	// Health check and metrics.
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
