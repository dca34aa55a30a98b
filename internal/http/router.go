package http

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/saltline/tidecal/internal/usecase"
)

// SetupRouter creates and configures the Gin router around a generated
// calendar.
func SetupRouter(calendar *usecase.CalendarResponse) *gin.Engine {

	router := gin.Default()

	// Setup CORS middleware.
	corsConfig := cors.DefaultConfig()

	// Get allowed origins from environment variable.
	// Default to allow all origins if not specified.
	allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if allowedOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}

	router.Use(cors.New(corsConfig))

	// Create handler.
	handler := NewHandler(calendar)

	// API v1 routes.
	v1 := router.Group("/v1")
	v1.GET("/station", handler.GetStation)

	calendarGroup := v1.Group("/calendar")
	calendarGroup.GET("", handler.GetCalendar)
	calendarGroup.GET("/:date", handler.GetDay)

	// Health check.
	router.GET("/health", handler.HealthCheck)

	return router
}
