package api

import (
	"net/http"

	"trip-planner/internal/api/middleware"
	"trip-planner/internal/modules/editor"

	"github.com/labstack/echo/v4"
)

// SetupRoutes sets up all the API endpoints for the application.
func SetupRoutes(e *echo.Echo, jwtSecret string, editorHandler *editor.Handler) {
	// Initialize the JWT authentication middleware
	authMiddleware := middleware.JWTMAuth(jwtSecret)

	// --- Public Routes ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Trip planner editor API"})
	})

	// --- Editor Routes ---
	apiGroup := e.Group("/api", authMiddleware)
	editor.RegisterRoutes(apiGroup, editorHandler)
}
