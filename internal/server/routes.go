package server

import (
	"github.com/labstack/echo/v4"

	"github.com/sciorbit/orbit/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	api := e.Group("/api")

	// Autocomplete
	api.GET("/suggest", routes.GetSuggestionsHandler)

	// Session lifecycle
	api.POST("/sessions", routes.CreateSessionHandler)
	api.GET("/sessions/:id", routes.GetSessionHandler)
	api.DELETE("/sessions/:id", routes.DeleteSessionHandler)

	// Graph interaction and rendering
	api.POST("/sessions/:id/events", routes.PostSessionEventHandler)
	api.POST("/sessions/:id/resize", routes.ResizeSessionHandler)
	api.GET("/sessions/:id/frames", routes.StreamSessionFramesHandler)
	api.GET("/sessions/:id/svg", routes.GetSessionSVGHandler)
}
