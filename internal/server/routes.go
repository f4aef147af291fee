package server

import (
	"github.com/johnkimo5/architect-design-ai/internal/server/middleware"
	"github.com/johnkimo5/architect-design-ai/internal/server/routes"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Board routes
	apiRoutes.GET("/boards", routes.GetBoardsHandler)
	apiRoutes.POST("/boards", routes.CreateBoardHandler)
	apiRoutes.GET("/boards/:id", routes.GetBoardHandler)
	apiRoutes.PATCH("/boards/:id", routes.RenameBoardHandler)
	apiRoutes.DELETE("/boards/:id", routes.DeleteBoardHandler)
	apiRoutes.PUT("/boards/:id/snapshot", routes.SaveSnapshotHandler)

	// Grading route
	apiRoutes.POST("/boards/:id/grade", routes.GradeBoardHandler)
}
