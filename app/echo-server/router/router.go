package router

import (
	"seriesArchitect/internal/middleware"
	"seriesArchitect/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupSeriesRoutes(api *echo.Group, handler *rest.SeriesHandler) {
	series := api.Group("/series")

	series.GET("/search", handler.Search)
	series.GET("/popular", handler.GetPopular)
	series.GET("/:id", handler.GetByID)

	api.GET("/stats", handler.GetStats)
	api.GET("/filters", handler.GetFilterOptions)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler) {
	reco := api.Group("/recommendations")
	reco.POST("", handler.GetRecommendations)
}

func SetupSessionRoutes(api *echo.Group, handler *rest.SessionHandler) {
	sessions := api.Group("/sessions")

	sessions.POST("", handler.Create)
	sessions.GET("/:id", handler.Get)
	sessions.POST("/:id/ratings", handler.AddRating)
	sessions.DELETE("/:id/ratings/:tmdb_id", handler.RemoveRating)
	sessions.DELETE("/:id", handler.Clear)
}

func SetupIngestRoutes(api *echo.Group, handler *rest.IngestHandler) {
	admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.AdminOnly())

	admin.POST("/ingest/sync", handler.Sync)
	admin.POST("/ingest/repair", handler.Repair)
	admin.POST("/cache/reset", handler.ResetFeatureCache)
}
