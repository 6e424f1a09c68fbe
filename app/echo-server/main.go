package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seriesArchitect/app/echo-server/router"
	"seriesArchitect/business/catalog"
	"seriesArchitect/business/ingest"
	"seriesArchitect/business/recommender"
	"seriesArchitect/business/session"
	"seriesArchitect/internal/middleware"
	psqlRepo "seriesArchitect/internal/repository/postgres"
	redisRepo "seriesArchitect/internal/repository/redis"
	"seriesArchitect/internal/repository/tmdb"
	"seriesArchitect/internal/rest"
	"seriesArchitect/pkg/config"
	"seriesArchitect/pkg/database"
	redisdb "seriesArchitect/pkg/database/redis"
	"seriesArchitect/pkg/logger"
	"seriesArchitect/pkg/metrics"
	"seriesArchitect/pkg/utils"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const sessionTTL = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Series Architect", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.InitRedis(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}

	// Init repo
	seriesRepo := psqlRepo.NewSeriesRepository(db)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, sessionTTL)
	tmdbRepo := tmdb.NewTMDBRepository(cfg.TMDB)

	// Init service
	featureStore := recommender.NewFeatureStore(seriesRepo)
	recommenderService, err := recommender.NewRecommenderService(
		seriesRepo, seriesRepo, featureStore, recommender.DefaultFeatureWeights(),
	)
	if err != nil {
		logger.Fatal("Failed to build recommender", "error", err)
	}
	catalogService := catalog.NewCatalogService(seriesRepo)
	sessionService := session.NewSessionService(sessionRepo)
	ingestService := ingest.NewIngestService(tmdbRepo, seriesRepo, featureStore)

	// Init handler
	recommendationHandler := rest.NewRecommendationHandler(recommenderService)
	seriesHandler := rest.NewSeriesHandler(catalogService)
	sessionHandler := rest.NewSessionHandler(sessionService)
	ingestHandler := rest.NewIngestHandler(ingestService, featureStore)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupRecommendationRoutes(api, recommendationHandler)
	router.SetupSeriesRoutes(api, seriesHandler)
	router.SetupSessionRoutes(api, sessionHandler)
	router.SetupIngestRoutes(api, ingestHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", err)
	}

	logger.Info("Server stopped")
}
