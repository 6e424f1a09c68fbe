package rest

import (
	"context"
	"net/http"
	"time"

	"seriesArchitect/business/catalog"
	"seriesArchitect/business/recommender"
	"seriesArchitect/domain"
	"seriesArchitect/pkg/logger"
	"seriesArchitect/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ResponseError struct {
	Message string `json:"message"`
}

type RecommenderService interface {
	GetRecommendations(
		ctx context.Context,
		ratings []domain.Rating,
		filters domain.RecommendationFilters,
		topN int,
		override *recommender.FeatureWeights,
	) (domain.RecommendationResult, error)
}

type RecommendationHandler struct {
	recommenderService RecommenderService
	validator          *validator.Validate
	timeout            time.Duration
}

func NewRecommendationHandler(recommenderService RecommenderService) *RecommendationHandler {
	return &RecommendationHandler{
		recommenderService: recommenderService,
		validator:          validator.New(),
		timeout:            30 * time.Second,
	}
}

type RatingPayload struct {
	TMDBID   uint64 `json:"tmdb_id" validate:"required"`
	Rating   int    `json:"rating" validate:"required,oneof=1 -1"`
	IsAnchor bool   `json:"is_anchor"`
}

// FiltersPayload takes genre main-category names as the UI shows them; they
// are expanded to genre ids before the query runs.
type FiltersPayload struct {
	Languages []string `json:"languages" validate:"omitempty,dive,oneof=en he es ja"`
	Status    []string `json:"status" validate:"omitempty,dive,oneof=Running Ended"`
	Decades   []int    `json:"decades"`
	Genres    []string `json:"genres"`
}

type WeightsPayload struct {
	Genres          float64 `json:"genres"`
	Keywords        float64 `json:"keywords"`
	YearProximity   float64 `json:"year_proximity"`
	OriginCountry   float64 `json:"origin_country"`
	Popularity      float64 `json:"popularity"`
	ContentRating   float64 `json:"content_rating"`
	NumberOfSeasons float64 `json:"number_of_seasons"`
}

type RecommendRequest struct {
	Ratings []RatingPayload `json:"ratings" validate:"required,min=1,dive"`
	Filters FiltersPayload  `json:"filters"`
	TopN    int             `json:"top_n" validate:"gte=0,lte=100"`
	Weights *WeightsPayload `json:"weights"`
}

func (h *RecommendationHandler) GetRecommendations(c echo.Context) error {
	start := time.Now()
	metrics.RecommendRequests.Inc()

	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind recommendation request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate recommendation request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ratings := make([]domain.Rating, 0, len(req.Ratings))
	for _, r := range req.Ratings {
		ratings = append(ratings, domain.Rating{
			TMDBID:   r.TMDBID,
			Rating:   r.Rating,
			IsAnchor: r.IsAnchor,
		})
	}

	filters := domain.RecommendationFilters{
		Languages: req.Filters.Languages,
		Status:    req.Filters.Status,
		Decades:   req.Filters.Decades,
		Genres:    catalog.ExpandGenreCategories(req.Filters.Genres),
	}

	var override *recommender.FeatureWeights
	if req.Weights != nil {
		override = &recommender.FeatureWeights{
			Genres:          req.Weights.Genres,
			Keywords:        req.Weights.Keywords,
			YearProximity:   req.Weights.YearProximity,
			OriginCountry:   req.Weights.OriginCountry,
			Popularity:      req.Weights.Popularity,
			ContentRating:   req.Weights.ContentRating,
			Seasons:         req.Weights.NumberOfSeasons,
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.recommenderService.GetRecommendations(ctx, ratings, filters, req.TopN, override)
	if err != nil {
		if recommender.IsConfigError(err) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to get recommendations", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.RecommendLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}
