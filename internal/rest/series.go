package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"seriesArchitect/business/catalog"
	"seriesArchitect/domain"
	"seriesArchitect/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type CatalogService interface {
	Search(ctx context.Context, query string, limit int) ([]domain.SeriesSummary, error)
	GetPopular(ctx context.Context, limit int, language string) ([]domain.SeriesSummary, error)
	GetDetails(ctx context.Context, tmdbID uint64) (*domain.SeriesDetails, error)
	Stats(ctx context.Context) (domain.CatalogStats, error)
	GetFilterOptions() catalog.FilterOptions
}

type SeriesHandler struct {
	catalogService CatalogService
	timeout        time.Duration
}

func NewSeriesHandler(catalogService CatalogService) *SeriesHandler {
	return &SeriesHandler{
		catalogService: catalogService,
		timeout:        10 * time.Second,
	}
}

func (h *SeriesHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	results, err := h.catalogService.Search(ctx, query, limit)
	if err != nil {
		logger.Error("Failed to search series", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(results))
}

func (h *SeriesHandler) GetPopular(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	language := c.QueryParam("language")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	results, err := h.catalogService.GetPopular(ctx, limit, language)
	if err != nil {
		logger.Error("Failed to list popular series", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(results))
}

func (h *SeriesHandler) GetByID(c echo.Context) error {
	idStr := c.Param("id")

	tmdbID, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		logger.Error("Invalid series id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	details, err := h.catalogService.GetDetails(ctx, tmdbID)
	if err != nil {
		if errors.Is(err, catalog.ErrSeriesNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to load series details", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(details))
}

func (h *SeriesHandler) GetStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stats, err := h.catalogService.Stats(ctx)
	if err != nil {
		logger.Error("Failed to load catalog stats", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(stats))
}

func (h *SeriesHandler) GetFilterOptions(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.catalogService.GetFilterOptions()))
}
