package rest

import (
	"context"
	"net/http"
	"time"

	"seriesArchitect/business/ingest"
	"seriesArchitect/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type IngestService interface {
	SyncByLanguage(ctx context.Context, language string, maxPages int) (ingest.SyncResult, error)
	RepairCatalog(ctx context.Context) (ingest.SyncResult, error)
}

type FeatureCache interface {
	Reset()
}

// IngestHandler exposes the admin-only catalog maintenance endpoints. Syncs
// can take minutes, so the timeout is generous.
type IngestHandler struct {
	ingestService IngestService
	featureCache  FeatureCache
	validator     *validator.Validate
	timeout       time.Duration
}

func NewIngestHandler(ingestService IngestService, featureCache FeatureCache) *IngestHandler {
	return &IngestHandler{
		ingestService: ingestService,
		featureCache:  featureCache,
		validator:     validator.New(),
		timeout:       30 * time.Minute,
	}
}

type SyncRequest struct {
	Language string `json:"language" validate:"required,oneof=en he es ja"`
	MaxPages int    `json:"max_pages" validate:"gte=0,lte=500"`
}

func (h *IngestHandler) Sync(c echo.Context) error {
	var req SyncRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind sync request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate sync request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.ingestService.SyncByLanguage(ctx, req.Language, req.MaxPages)
	if err != nil {
		logger.Error("Failed to sync catalog", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

func (h *IngestHandler) Repair(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.ingestService.RepairCatalog(ctx)
	if err != nil {
		logger.Error("Failed to repair catalog", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

func (h *IngestHandler) ResetFeatureCache(c echo.Context) error {
	h.featureCache.Reset()
	return c.JSON(http.StatusOK, fres.Response.StatusOK("feature cache reset"))
}
