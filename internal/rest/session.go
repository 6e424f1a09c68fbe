package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"seriesArchitect/domain"
	"seriesArchitect/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type SessionService interface {
	Create(ctx context.Context) (*domain.RatingSession, error)
	Get(ctx context.Context, sessionID string) (*domain.RatingSession, error)
	AddRating(ctx context.Context, sessionID string, rating domain.Rating) (*domain.RatingSession, error)
	RemoveRating(ctx context.Context, sessionID string, tmdbID uint64) (*domain.RatingSession, error)
	Clear(ctx context.Context, sessionID string) error
}

type SessionHandler struct {
	sessionService SessionService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewSessionHandler(sessionService SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		validator:      validator.New(),
		timeout:        5 * time.Second,
	}
}

type AddRatingRequest struct {
	TMDBID   uint64 `json:"tmdb_id" validate:"required"`
	Rating   int    `json:"rating" validate:"required,oneof=1 -1"`
	IsAnchor bool   `json:"is_anchor"`
}

func (h *SessionHandler) Create(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	session, err := h.sessionService.Create(ctx)
	if err != nil {
		logger.Error("Failed to create session", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(session))
}

func (h *SessionHandler) Get(c echo.Context) error {
	sessionID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	session, err := h.sessionService.Get(ctx, sessionID)
	if err != nil {
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(session))
}

func (h *SessionHandler) AddRating(c echo.Context) error {
	sessionID := c.Param("id")

	var req AddRatingRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind rating request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate rating request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	session, err := h.sessionService.AddRating(ctx, sessionID, domain.Rating{
		TMDBID:   req.TMDBID,
		Rating:   req.Rating,
		IsAnchor: req.IsAnchor,
	})
	if err != nil {
		logger.Error("Failed to add rating", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(session))
}

func (h *SessionHandler) RemoveRating(c echo.Context) error {
	sessionID := c.Param("id")

	tmdbID, err := strconv.ParseUint(c.Param("tmdb_id"), 10, 64)
	if err != nil {
		logger.Error("Invalid series id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	session, err := h.sessionService.RemoveRating(ctx, sessionID, tmdbID)
	if err != nil {
		logger.Error("Failed to remove rating", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(session))
}

func (h *SessionHandler) Clear(c echo.Context) error {
	sessionID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.sessionService.Clear(ctx, sessionID); err != nil {
		logger.Error("Failed to clear session", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("session cleared"))
}
