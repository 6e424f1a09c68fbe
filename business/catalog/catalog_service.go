package catalog

import (
	"context"
	"errors"
	"fmt"
	"seriesArchitect/domain"
	"seriesArchitect/pkg/logger"
	"sort"
	"strings"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 50
)

var ErrSeriesNotFound = errors.New("series not found")

// CatalogRepository covers the read-side catalog queries the browsing
// endpoints need.
type CatalogRepository interface {
	Search(ctx context.Context, query string, limit int) ([]domain.SeriesSummary, error)
	GetPopular(ctx context.Context, limit int, language string) ([]domain.SeriesSummary, error)
	GetDetails(ctx context.Context, tmdbID uint64) (*domain.SeriesDetails, error)
	Stats(ctx context.Context) (domain.CatalogStats, error)
}

type CatalogService struct {
	catalogRepo CatalogRepository
}

func NewCatalogService(catalogRepo CatalogRepository) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
	}
}

func (s *CatalogService) Search(ctx context.Context, query string, limit int) ([]domain.SeriesSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SeriesSummary{}, nil
	}

	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	results, err := s.catalogRepo.Search(ctx, query, limit)
	if err != nil {
		logger.Error("failed to search catalog", err)
		return nil, err
	}

	return results, nil
}

func (s *CatalogService) GetPopular(ctx context.Context, limit int, language string) ([]domain.SeriesSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	results, err := s.catalogRepo.GetPopular(ctx, limit, language)
	if err != nil {
		logger.Error("failed to list popular series", err)
		return nil, err
	}

	return results, nil
}

func (s *CatalogService) GetDetails(ctx context.Context, tmdbID uint64) (*domain.SeriesDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	details, err := s.catalogRepo.GetDetails(ctx, tmdbID)
	if err != nil {
		logger.Error("failed to load series details", err)
		return nil, err
	}
	if details == nil {
		return nil, ErrSeriesNotFound
	}

	return details, nil
}

func (s *CatalogService) Stats(ctx context.Context) (domain.CatalogStats, error) {
	if err := ctx.Err(); err != nil {
		return domain.CatalogStats{}, fmt.Errorf("context error: %w", err)
	}

	stats, err := s.catalogRepo.Stats(ctx)
	if err != nil {
		logger.Error("failed to load catalog stats", err)
		return domain.CatalogStats{}, err
	}

	return stats, nil
}

// FilterOptions describes the values the filter UI can offer.
type FilterOptions struct {
	Genres    []string          `json:"genres"`
	Languages map[string]string `json:"languages"`
	Statuses  []string          `json:"statuses"`
	Decades   []int             `json:"decades"`
}

func (s *CatalogService) GetFilterOptions() FilterOptions {
	genres := make([]string, 0, len(GenreCategories))
	for name := range GenreCategories {
		genres = append(genres, name)
	}
	sort.Strings(genres)

	return FilterOptions{
		Genres:    genres,
		Languages: LanguageNames,
		Statuses:  ValidStatuses,
		Decades:   ValidDecades,
	}
}
