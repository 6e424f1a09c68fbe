package postgres

import (
	"context"
	"errors"
	"fmt"
	"seriesArchitect/domain"
	"strings"

	"gorm.io/gorm"
)

// Safety cap on the candidate pool handed to the recommendation engine. The
// engine's exclusion pass is quadratic in practice, so the pool must stay
// bounded here.
const maxCandidates = 10000

type SeriesRepository struct {
	DB *gorm.DB
}

func NewSeriesRepository(db *gorm.DB) *SeriesRepository {
	return &SeriesRepository{
		DB: db,
	}
}

// GetSeries returns (nil, nil) for an unknown id. Absence is handled by the
// recommendation engine, not treated as a failure.
func (r *SeriesRepository) GetSeries(ctx context.Context, tmdbID uint64) (*domain.Series, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var series domain.Series

	err := r.DB.WithContext(ctx).Where("tmdb_id = ?", tmdbID).First(&series).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find series: %w", err)
	}

	return &series, nil
}

func (r *SeriesRepository) GetGenreIDs(ctx context.Context, tmdbID uint64) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []int64
	err := r.DB.WithContext(ctx).
		Model(&domain.SeriesGenre{}).
		Where("tmdb_id = ?", tmdbID).
		Pluck("genre_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find series genres: %w", err)
	}

	return ids, nil
}

// GetKeywordIDs returns the full keyword list in upstream relevance order;
// top-K truncation is the engine's job.
func (r *SeriesRepository) GetKeywordIDs(ctx context.Context, tmdbID uint64) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []int64
	err := r.DB.WithContext(ctx).
		Model(&domain.SeriesKeyword{}).
		Where("tmdb_id = ?", tmdbID).
		Order("position").
		Pluck("keyword_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find series keywords: %w", err)
	}

	return ids, nil
}

func (r *SeriesRepository) GetGenreNames(ctx context.Context, tmdbID uint64) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var names []string
	err := r.DB.WithContext(ctx).
		Table("series_genres AS sg").
		Joins("JOIN genres g ON g.genre_id = sg.genre_id").
		Where("sg.tmdb_id = ?", tmdbID).
		Order("g.genre_name").
		Pluck("g.genre_name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find genre names: %w", err)
	}

	return names, nil
}

// ApplyFilters resolves a filter spec to candidate ids: AND across filter
// categories, OR within each. Results come back ordered by popularity so the
// engine's stable tie-break favors popular series.
func (r *SeriesRepository) ApplyFilters(ctx context.Context, filters domain.RecommendationFilters) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx).
		Table("series AS s").
		Select("DISTINCT s.tmdb_id, s.popularity")

	if len(filters.Languages) > 0 {
		q = q.Where("s.original_language IN ?", filters.Languages)
	}

	if len(filters.Status) > 0 {
		q = q.Where("s.status IN ?", filters.Status)
	}

	if len(filters.Decades) > 0 {
		cond, args := decadeConditions(filters.Decades)
		q = q.Where(cond, args...)
	}

	if len(filters.Genres) > 0 {
		q = q.Joins("JOIN series_genres sg ON sg.tmdb_id = s.tmdb_id").
			Where("sg.genre_id IN ?", filters.Genres)
	}

	var rows []struct {
		TMDBID     uint64  `gorm:"column:tmdb_id"`
		Popularity float64 `gorm:"column:popularity"`
	}

	err := q.Order("s.popularity DESC, s.tmdb_id").
		Limit(maxCandidates).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to apply filters: %w", err)
	}

	ids := make([]uint64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.TMDBID)
	}

	return ids, nil
}

// A series belongs to a decade when it started in it, ended in it, or was
// still running through it.
func decadeConditions(decades []int) (string, []interface{}) {
	conditions := make([]string, 0, len(decades))
	var args []interface{}

	for _, decade := range decades {
		conditions = append(conditions, `(
			(EXTRACT(YEAR FROM s.first_air_date) >= ? AND EXTRACT(YEAR FROM s.first_air_date) < ?) OR
			(s.last_air_date IS NOT NULL AND EXTRACT(YEAR FROM s.last_air_date) >= ? AND EXTRACT(YEAR FROM s.last_air_date) < ?) OR
			(EXTRACT(YEAR FROM s.first_air_date) < ? AND (s.last_air_date IS NULL OR EXTRACT(YEAR FROM s.last_air_date) >= ?))
		)`)
		args = append(args, decade, decade+10, decade, decade+10, decade+10, decade)
	}

	return "(" + strings.Join(conditions, " OR ") + ")", args
}

func (r *SeriesRepository) Search(ctx context.Context, query string, limit int) ([]domain.SeriesSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	pattern := "%" + query + "%"

	var series []domain.Series
	err := r.DB.WithContext(ctx).
		Where("title_en ILIKE ? OR title_he ILIKE ?", pattern, pattern).
		Order("popularity DESC").
		Limit(limit).
		Find(&series).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search series: %w", err)
	}

	return toSummaries(series), nil
}

func (r *SeriesRepository) GetPopular(ctx context.Context, limit int, language string) ([]domain.SeriesSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx).Order("popularity DESC").Limit(limit)
	if language != "" {
		q = q.Where("original_language = ?", language)
	}

	var series []domain.Series
	if err := q.Find(&series).Error; err != nil {
		return nil, fmt.Errorf("failed to find popular series: %w", err)
	}

	return toSummaries(series), nil
}

func toSummaries(series []domain.Series) []domain.SeriesSummary {
	summaries := make([]domain.SeriesSummary, 0, len(series))
	for _, s := range series {
		summary := domain.SeriesSummary{
			TMDBID:           s.TMDBID,
			TitleEn:          s.TitleEn,
			TitleHe:          s.TitleHe,
			PosterPath:       s.PosterPath,
			OriginalLanguage: s.OriginalLanguage,
			Popularity:       s.Popularity,
		}
		if s.FirstAirDate != nil {
			summary.FirstAirDate = s.FirstAirDate.Format("2006-01-02")
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// GetDetails returns the full series row with genre names, or (nil, nil) for
// an unknown id.
func (r *SeriesRepository) GetDetails(ctx context.Context, tmdbID uint64) (*domain.SeriesDetails, error) {
	series, err := r.GetSeries(ctx, tmdbID)
	if err != nil {
		return nil, err
	}
	if series == nil {
		return nil, nil
	}

	genres, err := r.GetGenreNames(ctx, tmdbID)
	if err != nil {
		return nil, err
	}

	return &domain.SeriesDetails{
		Series: *series,
		Genres: genres,
	}, nil
}

func (r *SeriesRepository) Stats(ctx context.Context) (domain.CatalogStats, error) {
	if err := ctx.Err(); err != nil {
		return domain.CatalogStats{}, fmt.Errorf("context error: %w", err)
	}

	stats := domain.CatalogStats{
		ByLanguage: make(map[string]int64),
		ByStatus:   make(map[string]int64),
		ByDecade:   make(map[int]int64),
		TopGenres:  make(map[string]int64),
	}

	if err := r.DB.WithContext(ctx).Model(&domain.Series{}).Count(&stats.TotalSeries).Error; err != nil {
		return domain.CatalogStats{}, fmt.Errorf("failed to count series: %w", err)
	}

	var langRows []struct {
		OriginalLanguage string
		Count            int64
	}
	err := r.DB.WithContext(ctx).Model(&domain.Series{}).
		Select("original_language, COUNT(*) AS count").
		Group("original_language").
		Scan(&langRows).Error
	if err != nil {
		return domain.CatalogStats{}, fmt.Errorf("failed to count by language: %w", err)
	}
	for _, row := range langRows {
		stats.ByLanguage[row.OriginalLanguage] = row.Count
	}

	var statusRows []struct {
		Status string
		Count  int64
	}
	err = r.DB.WithContext(ctx).Model(&domain.Series{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&statusRows).Error
	if err != nil {
		return domain.CatalogStats{}, fmt.Errorf("failed to count by status: %w", err)
	}
	for _, row := range statusRows {
		stats.ByStatus[row.Status] = row.Count
	}

	var decadeRows []struct {
		Decade int
		Count  int64
	}
	err = r.DB.WithContext(ctx).
		Table("series").
		Select("(EXTRACT(YEAR FROM first_air_date)::int / 10) * 10 AS decade, COUNT(*) AS count").
		Where("first_air_date IS NOT NULL").
		Group("decade").
		Scan(&decadeRows).Error
	if err != nil {
		return domain.CatalogStats{}, fmt.Errorf("failed to count by decade: %w", err)
	}
	for _, row := range decadeRows {
		stats.ByDecade[row.Decade] = row.Count
	}

	var genreRows []struct {
		GenreName string
		Count     int64
	}
	err = r.DB.WithContext(ctx).
		Table("series_genres AS sg").
		Select("g.genre_name, COUNT(*) AS count").
		Joins("JOIN genres g ON g.genre_id = sg.genre_id").
		Group("g.genre_name").
		Order("count DESC").
		Limit(10).
		Scan(&genreRows).Error
	if err != nil {
		return domain.CatalogStats{}, fmt.Errorf("failed to count top genres: %w", err)
	}
	for _, row := range genreRows {
		stats.TopGenres[row.GenreName] = row.Count
	}

	return stats, nil
}
