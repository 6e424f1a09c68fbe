package postgres

import (
	"context"
	"fmt"
	"seriesArchitect/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Availability rows are scoped to this market; ingestion replaces them
// wholesale on every sync.
const availabilityCountry = "IL"

// UpsertSeries writes a fully aggregated TMDB series into the catalog in one
// transaction. Re-running a sync updates rows in place, so ingestion is safe
// to repeat.
func (r *SeriesRepository) UpsertSeries(ctx context.Context, agg domain.TMDBSeries) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tmdb_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title_he", "title_en", "overview", "popularity", "poster_path",
				"original_language", "origin_country", "status", "adult",
				"first_air_date", "last_air_date", "number_of_seasons",
				"number_of_episodes", "content_rating",
			}),
		}).Create(&agg.Series).Error
		if err != nil {
			return fmt.Errorf("failed to upsert series: %w", err)
		}

		if err := upsertGenres(tx, agg.Series.TMDBID, agg.Genres); err != nil {
			return err
		}
		if err := upsertKeywords(tx, agg.Series.TMDBID, agg.Keywords); err != nil {
			return err
		}
		if err := replaceAvailability(tx, agg.Series.TMDBID, agg.Providers); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

func upsertGenres(tx *gorm.DB, tmdbID uint64, genres []domain.TMDBGenre) error {
	for _, g := range genres {
		genre := domain.Genre{GenreID: g.ID, GenreName: g.Name}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "genre_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"genre_name"}),
		}).Create(&genre).Error
		if err != nil {
			return fmt.Errorf("failed to upsert genre: %w", err)
		}

		link := domain.SeriesGenre{TMDBID: tmdbID, GenreID: g.ID}
		err = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
		if err != nil {
			return fmt.Errorf("failed to link genre: %w", err)
		}
	}
	return nil
}

// Keyword links are replaced, not merged, so the stored positions always
// reflect the latest upstream relevance order.
func upsertKeywords(tx *gorm.DB, tmdbID uint64, keywords []domain.TMDBKeyword) error {
	err := tx.Where("tmdb_id = ?", tmdbID).Delete(&domain.SeriesKeyword{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear keywords: %w", err)
	}

	for i, k := range keywords {
		keyword := domain.Keyword{KeywordID: k.ID, Name: k.Name}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "keyword_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).Create(&keyword).Error
		if err != nil {
			return fmt.Errorf("failed to upsert keyword: %w", err)
		}

		link := domain.SeriesKeyword{TMDBID: tmdbID, KeywordID: k.ID, Position: i}
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tmdb_id"}, {Name: "keyword_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"position"}),
		}).Create(&link).Error
		if err != nil {
			return fmt.Errorf("failed to link keyword: %w", err)
		}
	}
	return nil
}

func replaceAvailability(tx *gorm.DB, tmdbID uint64, providers []domain.TMDBProvider) error {
	err := tx.Where("tmdb_id = ? AND country_code = ?", tmdbID, availabilityCountry).
		Delete(&domain.SeriesAvailability{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear availability: %w", err)
	}

	for _, p := range providers {
		provider := domain.StreamingProvider{
			ProviderID:   p.ProviderID,
			ProviderName: p.ProviderName,
			LogoPath:     p.LogoPath,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"provider_name", "logo_path"}),
		}).Create(&provider).Error
		if err != nil {
			return fmt.Errorf("failed to upsert provider: %w", err)
		}

		row := domain.SeriesAvailability{
			TMDBID:      tmdbID,
			ProviderID:  p.ProviderID,
			CountryCode: availabilityCountry,
		}
		err = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("failed to record availability: %w", err)
		}
	}
	return nil
}

// ListIncompleteSeries finds series whose enrichment fields never arrived,
// so a repair pass can refetch them.
func (r *SeriesRepository) ListIncompleteSeries(ctx context.Context, limit int) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []uint64
	err := r.DB.WithContext(ctx).
		Model(&domain.Series{}).
		Where("content_rating = '' OR content_rating IS NULL OR number_of_seasons IS NULL").
		Order("tmdb_id").
		Limit(limit).
		Pluck("tmdb_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list incomplete series: %w", err)
	}

	return ids, nil
}
