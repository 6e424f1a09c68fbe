package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"seriesArchitect/domain"
	"seriesArchitect/pkg/config"
	"strconv"
	"time"
)

// Virtual provider used when no streaming provider covers the market yet.
const (
	tbaProviderID   = 0
	tbaProviderName = "TBA"
)

type TMDBRepository struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewTMDBRepository(cfg config.TMDBConfig) *TMDBRepository {
	return &TMDBRepository{
		BaseURL: cfg.BaseURL,
		Token:   cfg.Token,
		Client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (r *TMDBRepository) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	endpoint := r.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call tmdb: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode tmdb response: %w", err)
	}

	return nil
}

// DiscoverSeriesIDs pages through the discover endpoint for one original
// language, sorted by popularity.
func (r *TMDBRepository) DiscoverSeriesIDs(ctx context.Context, language string, maxPages int) ([]uint64, error) {
	var ids []uint64

	for page := 1; page <= maxPages; page++ {
		query := url.Values{}
		query.Set("with_original_language", language)
		query.Set("sort_by", "popularity.desc")
		query.Set("page", strconv.Itoa(page))

		var resp domain.TMDBDiscoverResponse
		if err := r.get(ctx, "/discover/tv", query, &resp); err != nil {
			return nil, err
		}

		for _, entry := range resp.Results {
			ids = append(ids, entry.ID)
		}

		if page >= resp.TotalPages {
			break
		}
	}

	return ids, nil
}

// FetchSeries aggregates every per-series endpoint into one normalized
// record. Hebrew metadata is preferred, falling back to English when the
// localized fields come back empty.
func (r *TMDBRepository) FetchSeries(ctx context.Context, tmdbID uint64) (*domain.TMDBSeries, error) {
	heDetails, err := r.fetchDetails(ctx, tmdbID, "he-IL")
	if err != nil {
		return nil, err
	}

	enDetails, err := r.fetchDetails(ctx, tmdbID, "en-US")
	if err != nil {
		return nil, err
	}

	var keywords domain.TMDBKeywordsResponse
	if err := r.get(ctx, fmt.Sprintf("/tv/%d/keywords", tmdbID), nil, &keywords); err != nil {
		return nil, err
	}

	var ratings domain.TMDBContentRatingsResponse
	if err := r.get(ctx, fmt.Sprintf("/tv/%d/content_ratings", tmdbID), nil, &ratings); err != nil {
		return nil, err
	}

	var providers domain.TMDBWatchProvidersResponse
	if err := r.get(ctx, fmt.Sprintf("/tv/%d/watch/providers", tmdbID), nil, &providers); err != nil {
		return nil, err
	}

	series := buildSeries(heDetails, enDetails, ratings.Results)

	return &domain.TMDBSeries{
		Series:    series,
		Genres:    enDetails.Genres,
		Keywords:  keywords.Results,
		Providers: pickProviders(providers.Results),
	}, nil
}

func (r *TMDBRepository) fetchDetails(ctx context.Context, tmdbID uint64, language string) (*domain.TMDBTVDetails, error) {
	query := url.Values{}
	query.Set("language", language)

	var details domain.TMDBTVDetails
	if err := r.get(ctx, fmt.Sprintf("/tv/%d", tmdbID), query, &details); err != nil {
		return nil, err
	}

	return &details, nil
}

func buildSeries(he, en *domain.TMDBTVDetails, ratings []domain.TMDBContentRating) domain.Series {
	overview := he.Overview
	if overview == "" {
		overview = en.Overview
	}

	posterPath := he.PosterPath
	if posterPath == nil {
		posterPath = en.PosterPath
	}

	return domain.Series{
		TMDBID:           en.ID,
		TitleHe:          he.Name,
		TitleEn:          en.Name,
		Overview:         overview,
		Popularity:       en.Popularity,
		PosterPath:       posterPath,
		OriginalLanguage: en.OriginalLanguage,
		OriginCountry:    firstOriginCountry(en.OriginCountry),
		Status:           normalizeStatus(en.Status),
		Adult:            en.Adult,
		FirstAirDate:     parseAirDate(en.FirstAirDate),
		LastAirDate:      parseAirDate(en.LastAirDate),
		NumberOfSeasons:  en.NumberOfSeasons,
		NumberOfEpisodes: en.NumberOfEpisodes,
		ContentRating:    pickContentRating(ratings),
	}
}

// normalizeStatus collapses TMDB's status vocabulary into the two states the
// catalog filters on.
func normalizeStatus(status string) string {
	switch status {
	case "Returning Series", "In Production", "Planned", "Pilot":
		return "Running"
	case "Ended", "Canceled":
		return "Ended"
	default:
		return status
	}
}

// pickContentRating prefers the local certification, then the US one, and
// settles on NR when neither exists.
func pickContentRating(ratings []domain.TMDBContentRating) string {
	var us string
	for _, r := range ratings {
		if r.Rating == "" {
			continue
		}
		if r.ISO3166 == "IL" {
			return r.Rating
		}
		if r.ISO3166 == "US" && us == "" {
			us = r.Rating
		}
	}
	if us != "" {
		return us
	}
	return "NR"
}

func firstOriginCountry(countries []string) string {
	if len(countries) == 0 {
		return "Unknown"
	}
	return countries[0]
}

func parseAirDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}

// pickProviders keeps local flatrate providers, substituting a single TBA
// placeholder when the series is not streamable here yet.
func pickProviders(results map[string]domain.TMDBCountryProviders) []domain.TMDBProvider {
	if country, ok := results["IL"]; ok && len(country.Flatrate) > 0 {
		return country.Flatrate
	}

	return []domain.TMDBProvider{
		{ProviderID: tbaProviderID, ProviderName: tbaProviderName},
	}
}
