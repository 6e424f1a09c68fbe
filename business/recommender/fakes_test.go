package recommender

import (
	"context"
	"seriesArchitect/domain"
	"time"
)

// fakeCatalog is an in-memory CatalogStore for tests. Fetch counters let the
// cache tests assert read-through behavior.
type fakeCatalog struct {
	series   map[uint64]*domain.Series
	genres   map[uint64][]int64
	keywords map[uint64][]int64

	seriesFetches  int
	genreFetches   int
	keywordFetches int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		series:   make(map[uint64]*domain.Series),
		genres:   make(map[uint64][]int64),
		keywords: make(map[uint64][]int64),
	}
}

func (f *fakeCatalog) GetSeries(_ context.Context, tmdbID uint64) (*domain.Series, error) {
	f.seriesFetches++
	return f.series[tmdbID], nil
}

func (f *fakeCatalog) GetGenreIDs(_ context.Context, tmdbID uint64) ([]int64, error) {
	f.genreFetches++
	return f.genres[tmdbID], nil
}

func (f *fakeCatalog) GetKeywordIDs(_ context.Context, tmdbID uint64) ([]int64, error) {
	f.keywordFetches++
	return f.keywords[tmdbID], nil
}

func (f *fakeCatalog) add(s *domain.Series, genres, keywords []int64) {
	f.series[s.TMDBID] = s
	f.genres[s.TMDBID] = genres
	f.keywords[s.TMDBID] = keywords
}

func intPtr(v int) *int { return &v }

func dateIn(year int) *time.Time {
	t := time.Date(year, time.March, 1, 0, 0, 0, 0, time.UTC)
	return &t
}

// testSeries builds a series with complete attributes.
func testSeries(id uint64, year int, country string, popularity float64, rating string, seasons int) *domain.Series {
	return &domain.Series{
		TMDBID:        id,
		TitleEn:       "Series",
		Popularity:    popularity,
		OriginCountry: country,
		Status:        "Ended",
		FirstAirDate:  dateIn(year),
		ContentRating: rating,
		NumberOfSeasons: intPtr(seasons),
	}
}

type fakeFilterRepo struct {
	candidates []uint64
	err        error
}

func (f *fakeFilterRepo) ApplyFilters(_ context.Context, _ domain.RecommendationFilters) ([]uint64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}

type fakeGenreNames struct {
	names map[uint64][]string
}

func (f *fakeGenreNames) GetGenreNames(_ context.Context, tmdbID uint64) ([]string, error) {
	return f.names[tmdbID], nil
}
