package recommender

import (
	"context"
	"fmt"
	"seriesArchitect/domain"
	"seriesArchitect/pkg/metrics"
	"sync"
)

// CatalogStore is the read side of the catalog the engine needs. GetSeries
// returns (nil, nil) for an unknown id; absence is not an error here because
// every similarity dimension has a zero-similarity fallback. GetKeywordIDs
// returns the full keyword list in upstream relevance order; truncation to
// the top keywords is the engine's job.
type CatalogStore interface {
	GetSeries(ctx context.Context, tmdbID uint64) (*domain.Series, error)
	GetGenreIDs(ctx context.Context, tmdbID uint64) ([]int64, error)
	GetKeywordIDs(ctx context.Context, tmdbID uint64) ([]int64, error)
}

// FeatureStore is a read-through cache in front of the catalog store. Entries
// live for the lifetime of the store; there is no TTL or eviction, only the
// explicit Reset. Safe for concurrent use; an unknown series is cached as
// absent so repeated lookups do not hit the database again.
type FeatureStore struct {
	store CatalogStore

	mu       sync.RWMutex
	series   map[uint64]*domain.Series
	genres   map[uint64]map[int64]struct{}
	keywords map[uint64]map[int64]struct{}
}

func NewFeatureStore(store CatalogStore) *FeatureStore {
	return &FeatureStore{
		store:    store,
		series:   make(map[uint64]*domain.Series),
		genres:   make(map[uint64]map[int64]struct{}),
		keywords: make(map[uint64]map[int64]struct{}),
	}
}

// Series returns the cached attributes for a series, or nil if the catalog
// does not know the id.
func (f *FeatureStore) Series(ctx context.Context, tmdbID uint64) (*domain.Series, error) {
	f.mu.RLock()
	cached, ok := f.series[tmdbID]
	f.mu.RUnlock()
	if ok {
		metrics.FeatureCacheHits.Inc()
		return cached, nil
	}
	metrics.FeatureCacheMisses.Inc()

	s, err := f.store.GetSeries(ctx, tmdbID)
	if err != nil {
		return nil, fmt.Errorf("fetch series %d: %w", tmdbID, err)
	}

	f.mu.Lock()
	f.series[tmdbID] = s
	f.mu.Unlock()

	return s, nil
}

// GenreSet returns the genre ids of a series as a set.
func (f *FeatureStore) GenreSet(ctx context.Context, tmdbID uint64) (map[int64]struct{}, error) {
	f.mu.RLock()
	cached, ok := f.genres[tmdbID]
	f.mu.RUnlock()
	if ok {
		metrics.FeatureCacheHits.Inc()
		return cached, nil
	}
	metrics.FeatureCacheMisses.Inc()

	ids, err := f.store.GetGenreIDs(ctx, tmdbID)
	if err != nil {
		return nil, fmt.Errorf("fetch genres for %d: %w", tmdbID, err)
	}

	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	f.mu.Lock()
	f.genres[tmdbID] = set
	f.mu.Unlock()

	return set, nil
}

// KeywordSet returns the top keywords of a series as a set. The upstream
// relevance order decides which keywords survive truncation, which happens
// before the set is built.
func (f *FeatureStore) KeywordSet(ctx context.Context, tmdbID uint64) (map[int64]struct{}, error) {
	f.mu.RLock()
	cached, ok := f.keywords[tmdbID]
	f.mu.RUnlock()
	if ok {
		metrics.FeatureCacheHits.Inc()
		return cached, nil
	}
	metrics.FeatureCacheMisses.Inc()

	ids, err := f.store.GetKeywordIDs(ctx, tmdbID)
	if err != nil {
		return nil, fmt.Errorf("fetch keywords for %d: %w", tmdbID, err)
	}

	if len(ids) > TopKeywordsCount {
		ids = ids[:TopKeywordsCount]
	}

	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	f.mu.Lock()
	f.keywords[tmdbID] = set
	f.mu.Unlock()

	return set, nil
}

// Reset drops every cached entry. Intended for use between independent
// sessions or test runs, and after an ingest run changed the catalog.
func (f *FeatureStore) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.series = make(map[uint64]*domain.Series)
	f.genres = make(map[uint64]map[int64]struct{})
	f.keywords = make(map[uint64]map[int64]struct{})
}
