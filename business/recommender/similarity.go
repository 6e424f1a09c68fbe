package recommender

import (
	"context"
	"math"
	"seriesArchitect/domain"
)

// SimilarityEngine computes pairwise similarity between series out of the
// feature store. All dimension functions are symmetric, return values in
// [0,1], and fall back to 0.0 when either side is missing the attribute.
type SimilarityEngine struct {
	features *FeatureStore
}

func NewSimilarityEngine(features *FeatureStore) *SimilarityEngine {
	return &SimilarityEngine{features: features}
}

// seriesFeatures bundles everything one similarity comparison needs so each
// side is fetched exactly once per pair.
type seriesFeatures struct {
	series   *domain.Series
	genres   map[int64]struct{}
	keywords map[int64]struct{}
}

func (e *SimilarityEngine) load(ctx context.Context, tmdbID uint64) (seriesFeatures, error) {
	s, err := e.features.Series(ctx, tmdbID)
	if err != nil {
		return seriesFeatures{}, err
	}
	genres, err := e.features.GenreSet(ctx, tmdbID)
	if err != nil {
		return seriesFeatures{}, err
	}
	keywords, err := e.features.KeywordSet(ctx, tmdbID)
	if err != nil {
		return seriesFeatures{}, err
	}
	return seriesFeatures{series: s, genres: genres, keywords: keywords}, nil
}

// Combine returns the weighted similarity of two series under the given
// weight table. Symmetric, and 1.0 for a self-comparison of a series with
// complete attributes.
func (e *SimilarityEngine) Combine(ctx context.Context, a, b uint64, w FeatureWeights) (float64, error) {
	fa, err := e.load(ctx, a)
	if err != nil {
		return 0, err
	}
	fb, err := e.load(ctx, b)
	if err != nil {
		return 0, err
	}
	return combineFeatures(fa, fb, w), nil
}

func combineFeatures(a, b seriesFeatures, w FeatureWeights) float64 {
	return w.Genres*jaccardSimilarity(a.genres, b.genres) +
		w.Keywords*jaccardSimilarity(a.keywords, b.keywords) +
		w.YearProximity*yearProximity(a.series, b.series) +
		w.OriginCountry*originCountrySimilarity(a.series, b.series) +
		w.Popularity*popularitySimilarity(a.series, b.series) +
		w.ContentRating*contentRatingSimilarity(a.series, b.series) +
		w.Seasons*seasonsSimilarity(a.series, b.series)
}

// jaccardSimilarity is |A∩B| / |A∪B|. Either side empty yields 0.0.
func jaccardSimilarity(a, b map[int64]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	intersection := 0
	for id := range a {
		if _, ok := b[id]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0.0
	}

	return float64(intersection) / float64(union)
}

// yearProximity is max(0, 1 - |yearA-yearB| / YearDiffMax) over first air
// dates.
func yearProximity(a, b *domain.Series) float64 {
	if a == nil || b == nil || a.FirstAirDate == nil || b.FirstAirDate == nil {
		return 0.0
	}

	diff := a.FirstAirDate.Year() - b.FirstAirDate.Year()
	if diff < 0 {
		diff = -diff
	}

	return math.Max(0, 1-float64(diff)/YearDiffMax)
}

// originCountrySimilarity is binary: same single origin country or not.
func originCountrySimilarity(a, b *domain.Series) float64 {
	if a == nil || b == nil || a.OriginCountry == "" || b.OriginCountry == "" {
		return 0.0
	}

	if a.OriginCountry == b.OriginCountry {
		return 1.0
	}
	return 0.0
}

// popularitySimilarity compares log-scaled popularity so long-tail outliers
// do not dominate. Non-positive popularity counts as missing.
func popularitySimilarity(a, b *domain.Series) float64 {
	if a == nil || b == nil || a.Popularity <= 0 || b.Popularity <= 0 {
		return 0.0
	}

	logA := math.Log10(1 + a.Popularity)
	logB := math.Log10(1 + b.Popularity)

	maxLog := math.Max(logA, logB)
	distance := math.Abs(logA-logB) / maxLog

	return math.Max(0, 1.0-distance)
}

// contentRatingSimilarity is inverted ordinal distance over the fixed rating
// order. A missing or unknown rating lands in the NR bucket.
func contentRatingSimilarity(a, b *domain.Series) float64 {
	if a == nil || b == nil {
		return 0.0
	}

	distance := contentRatingOrdinal(a.ContentRating) - contentRatingOrdinal(b.ContentRating)
	if distance < 0 {
		distance = -distance
	}

	return 1.0 - float64(distance)/contentRatingMaxDistance
}

// seasonsSimilarity is max(0, 1 - |seasonsA-seasonsB| / SeasonsDiffMax).
// Unknown or zero season counts yield 0.0.
func seasonsSimilarity(a, b *domain.Series) float64 {
	if a == nil || b == nil || a.NumberOfSeasons == nil || b.NumberOfSeasons == nil {
		return 0.0
	}

	sa, sb := *a.NumberOfSeasons, *b.NumberOfSeasons
	if sa == 0 || sb == 0 {
		return 0.0
	}

	diff := sa - sb
	if diff < 0 {
		diff = -diff
	}

	return math.Max(0, 1-float64(diff)/SeasonsDiffMax)
}
