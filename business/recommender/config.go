package recommender

import (
	"fmt"
	"math"
)

const (
	// minimum input before any scoring is attempted
	MinLikes        = 5
	MinTotalRatings = 10

	// candidates more similar than this to any disliked series are dropped
	DislikeExclusionThreshold = 0.7

	// only the top keywords by upstream relevance take part in Jaccard
	TopKeywordsCount = 10

	// series this many years apart get zero year-proximity similarity
	YearDiffMax = 10

	// series this many seasons apart get zero season similarity
	SeasonsDiffMax = 5

	DefaultTopN = 10

	weightSumTolerance = 1e-6
)

// FeatureWeights maps the seven similarity dimensions to their share of the
// combined score. A table is only usable if every weight is non-negative and
// they sum to 1.0 within tolerance; construct via NewFeatureWeights or
// DefaultFeatureWeights so an invalid table is rejected up front instead of
// silently skewing scores at call time.
type FeatureWeights struct {
	Genres        float64 `json:"genres"`
	Keywords      float64 `json:"keywords"`
	YearProximity float64 `json:"year_proximity"`
	OriginCountry float64 `json:"origin_country"`
	Popularity    float64 `json:"popularity"`
	ContentRating float64 `json:"content_rating"`
	Seasons       float64 `json:"number_of_seasons"`
}

func DefaultFeatureWeights() FeatureWeights {
	return FeatureWeights{
		Genres:        0.30,
		Keywords:      0.35,
		YearProximity: 0.10,
		OriginCountry: 0.10,
		Popularity:    0.08,
		ContentRating: 0.04,
		Seasons:       0.03,
	}
}

func NewFeatureWeights(w FeatureWeights) (FeatureWeights, error) {
	if err := w.Validate(); err != nil {
		return FeatureWeights{}, err
	}
	return w, nil
}

// Validate rejects malformed weight tables with a ConfigError. It never
// renormalizes: a table that does not sum to 1.0 is a deployment defect.
func (w FeatureWeights) Validate() error {
	all := map[string]float64{
		"genres":            w.Genres,
		"keywords":          w.Keywords,
		"year_proximity":    w.YearProximity,
		"origin_country":    w.OriginCountry,
		"popularity":        w.Popularity,
		"content_rating":    w.ContentRating,
		"number_of_seasons": w.Seasons,
	}

	sum := 0.0
	for name, v := range all {
		if v < 0 {
			return &ConfigError{Message: fmt.Sprintf("feature weight %q must be non-negative, got %g", name, v)}
		}
		sum += v
	}

	if math.Abs(sum-1.0) > weightSumTolerance {
		return &ConfigError{Message: fmt.Sprintf("feature weights must sum to 1.0, got %g", sum)}
	}

	return nil
}

// Content rating order, most restrictive last. NR and anything TMDB returns
// that we do not recognize land in the middle bucket.
var contentRatingOrder = map[string]int{
	"TV-Y":  0,
	"TV-Y7": 1,
	"TV-G":  2,
	"TV-PG": 3,
	"TV-14": 4,
	"TV-MA": 5,
	"NR":    3,
}

const contentRatingMaxDistance = 5

func contentRatingOrdinal(rating string) int {
	if v, ok := contentRatingOrder[rating]; ok {
		return v
	}
	return contentRatingOrder["NR"]
}
