package recommender

import (
	"context"
	"fmt"
	"math"
	"seriesArchitect/domain"
	"seriesArchitect/pkg/logger"
	"seriesArchitect/pkg/metrics"
)

// FilterRepository is the external candidate pre-filter: it turns a coarse
// filter spec into a bounded set of candidate ids, AND across categories and
// OR within each.
type FilterRepository interface {
	ApplyFilters(ctx context.Context, filters domain.RecommendationFilters) ([]uint64, error)
}

// EnrichmentRepository resolves genre names for the final result list.
type EnrichmentRepository interface {
	GetGenreNames(ctx context.Context, tmdbID uint64) ([]string, error)
}

// RecommenderService is the single entry point of the recommendation engine.
// One call runs the whole pipeline synchronously: validate ratings, fetch
// candidates, build the profile, exclude dislikes, score, rank, enrich.
type RecommenderService struct {
	filterRepo FilterRepository
	genreRepo  EnrichmentRepository
	features   *FeatureStore
	engine     *SimilarityEngine
	weights    FeatureWeights
}

// NewRecommenderService wires the engine. The default weight table is
// validated here; a malformed one is a deployment defect and fails loudly.
func NewRecommenderService(
	filterRepo FilterRepository,
	genreRepo EnrichmentRepository,
	features *FeatureStore,
	weights FeatureWeights,
) (*RecommenderService, error) {

	if err := weights.Validate(); err != nil {
		return nil, err
	}

	return &RecommenderService{
		filterRepo: filterRepo,
		genreRepo:  genreRepo,
		features:   features,
		engine:     NewSimilarityEngine(features),
		weights:    weights,
	}, nil
}

// FeatureStore exposes the cache so the surrounding process can reset it
// after an ingest run or between test runs.
func (s *RecommenderService) FeatureStore() *FeatureStore {
	return s.features
}

// GetRecommendations runs the full pipeline. Insufficient ratings and an
// empty candidate pool come back as an empty result carrying a reason code,
// not as errors. A weight override that does not satisfy the sum-to-1.0
// invariant fails with a ConfigError instead of being renormalized.
func (s *RecommenderService) GetRecommendations(
	ctx context.Context,
	ratings []domain.Rating,
	filters domain.RecommendationFilters,
	topN int,
	override *FeatureWeights,
) (domain.RecommendationResult, error) {

	if err := ctx.Err(); err != nil {
		return domain.RecommendationResult{}, fmt.Errorf("context error: %w", err)
	}

	weights := s.weights
	if override != nil {
		if err := override.Validate(); err != nil {
			return domain.RecommendationResult{}, err
		}
		weights = *override
	}

	if topN <= 0 {
		topN = DefaultTopN
	}

	if err := ValidateRatings(ratings); err != nil {
		logger.Info("rejecting recommendation request", "reason", err.Error())
		metrics.RecommendRejections.WithLabelValues(ReasonInsufficientRatings).Inc()
		return domain.RecommendationResult{
			Recommendations: []domain.Recommendation{},
			Reason:          ReasonInsufficientRatings,
		}, nil
	}

	candidates, err := s.filterRepo.ApplyFilters(ctx, filters)
	if err != nil {
		return domain.RecommendationResult{}, fmt.Errorf("apply filters: %w", err)
	}

	if len(candidates) == 0 {
		logger.Info("no candidates after filtering")
		metrics.RecommendRejections.WithLabelValues(ReasonEmptyCandidateSet).Inc()
		return domain.RecommendationResult{
			Recommendations: []domain.Recommendation{},
			Reason:          ReasonEmptyCandidateSet,
		}, nil
	}

	profile := BuildProfile(ratings)

	kept, err := s.engine.ExcludeDisliked(ctx, profile, candidates, DislikeExclusionThreshold, weights)
	if err != nil {
		return domain.RecommendationResult{}, fmt.Errorf("dislike exclusion: %w", err)
	}

	logger.Debug("candidate pool after exclusion",
		"before", len(candidates), "after", len(kept))

	scored, err := s.engine.ScoreAndRank(ctx, profile, kept, weights)
	if err != nil {
		return domain.RecommendationResult{}, fmt.Errorf("scoring: %w", err)
	}

	if len(scored) > topN {
		scored = scored[:topN]
	}

	recommendations, err := s.enrich(ctx, scored)
	if err != nil {
		return domain.RecommendationResult{}, fmt.Errorf("enrichment: %w", err)
	}

	return domain.RecommendationResult{Recommendations: recommendations}, nil
}

// enrich resolves full catalog metadata for the winning ids. A series that
// vanished from the catalog between scoring and enrichment is dropped rather
// than failing the whole request.
func (s *RecommenderService) enrich(ctx context.Context, scored []ScoredCandidate) ([]domain.Recommendation, error) {
	recommendations := make([]domain.Recommendation, 0, len(scored))

	for _, sc := range scored {
		series, err := s.features.Series(ctx, sc.TMDBID)
		if err != nil {
			return nil, err
		}
		if series == nil {
			continue
		}

		genres, err := s.genreRepo.GetGenreNames(ctx, sc.TMDBID)
		if err != nil {
			return nil, err
		}

		rec := domain.Recommendation{
			TMDBID:           series.TMDBID,
			Score:            math.Round(sc.Score*1000) / 1000,
			TitleEn:          series.TitleEn,
			TitleHe:          series.TitleHe,
			Overview:         series.Overview,
			Popularity:       series.Popularity,
			PosterPath:       series.PosterPath,
			Status:           series.Status,
			OriginCountry:    series.OriginCountry,
			NumberOfSeasons:  series.NumberOfSeasons,
			NumberOfEpisodes: series.NumberOfEpisodes,
			ContentRating:    series.ContentRating,
			Genres:           genres,
		}
		if series.FirstAirDate != nil {
			rec.FirstAirDate = series.FirstAirDate.Format("2006-01-02")
		}

		recommendations = append(recommendations, rec)
	}

	return recommendations, nil
}
