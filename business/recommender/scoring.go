package recommender

import (
	"context"
	"sort"
)

// ScoredCandidate is one ranked entry, consumed within a single
// recommendation call.
type ScoredCandidate struct {
	TMDBID uint64
	Score  float64
	Rank   int
}

// ScoreAndRank computes each candidate's mean similarity to the liked
// multiset (anchor entries count twice simply by appearing twice) and sorts
// descending. Candidates the user already rated are skipped. The sort is
// stable, so ties keep the candidate enumeration order.
func (e *SimilarityEngine) ScoreAndRank(
	ctx context.Context,
	profile *UserProfile,
	candidates []uint64,
	w FeatureWeights,
) ([]ScoredCandidate, error) {

	if len(profile.LikedIDs) == 0 {
		return nil, nil
	}

	scored := make([]ScoredCandidate, 0, len(candidates))

	for _, candidate := range candidates {
		if profile.IsRated(candidate) {
			continue
		}

		sum := 0.0
		for _, likedID := range profile.LikedIDs {
			sim, err := e.Combine(ctx, candidate, likedID, w)
			if err != nil {
				return nil, err
			}
			sum += sim
		}

		scored = append(scored, ScoredCandidate{
			TMDBID: candidate,
			Score:  sum / float64(len(profile.LikedIDs)),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	for i := range scored {
		scored[i].Rank = i + 1
	}

	return scored, nil
}
