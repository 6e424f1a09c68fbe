package recommender

import "context"

// ExcludeDisliked drops every candidate whose similarity to ANY disliked
// series is strictly greater than the threshold; a candidate sitting exactly
// on the threshold survives. Candidate order is preserved.
//
// This is O(|disliked| x |candidates|) similarity computations and the
// dominant cost of the pipeline, which is why the candidate pool must be
// pre-filtered before it gets here.
func (e *SimilarityEngine) ExcludeDisliked(
	ctx context.Context,
	profile *UserProfile,
	candidates []uint64,
	threshold float64,
	w FeatureWeights,
) ([]uint64, error) {

	if len(profile.DislikedIDs) == 0 {
		return candidates, nil
	}

	kept := make([]uint64, 0, len(candidates))

	for _, candidate := range candidates {
		excluded := false
		for dislikedID := range profile.DislikedIDs {
			if candidate == dislikedID {
				continue
			}

			sim, err := e.Combine(ctx, dislikedID, candidate, w)
			if err != nil {
				return nil, err
			}

			if sim > threshold {
				excluded = true
				break
			}
		}

		if !excluded {
			kept = append(kept, candidate)
		}
	}

	return kept, nil
}
