package recommender

import "seriesArchitect/domain"

// UserProfile is a user's taste built from one rating list. LikedIDs is a
// multiset: an anchor-liked series appears twice so it carries exactly double
// weight in averaging, never more, even if the caller sent duplicate ratings
// for it. Immutable once built.
type UserProfile struct {
	LikedIDs    []uint64
	DislikedIDs map[uint64]struct{}
	AnchorIDs   []uint64
}

// IsRated reports whether the user already rated the series either way.
func (p *UserProfile) IsRated(tmdbID uint64) bool {
	for _, id := range p.LikedIDs {
		if id == tmdbID {
			return true
		}
	}
	_, disliked := p.DislikedIDs[tmdbID]
	return disliked
}

// ValidateRatings is the hard precondition for any recommendation work:
// at least MinLikes likes and MinTotalRatings ratings in total.
func ValidateRatings(ratings []domain.Rating) error {
	likes, dislikes := 0, 0
	for _, r := range ratings {
		switch r.Rating {
		case domain.RatingLike:
			likes++
		case domain.RatingDislike:
			dislikes++
		}
	}

	total := likes + dislikes
	if likes < MinLikes || total < MinTotalRatings {
		return &InsufficientRatingsError{Likes: likes, Total: total}
	}

	return nil
}

// BuildProfile partitions ratings by polarity. Each distinct liked series
// contributes one entry to the multiset, plus a second one if any of its
// ratings carries the anchor flag. Dislikes form a plain set; the anchor flag
// is meaningless for them. Order of first appearance is preserved so later
// stages stay deterministic.
func BuildProfile(ratings []domain.Rating) *UserProfile {
	profile := &UserProfile{
		DislikedIDs: make(map[uint64]struct{}),
	}

	seenLikes := make(map[uint64]struct{})
	for _, r := range ratings {
		switch r.Rating {
		case domain.RatingLike:
			if _, ok := seenLikes[r.TMDBID]; ok {
				continue
			}
			seenLikes[r.TMDBID] = struct{}{}

			profile.LikedIDs = append(profile.LikedIDs, r.TMDBID)
			if r.IsAnchor {
				profile.AnchorIDs = append(profile.AnchorIDs, r.TMDBID)
				// second entry gives the anchor double weight
				profile.LikedIDs = append(profile.LikedIDs, r.TMDBID)
			}

		case domain.RatingDislike:
			profile.DislikedIDs[r.TMDBID] = struct{}{}
		}
	}

	return profile
}
