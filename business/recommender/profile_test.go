package recommender

import (
	"seriesArchitect/domain"
	"testing"
)

func ratings(likes, dislikes int) []domain.Rating {
	var rs []domain.Rating
	for i := 0; i < likes; i++ {
		rs = append(rs, domain.Rating{TMDBID: uint64(i + 1), Rating: domain.RatingLike})
	}
	for i := 0; i < dislikes; i++ {
		rs = append(rs, domain.Rating{TMDBID: uint64(100 + i), Rating: domain.RatingDislike})
	}
	return rs
}

func TestValidateRatingsBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		likes    int
		dislikes int
		wantErr  bool
	}{
		{"4 likes 6 dislikes, too few likes", 4, 6, true},
		{"5 likes 4 dislikes, too few total", 5, 4, true},
		{"5 likes 5 dislikes, accepted", 5, 5, false},
		{"10 likes no dislikes, accepted", 10, 0, false},
		{"no ratings", 0, 0, true},
	}

	for _, tt := range tests {
		err := ValidateRatings(ratings(tt.likes, tt.dislikes))
		if tt.wantErr && err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if tt.wantErr && err != nil && !IsInsufficientRatings(err) {
			t.Errorf("%s: expected InsufficientRatingsError, got %T", tt.name, err)
		}
	}
}

func TestBuildProfileAnchorDuplication(t *testing.T) {
	profile := BuildProfile([]domain.Rating{
		{TMDBID: 1, Rating: domain.RatingLike, IsAnchor: true},
		{TMDBID: 2, Rating: domain.RatingLike},
		{TMDBID: 3, Rating: domain.RatingDislike},
	})

	if got := len(profile.LikedIDs); got != 3 {
		t.Fatalf("anchor should appear twice: liked multiset size %d, want 3", got)
	}

	count := 0
	for _, id := range profile.LikedIDs {
		if id == 1 {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("anchor series appears %d times, want 2", count)
	}

	if len(profile.AnchorIDs) != 1 || profile.AnchorIDs[0] != 1 {
		t.Fatalf("anchor ids = %v, want [1]", profile.AnchorIDs)
	}

	if _, ok := profile.DislikedIDs[3]; !ok {
		t.Fatal("dislike missing from profile")
	}
}

func TestBuildProfileDuplicateLikesCountOnce(t *testing.T) {
	// even if the caller sends the anchor rating twice, it still carries
	// exactly double weight, not quadruple
	profile := BuildProfile([]domain.Rating{
		{TMDBID: 1, Rating: domain.RatingLike, IsAnchor: true},
		{TMDBID: 1, Rating: domain.RatingLike, IsAnchor: true},
		{TMDBID: 2, Rating: domain.RatingLike},
		{TMDBID: 2, Rating: domain.RatingLike},
	})

	if got := len(profile.LikedIDs); got != 3 {
		t.Fatalf("liked multiset size %d, want 3", got)
	}
}

func TestBuildProfileDislikeAnchorIgnored(t *testing.T) {
	profile := BuildProfile([]domain.Rating{
		{TMDBID: 7, Rating: domain.RatingDislike, IsAnchor: true},
		{TMDBID: 7, Rating: domain.RatingDislike},
	})

	if len(profile.DislikedIDs) != 1 {
		t.Fatalf("disliked set size %d, want 1", len(profile.DislikedIDs))
	}
	if len(profile.AnchorIDs) != 0 {
		t.Fatal("anchor flag must be ignored for dislikes")
	}
}

func TestIsRated(t *testing.T) {
	profile := BuildProfile([]domain.Rating{
		{TMDBID: 1, Rating: domain.RatingLike},
		{TMDBID: 2, Rating: domain.RatingDislike},
	})

	if !profile.IsRated(1) || !profile.IsRated(2) {
		t.Fatal("rated series not reported as rated")
	}
	if profile.IsRated(3) {
		t.Fatal("unrated series reported as rated")
	}
}
