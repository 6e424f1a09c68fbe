package recommender

import (
	"context"
	"reflect"
	"seriesArchitect/domain"
	"testing"
)

// enoughRatings returns a rating list that passes validation, with series 1
// anchor-liked and series 300 disliked. The filler ids do not need to exist
// in the catalog; unknown ids score zero everywhere.
func enoughRatings() []domain.Rating {
	rs := []domain.Rating{
		{TMDBID: 1, Rating: domain.RatingLike, IsAnchor: true},
	}
	for i := uint64(200); i < 204; i++ {
		rs = append(rs, domain.Rating{TMDBID: i, Rating: domain.RatingLike})
	}
	for i := uint64(300); i < 305; i++ {
		rs = append(rs, domain.Rating{TMDBID: i, Rating: domain.RatingDislike})
	}
	return rs
}

func serviceUnderTest(t *testing.T, catalog *fakeCatalog, candidates []uint64) *RecommenderService {
	t.Helper()

	svc, err := NewRecommenderService(
		&fakeFilterRepo{candidates: candidates},
		&fakeGenreNames{names: map[uint64][]string{}},
		NewFeatureStore(catalog),
		DefaultFeatureWeights(),
	)
	if err != nil {
		t.Fatal(err)
	}
	return svc
}

func TestGetRecommendationsInsufficientRatings(t *testing.T) {
	svc := serviceUnderTest(t, newFakeCatalog(), []uint64{10, 11})

	result, err := svc.GetRecommendations(context.Background(),
		ratings(4, 6), domain.RecommendationFilters{}, 10, nil)
	if err != nil {
		t.Fatal(err)
	}

	if result.Reason != ReasonInsufficientRatings {
		t.Fatalf("reason %q, want %q", result.Reason, ReasonInsufficientRatings)
	}
	if len(result.Recommendations) != 0 {
		t.Fatal("expected empty recommendations")
	}
}

func TestGetRecommendationsEmptyCandidateSet(t *testing.T) {
	svc := serviceUnderTest(t, newFakeCatalog(), nil)

	result, err := svc.GetRecommendations(context.Background(),
		enoughRatings(), domain.RecommendationFilters{}, 10, nil)
	if err != nil {
		t.Fatal(err)
	}

	if result.Reason != ReasonEmptyCandidateSet {
		t.Fatalf("reason %q, want %q", result.Reason, ReasonEmptyCandidateSet)
	}
}

func TestGetRecommendationsInvalidOverride(t *testing.T) {
	svc := serviceUnderTest(t, newFakeCatalog(), []uint64{10})

	bad := DefaultFeatureWeights()
	bad.Genres = 0.9 // sum > 1

	_, err := svc.GetRecommendations(context.Background(),
		enoughRatings(), domain.RecommendationFilters{}, 10, &bad)
	if err == nil {
		t.Fatal("expected ConfigError for bad override")
	}
	if !IsConfigError(err) {
		t.Fatalf("expected ConfigError, got %T: %v", err, err)
	}
}

func TestNewRecommenderServiceRejectsBadDefaults(t *testing.T) {
	_, err := NewRecommenderService(
		&fakeFilterRepo{},
		&fakeGenreNames{},
		NewFeatureStore(newFakeCatalog()),
		FeatureWeights{Genres: 0.5},
	)
	if err == nil {
		t.Fatal("expected ConfigError for malformed default weights")
	}
}

// Three-item scenario: the profile anchors A and dislikes C. B is far from C
// so it survives exclusion and comes back scored; C itself is never
// recommended because the user already rated it.
func TestGetRecommendationsEndToEnd(t *testing.T) {
	catalog := newFakeCatalog()
	// A and B share genre/era/country; C has nothing in common with either
	catalog.add(testSeries(1, 2008, "US", 120, "TV-MA", 5), []int64{18, 80}, []int64{1, 2, 3}) // A (anchor like)
	catalog.add(testSeries(2, 2010, "US", 100, "TV-MA", 4), []int64{18, 80}, []int64{1, 2})    // B
	catalog.add(testSeries(3, 1995, "JP", 5, "TV-Y", 1), []int64{16}, []int64{9})              // C (disliked)

	rs := []domain.Rating{
		{TMDBID: 1, Rating: domain.RatingLike, IsAnchor: true},
	}
	for i := uint64(200); i < 204; i++ {
		rs = append(rs, domain.Rating{TMDBID: i, Rating: domain.RatingLike})
	}
	rs = append(rs, domain.Rating{TMDBID: 3, Rating: domain.RatingDislike})
	for i := uint64(300); i < 304; i++ {
		rs = append(rs, domain.Rating{TMDBID: i, Rating: domain.RatingDislike})
	}

	svc, err := NewRecommenderService(
		&fakeFilterRepo{candidates: []uint64{2, 3}},
		&fakeGenreNames{names: map[uint64][]string{2: {"Drama", "Crime"}}},
		NewFeatureStore(catalog),
		DefaultFeatureWeights(),
	)
	if err != nil {
		t.Fatal(err)
	}

	result, err := svc.GetRecommendations(context.Background(), rs, domain.RecommendationFilters{}, 10, nil)
	if err != nil {
		t.Fatal(err)
	}

	if result.Reason != "" {
		t.Fatalf("unexpected reason %q", result.Reason)
	}
	if len(result.Recommendations) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(result.Recommendations))
	}

	rec := result.Recommendations[0]
	if rec.TMDBID != 2 {
		t.Fatalf("recommended %d, want series 2", rec.TMDBID)
	}
	if rec.Score <= 0 || rec.Score > 1 {
		t.Fatalf("score %g out of range", rec.Score)
	}
	if len(rec.Genres) != 2 {
		t.Fatalf("genre names not enriched: %v", rec.Genres)
	}
	if rec.FirstAirDate == "" {
		t.Fatal("air date not enriched")
	}
}

func TestGetRecommendationsDeterministic(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.add(testSeries(1, 2008, "US", 120, "TV-MA", 5), []int64{18, 80}, []int64{1, 2, 3})
	for id := uint64(10); id < 30; id++ {
		catalog.add(testSeries(id, 2005+int(id%12), "US", float64(5+id*3), "TV-14", int(1+id%6)),
			[]int64{18, int64(id % 4)}, []int64{int64(id % 7), 2})
	}

	var candidates []uint64
	for id := uint64(10); id < 30; id++ {
		candidates = append(candidates, id)
	}

	svc, err := NewRecommenderService(
		&fakeFilterRepo{candidates: candidates},
		&fakeGenreNames{names: map[uint64][]string{}},
		NewFeatureStore(catalog),
		DefaultFeatureWeights(),
	)
	if err != nil {
		t.Fatal(err)
	}

	first, err := svc.GetRecommendations(context.Background(), enoughRatings(), domain.RecommendationFilters{}, 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.GetRecommendations(context.Background(), enoughRatings(), domain.RecommendationFilters{}, 10, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("same request against an unmodified catalog must return identical output")
	}
}

func TestGetRecommendationsTopN(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.add(testSeries(1, 2008, "US", 120, "TV-MA", 5), []int64{18}, nil)

	var candidates []uint64
	for id := uint64(10); id < 40; id++ {
		catalog.add(testSeries(id, 2008, "US", 100, "TV-MA", 5), []int64{18}, nil)
		candidates = append(candidates, id)
	}

	svc := serviceUnderTest(t, catalog, candidates)

	result, err := svc.GetRecommendations(context.Background(), enoughRatings(), domain.RecommendationFilters{}, 7, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Recommendations) != 7 {
		t.Fatalf("got %d results, want 7", len(result.Recommendations))
	}

	// zero falls back to the default
	result, err = svc.GetRecommendations(context.Background(), enoughRatings(), domain.RecommendationFilters{}, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Recommendations) != DefaultTopN {
		t.Fatalf("got %d results, want default %d", len(result.Recommendations), DefaultTopN)
	}
}
