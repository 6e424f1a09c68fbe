package recommender

import (
	"context"
	"math"
	"seriesArchitect/domain"
	"testing"
)

func TestScoreAndRankAnchorEqualsTwoLikes(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.add(testSeries(1, 2008, "US", 100, "TV-MA", 5), []int64{18, 80}, []int64{1, 2, 3})
	catalog.add(testSeries(50, 2012, "US", 60, "TV-14", 3), []int64{18}, []int64{2, 3})

	engine := NewSimilarityEngine(NewFeatureStore(catalog))
	ctx := context.Background()

	anchored := BuildProfile([]domain.Rating{
		{TMDBID: 1, Rating: domain.RatingLike, IsAnchor: true},
	})

	// hypothetical profile with the same series liked twice, no anchor
	doubled := &UserProfile{LikedIDs: []uint64{1, 1}}

	got1, err := engine.ScoreAndRank(ctx, anchored, []uint64{50}, DefaultFeatureWeights())
	if err != nil {
		t.Fatal(err)
	}
	got2, err := engine.ScoreAndRank(ctx, doubled, []uint64{50}, DefaultFeatureWeights())
	if err != nil {
		t.Fatal(err)
	}

	if got1[0].Score != got2[0].Score {
		t.Fatalf("anchor profile scored %g, two-likes profile scored %g", got1[0].Score, got2[0].Score)
	}
}

func TestScoreAndRankAnchorShiftsAverage(t *testing.T) {
	catalog := newFakeCatalog()
	// liked 1 is very close to the candidate, liked 2 is not
	catalog.add(testSeries(1, 2010, "US", 100, "TV-MA", 4), []int64{18, 80}, []int64{1, 2})
	catalog.add(testSeries(2, 1985, "JP", 5, "TV-Y", 1), []int64{16}, []int64{9})
	catalog.add(testSeries(50, 2011, "US", 90, "TV-MA", 4), []int64{18, 80}, []int64{1, 2})

	engine := NewSimilarityEngine(NewFeatureStore(catalog))
	ctx := context.Background()

	plain := BuildProfile([]domain.Rating{
		{TMDBID: 1, Rating: domain.RatingLike},
		{TMDBID: 2, Rating: domain.RatingLike},
	})
	anchored := BuildProfile([]domain.Rating{
		{TMDBID: 1, Rating: domain.RatingLike, IsAnchor: true},
		{TMDBID: 2, Rating: domain.RatingLike},
	})

	plainScore, err := engine.ScoreAndRank(ctx, plain, []uint64{50}, DefaultFeatureWeights())
	if err != nil {
		t.Fatal(err)
	}
	anchoredScore, err := engine.ScoreAndRank(ctx, anchored, []uint64{50}, DefaultFeatureWeights())
	if err != nil {
		t.Fatal(err)
	}

	// anchoring the similar series pulls the candidate's average up
	if anchoredScore[0].Score <= plainScore[0].Score {
		t.Fatalf("anchored %g should beat plain %g", anchoredScore[0].Score, plainScore[0].Score)
	}
}

func TestScoreAndRankOrderingAndRanks(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.add(testSeries(1, 2010, "US", 100, "TV-MA", 4), []int64{18, 80}, []int64{1, 2, 3})
	catalog.add(testSeries(50, 2010, "US", 100, "TV-MA", 4), []int64{18, 80}, []int64{1, 2, 3}) // near twin
	catalog.add(testSeries(51, 2014, "GB", 40, "TV-14", 2), []int64{18}, []int64{3})
	catalog.add(testSeries(52, 1990, "JP", 3, "TV-Y", 1), []int64{16}, []int64{99})

	engine := NewSimilarityEngine(NewFeatureStore(catalog))
	profile := BuildProfile([]domain.Rating{{TMDBID: 1, Rating: domain.RatingLike}})

	scored, err := engine.ScoreAndRank(context.Background(), profile, []uint64{52, 51, 50}, DefaultFeatureWeights())
	if err != nil {
		t.Fatal(err)
	}

	if len(scored) != 3 {
		t.Fatalf("got %d results, want 3", len(scored))
	}

	for i := 1; i < len(scored); i++ {
		if scored[i].Score > scored[i-1].Score {
			t.Fatalf("results not sorted descending: %v", scored)
		}
		if scored[i].Rank != i+1 {
			t.Fatalf("rank %d at position %d", scored[i].Rank, i)
		}
	}

	if scored[0].TMDBID != 50 {
		t.Fatalf("near twin should rank first, got %d", scored[0].TMDBID)
	}
}

func TestScoreAndRankStableTies(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.add(testSeries(1, 2010, "US", 100, "TV-MA", 4), []int64{18}, nil)
	// two candidates identical to each other: identical scores
	catalog.add(testSeries(60, 2010, "US", 100, "TV-MA", 4), []int64{18}, nil)
	catalog.add(testSeries(61, 2010, "US", 100, "TV-MA", 4), []int64{18}, nil)

	engine := NewSimilarityEngine(NewFeatureStore(catalog))
	profile := BuildProfile([]domain.Rating{{TMDBID: 1, Rating: domain.RatingLike}})

	scored, err := engine.ScoreAndRank(context.Background(), profile, []uint64{61, 60}, DefaultFeatureWeights())
	if err != nil {
		t.Fatal(err)
	}

	if scored[0].Score != scored[1].Score {
		t.Fatalf("expected a tie, got %g and %g", scored[0].Score, scored[1].Score)
	}
	// ties keep candidate enumeration order
	if scored[0].TMDBID != 61 || scored[1].TMDBID != 60 {
		t.Fatalf("tie order not stable: %v", scored)
	}
}

func TestScoreAndRankSkipsRatedSeries(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.add(testSeries(1, 2010, "US", 100, "TV-MA", 4), []int64{18}, nil)
	catalog.add(testSeries(2, 2012, "US", 50, "TV-14", 2), []int64{18}, nil)
	catalog.add(testSeries(50, 2011, "US", 80, "TV-MA", 3), []int64{18}, nil)

	engine := NewSimilarityEngine(NewFeatureStore(catalog))
	profile := BuildProfile([]domain.Rating{
		{TMDBID: 1, Rating: domain.RatingLike},
		{TMDBID: 2, Rating: domain.RatingDislike},
	})

	scored, err := engine.ScoreAndRank(context.Background(), profile, []uint64{1, 2, 50}, DefaultFeatureWeights())
	if err != nil {
		t.Fatal(err)
	}

	if len(scored) != 1 || scored[0].TMDBID != 50 {
		t.Fatalf("already rated series must not be recommended, got %v", scored)
	}
}

func TestScoreAndRankAverageValue(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.add(testSeries(1, 2010, "US", 10, "TV-14", 2), seq(1, 10), nil)
	catalog.add(testSeries(2, 2010, "US", 10, "TV-14", 2), seq(11, 20), nil)
	catalog.add(testSeries(50, 2010, "US", 10, "TV-14", 2), seq(1, 10), nil)

	engine := NewSimilarityEngine(NewFeatureStore(catalog))
	profile := BuildProfile([]domain.Rating{
		{TMDBID: 1, Rating: domain.RatingLike},
		{TMDBID: 2, Rating: domain.RatingLike},
	})

	// genre-only weights: candidate matches liked 1 at 1.0 and liked 2 at
	// 0.0, so the mean is 0.5
	scored, err := engine.ScoreAndRank(context.Background(), profile, []uint64{50}, genreOnlyWeights())
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(scored[0].Score-0.5) > 1e-9 {
		t.Fatalf("mean similarity %g, want 0.5", scored[0].Score)
	}
}
