package ingest

import (
	"context"
	"errors"
	"seriesArchitect/domain"
	"testing"
)

type fakeSource struct {
	ids     []uint64
	failIDs map[uint64]bool
	fetched []uint64
}

func (f *fakeSource) DiscoverSeriesIDs(ctx context.Context, language string, maxPages int) ([]uint64, error) {
	return f.ids, nil
}

func (f *fakeSource) FetchSeries(ctx context.Context, tmdbID uint64) (*domain.TMDBSeries, error) {
	if f.failIDs[tmdbID] {
		return nil, errors.New("upstream error")
	}
	f.fetched = append(f.fetched, tmdbID)
	return &domain.TMDBSeries{Series: domain.Series{TMDBID: tmdbID}}, nil
}

type fakeWriter struct {
	upserted   []uint64
	incomplete []uint64
}

func (f *fakeWriter) UpsertSeries(ctx context.Context, agg domain.TMDBSeries) error {
	f.upserted = append(f.upserted, agg.Series.TMDBID)
	return nil
}

func (f *fakeWriter) ListIncompleteSeries(ctx context.Context, limit int) ([]uint64, error) {
	return f.incomplete, nil
}

type fakeInvalidator struct {
	resets int
}

func (f *fakeInvalidator) Reset() {
	f.resets++
}

func TestSyncByLanguage(t *testing.T) {
	source := &fakeSource{ids: []uint64{1, 2, 3}}
	writer := &fakeWriter{}
	inv := &fakeInvalidator{}
	svc := NewIngestService(source, writer, inv)

	result, err := svc.SyncByLanguage(context.Background(), "he", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Discovered != 3 || result.Upserted != 3 || result.Failed != 0 {
		t.Errorf("unexpected result: %+v", result)
	}
	if len(writer.upserted) != 3 {
		t.Errorf("expected 3 upserts, got %d", len(writer.upserted))
	}
	if inv.resets != 1 {
		t.Errorf("expected one cache reset, got %d", inv.resets)
	}
}

func TestSyncCountsPerSeriesFailures(t *testing.T) {
	source := &fakeSource{ids: []uint64{1, 2, 3}, failIDs: map[uint64]bool{2: true}}
	writer := &fakeWriter{}
	svc := NewIngestService(source, writer, &fakeInvalidator{})

	result, err := svc.SyncByLanguage(context.Background(), "en", 1)
	if err != nil {
		t.Fatalf("a single bad series must not abort the run: %v", err)
	}

	if result.Upserted != 2 || result.Failed != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestSyncSkipsResetWhenNothingChanged(t *testing.T) {
	source := &fakeSource{ids: nil}
	inv := &fakeInvalidator{}
	svc := NewIngestService(source, &fakeWriter{}, inv)

	if _, err := svc.SyncByLanguage(context.Background(), "ja", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.resets != 0 {
		t.Errorf("cache reset without any upsert")
	}
}

func TestSyncStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewIngestService(&fakeSource{ids: []uint64{1}}, &fakeWriter{}, nil)
	if _, err := svc.SyncByLanguage(ctx, "he", 1); err == nil {
		t.Fatal("expected a context error")
	}
}

func TestRepairCatalog(t *testing.T) {
	source := &fakeSource{}
	writer := &fakeWriter{incomplete: []uint64{10, 11}}
	inv := &fakeInvalidator{}
	svc := NewIngestService(source, writer, inv)

	result, err := svc.RepairCatalog(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Discovered != 2 || result.Upserted != 2 {
		t.Errorf("unexpected result: %+v", result)
	}
	if len(source.fetched) != 2 {
		t.Errorf("expected refetch of both incomplete series")
	}
	if inv.resets != 1 {
		t.Errorf("expected one cache reset, got %d", inv.resets)
	}
}
