package ingest

import (
	"context"
	"fmt"
	"seriesArchitect/domain"
	"seriesArchitect/pkg/logger"
	"seriesArchitect/pkg/metrics"
	"time"
)

const (
	requestPause     = 100 * time.Millisecond
	defaultMaxPages  = 25
	repairBatchLimit = 200
)

// TMDBSource is the upstream metadata provider.
type TMDBSource interface {
	DiscoverSeriesIDs(ctx context.Context, language string, maxPages int) ([]uint64, error)
	FetchSeries(ctx context.Context, tmdbID uint64) (*domain.TMDBSeries, error)
}

// CatalogWriter is the write side of the catalog.
type CatalogWriter interface {
	UpsertSeries(ctx context.Context, agg domain.TMDBSeries) error
	ListIncompleteSeries(ctx context.Context, limit int) ([]uint64, error)
}

// FeatureInvalidator drops cached similarity features after the catalog
// changes underneath them.
type FeatureInvalidator interface {
	Reset()
}

type IngestService struct {
	source   TMDBSource
	catalog  CatalogWriter
	features FeatureInvalidator
}

func NewIngestService(source TMDBSource, catalog CatalogWriter, features FeatureInvalidator) *IngestService {
	return &IngestService{
		source:   source,
		catalog:  catalog,
		features: features,
	}
}

// SyncResult summarizes one ingestion run.
type SyncResult struct {
	Language   string `json:"language,omitempty"`
	Discovered int    `json:"discovered"`
	Upserted   int    `json:"upserted"`
	Failed     int    `json:"failed"`
}

// SyncByLanguage discovers series in one original language and upserts them.
// Individual series failures are logged and counted, not fatal; an upstream
// failure mid-run still leaves the catalog consistent because every series
// is written in its own transaction.
func (s *IngestService) SyncByLanguage(ctx context.Context, language string, maxPages int) (SyncResult, error) {
	if err := ctx.Err(); err != nil {
		return SyncResult{}, fmt.Errorf("context error: %w", err)
	}

	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	ids, err := s.source.DiscoverSeriesIDs(ctx, language, maxPages)
	if err != nil {
		logger.Error("failed to discover series", err)
		return SyncResult{}, fmt.Errorf("failed to discover series: %w", err)
	}

	result := SyncResult{Language: language, Discovered: len(ids)}

	for _, id := range ids {
		if err := s.ingestOne(ctx, id); err != nil {
			if ctx.Err() != nil {
				return result, fmt.Errorf("context error: %w", ctx.Err())
			}
			logger.Error(fmt.Sprintf("failed to ingest series %d", id), err)
			result.Failed++
			continue
		}
		result.Upserted++

		if err := pause(ctx); err != nil {
			return result, err
		}
	}

	s.invalidate(result.Upserted)

	logger.Info("sync finished",
		"language", language,
		"discovered", result.Discovered,
		"upserted", result.Upserted,
		"failed", result.Failed,
	)

	return result, nil
}

// RepairCatalog refetches series whose enrichment never completed.
func (s *IngestService) RepairCatalog(ctx context.Context) (SyncResult, error) {
	if err := ctx.Err(); err != nil {
		return SyncResult{}, fmt.Errorf("context error: %w", err)
	}

	ids, err := s.catalog.ListIncompleteSeries(ctx, repairBatchLimit)
	if err != nil {
		logger.Error("failed to list incomplete series", err)
		return SyncResult{}, fmt.Errorf("failed to list incomplete series: %w", err)
	}

	result := SyncResult{Discovered: len(ids)}

	for _, id := range ids {
		if err := s.ingestOne(ctx, id); err != nil {
			if ctx.Err() != nil {
				return result, fmt.Errorf("context error: %w", ctx.Err())
			}
			logger.Error(fmt.Sprintf("failed to repair series %d", id), err)
			result.Failed++
			continue
		}
		result.Upserted++

		if err := pause(ctx); err != nil {
			return result, err
		}
	}

	s.invalidate(result.Upserted)

	return result, nil
}

func (s *IngestService) ingestOne(ctx context.Context, id uint64) error {
	agg, err := s.source.FetchSeries(ctx, id)
	if err != nil {
		return err
	}

	if err := s.catalog.UpsertSeries(ctx, *agg); err != nil {
		return err
	}

	metrics.IngestSeriesUpserts.Inc()
	return nil
}

func (s *IngestService) invalidate(upserted int) {
	if upserted > 0 && s.features != nil {
		s.features.Reset()
	}
}

// pause spaces out upstream calls to stay under the provider's rate limit.
func pause(ctx context.Context) error {
	timer := time.NewTimer(requestPause)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("context error: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
