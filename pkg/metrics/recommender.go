package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendations HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_latency_seconds",
		Help:    "Latency of the recommendations handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served
	RecommendRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_requests_total",
		Help: "Total number of recommendation requests",
	})

	// Requests rejected before scoring, labeled by reason code
	RecommendRejections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommend_rejections_total",
		Help: "Recommendation requests that produced no results, by reason",
	}, []string{"reason"})

	FeatureCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feature_cache_hits_total",
		Help: "Feature store cache hits",
	})

	FeatureCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feature_cache_misses_total",
		Help: "Feature store cache misses",
	})

	// Series written to the catalog by the ingest pipeline
	IngestSeriesUpserts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ingest_series_upserts_total",
		Help: "Total number of series upserted by ingestion",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		RecommendRejections,
		FeatureCacheHits,
		FeatureCacheMisses,
		IngestSeriesUpserts,
	)
}
