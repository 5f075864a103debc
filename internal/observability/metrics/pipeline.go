package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PipelineMetrics covers both the offline index build and the online
// retrieval path. Each process gets its own registry.
type PipelineMetrics struct {
	registry *prometheus.Registry

	documentsLoaded prometheus.Counter
	chunksIndexed   prometheus.Counter
	buildDuration   prometheus.Histogram

	retrievalTotal     prometheus.Counter
	retrievalHitTotal  prometheus.Counter
	retrievalNoContext prometheus.Counter
	retrievedChunks    prometheus.Histogram
	retrievalDuration  prometheus.Histogram
}

func NewPipelineMetrics(service string) *PipelineMetrics {
	registry := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"service": service}

	documentsLoaded := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   "policyrag",
		Subsystem:   "index",
		Name:        "documents_loaded_total",
		Help:        "Total documents loaded across build runs.",
		ConstLabels: constLabels,
	})
	chunksIndexed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   "policyrag",
		Subsystem:   "index",
		Name:        "chunks_indexed_total",
		Help:        "Total chunks upserted across build runs.",
		ConstLabels: constLabels,
	})
	buildDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   "policyrag",
		Subsystem:   "index",
		Name:        "build_duration_seconds",
		Help:        "Index build duration in seconds.",
		Buckets:     []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		ConstLabels: constLabels,
	})

	retrievalTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   "policyrag",
		Subsystem:   "retrieval",
		Name:        "requests_total",
		Help:        "Total retrieval requests.",
		ConstLabels: constLabels,
	})
	retrievalHitTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   "policyrag",
		Subsystem:   "retrieval",
		Name:        "hit_total",
		Help:        "Total retrieval requests with at least one result.",
		ConstLabels: constLabels,
	})
	retrievalNoContext := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   "policyrag",
		Subsystem:   "retrieval",
		Name:        "no_context_total",
		Help:        "Total retrieval requests without results.",
		ConstLabels: constLabels,
	})
	retrievedChunks := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   "policyrag",
		Subsystem:   "retrieval",
		Name:        "retrieved_chunks",
		Help:        "Distribution of returned chunks per retrieval request.",
		Buckets:     []float64{0, 1, 2, 3, 5, 8, 13, 21},
		ConstLabels: constLabels,
	})
	retrievalDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   "policyrag",
		Subsystem:   "retrieval",
		Name:        "duration_seconds",
		Help:        "Retrieval request duration in seconds.",
		Buckets:     prometheus.DefBuckets,
		ConstLabels: constLabels,
	})

	registry.MustRegister(
		documentsLoaded,
		chunksIndexed,
		buildDuration,
		retrievalTotal,
		retrievalHitTotal,
		retrievalNoContext,
		retrievedChunks,
		retrievalDuration,
	)

	return &PipelineMetrics{
		registry:           registry,
		documentsLoaded:    documentsLoaded,
		chunksIndexed:      chunksIndexed,
		buildDuration:      buildDuration,
		retrievalTotal:     retrievalTotal,
		retrievalHitTotal:  retrievalHitTotal,
		retrievalNoContext: retrievalNoContext,
		retrievedChunks:    retrievedChunks,
		retrievalDuration:  retrievalDuration,
	}
}

func (m *PipelineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *PipelineMetrics) ObserveBuild(documents, chunks int, duration time.Duration) {
	m.documentsLoaded.Add(float64(documents))
	m.chunksIndexed.Add(float64(chunks))
	m.buildDuration.Observe(duration.Seconds())
}

func (m *PipelineMetrics) ObserveRetrieval(sourceCount int, duration time.Duration) {
	m.retrievalTotal.Inc()
	m.retrievedChunks.Observe(float64(sourceCount))
	m.retrievalDuration.Observe(duration.Seconds())

	if sourceCount > 0 {
		m.retrievalHitTotal.Inc()
		return
	}
	m.retrievalNoContext.Inc()
}
