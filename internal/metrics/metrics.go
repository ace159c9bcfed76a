package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "voxel"

// Collector records chunk build statistics. A nil *Collector is valid and records nothing.
type Collector struct {
	chunksBuilt  prometheus.Counter
	chunksFailed prometheus.Counter
	faces        prometheus.Counter
	buildSeconds prometheus.Histogram
}

// New creates a Collector and registers it with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		chunksBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_built_total",
			Help:      "Chunks generated and meshed.",
		}),
		chunksFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_failed_total",
			Help:      "Chunks skipped because generation or meshing failed.",
		}),
		faces: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "faces_emitted_total",
			Help:      "Quads emitted by the mesher.",
		}),
		buildSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chunk_build_seconds",
			Help:      "Time to generate and mesh one chunk.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
	}
	reg.MustRegister(c.chunksBuilt, c.chunksFailed, c.faces, c.buildSeconds)
	return c
}

// ChunkBuilt records one successful chunk.
func (c *Collector) ChunkBuilt(faces int, took time.Duration) {
	if c == nil {
		return
	}
	c.chunksBuilt.Inc()
	c.faces.Add(float64(faces))
	c.buildSeconds.Observe(took.Seconds())
}

// ChunkFailed records one skipped chunk.
func (c *Collector) ChunkFailed() {
	if c == nil {
		return
	}
	c.chunksFailed.Inc()
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
