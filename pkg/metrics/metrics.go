package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values shared by the counters below.
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultFallback = "fallback"
)

// Uploader pipeline metrics
var (
	JobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_transfer_jobs_total",
			Help: "Total number of upload jobs that reached a terminal state",
		},
		[]string{"result"},
	)

	ChunksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_transfer_chunks_total",
			Help: "Total number of chunk transfers",
		},
		[]string{"result"},
	)

	ChunkBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_transfer_chunk_bytes_total",
			Help: "Total payload bytes acknowledged by the chunk receiver",
		},
	)

	ChunkDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_transfer_chunk_duration_seconds",
			Help:    "Chunk transfer duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	FinalizeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_transfer_finalize_total",
			Help: "Total number of finalize calls",
		},
		[]string{"result"},
	)

	TranscodeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_transfer_transcode_total",
			Help: "Total number of transcode attempts",
		},
		[]string{"result"},
	)

	TranscodeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_transfer_transcode_duration_seconds",
			Help:    "Transcode duration in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	CodecLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_transfer_codec_loads_total",
			Help: "Total number of codec runtime load attempts",
		},
		[]string{"result"},
	)
)

// Receiver metrics
var (
	PartsReceivedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_receiver_parts_total",
			Help: "Total number of chunk parts received",
		},
		[]string{"result"},
	)

	PartBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_receiver_part_bytes_total",
			Help: "Total bytes of accepted chunk parts",
		},
	)

	AssembleTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_receiver_finalize_total",
			Help: "Total number of finalize requests",
		},
		[]string{"result"},
	)

	AssembledBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_receiver_assembled_bytes_total",
			Help: "Total bytes written to the object store by finalize",
		},
	)

	SweptSessionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_receiver_swept_sessions_total",
			Help: "Total number of abandoned upload sessions removed by the sweeper",
		},
	)

	BackendCircuitState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_receiver_backend_circuit_state",
			Help: "Storage backend circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"backend"},
	)
)

// ResultLabel maps an error to the result label.
func ResultLabel(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
