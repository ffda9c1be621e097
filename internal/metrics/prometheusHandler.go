package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var admissionDeniedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "admission_denied_total",
	Help: "Requests rejected by the admission gate, labelled by reason",
}, []string{"reason"})

var liveEngineProcesses = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "live_engine_processes",
	Help: "Engine child processes currently running",
})

var engineCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "engine_call_duration_seconds",
	Help:    "Wall time of one engine invocation, spawn to exit.",
	Buckets: []float64{.5, 1, 2, 5, 10, 30, 60, 120},
}, []string{"shape", "outcome"})

var uploadsProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "uploads_processed_total",
	Help: "Completed ingestion attempts labelled by outcome",
}, []string{"outcome"})

// HttpStatusRecorder captures the status a handler wrote so the request
// counter can be labelled after the fact.
type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func IncrementAdmissionDenied(reason string) {
	admissionDeniedTotal.WithLabelValues(reason).Inc()
}

func IncrementLiveEngineProcesses() {
	liveEngineProcesses.Inc()
}

func DecrementLiveEngineProcesses() {
	liveEngineProcesses.Dec()
}

func CaptureEngineCall(shape string, outcome string, elapsed time.Duration) {
	engineCallDuration.WithLabelValues(shape, outcome).Observe(elapsed.Seconds())
}

func CaptureUploadOutcome(outcome string) {
	uploadsProcessedTotal.WithLabelValues(outcome).Inc()
}
