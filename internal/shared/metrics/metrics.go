package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	resumesReceivedTotal  atomic.Uint64
	resumesCompletedTotal atomic.Uint64
	resumesFailedTotal    atomic.Uint64
	resumesRejectedTotal  atomic.Uint64

	stageFallbacks = newLabeledCounter()

	pipelineDuration = newHistogram([]float64{1000, 2500, 5000, 10000, 20000, 30000, 60000, 120000, 300000})
)

// IncResumeReceived increments the received counter.
func IncResumeReceived() {
	resumesReceivedTotal.Add(1)
}

// IncResumeCompleted increments the completed counter.
func IncResumeCompleted() {
	resumesCompletedTotal.Add(1)
}

// IncResumeFailed increments the failed counter.
func IncResumeFailed() {
	resumesFailedTotal.Add(1)
}

// IncResumeRejected increments the counter for uploads rejected by validation.
func IncResumeRejected() {
	resumesRejectedTotal.Add(1)
}

// IncStageFallback records that a pipeline stage substituted its fallback value.
func IncStageFallback(stage string) {
	stageFallbacks.Inc(stage)
}

// ObservePipelineDurationMs records a pipeline duration in milliseconds.
func ObservePipelineDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	pipelineDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "resumes_received_total", "Total resume submissions accepted for processing", resumesReceivedTotal.Load())
	writeCounter(&buf, "resumes_completed_total", "Total resume submissions processed", resumesCompletedTotal.Load())
	writeCounter(&buf, "resumes_failed_total", "Total resume submissions that failed", resumesFailedTotal.Load())
	writeCounter(&buf, "resumes_rejected_total", "Total resume uploads rejected by validation", resumesRejectedTotal.Load())
	writeLabeledCounter(&buf, "stage_fallbacks_total", "Total stage fallbacks by stage", "stage", stageFallbacks.Snapshot())
	writeHistogram(&buf, "pipeline_duration_ms", "Resume pipeline duration in milliseconds", pipelineDuration.Snapshot())
	return buf.String()
}

type labeledCounter struct {
	mu     sync.Mutex
	values map[string]uint64
}

func newLabeledCounter() *labeledCounter {
	return &labeledCounter{values: make(map[string]uint64)}
}

func (l *labeledCounter) Inc(label string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.values[label]++
}

func (l *labeledCounter) Get(label string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.values[label]
}

func (l *labeledCounter) Snapshot() map[string]uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]uint64, len(l.values))
	for k, v := range l.values {
		out[k] = v
	}
	return out
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeLabeledCounter(buf *bytes.Buffer, name, help, label string, values map[string]uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(buf, "%s{%s=%q} %d\n", name, label, k, values[k])
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	// counts are already cumulative: Observe bumps every bucket whose bound covers the value.
	for i, bound := range snap.buckets {
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), snap.counts[i])
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
