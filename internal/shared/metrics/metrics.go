package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	pipelineStartedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pipeline_started_total",
		Help: "Total processing pipeline runs started",
	})
	pipelineCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pipeline_completed_total",
		Help: "Total processing pipeline runs completed successfully",
	})
	pipelineFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pipeline_failed_total",
		Help: "Total processing pipeline runs that failed",
	})
	pipelineFallbackTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pipeline_fallback_total",
		Help: "Total runs that degraded to the heuristic fallback profile",
	})
	creditRefundsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "credit_refunds_total",
		Help: "Total credit refunds issued by the pipeline",
	})
	pipelineDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pipeline_duration_ms",
		Help:    "Processing pipeline duration in milliseconds",
		Buckets: []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000},
	})
)

// IncPipelineStarted increments the started counter.
func IncPipelineStarted() {
	pipelineStartedTotal.Inc()
}

// IncPipelineCompleted increments the completed counter.
func IncPipelineCompleted() {
	pipelineCompletedTotal.Inc()
}

// IncPipelineFailed increments the failed counter.
func IncPipelineFailed() {
	pipelineFailedTotal.Inc()
}

// IncPipelineFallback increments the fallback counter.
func IncPipelineFallback() {
	pipelineFallbackTotal.Inc()
}

// IncCreditRefund increments the refund counter.
func IncCreditRefund() {
	creditRefundsTotal.Inc()
}

// ObservePipelineDurationMs records a pipeline duration in milliseconds.
func ObservePipelineDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	pipelineDuration.Observe(value)
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
