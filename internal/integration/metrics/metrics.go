// Package metrics exposes Prometheus collectors for the HTTP API and the recurring scheduler.
package metrics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/finance-tracker/recurring/internal/application/adapter"
)

// Collectors holds every metric the service exports.
type Collectors struct {
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	recurringRuns   prometheus.Counter
	occurrences     *prometheus.CounterVec
	runDuration     prometheus.Histogram
	lastRun         prometheus.Gauge
}

// New creates the collectors and registers them with the given registerer.
func New(registerer prometheus.Registerer) (*Collectors, error) {
	c := &Collectors{
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "requests_total",
				Help: "How many HTTP requests processed, partitioned by status code and HTTP method.",
			},
			[]string{"code", "method", "url"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "request_duration_seconds",
				Help: "The HTTP request latencies in seconds.",
			},
			[]string{"code", "method", "url"},
		),
		recurringRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recurring_runs_total",
			Help: "How many recurring scheduler runs completed.",
		}),
		occurrences: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recurring_occurrences_total",
				Help: "Recurring definitions processed, partitioned by outcome.",
			},
			[]string{"outcome"},
		),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "recurring_run_duration_seconds",
			Help: "How long a recurring scheduler run took.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "recurring_last_run_timestamp_seconds",
			Help: "Unix time of the last completed recurring scheduler run.",
		}),
	}

	for _, collector := range []prometheus.Collector{
		c.requestCount, c.requestDuration, c.recurringRuns, c.occurrences, c.runDuration, c.lastRun,
	} {
		if err := registerer.Register(collector); err != nil {
			return nil, fmt.Errorf("could not register %T with Prometheus: %w", collector, err)
		}
	}

	return c, nil
}

// ObserveRun implements adapter.SchedulerMetrics.
func (c *Collectors) ObserveRun(stats adapter.RecurringRunStats) {
	c.recurringRuns.Inc()
	c.occurrences.WithLabelValues("created").Add(float64(stats.Created))
	c.occurrences.WithLabelValues("already_materialized").Add(float64(stats.AlreadyMaterialized))
	c.occurrences.WithLabelValues("failed").Add(float64(stats.Failed))
	c.runDuration.Observe(stats.Duration.Seconds())
	c.lastRun.SetToCurrentTime()
}

// Middleware updates the HTTP request metrics.
func (c *Collectors) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		status := strconv.Itoa(ctx.Writer.Status())
		elapsed := time.Since(start).Seconds()

		// Replace URL parameters with their name to keep label cardinality low
		url := ctx.Request.URL.Path
		for _, p := range ctx.Params {
			url = strings.Replace(url, p.Value, ":"+p.Key, 1)
		}

		c.requestDuration.WithLabelValues(status, ctx.Request.Method, url).Observe(elapsed)
		c.requestCount.WithLabelValues(status, ctx.Request.Method, url).Inc()
	}
}
