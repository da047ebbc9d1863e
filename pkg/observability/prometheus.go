package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus implements all hook interfaces with Prometheus collectors.
// Register it with SetPipelineHooks, SetCacheHooks and SetHTTPHooks.
type Prometheus struct {
	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	sourceBytes   prometheus.Histogram
	diagramEvents prometheus.Histogram
	cacheOps      *prometheus.CounterVec
	cacheBytes    *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	httpInFlight  prometheus.Gauge
	httpErrors    *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them with reg.
// It panics if a collector is already registered, like MustRegister.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seqdiag_stage_duration_seconds",
				Help:    "Duration of pipeline stages",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"stage"},
		),
		stageErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seqdiag_stage_errors_total",
				Help: "Total number of failed pipeline stages",
			},
			[]string{"stage"},
		),
		sourceBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "seqdiag_source_bytes",
			Help:    "Size of parsed diagram sources",
			Buckets: prometheus.ExponentialBuckets(64, 4, 8),
		}),
		diagramEvents: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "seqdiag_diagram_events",
			Help:    "Number of events in parsed diagrams",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		cacheOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seqdiag_cache_operations_total",
				Help: "Cache lookups and writes by key type and result",
			},
			[]string{"key_type", "result"},
		),
		cacheBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seqdiag_cache_written_bytes_total",
				Help: "Bytes written to the cache",
			},
			[]string{"key_type"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seqdiag_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"method", "route", "code"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seqdiag_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "seqdiag_http_requests_in_flight",
			Help: "HTTP requests currently being served",
		}),
		httpErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seqdiag_http_errors_total",
				Help: "HTTP requests that failed with an error or panic",
			},
			[]string{"method", "route"},
		),
	}
	reg.MustRegister(
		p.stageDuration, p.stageErrors, p.sourceBytes, p.diagramEvents,
		p.cacheOps, p.cacheBytes,
		p.httpRequests, p.httpDuration, p.httpInFlight, p.httpErrors,
	)
	return p
}

func (p *Prometheus) stage(name string, d time.Duration, err error) {
	p.stageDuration.WithLabelValues(name).Observe(d.Seconds())
	if err != nil {
		p.stageErrors.WithLabelValues(name).Inc()
	}
}

func (p *Prometheus) OnParseStart(_ context.Context, sourceBytes int) {
	p.sourceBytes.Observe(float64(sourceBytes))
}

func (p *Prometheus) OnParseComplete(_ context.Context, _, events int, d time.Duration, err error) {
	p.stage("parse", d, err)
	if err == nil {
		p.diagramEvents.Observe(float64(events))
	}
}

func (p *Prometheus) OnLayoutStart(context.Context, int) {}

func (p *Prometheus) OnLayoutComplete(_ context.Context, d time.Duration, err error) {
	p.stage("layout", d, err)
}

func (p *Prometheus) OnRenderStart(context.Context, []string) {}

func (p *Prometheus) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	p.stage("render", d, err)
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheOps.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (p *Prometheus) OnRequest(context.Context, string, string) {
	p.httpInFlight.Inc()
}

func (p *Prometheus) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	p.httpInFlight.Dec()
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (p *Prometheus) OnError(_ context.Context, method, route string, _ error) {
	p.httpErrors.WithLabelValues(method, route).Inc()
}

var (
	_ PipelineHooks = (*Prometheus)(nil)
	_ CacheHooks    = (*Prometheus)(nil)
	_ HTTPHooks     = (*Prometheus)(nil)
)
