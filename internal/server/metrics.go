package server

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/ontograph/pkg/observability"
)

const namespace = "ontograph"

// Metrics holds the Prometheus collectors for the API and implements the
// observability hook interfaces, so registering it with
// [observability.SetEngineHooks] and friends routes engine events into
// Prometheus.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	loads          *prometheus.CounterVec
	loadDuration   *prometheus.HistogramVec
	failedLoads    *prometheus.CounterVec
	loadedNodes    *prometheus.GaugeVec
	builds         *prometheus.CounterVec
	buildSize      *prometheus.GaugeVec
	layouts        *prometheus.CounterVec
	layoutDuration prometheus.Histogram

	cacheEvents *prometheus.CounterVec

	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

var (
	_ observability.EngineHooks = (*Metrics)(nil)
	_ observability.CacheHooks  = (*Metrics)(nil)
	_ observability.HTTPHooks   = (*Metrics)(nil)
)

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total",
			Help: "API requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help: "API request latency.", Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "registry_loads_total",
			Help: "Completed registry loads by source.",
		}, []string{"source"}),
		loadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "registry_load_duration_seconds",
			Help: "Registry load latency.", Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		failedLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "registry_failed_collections_total",
			Help: "Collections that degraded to empty during a load.",
		}, []string{"source"}),
		loadedNodes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "registry_loaded_records",
			Help: "Records returned by the most recent load.",
		}, []string{"source", "type"}),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "builds_total",
			Help: "Derived views computed, by view.",
		}, []string{"view"}),
		buildSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "build_size",
			Help: "Size of the most recently computed view.",
		}, []string{"view"}),
		layouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "layouts_total",
			Help: "Force simulation runs by outcome.",
		}, []string{"outcome"}),
		layoutDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "layout_duration_seconds",
			Help: "Force simulation latency.", Buckets: prometheus.DefBuckets,
		}),

		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "cache_events_total",
			Help: "Registry cache hits, misses and writes.",
		}, []string{"key_type", "event"}),

		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "registry_http_requests_total",
			Help: "Requests to the upstream registry by host and status.",
		}, []string{"host", "status"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "registry_http_request_duration_seconds",
			Help: "Upstream registry latency.", Buckets: prometheus.DefBuckets,
		}, []string{"host"}),
	}

	reg.MustRegister(
		m.requests, m.requestDuration,
		m.loads, m.loadDuration, m.failedLoads, m.loadedNodes,
		m.builds, m.buildSize, m.layouts, m.layoutDuration,
		m.cacheEvents, m.upstreamRequests, m.upstreamDuration,
	)
	return m
}

func (m *Metrics) observeRequest(method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// =============================================================================
// Engine Hooks
// =============================================================================

func (m *Metrics) OnLoadStart(context.Context, string) {}

func (m *Metrics) OnLoadComplete(_ context.Context, source string, nodeCount, edgeCount, failed int, d time.Duration) {
	m.loads.WithLabelValues(source).Inc()
	m.loadDuration.WithLabelValues(source).Observe(d.Seconds())
	m.failedLoads.WithLabelValues(source).Add(float64(failed))
	m.loadedNodes.WithLabelValues(source, "nodes").Set(float64(nodeCount))
	m.loadedNodes.WithLabelValues(source, "edges").Set(float64(edgeCount))
}

func (m *Metrics) OnBuild(_ context.Context, view string, size int, _ time.Duration) {
	m.builds.WithLabelValues(view).Inc()
	m.buildSize.WithLabelValues(view).Set(float64(size))
}

func (m *Metrics) OnLayout(_ context.Context, _, _ int, d time.Duration, err error) {
	outcome := "completed"
	if err != nil {
		outcome = "cancelled"
	}
	m.layouts.WithLabelValues(outcome).Inc()
	m.layoutDuration.Observe(d.Seconds())
}

// =============================================================================
// Cache Hooks
// =============================================================================

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, _ int) {
	m.cacheEvents.WithLabelValues(keyType, "set").Inc()
}

// =============================================================================
// HTTP Hooks
// =============================================================================

func (m *Metrics) OnRequest(context.Context, string, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, _, host, _ string, status int, d time.Duration) {
	m.upstreamRequests.WithLabelValues(host, strconv.Itoa(status)).Inc()
	m.upstreamDuration.WithLabelValues(host).Observe(d.Seconds())
}

func (m *Metrics) OnError(_ context.Context, _, host, _ string, _ error) {
	m.upstreamRequests.WithLabelValues(host, "error").Inc()
}

// Register installs m as the engine, cache and HTTP hooks.
func (m *Metrics) Register() {
	observability.SetEngineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}
