package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты обращения к кэшу слотов
const (
	CacheHit     = "hit"
	CacheLoading = "loading"
	CacheMiss    = "miss"
	CacheRefresh = "refresh"
)

// Исходы загрузки слотов
const (
	LoadCommitted = "committed"
	LoadFailed    = "failed"
	LoadStale     = "stale"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	slotCacheLookups    *prometheus.CounterVec
	slotLoads           *prometheus.CounterVec
	slotLoadDuration    prometheus.Histogram
}

// New создает метрики и регистрирует их в глобальном реестре
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		slotCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_cache_lookups_total",
			Help:        "Slot cache lookups by result (hit, loading, miss, refresh)",
			ConstLabels: constLabels,
		}, []string{"result"}),
		slotLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_loads_total",
			Help:        "Finished slot loads by outcome (committed, failed, stale)",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		slotLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "slot_load_duration_seconds",
			Help:        "Duration of slot loader calls",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.slotCacheLookups,
		m.slotLoads,
		m.slotLoadDuration,
	)

	return m
}

// ObserveHTTPRequest учитывает обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// SlotCacheLookup учитывает обращение к кэшу слотов
func (m *Metrics) SlotCacheLookup(result string) {
	m.slotCacheLookups.WithLabelValues(result).Inc()
}

// SlotLoadFinished учитывает завершение загрузки слотов
func (m *Metrics) SlotLoadFinished(outcome string, duration time.Duration) {
	m.slotLoads.WithLabelValues(outcome).Inc()
	m.slotLoadDuration.Observe(duration.Seconds())
}
