package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "insights"

// ProjectionMetrics records pipeline runs, repair counts and memo effectiveness.
type ProjectionMetrics struct {
	duration    *prometheus.HistogramVec
	defaulted   *prometheus.CounterVec
	clamped     *prometheus.CounterVec
	dropped     prometheus.Counter
	memo        *prometheus.CounterVec
	rateLimited *prometheus.CounterVec
}

// NewProjectionMetrics registers the projection metrics on the provided registerer. A nil
// registerer yields a no-op recorder.
func NewProjectionMetrics(reg prometheus.Registerer) *ProjectionMetrics {
	if reg == nil {
		return &ProjectionMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "projection_duration_seconds",
		Help:      "Duration of projection pipeline runs in seconds.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"metric"})
	defaulted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projection_defaulted_fields_total",
		Help:      "Fields replaced by their default during validation.",
	}, []string{"policy"})
	clamped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projection_clamped_fields_total",
		Help:      "Fields clamped into their bounds during validation.",
	}, []string{"policy"})
	dropped := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projection_dropped_records_total",
		Help:      "Malformed records dropped by the drop_malformed policy.",
	})
	memo := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projection_memo_lookups_total",
		Help:      "Memo lookups by stage and outcome.",
	}, []string{"stage", "result"})
	rateLimited := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_rate_limited_total",
		Help:      "Requests rejected by the rate limiter.",
	}, []string{"route"})
	reg.MustRegister(duration, defaulted, clamped, dropped, memo, rateLimited)
	return &ProjectionMetrics{
		duration:    duration,
		defaulted:   defaulted,
		clamped:     clamped,
		dropped:     dropped,
		memo:        memo,
		rateLimited: rateLimited,
	}
}

// ObserveDuration records how long computing metric took.
func (m *ProjectionMetrics) ObserveDuration(metric string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(metric)).Observe(duration.Seconds())
}

// AddRepairs adds the defaulted and clamped field counts of one request.
func (m *ProjectionMetrics) AddRepairs(policy string, defaulted, clamped int) {
	if m == nil || m.defaulted == nil {
		return
	}
	label := normalizeLabel(policy)
	if defaulted > 0 {
		m.defaulted.WithLabelValues(label).Add(float64(defaulted))
	}
	if clamped > 0 {
		m.clamped.WithLabelValues(label).Add(float64(clamped))
	}
}

// AddDropped adds n dropped records.
func (m *ProjectionMetrics) AddDropped(n int) {
	if m == nil || m.dropped == nil || n <= 0 {
		return
	}
	m.dropped.Add(float64(n))
}

// ObserveMemo counts a memo lookup. It satisfies projection.Observer.
func (m *ProjectionMetrics) ObserveMemo(stage string, hit bool) {
	if m == nil || m.memo == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.memo.WithLabelValues(normalizeLabel(stage), result).Inc()
}

// IncRateLimited counts a request rejected on route.
func (m *ProjectionMetrics) IncRateLimited(route string) {
	if m == nil || m.rateLimited == nil {
		return
	}
	m.rateLimited.WithLabelValues(normalizeLabel(route)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
