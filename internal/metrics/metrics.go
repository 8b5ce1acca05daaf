package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "feedback"

// NewRegistry creates a Prometheus registry with Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// Handler returns an http.Handler that serves Prometheus metrics.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// ReportMetrics holds Prometheus metrics for report building and the report cache.
type ReportMetrics struct {
	ReportsBuilt     prometheus.Counter
	ReportFailures   *prometheus.CounterVec
	ResponsesTallied *prometheus.CounterVec
	CacheLookups     *prometheus.CounterVec
}

// NewReportMetrics creates and registers report metrics on the given registry.
func NewReportMetrics(reg prometheus.Registerer) *ReportMetrics {
	m := &ReportMetrics{
		ReportsBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "built_total",
			Help:      "Total number of feedback reports built.",
		}),
		ReportFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "failures_total",
			Help:      "Total number of failed report builds, by reason.",
		}, []string{"reason"}),
		ResponsesTallied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "responses_tallied_total",
			Help:      "Total number of responses tallied, by question.",
		}, []string{"question"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "report_cache",
			Name:      "lookups_total",
			Help:      "Total number of report cache lookups, by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(m.ReportsBuilt, m.ReportFailures, m.ResponsesTallied, m.CacheLookups)
	return m
}

func (m *ReportMetrics) QuestionTallied(question string, responses int) {
	m.ResponsesTallied.WithLabelValues(question).Add(float64(responses))
}

func (m *ReportMetrics) ReportBuilt() { m.ReportsBuilt.Inc() }

func (m *ReportMetrics) ReportFailed(reason string) {
	m.ReportFailures.WithLabelValues(reason).Inc()
}

func (m *ReportMetrics) CacheHit() { m.CacheLookups.WithLabelValues("hit").Inc() }

func (m *ReportMetrics) CacheMiss() { m.CacheLookups.WithLabelValues("miss").Inc() }
