package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	exampleOutcomes  *prom.CounterVec
	examplesDuration *prom.HistogramVec
	stageDuration    *prom.HistogramVec
	siteOutcomes     *prom.CounterVec
	filteredLines    *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg.
// A nil registry gets a fresh private one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		exampleOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "doccheck",
			Name:      "example_package_results_total",
			Help:      "Example check outcomes per package",
		}, []string{"package", "outcome"}),
		examplesDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "doccheck",
			Name:      "example_package_duration_seconds",
			Help:      "Duration of running a package's examples",
			Buckets:   prom.DefBuckets,
		}, []string{"package"}),
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "doccheck",
			Name:      "site_stage_duration_seconds",
			Help:      "Duration of site check stages",
			Buckets:   prom.ExponentialBuckets(0.01, 4, 8),
		}, []string{"stage"}),
		siteOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "doccheck",
			Name:      "site_results_total",
			Help:      "Site check outcomes",
		}, []string{"outcome"}),
		filteredLines: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "doccheck",
			Name:      "site_diagnostic_lines_total",
			Help:      "Builder diagnostic lines by filter disposition",
		}, []string{"disposition"}),
	}
	reg.MustRegister(pr.exampleOutcomes, pr.examplesDuration, pr.stageDuration, pr.siteOutcomes, pr.filteredLines)
	return pr
}

func (p *PrometheusRecorder) IncExampleOutcome(pkg string, outcome string) {
	if p == nil {
		return
	}
	p.exampleOutcomes.WithLabelValues(pkg, outcome).Inc()
}

func (p *PrometheusRecorder) ObserveExamplesDuration(pkg string, d time.Duration) {
	if p == nil {
		return
	}
	p.examplesDuration.WithLabelValues(pkg).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncSiteOutcome(outcome string) {
	if p == nil {
		return
	}
	p.siteOutcomes.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) AddFilteredLines(kept, dropped int) {
	if p == nil {
		return
	}
	p.filteredLines.WithLabelValues("kept").Add(float64(kept))
	p.filteredLines.WithLabelValues("dropped").Add(float64(dropped))
}
