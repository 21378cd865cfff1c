// Package metrics records scoring runs as Prometheus metrics.
//
// Metrics:
//   - dqscore_reports_total: reports generated, by dataset and outcome
//   - dqscore_failures_total: pipeline failures, by stage
//   - dqscore_dimension_score: latest percentage per dataset and dimension
//   - dqscore_overall_score: latest overall score per dataset
//   - dqscore_records: records in the latest batch per dataset
//   - dqscore_report_duration_seconds: time spent producing a report
package metrics

import (
	"time"

	"github.com/abdidvp/dqscore/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dqscore"

// Recorder implements domain.MetricsRecorder on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	reportsTotal   *prometheus.CounterVec
	failuresTotal  *prometheus.CounterVec
	dimensionScore *prometheus.GaugeVec
	overallScore   *prometheus.GaugeVec
	recordCount    *prometheus.GaugeVec
	duration       prometheus.Histogram
}

// NewRecorder registers every metric on registry. A nil registry gets a
// fresh one.
func NewRecorder(registry *prometheus.Registry) *Recorder {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	r := &Recorder{
		registry: registry,
		reportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reports_total",
				Help:      "Total number of quality reports generated",
			},
			[]string{"dataset", "outcome"},
		),
		failuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "failures_total",
				Help:      "Total number of scoring pipeline failures",
			},
			[]string{"stage"},
		),
		dimensionScore: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "dimension_score",
				Help:      "Latest score of a quality dimension, 0 to 100",
			},
			[]string{"dataset", "dimension"},
		),
		overallScore: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "overall_score",
				Help:      "Latest weighted overall quality score, 0 to 100",
			},
			[]string{"dataset"},
		),
		recordCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "records",
				Help:      "Number of records in the latest scored batch",
			},
			[]string{"dataset"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "report_duration_seconds",
				Help:      "Time spent loading, validating and scoring a batch",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 9), // 1ms to ~65s
			},
		),
	}

	registry.MustRegister(
		r.reportsTotal,
		r.failuresTotal,
		r.dimensionScore,
		r.overallScore,
		r.recordCount,
		r.duration,
	)
	return r
}

// Registry exposes the registry for export.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// ObserveReport records a finished report.
func (r *Recorder) ObserveReport(report *domain.QualityReport, elapsed time.Duration) {
	dataset := datasetLabel(report.Dataset)
	outcome := "passed"
	if !report.Passed {
		outcome = "failed"
	}

	r.reportsTotal.WithLabelValues(dataset, outcome).Inc()
	r.overallScore.WithLabelValues(dataset).Set(report.OverallScore)
	r.recordCount.WithLabelValues(dataset).Set(float64(report.RecordCount))
	for _, d := range report.Dimensions {
		r.dimensionScore.WithLabelValues(dataset, string(d.Dimension)).Set(d.Percentage)
	}
	r.duration.Observe(elapsed.Seconds())
}

// ObserveFailure counts a failure at the named pipeline stage.
func (r *Recorder) ObserveFailure(stage string) {
	r.failuresTotal.WithLabelValues(stage).Inc()
}

// WriteTextfile writes every metric in the Prometheus text format to path,
// for node_exporter's textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

func datasetLabel(name string) string {
	if name == "" {
		return "default"
	}
	return name
}
