package svgopt

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts the work of an Optimiser.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	documents  *prometheus.CounterVec
	jobsRun    *prometheus.CounterVec
	dimensions *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on `reg`.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "svgoptim",
			Name:      "documents_total",
			Help:      "Number of processed documents, by outcome.",
		}, []string{"outcome"}),
		jobsRun: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "svgoptim",
			Name:      "jobs_run_total",
			Help:      "Number of jobs which were not skipped, by kind.",
		}, []string{"kind"}),
		dimensions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "svgoptim",
			Name:      "dimensions_total",
			Help:      "Number of optimised documents, by presence of dimensions.",
		}, []string{"found"}),
	}
	if reg != nil {
		reg.MustRegister(m.documents, m.jobsRun, m.dimensions)
	}
	return m
}

func (m *Metrics) observeJobs(kind string, count int) {
	if m == nil {
		return
	}
	m.jobsRun.WithLabelValues(kind).Add(float64(count))
}

func (m *Metrics) observeDocument(res *Result, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.documents.WithLabelValues("error").Inc()
		return
	}
	m.documents.WithLabelValues("success").Inc()
	m.dimensions.WithLabelValues(strconv.FormatBool(res.Dimensions != nil)).Inc()
}
