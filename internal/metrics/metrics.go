// Package metrics exposes recommendation run counters for Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "job_recommender"

// Recorder collects the metrics of a single run on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	membersProcessed prometheus.Counter
	recommendations  prometheus.Counter
	unmatched        prometheus.Counter
	catalogJobs      prometheus.Gauge
	fetchErrors      *prometheus.CounterVec
	scoringLatency   prometheus.Histogram
	lastRunTimestamp prometheus.Gauge
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		membersProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "members_processed_total",
			Help:      "Members scored against the job catalog.",
		}),
		recommendations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Members that received a job recommendation.",
		}),
		unmatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unmatched_members_total",
			Help:      "Members left without a recommendation.",
		}),
		catalogJobs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_jobs",
			Help:      "Jobs in the catalog after filtering.",
		}),
		fetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_errors_total",
			Help:      "Failed requests to the job board by resource.",
		}, []string{"resource"}),
		scoringLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "member_scoring_seconds",
			Help:      "Time spent scoring one member.",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		}),
		lastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed run.",
		}),
	}

	r.registry.MustRegister(
		r.membersProcessed,
		r.recommendations,
		r.unmatched,
		r.catalogJobs,
		r.fetchErrors,
		r.scoringLatency,
		r.lastRunTimestamp,
	)

	return r
}

func (r *Recorder) ObserveMember(recommended bool, duration time.Duration) {
	r.membersProcessed.Inc()
	if recommended {
		r.recommendations.Inc()
	} else {
		r.unmatched.Inc()
	}
	r.scoringLatency.Observe(duration.Seconds())
}

func (r *Recorder) ObserveCatalog(jobs int) {
	r.catalogJobs.Set(float64(jobs))
}

func (r *Recorder) FetchFailed(resource string) {
	r.fetchErrors.WithLabelValues(resource).Inc()
}

// Finish marks the run as completed now.
func (r *Recorder) Finish() {
	r.lastRunTimestamp.SetToCurrentTime()
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all metrics in the node exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
