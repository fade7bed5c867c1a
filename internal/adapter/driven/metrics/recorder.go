package metrics

import (
	"fmt"

	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "carbon_emissions"

// Recorder counts per-account outcomes of a run. It has its own registry
// so a run can be dumped to a node-exporter textfile.
type Recorder struct {
	registry *prometheus.Registry
	outcomes *prometheus.CounterVec
	attempts *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRecorder creates a recorder with a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "account_outcomes_total",
			Help:      "Account extractions by timeframe and result.",
		}, []string{"timeframe", "result"}),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retrieval_attempts_total",
			Help:      "Calls made to the reporting endpoint, retries included.",
		}, []string{"timeframe"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "account_duration_seconds",
			Help:      "Wall time spent on one account and timeframe.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
		}, []string{"timeframe"}),
	}
	r.registry.MustRegister(r.outcomes, r.attempts, r.duration)
	return r
}

// result buckets an outcome into stored, no_data or failed.
func result(o entity.AccountOutcome) string {
	switch {
	case !o.Success:
		return "failed"
	case o.IsDataAvailable:
		return "stored"
	default:
		return "no_data"
	}
}

// ObserveOutcome implements usecase.OutcomeRecorder.
func (r *Recorder) ObserveOutcome(o entity.AccountOutcome) {
	kind := string(o.Kind)
	r.outcomes.WithLabelValues(kind, result(o)).Inc()
	r.attempts.WithLabelValues(kind).Add(float64(o.Attempts))
	r.duration.WithLabelValues(kind).Observe(o.Duration.Seconds())
}

// Registry exposes the registry for tests and custom exporters.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteToTextfile dumps the collected metrics in the text exposition format.
func (r *Recorder) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("error writing metrics to %s: %w", path, err)
	}
	return nil
}
