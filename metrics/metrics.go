// Package metrics exposes Prometheus counters for revision activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts committed revisions per revision table. It satisfies
// audit.Observer.
type Recorder struct {
	saved    *prometheus.CounterVec
	deleted  *prometheus.CounterVec
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRecorder registers the revision counters on reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		saved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "audit_trail",
			Name:      "revisions_saved_total",
			Help:      "Revisions inserted, by revision table.",
		}, []string{"table"}),
		deleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "audit_trail",
			Name:      "revisions_deleted_total",
			Help:      "Soft deletes recorded, by revision table.",
		}, []string{"table"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "audit_trail",
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by status code and method.",
		}, []string{"code", "method"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "audit_trail",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	for _, c := range []prometheus.Collector{r.saved, r.deleted, r.requests, r.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// RevisionSaved increments the saved counter for table.
func (r *Recorder) RevisionSaved(table string) {
	r.saved.WithLabelValues(table).Inc()
}

// RevisionDeleted increments the soft delete counter for table.
func (r *Recorder) RevisionDeleted(table string) {
	r.deleted.WithLabelValues(table).Inc()
}

// Instrument counts and times every request served by next.
func (r *Recorder) Instrument(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerCounter(r.requests,
		promhttp.InstrumentHandlerDuration(r.duration, next))
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
