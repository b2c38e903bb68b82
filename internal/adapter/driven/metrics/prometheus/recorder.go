package prometheus

import (
	"net/http"

	"github.com/Wyydra/calling/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "calling"

// Recorder implements port.Metrics on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	credentials      *prometheus.CounterVec
	roomsProvisioned *prometheus.CounterVec
	resolutions      *prometheus.CounterVec
	joinFailures     *prometheus.CounterVec
	pageTransitions  *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		credentials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credentials_fetch_total",
			Help:      "Credential fetches by result",
		}, []string{"result"}),
		roomsProvisioned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_provisioned_total",
			Help:      "Room provisioning calls by result",
		}, []string{"result"}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "join",
			Name:      "resolutions_total",
			Help:      "Resolved call targets by kind",
		}, []string{"target"}),
		joinFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "join",
			Name:      "failures_total",
			Help:      "Failed join attempts by reason",
		}, []string{"reason"}),
		pageTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_transitions_total",
			Help:      "Page state transitions",
		}, []string{"from", "to"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.credentials,
		r.roomsProvisioned,
		r.resolutions,
		r.joinFailures,
		r.pageTransitions,
	)
	return r
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

func (r *Recorder) CredentialsFetched(ok bool) {
	r.credentials.WithLabelValues(result(ok)).Inc()
}

func (r *Recorder) RoomProvisioned(ok bool) {
	r.roomsProvisioned.WithLabelValues(result(ok)).Inc()
}

func (r *Recorder) Resolved(kind domain.TargetKind) {
	r.resolutions.WithLabelValues(string(kind)).Inc()
}

func (r *Recorder) JoinFailed(reason string) {
	r.joinFailures.WithLabelValues(reason).Inc()
}

func (r *Recorder) PageTransition(from, to domain.PageState) {
	r.pageTransitions.WithLabelValues(string(from), string(to)).Inc()
}

// Handler serves the registry in the exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
