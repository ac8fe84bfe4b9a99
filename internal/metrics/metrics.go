package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Resolve outcomes.
const (
	ResolvedBySlug = "slug"
	ResolvedByID   = "id"
	ResolveMiss    = "miss"
	ResolveError   = "error"
)

// Recorder receives the mini-site's operational counters.
type Recorder interface {
	ResolveOutcome(outcome string)
	LoadFailure(collection string)
	CommandOutcome(operation string, err error)
	SectionSkipped(kind string)
}

// NoOp returns a Recorder that discards everything.
func NoOp() Recorder { return noop{} }

type noop struct{}

func (noop) ResolveOutcome(string)        {}
func (noop) LoadFailure(string)           {}
func (noop) CommandOutcome(string, error) {}
func (noop) SectionSkipped(string)        {}

// Prometheus implements Recorder with counter vectors.
type Prometheus struct {
	Resolves *prometheus.CounterVec
	Failures *prometheus.CounterVec
	Commands *prometheus.CounterVec
	Skipped  *prometheus.CounterVec
}

// NewPrometheus builds the collectors under namespace. Call Register before
// exposing them.
func NewPrometheus(namespace string) *Prometheus {
	if namespace == "" {
		namespace = "minisite"
	}
	return &Prometheus{
		Resolves: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "resolve_total", Help: "Listing resolutions by outcome."},
			[]string{"outcome"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "load_failures_total", Help: "Content loader reads that degraded to empty, by collection."},
			[]string{"collection"},
		),
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "commands_total", Help: "Command executions by operation and status."},
			[]string{"operation", "status"},
		),
		Skipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "sections_skipped_total", Help: "Sections the renderer skipped, by declared type."},
			[]string{"type"},
		),
	}
}

// Register adds the collectors to reg.
func (p *Prometheus) Register(reg prometheus.Registerer) {
	reg.MustRegister(p.Resolves, p.Failures, p.Commands, p.Skipped)
}

func (p *Prometheus) ResolveOutcome(outcome string) {
	p.Resolves.WithLabelValues(outcome).Inc()
}

func (p *Prometheus) LoadFailure(collection string) {
	p.Failures.WithLabelValues(collection).Inc()
}

func (p *Prometheus) CommandOutcome(operation string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	p.Commands.WithLabelValues(operation, status).Inc()
}

func (p *Prometheus) SectionSkipped(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	p.Skipped.WithLabelValues(kind).Inc()
}
