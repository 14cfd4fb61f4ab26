package backend

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
)

// metrics counts call outcomes by label. A nil registerer keeps the
// counters unregistered.
type metrics struct {
	outcomes *prometheus.CounterVec
}

// outcomeSuccess labels calls that produced a payload.
const outcomeSuccess = "success"

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trailtail",
			Subsystem: "backend",
			Name:      "calls_total",
			Help:      "Backend calls by outcome (success or absent reason).",
		}, []string{"outcome"}),
	}

	// Pre-create every label so dashboards see zeros instead of gaps.
	m.outcomes.WithLabelValues(outcomeSuccess)
	for _, r := range model.AbsentReasons {
		m.outcomes.WithLabelValues(string(r))
	}

	if reg != nil {
		if err := reg.Register(m.outcomes); err != nil {
			slog.Warn("backend: registering metrics failed", "error", err)
		}
	}
	return m
}

// WithMetrics registers outcome counters on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(e *Executor) { e.metrics = newMetrics(reg) }
}

func (m *metrics) observe(out model.Outcome) {
	label := outcomeSuccess
	if !out.OK() {
		label = string(out.Reason)
	}
	m.outcomes.WithLabelValues(label).Inc()
}
