// Package obsmetrics exposes Prometheus metrics for the inclusion
// engines: how large the frontier and antichain grow, how many rounds and
// transitions a run takes. The round, transition, antichain and frontier
// metrics are labeled by engine kind ("classical" or "independence") so both
// engines can share one registry; the bound gauge is labeled by run id only.
package obsmetrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics is an optional observability sink passed to an engine via its
// Config's Metrics field. A nil *Metrics is valid everywhere and simply means "don't
// record".
type Metrics struct {
	rounds       *prometheus.CounterVec
	transitions  *prometheus.CounterVec
	antichain    *prometheus.GaugeVec
	frontier     *prometheus.GaugeVec
	boundCurrent *prometheus.GaugeVec
}

// New registers and returns a fresh Metrics against reg. Pass
// prometheus.DefaultRegisterer to publish on the default registry.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		rounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "limigo",
			Name:      "rounds_total",
			Help:      "Frontier-pop iterations performed by an inclusion engine.",
		}, []string{"engine", "run_id"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "limigo",
			Name:      "transitions_total",
			Help:      "Symbols explored out of a popped pair.",
		}, []string{"engine", "run_id"}),
		antichain: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "limigo",
			Name:      "antichain_size",
			Help:      "Distinct A-states currently tracked by the antichain.",
		}, []string{"engine", "run_id"}),
		frontier: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "limigo",
			Name:      "frontier_size",
			Help:      "Pairs currently queued for exploration.",
		}, []string{"engine", "run_id"}),
		boundCurrent: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "limigo",
			Name:      "bound_current",
			Help:      "Current stack-depth bound of an independence engine.",
		}, []string{"run_id"}),
	}
	for _, c := range []prometheus.Collector{m.rounds, m.transitions, m.antichain, m.frontier, m.boundCurrent} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) RoundStarted(engine, runID string, antichainSize, frontierSize int) {
	if m == nil {
		return
	}
	m.rounds.WithLabelValues(engine, runID).Inc()
	m.antichain.WithLabelValues(engine, runID).Set(float64(antichainSize))
	m.frontier.WithLabelValues(engine, runID).Set(float64(frontierSize))
}

func (m *Metrics) TransitionExplored(engine, runID string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(engine, runID).Inc()
}

func (m *Metrics) BoundChanged(runID string, bound uint) {
	if m == nil {
		return
	}
	m.boundCurrent.WithLabelValues(runID).Set(float64(bound))
}
