// Package classical implements the exact, terminating language-inclusion
// check: on-the-fly product exploration over (a, B-set) pairs, pruned by
// an antichain of previously-seen, minimal B-sets.
package classical

import (
	"context"

	"github.com/google/uuid"

	"github.com/limigo/limigo/automaton"
	"github.com/limigo/limigo/errs"
	"github.com/limigo/limigo/internal/antichain"
	"github.com/limigo/limigo/internal/chain"
	"github.com/limigo/limigo/internal/obslog"
	"github.com/limigo/limigo/internal/obsmetrics"
	"github.com/limigo/limigo/result"
	"github.com/limigo/limigo/value"
)

// Config carries the ambient observability hooks for an Engine. A nil
// Config (or a zero Config) is valid and means "don't log, don't record
// metrics, generate a random run id".
type Config struct {
	Logger  *obslog.Logger
	Metrics *obsmetrics.Metrics
	// RunID tags every log line and metric sample emitted by this engine.
	// Generated with uuid.NewString() when left empty.
	RunID string
}

type pair[StateA value.Value[StateA], StateB value.Value[StateB], Symbol value.Value[Symbol]] struct {
	a     StateA
	b     *value.Set[StateB]
	trace *chain.Node[Symbol]
}

// Engine decides L(A) ⊆ L(B) exactly. One Engine serves one query: build
// it, call Run as many times as needed (each call resumes from the live
// frontier and yields the next counter-example, or included=true once the
// frontier drains).
type Engine[StateA value.Value[StateA], StateB value.Value[StateB], Symbol value.Value[Symbol]] struct {
	a automaton.Automaton[StateA, Symbol]
	b automaton.Automaton[StateB, Symbol]

	ac       *antichain.Antichain[StateA, StateB]
	frontier []*pair[StateA, StateB, Symbol]

	log     *obslog.Logger
	metrics *obsmetrics.Metrics
	runID   string
}

// New constructs a classical inclusion engine for L(a) ⊆ L(b). b must
// satisfy b.NoEpsilonProduced() || b.CollapseEpsilon(), else InvalidConfig
// is returned.
func New[StateA value.Value[StateA], StateB value.Value[StateB], Symbol value.Value[Symbol]](
	a automaton.Automaton[StateA, Symbol],
	b automaton.Automaton[StateB, Symbol],
	cfg *Config,
) (*Engine[StateA, StateB, Symbol], error) {
	if !b.NoEpsilonProduced() && !b.CollapseEpsilon() {
		return nil, errs.New(errs.InvalidConfig, "automaton B must have NoEpsilonProduced() or CollapseEpsilon() set")
	}
	if b.CollapseEpsilon() {
		b = automaton.NewCollapse[StateB, Symbol](b)
	}
	if cfg == nil {
		cfg = &Config{}
	}
	e := &Engine[StateA, StateB, Symbol]{
		a:       a,
		b:       b,
		ac:      antichain.New[StateA, StateB](),
		log:     cfg.Logger,
		metrics: cfg.Metrics,
		runID:   cfg.RunID,
	}
	if e.log == nil {
		e.log = obslog.Nop()
	}
	if e.runID == "" {
		e.runID = uuid.NewString()
	}

	bInit := value.NewSet(b.InitialStates()...)
	for _, a0 := range a.InitialStates() {
		e.frontier = append(e.frontier, &pair[StateA, StateB, Symbol]{a: a0, b: bInit})
		e.ac.AddUnchecked(a0, bInit, false)
	}
	return e, nil
}

// Run explores the frontier until it finds a rejecting pair (returns
// included=false with a counter-example) or drains it (included=true).
// Calling Run again after a counter-example resumes exploration and can
// yield a different counter-example; calling it again after
// included=true trivially returns included=true.
func (e *Engine[StateA, StateB, Symbol]) Run(ctx context.Context) (result.Result[Symbol], error) {
	res := result.Result[Symbol]{Included: true}
	round := 0
	for len(e.frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		round++
		e.metrics.RoundStarted("classical", e.runID, e.ac.Size(), len(e.frontier))
		e.log.Round(e.runID, round, e.ac.Size(), len(e.frontier))

		cur := e.frontier[len(e.frontier)-1]
		e.frontier = e.frontier[:len(e.frontier)-1]

		if e.a.IsFinal(cur.a) && !automaton.IsFinalSet[StateB, Symbol](e.b, cur.b) {
			res.Included = false
			res.CounterExample = chain.ToSequence(cur.trace)
			e.log.CounterExample(e.runID, len(res.CounterExample), false)
			return res, nil
		}

		for _, sigma := range e.a.NextSymbols(cur.a) {
			e.metrics.TransitionExplored("classical", e.runID)
			nextA := e.a.Successors(cur.a, sigma)

			var nextB *value.Set[StateB]
			if e.a.IsEpsilon(sigma) {
				nextB = cur.b
			} else {
				nextB = automaton.SuccessorsSet[StateB, Symbol](e.b, cur.b, sigma)
			}

			nextTrace := chain.Extend(sigma, cur.trace)
			for _, a2 := range nextA {
				if e.ac.Contains(a2, nextB) {
					continue
				}
				e.ac.Add(a2, nextB, false)
				e.frontier = append(e.frontier, &pair[StateA, StateB, Symbol]{a: a2, b: nextB, trace: nextTrace})
			}
		}
	}
	e.log.Included(e.runID, round)
	return res, nil
}
