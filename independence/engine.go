// Package independence implements the bounded, independence-relation-aware
// inclusion check: the same antichain-pruned exploration as the classical
// engine, but over B lifted to quotient-word semantics by a meta-automaton,
// with transitions whose stack depth would exceed the current bound held
// back rather than explored. The check is sound for Included=true and for
// Included=false with BoundHit=false; a BoundHit=true rejection can be
// spurious and should be settled with VerifyCounterExample or a raised
// bound.
package independence

import (
	"context"

	"github.com/google/uuid"

	"github.com/limigo/limigo/automaton"
	"github.com/limigo/limigo/errs"
	"github.com/limigo/limigo/internal/antichain"
	"github.com/limigo/limigo/internal/chain"
	"github.com/limigo/limigo/internal/meta"
	"github.com/limigo/limigo/internal/obslog"
	"github.com/limigo/limigo/internal/obsmetrics"
	"github.com/limigo/limigo/listauto"
	"github.com/limigo/limigo/result"
	"github.com/limigo/limigo/value"
)

// Config mirrors classical.Config: ambient observability hooks plus the
// initial bound.
type Config struct {
	Logger  *obslog.Logger
	Metrics *obsmetrics.Metrics
	RunID   string
	// Bound is the initial stack-depth bound. Zero means the meta-automaton
	// never leaves quotient-depth 0, i.e. only literal matches are allowed —
	// equivalent in power to the classical engine, just slower.
	Bound uint
}

type pair[StateA value.Value[StateA], InnerStateB value.Value[InnerStateB], Symbol meta.Ordered[Symbol]] struct {
	a               StateA
	b               *value.Set[*meta.State[InnerStateB, Symbol]]
	trace           *chain.Node[Symbol]
	anyBoundLimited bool
}

// pendingOverflow remembers a transition whose full successor set included
// meta-states deeper than the bound in effect when it was discovered, so a
// later IncreaseBound can resume exploring it without restarting the search.
type pendingOverflow[StateA value.Value[StateA], InnerStateB value.Value[InnerStateB], Symbol meta.Ordered[Symbol]] struct {
	a     StateA
	full  *value.Set[*meta.State[InnerStateB, Symbol]]
	trace *chain.Node[Symbol]
}

// Engine decides L(A) ⊆ L(B) modulo an independence relation, up to a
// caller-adjustable bound.
type Engine[StateA value.Value[StateA], InnerStateB value.Value[InnerStateB], Symbol meta.Ordered[Symbol]] struct {
	a     automaton.Automaton[StateA, Symbol]
	inner automaton.Automaton[InnerStateB, Symbol]
	ind   meta.Independence[Symbol]
	b     *meta.Automaton[InnerStateB, Symbol]

	bound    uint
	ac       *antichain.Antichain[StateA, *meta.State[InnerStateB, Symbol]]
	frontier []*pair[StateA, InnerStateB, Symbol]
	pending  []*pendingOverflow[StateA, InnerStateB, Symbol]

	log     *obslog.Logger
	metrics *obsmetrics.Metrics
	runID   string
}

// New constructs an independence-aware inclusion engine for L(a) ⊆ L(inner),
// quotiented by ind (pass nil for the empty relation, in which case prefer
// package classical instead). inner must satisfy
// inner.NoEpsilonProduced() || inner.CollapseEpsilon(), exactly like
// classical.New's b.
func New[StateA value.Value[StateA], InnerStateB value.Value[InnerStateB], Symbol meta.Ordered[Symbol]](
	a automaton.Automaton[StateA, Symbol],
	inner automaton.Automaton[InnerStateB, Symbol],
	ind meta.Independence[Symbol],
	cfg *Config,
) (*Engine[StateA, InnerStateB, Symbol], error) {
	if !inner.NoEpsilonProduced() && !inner.CollapseEpsilon() {
		return nil, errs.New(errs.InvalidConfig, "automaton B must have NoEpsilonProduced() or CollapseEpsilon() set")
	}
	if inner.CollapseEpsilon() {
		inner = automaton.NewCollapse[InnerStateB, Symbol](inner)
	}
	if cfg == nil {
		cfg = &Config{}
	}
	e := &Engine[StateA, InnerStateB, Symbol]{
		a:       a,
		inner:   inner,
		ind:     ind,
		b:       meta.New[InnerStateB, Symbol](inner, ind),
		bound:   cfg.Bound,
		ac:      antichain.New[StateA, *meta.State[InnerStateB, Symbol]](),
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

	bInit := value.NewSet(e.b.InitialStates()...)
	for _, a0 := range a.InitialStates() {
		e.frontier = append(e.frontier, &pair[StateA, InnerStateB, Symbol]{a: a0, b: bInit})
		e.ac.AddUnchecked(a0, bInit, false)
	}
	return e, nil
}

// GetBound returns the bound currently in effect.
func (e *Engine[StateA, InnerStateB, Symbol]) GetBound() uint { return e.bound }

// IncreaseBound raises the bound to k and re-admits any previously
// overflowed transition whose successors now fit, pushing newly admitted
// pairs back onto the frontier for exploration. Returns InvalidArgument if
// k is less than the current bound; a no-op if k equals it.
func (e *Engine[StateA, InnerStateB, Symbol]) IncreaseBound(k uint) error {
	if k < e.bound {
		return errs.New(errs.InvalidArgument, "new bound %d must not be less than current bound %d", k, e.bound)
	}
	if k == e.bound {
		return nil
	}
	from := e.bound
	e.bound = k

	remaining := e.pending[:0]
	for _, p := range e.pending {
		filtered, stillOver := splitByBound(p.full, e.bound)
		if filtered.Len() > 0 {
			e.ac.AddUnchecked(p.a, filtered, stillOver)
			e.frontier = append(e.frontier, &pair[StateA, InnerStateB, Symbol]{
				a: p.a, b: filtered, trace: p.trace, anyBoundLimited: stillOver,
			})
		}
		if stillOver {
			remaining = append(remaining, p)
		}
	}
	e.pending = remaining
	e.ac.CleanDirty()

	e.metrics.BoundChanged(e.runID, e.bound)
	e.log.BoundIncreased(e.runID, from, e.bound)
	return nil
}

// Run explores the frontier until it finds a rejecting pair or drains it.
// See the package doc for what Included/BoundHit mean together.
func (e *Engine[StateA, InnerStateB, Symbol]) Run(ctx context.Context) (result.Result[Symbol], error) {
	res := result.Result[Symbol]{Included: true, MaxBound: e.bound}
	round := 0
	for len(e.frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		round++
		e.metrics.RoundStarted("independence", e.runID, e.ac.Size(), len(e.frontier))
		e.log.Round(e.runID, round, e.ac.Size(), len(e.frontier))

		cur := e.frontier[len(e.frontier)-1]
		e.frontier = e.frontier[:len(e.frontier)-1]

		if e.a.IsFinal(cur.a) && !automaton.IsFinalSet[*meta.State[InnerStateB, Symbol], Symbol](e.b, cur.b) {
			res.Included = false
			res.BoundHit = cur.anyBoundLimited
			res.CounterExample = chain.ToSequence(cur.trace)
			e.log.CounterExample(e.runID, len(res.CounterExample), res.BoundHit)
			return res, nil
		}

		for _, sigma := range e.a.NextSymbols(cur.a) {
			e.metrics.TransitionExplored("independence", e.runID)
			nextA := e.a.Successors(cur.a, sigma)

			var fullB *value.Set[*meta.State[InnerStateB, Symbol]]
			if e.a.IsEpsilon(sigma) {
				fullB = cur.b
			} else {
				fullB = automaton.SuccessorsSet[*meta.State[InnerStateB, Symbol], Symbol](e.b, cur.b, sigma)
			}
			filteredB, stillOver := splitByBound(fullB, e.bound)
			nextTrace := chain.Extend(sigma, cur.trace)

			for _, a2 := range nextA {
				limited := cur.anyBoundLimited || stillOver
				// An empty filteredB is still a legitimate pair (A ran
				// ahead of every live B quotient-state) and must be
				// tracked exactly like the classical engine tracks an
				// empty successor set, or a rejection witnessed only
				// through an empty B-set would never surface.
				if !e.ac.Contains(a2, filteredB) {
					e.ac.Add(a2, filteredB, limited)
					e.frontier = append(e.frontier, &pair[StateA, InnerStateB, Symbol]{
						a: a2, b: filteredB, trace: nextTrace, anyBoundLimited: limited,
					})
				}
				if stillOver {
					e.pending = append(e.pending, &pendingOverflow[StateA, InnerStateB, Symbol]{a: a2, full: fullB, trace: nextTrace})
				}
			}
		}
	}
	e.log.Included(e.runID, round)
	return res, nil
}

// VerifyCounterExample replays ce alone against B at bound len(ce), which
// is always exact for a word of that length: the meta-automaton's stacks
// can never need to hold more than len(ce) pending symbols to process it.
// A confirmed==false result means ce was spurious (an artifact of the
// bound in effect when it was first produced); check the returned Result
// for what actually happens instead.
func (e *Engine[StateA, InnerStateB, Symbol]) VerifyCounterExample(ctx context.Context, ce []Symbol) (confirmed bool, res result.Result[Symbol], err error) {
	word := listauto.New(ce, e.a.IsEpsilon)
	verifier, err := New[listauto.Index, InnerStateB, Symbol](word, e.inner, e.ind, &Config{
		Logger:  e.log,
		Metrics: e.metrics,
		RunID:   e.runID + "-verify",
		Bound:   uint(len(ce)),
	})
	if err != nil {
		return false, result.Result[Symbol]{}, err
	}
	res, err = verifier.Run(ctx)
	if err != nil {
		return false, res, err
	}
	return !res.Included, res, nil
}

// Resolve runs the engine, and whenever a rejection hits the bound, checks
// it against VerifyCounterExample and either returns the confirmed result
// or raises the bound and tries again, up to maxBound. It mirrors the
// caller-driven retry loop a direct user of Run/IncreaseBound/
// VerifyCounterExample would otherwise have to write by hand.
func (e *Engine[StateA, InnerStateB, Symbol]) Resolve(ctx context.Context, maxBound uint) (result.Result[Symbol], error) {
	for {
		res, err := e.Run(ctx)
		if err != nil {
			return res, err
		}
		if res.Included || !res.BoundHit {
			return res, nil
		}
		confirmed, _, err := e.VerifyCounterExample(ctx, res.CounterExample)
		if err != nil {
			return res, err
		}
		if confirmed {
			return res, nil
		}
		if e.bound >= maxBound {
			return res, errs.New(errs.InvalidArgument, "no confirmed answer found up to bound %d", maxBound)
		}
		if err := e.IncreaseBound(e.bound + 1); err != nil {
			return res, err
		}
	}
}

func splitByBound[InnerStateB value.Value[InnerStateB], Symbol meta.Ordered[Symbol]](full *value.Set[*meta.State[InnerStateB, Symbol]], bound uint) (*value.Set[*meta.State[InnerStateB, Symbol]], bool) {
	var inBound, over []*meta.State[InnerStateB, Symbol]
	full.Each(func(s *meta.State[InnerStateB, Symbol]) {
		if uint(s.Depth()) > bound {
			over = append(over, s)
		} else {
			inBound = append(inBound, s)
		}
	})
	return value.NewSet(inBound...), len(over) > 0
}
