// Package obslog provides the structured, opt-in tracing the inclusion
// engines emit per exploration round. It replaces the DEBUG_PRINTING
// macro of the original source with a zap logger that defaults to a no-op
// so production callers pay nothing unless they ask for it.
package obslog

import "go.uber.org/zap"

// Logger is the narrow slice of *zap.Logger the engines depend on.
type Logger struct {
	z *zap.Logger
}

// Nop returns a Logger that discards everything, used when a caller does
// not configure one explicitly.
func Nop() *Logger { return &Logger{z: zap.NewNop()} }

// New wraps an existing *zap.Logger.
func New(z *zap.Logger) *Logger {
	if z == nil {
		return Nop()
	}
	return &Logger{z: z}
}

// Round logs the start of one frontier-pop iteration.
func (l *Logger) Round(runID string, round int, antichainSize, frontierSize int) {
	l.z.Debug("round",
		zap.String("run_id", runID),
		zap.Int("round", round),
		zap.Int("antichain_size", antichainSize),
		zap.Int("frontier_size", frontierSize),
	)
}

// Transition logs one symbol explored out of the current pair.
func (l *Logger) Transition(runID string, symbol string) {
	l.z.Debug("transition", zap.String("run_id", runID), zap.String("symbol", symbol))
}

// CounterExample logs that a run ended with a rejecting pair.
func (l *Logger) CounterExample(runID string, length int, boundHit bool) {
	l.z.Info("counter_example_found",
		zap.String("run_id", runID),
		zap.Int("length", length),
		zap.Bool("bound_hit", boundHit),
	)
}

// Included logs that a run ended with included=true.
func (l *Logger) Included(runID string, rounds int) {
	l.z.Info("included", zap.String("run_id", runID), zap.Int("rounds", rounds))
}

// BoundIncreased logs an IncreaseBound call.
func (l *Logger) BoundIncreased(runID string, from, to uint) {
	l.z.Info("bound_increased", zap.String("run_id", runID), zap.Uint("from", from), zap.Uint("to", to))
}
