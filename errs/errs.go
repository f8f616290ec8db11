// Package errs collects the error kinds the inclusion engines and their
// front-ends can raise, per the error handling design: InvalidConfig,
// InvalidArgument, UnsupportedOperation and ParseError are values a caller
// can match with errors.Is/errors.As. CallerError is not a sentinel here:
// errors raised by caller-supplied automaton methods propagate unwrapped,
// the engine never catches them.
package errs

import "fmt"

// Kind classifies the error kinds raised by this module.
type Kind int

const (
	// InvalidConfig: B violates the epsilon precondition at construction.
	InvalidConfig Kind = iota
	// InvalidArgument: e.g. IncreaseBound called with a smaller bound.
	InvalidArgument
	// UnsupportedOperation: NextSymbols queried on a meta-automaton.
	UnsupportedOperation
	// ParseError: front-end parsing only.
	ParseError
)

func (k Kind) String() string {
	switch k {
	case InvalidConfig:
		return "InvalidConfig"
	case InvalidArgument:
		return "InvalidArgument"
	case UnsupportedOperation:
		return "UnsupportedOperation"
	case ParseError:
		return "ParseError"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type carrying a Kind.
type Error struct {
	Kind Kind
	Msg  string
	// Line is set for ParseError when the offending input line is known;
	// zero otherwise.
	Line int
}

func (e *Error) Error() string {
	if e.Kind == ParseError && e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", e.Kind, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Is lets errors.Is(err, errs.ErrInvalidConfig) work against a *Error by
// matching on Kind (ignoring Msg/Line).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an *Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// NewParse builds a ParseError annotated with a line number.
func NewParse(line int, format string, args ...any) *Error {
	return &Error{Kind: ParseError, Msg: fmt.Sprintf(format, args...), Line: line}
}

// Sentinels usable with errors.Is without constructing a matching *Error.
var (
	ErrInvalidConfig        = &Error{Kind: InvalidConfig}
	ErrInvalidArgument      = &Error{Kind: InvalidArgument}
	ErrUnsupportedOperation = &Error{Kind: UnsupportedOperation}
	ErrParse                = &Error{Kind: ParseError}
)
