// Package errs defines the engine's closed error taxonomy (spec §7).
// Errors are plain values built with fmt.Errorf-style messages, composed
// with the standard library's errors.Is/errors.As — no error-wrapping
// dependency is introduced beyond what the standard library already
// provides.
package errs

import "fmt"

// Code is one of the closed set of failure categories the engine can
// report.
type Code int

const (
	// InvalidGeometry covers non-positive dimensions, a shield smaller
	// than the insulation, a duct-bank target position missing from the
	// occupied set, or a cable placed outside the declared bank bounds.
	InvalidGeometry Code = iota
	// InvalidOperating covers an unsupported frequency reached by the
	// large-Milliken fallback, Tmax <= Tamb, or a load factor outside
	// (0, 1].
	InvalidOperating
	// InvalidMaterial covers an unknown enum variant — a programming
	// error, not a recoverable input problem.
	InvalidMaterial
	// ThermalInfeasible covers dielectric losses alone exceeding the
	// thermal budget. A degraded Result is still produced alongside it.
	ThermalInfeasible
	// IterationDivergence covers the mutual-heating loop failing to
	// converge within its iteration cap. A degraded Result (the last
	// estimate) is still produced alongside it.
	IterationDivergence
)

func (c Code) String() string {
	switch c {
	case InvalidGeometry:
		return "InvalidGeometry"
	case InvalidOperating:
		return "InvalidOperating"
	case InvalidMaterial:
		return "InvalidMaterial"
	case ThermalInfeasible:
		return "ThermalInfeasible"
	case IterationDivergence:
		return "IterationDivergence"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by the engine. It carries a
// Code so callers can switch on failure category without parsing
// messages.
type Error struct {
	Code Code
	Msg  string
	Err  error // optional wrapped cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error with the given code, formatted message, and
// wrapped cause.
func Wrap(code Code, err error, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...), Err: err}
}
