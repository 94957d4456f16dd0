package ampacity

import (
	"errors"

	"github.com/jschwehn/cableampacity/internal/errs"
)

// Re-exported error codes (§7), so callers can switch on failure
// category without importing the internal errs package.
const (
	ErrInvalidGeometry    = errs.InvalidGeometry
	ErrInvalidOperating   = errs.InvalidOperating
	ErrInvalidMaterial    = errs.InvalidMaterial
	ErrThermalInfeasible  = errs.ThermalInfeasible
	ErrIterationDivergence = errs.IterationDivergence
)

func errf(code errs.Code, format string, args ...any) error {
	return errs.New(code, format, args...)
}

// Code returns the engine error code carried by err, if any. ok is
// false for errors not produced by this package (e.g. a plain context
// deadline error).
func Code(err error) (code errs.Code, ok bool) {
	var e *errs.Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}
