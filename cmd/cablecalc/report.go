package main

import (
	"fmt"
	"strings"

	"github.com/jschwehn/cableampacity"
)

// formatReport renders a Result as the plain-text report both the
// non-interactive flow and the TUI's clipboard copy use, mirroring the
// teacher's plain fmt.Printf result dump in main.go.
func formatReport(label string, result ampacity.Result, solveErr error) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== %s ===\n", label)
	if solveErr != nil {
		fmt.Fprintf(&b, "error: %v\n", solveErr)
		if result.AmpacitySteadyA == 0 && result.DesignStatus == "" {
			return b.String()
		}
	}

	fmt.Fprintf(&b, "design status:       %s\n", result.DesignStatus)
	if result.Diverged {
		b.WriteString("warning:              mutual-heating iteration did not converge; figures below are the last estimate\n")
	}
	fmt.Fprintf(&b, "steady-state ampacity: %.1f A\n", result.AmpacitySteadyA)
	fmt.Fprintf(&b, "cyclic ampacity:       %.1f A\n", result.AmpacityCyclicA)
	fmt.Fprintf(&b, "conductor temperature: %.1f C (ambient %.1f C, rise %.2f C)\n",
		result.ConductorTempC, result.AmbientTempC, result.TemperatureRiseC)

	b.WriteString("\nlosses (per metre):\n")
	fmt.Fprintf(&b, "  conductor:  %.4f W\n", result.Losses.ConductorWPerM)
	fmt.Fprintf(&b, "  dielectric: %.4f W\n", result.Losses.DielectricWPerM)
	fmt.Fprintf(&b, "  shield λ1:  %.4f\n", result.Losses.ShieldLambda1)

	b.WriteString("\nresistance network (K.m/W):\n")
	r := result.Resistances
	fmt.Fprintf(&b, "  R1 (insulation):      %.6f\n", r.R1)
	fmt.Fprintf(&b, "  R2 (jacket):          %.6f\n", r.R2)
	if r.R3 > 0 {
		fmt.Fprintf(&b, "  R3 (conduit):         %.6f\n", r.R3)
	}
	if r.RConcrete > 0 {
		fmt.Fprintf(&b, "  R_concrete:           %.6f\n", r.RConcrete)
	}
	fmt.Fprintf(&b, "  R4 (earth):           %.6f\n", r.R4)
	if r.RMutual > 0 {
		fmt.Fprintf(&b, "  R_mutual:             %.6f\n", r.RMutual)
	}
	fmt.Fprintf(&b, "  sigma R:              %.6f\n", r.SigmaR)
	fmt.Fprintf(&b, "  sigma R' (dielectric): %.6f\n", r.SigmaRPrime)

	return b.String()
}

// formatSystemReport renders a SolveSystem outcome: the requested
// target position plus a summary line per occupied duct.
func formatSystemReport(sys ampacity.SystemResult, solveErr error) string {
	var b strings.Builder
	b.WriteString(formatReport("target duct", sys.Target, solveErr))

	fmt.Fprintf(&b, "\ncoupling: converged=%v, iterations=%d\n", sys.Converged, sys.Iterations)
	b.WriteString("\nall occupied ducts:\n")
	for pos, res := range sys.Results {
		fmt.Fprintf(&b, "  (row %d, col %d): %.1f A, %s\n", pos.Row, pos.Col, res.AmpacitySteadyA, res.DesignStatus)
	}
	return b.String()
}
