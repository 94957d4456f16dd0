// Package ampacity is a pure, deterministic cable ampacity calculation
// engine implementing IEC 60287 (parts 1-1, 2-1, 3-2) and the
// Neher–McGrath (1957) method. Given a cable construction, an
// installation geometry, and operating conditions, it determines the
// maximum current a cable can carry such that no conductor exceeds its
// rated temperature.
//
// The engine performs no I/O and holds no mutable state between calls;
// Solve and SolveSystem are safe to call concurrently. The HTTP service
// and chat/tool-calling layer live outside this module; cmd/cablecalc is
// a terminal front end (form and plain-text report) built on this package.
package ampacity

import (
	"github.com/jschwehn/cableampacity/internal/losses"
	"github.com/jschwehn/cableampacity/internal/materials"
)

// Conductor is the current-carrying core of a cable (§3).
type Conductor struct {
	Material   materials.ConductorMaterial
	AreaMM2    float64
	DiameterMM float64
	Stranding  materials.Stranding

	// PhaseSpacingMM is the axial spacing to the nearest phase
	// conductor (trefoil assumption), used for the proximity-effect
	// factor yp — distinct from any installation-level spacing between
	// separate cable circuits.
	PhaseSpacingMM float64

	// R20Override, KsOverride, KpOverride are optional per-conductor
	// overrides (§3). A supplied KsOverride always wins over the CIGRE
	// Ycs table (§9).
	R20Override            float64
	KsOverride, KpOverride *float64
}

// Insulation is the dielectric layer over the conductor (§3).
type Insulation struct {
	Material    materials.InsulationMaterial
	ThicknessMM float64

	// Overrides, zero meaning "use the standards table".
	RelativePermitOverride float64
	LossTangentOverride    float64
	ThermalResistivityOverride float64
	RatedTempCOverride     float64
}

func (ins Insulation) resolve() (materials.InsulationProps, error) {
	props, ok := materials.Insulations[ins.Material]
	if !ok {
		return materials.InsulationProps{}, errf(ErrInvalidMaterial, "unknown insulation material %q", ins.Material)
	}
	if ins.RelativePermitOverride > 0 {
		props.RelativePermit = ins.RelativePermitOverride
	}
	if ins.LossTangentOverride > 0 {
		props.LossTangent = ins.LossTangentOverride
	}
	if ins.ThermalResistivityOverride > 0 {
		props.ThermalResistivity = ins.ThermalResistivityOverride
	}
	if ins.RatedTempCOverride > 0 {
		props.RatedTempC = ins.RatedTempCOverride
	}
	return props, nil
}

// ShieldType identifies a shield/screen construction.
type ShieldType string

const (
	ShieldTape      ShieldType = "tape"
	ShieldWire      ShieldType = "wire"
	ShieldCorrugated ShieldType = "corrugated"
	ShieldExtruded  ShieldType = "extruded"
)

// Shield is the optional metallic shield/screen over the insulation
// (§3). A nil *Shield means the cable has none and λ₁ is zero.
type Shield struct {
	Material   string
	Type       ShieldType
	ThicknessMM float64
	MeanDiaMM  float64
	Bonding    losses.Bonding

	// ResistanceOhmPerM is the shield's resistance at operating
	// temperature (Ω/m); required when a shield is present.
	ResistanceOhmPerM float64

	// EddyLossOverride, if non-nil, replaces the engine's eddy-loss
	// approximation (§4.2 supplement).
	EddyLossOverride *float64
}

// Jacket is the outer protective layer (§3).
type Jacket struct {
	ThicknessMM float64
	Material    materials.JacketMaterial

	ThermalResistivityOverride float64
}

func (j Jacket) resistivity() (float64, error) {
	if j.ThermalResistivityOverride > 0 {
		return j.ThermalResistivityOverride, nil
	}
	r, ok := materials.JacketThermalResistivity[j.Material]
	if !ok {
		return 0, errf(ErrInvalidMaterial, "unknown jacket material %q", j.Material)
	}
	return r, nil
}

// OperatingConditions describes the electrical operating point (§3).
type OperatingConditions struct {
	U0V       float64 // phase-to-ground voltage, V
	FrequencyHz float64
	TmaxC     float64
	LoadFactor float64 // (0, 1]
}

// CableSpec is the full cable construction plus its operating point.
type CableSpec struct {
	Conductor  Conductor
	Insulation Insulation
	Shield     *Shield
	Jacket     Jacket
	Operating  OperatingConditions
}

// CablePosition is a cable centre in metres, y measured downward from
// the ground surface (§3).
type CablePosition struct {
	X, Y float64
}

// Installation is a closed sum type over the three supported
// installation geometries (§3, §9 — dispatch on variant, not a class
// hierarchy).
type Installation interface {
	isInstallation()
}

// DirectBuried is a cable (optionally with up to two identical
// neighbours in trefoil, sharing the same current by symmetry) buried
// directly in native soil.
type DirectBuried struct {
	DepthM    float64
	RhoSoil   float64
	TambC     float64

	// SpacingM is the axial spacing (m) to each of up to NumNeighbors
	// identical heated cables. Zero (with NumNeighbors 0) means an
	// isolated single cable.
	SpacingM     float64
	NumNeighbors int // 0, 1, or 2
}

func (DirectBuried) isInstallation() {}

// Conduit is a cable installed inside a single conduit buried in native
// soil.
type Conduit struct {
	DepthM  float64
	RhoSoil float64
	TambC   float64

	ConduitIDMM   float64
	ConduitODMM   float64
	ConduitMaterial materials.ConduitMaterial
	NumConduits   int // informational; no mutual heating between conduits is computed
}

func (Conduit) isInstallation() {}

// DuctPosition identifies a duct by (row, col) within a duct bank's
// grid, row 0 at the top.
type DuctPosition struct {
	Row, Col int
}

// DuctBank is a concrete-encased bank of conduits with one cable per
// occupied duct (§3).
type DuctBank struct {
	DepthToTopM         float64
	ConcreteResistivity float64
	RhoSoil             float64
	TambC               float64

	BankWidthM, BankHeightM float64
	Rows, Cols              int
	HorizontalSpacingM, VerticalSpacingM float64

	DuctIDMM, DuctODMM float64
	DuctMaterial       materials.ConduitMaterial

	OccupiedPositions map[DuctPosition]bool
	TargetPosition    DuctPosition
}

func (DuctBank) isInstallation() {}

// center returns the (x, y) position of the duct at (row, col), with the
// duct grid centred within the declared bank cross-section: equal
// margins on the left and right, and on the top and bottom, with x
// measured from the bank's left edge.
func (d DuctBank) center(pos DuctPosition) CablePosition {
	marginH := (d.BankWidthM - float64(d.Cols-1)*d.HorizontalSpacingM) / 2
	marginV := (d.BankHeightM - float64(d.Rows-1)*d.VerticalSpacingM) / 2
	return CablePosition{
		X: marginH + float64(pos.Col)*d.HorizontalSpacingM,
		Y: d.DepthToTopM + marginV + float64(pos.Row)*d.VerticalSpacingM,
	}
}

// perpendicularDistances returns (top, bottom, left, right) distances
// (m) from the duct at pos to the concrete encasement boundary.
func (d DuctBank) perpendicularDistances(pos DuctPosition) (top, bottom, left, right float64) {
	marginH := (d.BankWidthM - float64(d.Cols-1)*d.HorizontalSpacingM) / 2
	marginV := (d.BankHeightM - float64(d.Rows-1)*d.VerticalSpacingM) / 2
	top = marginV + float64(pos.Row)*d.VerticalSpacingM
	bottom = d.BankHeightM - top
	left = marginH + float64(pos.Col)*d.HorizontalSpacingM
	right = d.BankWidthM - left
	return
}

// TargetCurrent carries the caller-supplied comparison current and
// margin for the PASS/FAIL design-status decision (§4.4).
type TargetCurrent struct {
	CurrentA      float64
	MarginFraction float64
}

// Request is the single-cable engine entry point's input (§6.1).
type Request struct {
	Cable        CableSpec
	Installation Installation
	Target       *TargetCurrent
}

// LossBreakdown is the per-component loss report (§3 Result).
type LossBreakdown struct {
	ConductorWPerM  float64
	DielectricWPerM float64
	ShieldLambda1   float64
}

// ResistanceTree is the full R-network report (§3 Result), all K·m/W.
type ResistanceTree struct {
	R1, R2, R3, RConcrete, R4, RMutual, SigmaR, SigmaRPrime float64
}

// DesignStatus is the PASS/FAIL outcome of a solve (§4.4).
type DesignStatus string

const (
	Pass DesignStatus = "PASS"
	Fail DesignStatus = "FAIL"
)

// Result is the engine's output for one cable (§3).
type Result struct {
	AmpacitySteadyA float64
	AmpacityCyclicA float64

	Losses      LossBreakdown
	Resistances ResistanceTree

	TemperatureRiseC float64
	AmbientTempC     float64
	ConductorTempC   float64

	DesignStatus DesignStatus

	// Diverged is set when the result is degraded because a
	// mutual-heating iteration hit IterationDivergence; RMutual in
	// Resistances is then the last estimate, not a converged value.
	Diverged bool
}

// SystemRequest is the multi-cable entry point's input (§6.1), used for
// duct-bank scenarios where per-cable currents differ from a uniform
// assumption and must be solved via the current-weighted iteration
// (§4.3 steps 1-5).
type SystemRequest struct {
	Cable  CableSpec
	Bank   DuctBank
	Target *TargetCurrent
}

// SystemResult is the outcome of SolveSystem: the converged per-duct
// results, keyed by position, plus convenience access to the requested
// target cable's result.
type SystemResult struct {
	Results    map[DuctPosition]Result
	Target     Result
	Iterations int
	Converged  bool
}
