// Package materials holds the constant tables the engine is built on:
// conductor resistivity and temperature coefficients, insulation/jacket
// thermal properties, conduit-material thermal resistivities, rated
// conductor temperatures, and the CIGRE Ycs table for large Milliken
// conductors. Everything here is read-only after package init.
package materials

import "gonum.org/v1/gonum/interp"

// ConductorMaterial identifies the metal a conductor is drawn from.
type ConductorMaterial string

const (
	Copper   ConductorMaterial = "copper"
	Aluminum ConductorMaterial = "aluminum"
)

// ConductorProps carries the resistivity and temperature coefficient used
// to derive R_dc(θ) when a conductor does not supply an explicit R20.
type ConductorProps struct {
	Resistivity20C  float64 // Ω·m at 20°C
	TempCoefficient float64 // per °C, referenced to 20°C
}

// Conductors are the two supported conductor metals (§4.1).
var Conductors = map[ConductorMaterial]ConductorProps{
	Copper:   {Resistivity20C: 1.7241e-8, TempCoefficient: 0.00393},
	Aluminum: {Resistivity20C: 2.8264e-8, TempCoefficient: 0.00403},
}

// Stranding describes the conductor construction, which in turn selects
// the default skin/proximity coefficients ks, kp (§4.1).
type Stranding string

const (
	Solid            Stranding = "solid"
	StrandedRound    Stranding = "stranded_round"
	StrandedCompact  Stranding = "stranded_compact"
	Segmental        Stranding = "segmental"
)

// SkinProximityCoeffs is the (ks, kp) pair associated with a stranding type.
type SkinProximityCoeffs struct {
	Ks, Kp float64
}

// DefaultCoeffs is the stranding → (ks, kp) table (§4.1).
var DefaultCoeffs = map[Stranding]SkinProximityCoeffs{
	Solid:           {Ks: 1.0, Kp: 1.0},
	StrandedRound:   {Ks: 1.0, Kp: 0.8},
	StrandedCompact: {Ks: 0.8, Kp: 0.8},
	Segmental:       {Ks: 0.435, Kp: 0.37},
}

// InsulationMaterial identifies an insulation compound.
type InsulationMaterial string

const (
	XLPE     InsulationMaterial = "XLPE"
	EPR      InsulationMaterial = "EPR"
	PaperOil InsulationMaterial = "paper-oil"
)

// InsulationProps are the standards-table properties of an insulation
// compound (§6.2) used when a request does not override them.
type InsulationProps struct {
	ThermalResistivity float64 // K·m/W
	RelativePermit     float64 // εr
	LossTangent        float64 // tan δ
	RatedTempC         float64 // °C, normal continuous rating
}

// Insulations is the insulation-material standards table.
var Insulations = map[InsulationMaterial]InsulationProps{
	XLPE:     {ThermalResistivity: 3.5, RelativePermit: 2.5, LossTangent: 0.001, RatedTempC: 90.0},
	EPR:      {ThermalResistivity: 3.5, RelativePermit: 3.0, LossTangent: 0.005, RatedTempC: 90.0},
	PaperOil: {ThermalResistivity: 6.0, RelativePermit: 3.6, LossTangent: 0.003, RatedTempC: 85.0},
}

// EmergencyAdderC is the emergency-rating adder to RatedTempC. The solver
// does not use it and Result does not carry an emergency rating.
const EmergencyAdderC = 5.0

// ShortCircuitLimitC is the conservative short-circuit temperature cap
// per conductor material. It is tabulated only: the solver does not use
// it and Result does not carry it.
var ShortCircuitLimitC = map[ConductorMaterial]float64{
	Copper:   250.0,
	Aluminum: 200.0,
}

// JacketMaterial identifies an outer-jacket compound.
type JacketMaterial string

const (
	PVC JacketMaterial = "PVC"
	PE  JacketMaterial = "PE"
	HDPE JacketMaterial = "HDPE"
)

// JacketThermalResistivity is the jacket-material standards table (K·m/W).
var JacketThermalResistivity = map[JacketMaterial]float64{
	PVC:  5.0,
	PE:   3.5,
	HDPE: 3.5,
}

// ConduitMaterial identifies a conduit-wall compound.
type ConduitMaterial string

const (
	ConduitPVC        ConduitMaterial = "PVC"
	ConduitFibreglass ConduitMaterial = "fibreglass"
	ConduitSteel      ConduitMaterial = "steel"
)

// ConduitThermalResistivity is the conduit-material standards table
// (K·m/W). Steel is carried as 1.0 with the caveat noted in spec.md §6.2
// ("negligible (treat as 1.0 with caveat)") — a magnetic conduit has
// additional loss mechanisms this engine does not model.
var ConduitThermalResistivity = map[ConduitMaterial]float64{
	ConduitPVC:        6.0,
	ConduitFibreglass: 4.0,
	ConduitSteel:      1.0,
}

// ycsTable holds, per frequency, the CIGRE Ycs anchors (§6.2) indexed by
// cross-section in mm². Built once at init time.
var ycsTable = map[int]*interp.PiecewiseLinear{}

var ycsAnchorsA = []float64{800, 1000, 1200, 1400, 1600, 1800, 2000, 2500, 3000}
var ycsAnchors50 = []float64{0.015, 0.019, 0.023, 0.027, 0.031, 0.035, 0.039, 0.048, 0.057}
var ycsAnchors60 = []float64{0.018, 0.023, 0.028, 0.032, 0.037, 0.042, 0.047, 0.058, 0.069}

func init() {
	pl50 := new(interp.PiecewiseLinear)
	if err := pl50.Fit(ycsAnchorsA, ycsAnchors50); err != nil {
		panic("materials: fitting 50Hz Ycs table: " + err.Error())
	}
	pl60 := new(interp.PiecewiseLinear)
	if err := pl60.Fit(ycsAnchorsA, ycsAnchors60); err != nil {
		panic("materials: fitting 60Hz Ycs table: " + err.Error())
	}
	ycsTable[50] = pl50
	ycsTable[60] = pl60
}

// Ycs returns the CIGRE large-Milliken skin-effect coefficient for a
// segmental conductor of cross-section areaMM2 at frequency f (50 or 60
// Hz), clamped to the table's endpoints (§6.2). ok is false when f is
// not one of the tabulated frequencies.
func Ycs(areaMM2 float64, f float64) (y float64, ok bool) {
	fi := int(f)
	table, present := ycsTable[fi]
	if !present || float64(fi) != f {
		return 0, false
	}
	clamped := areaMM2
	if clamped < ycsAnchorsA[0] {
		clamped = ycsAnchorsA[0]
	}
	last := ycsAnchorsA[len(ycsAnchorsA)-1]
	if clamped > last {
		clamped = last
	}
	return table.Predict(clamped), true
}
