// Package thermal implements §4.3, the bulk of the engine: the layered
// cable resistances R1/R2, the conduit resistance R3, the concrete
// encasement factor, the Neher–McGrath earth resistance R4, and the
// image-method mutual-heating coupler with its current-weighted
// iteration.
package thermal

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/jschwehn/cableampacity/internal/errs"
)

func safeLog(ratio float64) (float64, error) {
	if ratio <= 0 {
		return 0, errs.New(errs.InvalidGeometry, "logarithm argument must be positive, got %g", ratio)
	}
	return math.Log(ratio), nil
}

// R1 is the insulation thermal resistance (K·m/W): ρT_ins/(2π) * ln(1 + 2*t1/dc).
// t1MM includes semi-conducting screens if present (spec §4.3).
func R1(rhoIns, t1MM, dcMM float64) (float64, error) {
	if t1MM <= 0 || dcMM <= 0 {
		return 0, errs.New(errs.InvalidGeometry, "insulation thickness and conductor diameter must be positive")
	}
	l, err := safeLog(1 + 2*t1MM/dcMM)
	if err != nil {
		return 0, err
	}
	return rhoIns / (2 * math.Pi) * l, nil
}

// R2 is the jacket thermal resistance (K·m/W): ρT_j/(2π) * ln(De/Ds).
func R2(rhoJacket, deMM, dsMM float64) (float64, error) {
	if deMM <= dsMM || dsMM <= 0 {
		return 0, errs.New(errs.InvalidGeometry, "overall diameter (%g mm) must exceed diameter over shield (%g mm)", deMM, dsMM)
	}
	l, err := safeLog(deMM / dsMM)
	if err != nil {
		return 0, err
	}
	return rhoJacket / (2 * math.Pi) * l, nil
}

// R3Gap is the IEC 60287-2-1 empirical air-gap component of R3 inside a
// conduit (K·m/W).
func R3Gap(dCableMM, dConduitMM, thetaMeanC float64) (float64, error) {
	const U, V, Y = 1.87, 0.29, 0.026
	if dCableMM <= 0 || dConduitMM <= 0 {
		return 0, errs.New(errs.InvalidGeometry, "cable and conduit diameters must be positive")
	}
	denom := math.Pi * dCableMM * (1 + 0.1*(V+Y*thetaMeanC)*dConduitMM)
	if denom <= 0 {
		return 0, errs.New(errs.InvalidGeometry, "degenerate R3 air-gap denominator (%g)", denom)
	}
	return U / denom, nil
}

// R3Wall is the conduit-wall conductive component of R3 (K·m/W).
func R3Wall(rhoConduit, outerMM, innerMM float64) (float64, error) {
	if outerMM <= innerMM || innerMM <= 0 {
		return 0, errs.New(errs.InvalidGeometry, "conduit outer diameter (%g mm) must exceed inner diameter (%g mm)", outerMM, innerMM)
	}
	l, err := safeLog(outerMM / innerMM)
	if err != nil {
		return 0, err
	}
	return rhoConduit / (2 * math.Pi) * l, nil
}

// R3 combines the air-gap and wall components.
func R3(dCableMM, conduitIDMM, conduitODMM, rhoConduit, thetaMeanC float64) (float64, error) {
	gap, err := R3Gap(dCableMM, conduitIDMM, thetaMeanC)
	if err != nil {
		return 0, err
	}
	wall, err := R3Wall(rhoConduit, conduitODMM, conduitIDMM)
	if err != nil {
		return 0, err
	}
	return gap + wall, nil
}

// ConcreteGeometricFactor is the Kennelly geometric factor G for a duct
// at the centre of a concrete encasement, given the four perpendicular
// distances (m) from the duct centre to the concrete boundary (top,
// bottom, left, right) and the duct radius rDuctM (m).
func ConcreteGeometricFactor(dTop, dBottom, dLeft, dRight, rDuctM float64) (float64, error) {
	if dTop <= 0 || dBottom <= 0 || dLeft <= 0 || dRight <= 0 || rDuctM <= 0 {
		return 0, errs.New(errs.InvalidGeometry, "concrete-encasement distances and duct radius must be positive")
	}
	product := (2 * dTop) * (2 * dBottom) * (2 * dLeft) * (2 * dRight)
	root := math.Pow(product, 0.25)
	l, err := safeLog(root / rDuctM)
	if err != nil {
		return 0, err
	}
	return l, nil
}

// ConcreteResistance is the native-soil-subtraction form of the concrete
// encasement resistance (K·m/W), the convention spec.md §9 names as
// preferred: (ρ_conc - ρ_soil)/(2π) * G. R4 (below) is then computed on
// the full bank outer surface with ρ_soil, so the two terms together
// reproduce the correct total without double-counting the soil
// contribution.
func ConcreteResistance(rhoConcrete, rhoSoil, g float64) float64 {
	return (rhoConcrete - rhoSoil) / (2 * math.Pi) * g
}

// R4 is the Neher–McGrath earth resistance (K·m/W). burialDepthM is the
// depth to the cable/duct/bank-top centre (as appropriate), outerDiaM is
// the corresponding outer diameter, both in metres.
func R4(rhoSoil, burialDepthM, outerDiaM float64) (float64, error) {
	if burialDepthM <= 0 || outerDiaM <= 0 {
		return 0, errs.New(errs.InvalidGeometry, "burial depth and outer diameter must be positive")
	}
	u := 2 * burialDepthM / outerDiaM
	var l float64
	if u > 10 {
		var err error
		l, err = safeLog(4 * burialDepthM / outerDiaM)
		if err != nil {
			return 0, err
		}
	} else {
		arg := u*u - 1
		if arg < 0 {
			return 0, errs.New(errs.InvalidGeometry, "u=%g < 1, burial depth too shallow for outer diameter", u)
		}
		l = math.Log(u + math.Sqrt(arg))
	}
	return rhoSoil / (2 * math.Pi) * l, nil
}

// Position is a cable centre in metres, y measured downward from the
// ground surface (§3 CablePosition).
type Position struct {
	X, Y float64
}

// ImageContribution is the mutual-heating term ΔR4,k (K·m/W) a heated
// cable at position k contributes to a target at position p, via the
// image method (ground-surface reflection).
func ImageContribution(rhoSoil float64, p, k Position) (float64, error) {
	dx := p.X - k.X
	dpk := math.Hypot(dx, p.Y-k.Y)
	dppk := math.Hypot(dx, p.Y+k.Y)
	if dpk <= 0 {
		return 0, errs.New(errs.InvalidGeometry, "coincident cable positions")
	}
	l, err := safeLog(dppk / dpk)
	if err != nil {
		return 0, err
	}
	return rhoSoil / (2 * math.Pi) * l, nil
}

// CableHeat is the per-cable heat-generation input to one pass of the
// current-weighted mutual-heating iteration (spec §4.3 step 2).
type CableHeat struct {
	Current float64 // A
	Rac     float64 // Ω/m
	Lambda1 float64 // shield loss factor
	Wd      float64 // dielectric loss, W/m
}

// Heat returns Q = I²·R_ac·(1+λ₁) + Wd (W/m).
func (c CableHeat) Heat() float64 {
	return c.Current*c.Current*c.Rac*(1+c.Lambda1) + c.Wd
}

// CouplingResult is the outcome of the current-weighted mutual-heating
// iteration (§4.3 steps 1-5).
type CouplingResult struct {
	RMut       []float64 // effective mutual-heating resistance per cable, K·m/W
	Currents   []float64 // converged (or last-estimate) ampacity per cable, A
	Iterations int
	Converged  bool
}

// MutualHeatingMatrix assembles the symmetric image-method contribution
// matrix F (K·m/W) for a set of cable positions sharing the same soil
// resistivity. F[i][i] is zero (a cable does not mutually heat itself).
func MutualHeatingMatrix(rhoSoil float64, positions []Position) (*mat.Dense, error) {
	n := len(positions)
	f := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			v, err := ImageContribution(rhoSoil, positions[i], positions[j])
			if err != nil {
				return nil, err
			}
			f.Set(i, j, v)
		}
	}
	return f, nil
}

// IterateCoupling runs the current-weighted mutual-heating fixed point
// (§4.3 steps 1-5). Each pass takes every cable's heat from heatAt at its
// current estimate, weights it by the mean, and forms R_mut = F · weights;
// solveCurrent is then called once per cable with that cable's R_mut and
// must return the cable's new ampacity estimate. The loop terminates when every cable's relative
// current change falls below tol, or after maxIter passes — whichever
// comes first — and reports divergence rather than looping silently
// (§4.3 step 5, §7 IterationDivergence).
func IterateCoupling(f *mat.Dense, initialCurrents []float64, heatAt func(i int, current float64) CableHeat, solveCurrent func(i int, rMut float64) (float64, error), tol float64, maxIter int) (CouplingResult, error) {
	n := len(initialCurrents)
	currents := append([]float64(nil), initialCurrents...)
	lastRMut := make([]float64, n)

	for iter := 1; iter <= maxIter; iter++ {
		heats := make([]float64, n)
		for i := 0; i < n; i++ {
			heats[i] = heatAt(i, currents[i]).Heat()
		}
		mean := 0.0
		for _, h := range heats {
			mean += h
		}
		if n > 0 {
			mean /= float64(n)
		}
		if mean <= 0 {
			return CouplingResult{}, errs.New(errs.ThermalInfeasible, "mean cable heat output is non-positive")
		}

		weights := mat.NewVecDense(n, nil)
		for i, h := range heats {
			weights.SetVec(i, h/mean)
		}

		rMutVec := mat.NewVecDense(n, nil)
		rMutVec.MulVec(f, weights)
		for i := 0; i < n; i++ {
			lastRMut[i] = rMutVec.AtVec(i)
		}

		newCurrents := make([]float64, n)
		maxRelChange := 0.0
		for i := 0; i < n; i++ {
			ni, err := solveCurrent(i, rMutVec.AtVec(i))
			if err != nil {
				return CouplingResult{RMut: lastRMut, Currents: currents, Iterations: iter, Converged: false}, err
			}
			newCurrents[i] = ni
			if currents[i] > 0 {
				rel := math.Abs(ni-currents[i]) / currents[i]
				if rel > maxRelChange {
					maxRelChange = rel
				}
			}
		}
		currents = newCurrents

		if maxRelChange < tol {
			return CouplingResult{RMut: lastRMut, Currents: currents, Iterations: iter, Converged: true}, nil
		}
	}

	return CouplingResult{RMut: lastRMut, Currents: currents, Iterations: maxIter, Converged: false}, errs.New(errs.IterationDivergence, "mutual-heating iteration did not converge within %d passes", maxIter)
}
