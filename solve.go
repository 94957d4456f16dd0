package ampacity

import (
	"context"
	"math"

	"github.com/jschwehn/cableampacity/internal/thermal"
)

// ampacityFromNetwork closes the loop on the master ampacity equation
// (§4.4): ΔT = I²·R_ac·(1+λ₁)·ΣR + Wd·ΣR', solved for I. rMutual is the
// already-resolved mutual-heating contribution (R_mut or R_mut,i),
// folded into ΣR/ΣR' as part of R4_eff.
func ampacityFromNetwork(profile electricalProfile, net cableNetwork, rMutual, tmax, tamb float64) (current float64, tree ResistanceTree, infeasible bool) {
	r4eff := net.R4 + rMutual
	sigmaR := net.R1 + net.R2 + net.R3 + net.RConcrete + r4eff
	sigmaRPrime := 0.5*net.R1 + net.R2 + net.R3 + net.RConcrete + r4eff

	tree = ResistanceTree{
		R1: net.R1, R2: net.R2, R3: net.R3, RConcrete: net.RConcrete,
		R4: net.R4, RMutual: rMutual, SigmaR: sigmaR, SigmaRPrime: sigmaRPrime,
	}

	deltaT := tmax - tamb
	numerator := deltaT - profile.WdPerM*sigmaRPrime
	if numerator <= 0 {
		return 0, tree, true
	}
	denom := profile.Rac * (1 + profile.Lambda1) * sigmaR
	if denom <= 0 {
		return 0, tree, true
	}
	current = math.Sqrt(numerator / denom)
	return current, tree, false
}

func designStatus(current float64, target *TargetCurrent, deltaTPositive bool) DesignStatus {
	if target != nil {
		if current >= target.CurrentA*(1+target.MarginFraction) {
			return Pass
		}
		return Fail
	}
	if current > 0 && deltaTPositive {
		return Pass
	}
	return Fail
}

func buildResult(cable CableSpec, profile electricalProfile, tree ResistanceTree, current, tamb, tmax float64, infeasible, diverged bool, target *TargetCurrent) Result {
	status := designStatus(current, target, tmax > tamb)
	if infeasible {
		status = Fail
	}

	var cyclic float64
	if current > 0 {
		cyclic = current / math.Sqrt(cable.Operating.LoadFactor)
	}

	conductorLoss := 0.0
	if current > 0 {
		conductorLoss = current * current * profile.Rac
	}

	tempRise := current*current*profile.Rac*(1+profile.Lambda1)*tree.SigmaR + profile.WdPerM*tree.SigmaRPrime

	return Result{
		AmpacitySteadyA: current,
		AmpacityCyclicA: cyclic,
		Losses: LossBreakdown{
			ConductorWPerM:  conductorLoss,
			DielectricWPerM: profile.WdPerM,
			ShieldLambda1:   profile.Lambda1,
		},
		Resistances:      tree,
		TemperatureRiseC: tempRise,
		AmbientTempC:     tamb,
		ConductorTempC:   tamb + tempRise,
		DesignStatus:     status,
		Diverged:         diverged,
	}
}

// Solve is the engine's single-cable entry point (§6.1): DirectBuried
// (optionally with symmetric neighbours) and Conduit installations.
// DuctBank installations require SolveSystem, since their per-cable
// currents generally differ and must be solved via the current-weighted
// iteration (§4.3 steps 1-5).
func Solve(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := validateCableSpec(req.Cable); err != nil {
		return Result{}, err
	}

	switch inst := req.Installation.(type) {
	case DirectBuried:
		return solveDirectBuried(req.Cable, inst, req.Target)
	case Conduit:
		return solveConduit(req.Cable, inst, req.Target)
	case DuctBank:
		return Result{}, errf(ErrInvalidGeometry, "DuctBank installations must use SolveSystem")
	default:
		return Result{}, errf(ErrInvalidMaterial, "unknown installation variant %T", inst)
	}
}

func solveDirectBuried(cable CableSpec, inst DirectBuried, target *TargetCurrent) (Result, error) {
	if inst.DepthM <= 0 || inst.RhoSoil <= 0 {
		return Result{}, errf(ErrInvalidGeometry, "burial depth and soil resistivity must be positive")
	}
	if inst.NumNeighbors < 0 || inst.NumNeighbors > 2 {
		return Result{}, errf(ErrInvalidGeometry, "NumNeighbors must be 0, 1, or 2, got %d", inst.NumNeighbors)
	}
	if inst.NumNeighbors > 0 && inst.SpacingM <= 0 {
		return Result{}, errf(ErrInvalidGeometry, "spacing must be positive when neighbours are present")
	}
	if err := validateTmaxAmbient(cable.Operating.TmaxC, inst.TambC); err != nil {
		return Result{}, err
	}

	profile, err := cable.electricalProfile()
	if err != nil {
		return Result{}, err
	}
	net, err := networkDirectBuried(cable, inst)
	if err != nil {
		return Result{}, err
	}

	var rMutual float64
	if inst.NumNeighbors > 0 {
		targetPos := CablePosition{X: 0, Y: inst.DepthM}
		neighbour := CablePosition{X: inst.SpacingM, Y: inst.DepthM}
		contrib, err := thermal.ImageContribution(inst.RhoSoil, thermal.Position(targetPos), thermal.Position(neighbour))
		if err != nil {
			return Result{}, err
		}
		// Equal-current symmetric neighbours (trefoil or flat
		// formation with identical circuits) each contribute the same
		// image-method term by construction.
		rMutual = float64(inst.NumNeighbors) * contrib
	}

	current, tree, infeasible := ampacityFromNetwork(profile, net, rMutual, cable.Operating.TmaxC, inst.TambC)
	if infeasible {
		result := buildResult(cable, profile, tree, 0, inst.TambC, cable.Operating.TmaxC, true, false, target)
		return result, errf(ErrThermalInfeasible, "dielectric losses exceed the thermal budget")
	}
	return buildResult(cable, profile, tree, current, inst.TambC, cable.Operating.TmaxC, false, false, target), nil
}

func solveConduit(cable CableSpec, inst Conduit, target *TargetCurrent) (Result, error) {
	if inst.DepthM <= 0 || inst.RhoSoil <= 0 {
		return Result{}, errf(ErrInvalidGeometry, "burial depth and soil resistivity must be positive")
	}
	if inst.ConduitIDMM <= 0 || inst.ConduitODMM <= inst.ConduitIDMM {
		return Result{}, errf(ErrInvalidGeometry, "conduit OD must exceed conduit ID")
	}
	if err := validateTmaxAmbient(cable.Operating.TmaxC, inst.TambC); err != nil {
		return Result{}, err
	}

	profile, err := cable.electricalProfile()
	if err != nil {
		return Result{}, err
	}
	net, err := networkConduit(cable, inst)
	if err != nil {
		return Result{}, err
	}

	current, tree, infeasible := ampacityFromNetwork(profile, net, 0, cable.Operating.TmaxC, inst.TambC)
	if infeasible {
		result := buildResult(cable, profile, tree, 0, inst.TambC, cable.Operating.TmaxC, true, false, target)
		return result, errf(ErrThermalInfeasible, "dielectric losses exceed the thermal budget")
	}
	return buildResult(cable, profile, tree, current, inst.TambC, cable.Operating.TmaxC, false, false, target), nil
}

// SolveSystem is the engine's multi-cable entry point (§6.1) for duct
// banks: every occupied position carries an identical cable
// construction but, in general, a different converged ampacity, so the
// current-weighted iterative coupler (§4.3 steps 1-5) runs across the
// whole occupied set before the target position's Result is read off.
func SolveSystem(ctx context.Context, req SystemRequest) (SystemResult, error) {
	if err := ctx.Err(); err != nil {
		return SystemResult{}, err
	}
	if err := validateCableSpec(req.Cable); err != nil {
		return SystemResult{}, err
	}
	bank := req.Bank
	if !bank.OccupiedPositions[bank.TargetPosition] {
		return SystemResult{}, errf(ErrInvalidGeometry, "target position is not a member of the occupied set")
	}
	if bank.Rows <= 0 || bank.Cols <= 0 {
		return SystemResult{}, errf(ErrInvalidGeometry, "duct bank must have positive rows and cols")
	}
	if bank.BankWidthM <= 0 || bank.BankHeightM <= 0 {
		return SystemResult{}, errf(ErrInvalidGeometry, "duct bank width and height must be positive")
	}
	if err := validateTmaxAmbient(req.Cable.Operating.TmaxC, bank.TambC); err != nil {
		return SystemResult{}, err
	}

	positions := make([]DuctPosition, 0, len(bank.OccupiedPositions))
	for p, occupied := range bank.OccupiedPositions {
		if occupied {
			if p.Row < 0 || p.Row >= bank.Rows || p.Col < 0 || p.Col >= bank.Cols {
				return SystemResult{}, errf(ErrInvalidGeometry, "occupied position %+v is outside the declared %dx%d bank", p, bank.Rows, bank.Cols)
			}
			positions = append(positions, p)
		}
	}

	profile, err := req.Cable.electricalProfile()
	if err != nil {
		return SystemResult{}, err
	}

	n := len(positions)
	networks := make([]cableNetwork, n)
	imagePositions := make([]thermal.Position, n)
	for i, p := range positions {
		net, err := networkDuctBank(req.Cable, bank, p)
		if err != nil {
			return SystemResult{}, err
		}
		networks[i] = net
		c := bank.center(p)
		imagePositions[i] = thermal.Position{X: c.X, Y: c.Y}
	}

	fMatrix, err := thermal.MutualHeatingMatrix(bank.RhoSoil, imagePositions)
	if err != nil {
		return SystemResult{}, err
	}

	initial := make([]float64, n)
	for i := range initial {
		initial[i] = 1.0 // uniform seed current (§4.3 step 1); units cancel in the weight ratio
	}

	solveAt := func(i int, current float64) thermal.CableHeat {
		return thermal.CableHeat{Current: current, Rac: profile.Rac, Lambda1: profile.Lambda1, Wd: profile.WdPerM}
	}
	lastTrees := make([]ResistanceTree, n)
	var lastInfeasible bool
	coupling, coupleErr := thermal.IterateCoupling(fMatrix, initial, solveAt, func(i int, rMut float64) (float64, error) {
		current, tree, infeasible := ampacityFromNetwork(profile, networks[i], rMut, req.Cable.Operating.TmaxC, bank.TambC)
		lastTrees[i] = tree
		if infeasible {
			lastInfeasible = true
			return 0, errf(ErrThermalInfeasible, "dielectric losses exceed the thermal budget at position %+v", positions[i])
		}
		return current, nil
	}, 0.01, 20)

	infeasible := coupleErr != nil && lastInfeasible
	results := make(map[DuctPosition]Result, n)
	diverged := coupleErr != nil && !infeasible
	for i, p := range positions {
		var current float64
		if coupling.Currents != nil && !infeasible {
			current = coupling.Currents[i]
		}
		results[p] = buildResult(req.Cable, profile, lastTrees[i], current, bank.TambC, req.Cable.Operating.TmaxC, infeasible, diverged, req.Target)
	}

	sysResult := SystemResult{
		Results:    results,
		Target:     results[bank.TargetPosition],
		Iterations: coupling.Iterations,
		Converged:  coupling.Converged,
	}
	if coupleErr != nil {
		return sysResult, coupleErr
	}
	return sysResult, nil
}
