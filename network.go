package ampacity

import (
	"github.com/jschwehn/cableampacity/internal/acresistance"
	"github.com/jschwehn/cableampacity/internal/losses"
	"github.com/jschwehn/cableampacity/internal/thermal"
)

// electricalProfile is the set of temperature-dependent electrical
// quantities evaluated once at Tmax, the IEC boundary-condition
// simplification (§4.4).
type electricalProfile struct {
	Rac     float64
	Lambda1 float64
	WdPerM  float64
}

func (req CableSpec) electricalProfile() (electricalProfile, error) {
	d := req.diameters()

	ac, err := acresistance.Compute(acresistance.Conductor{
		Material:    req.Conductor.Material,
		AreaMM2:     req.Conductor.AreaMM2,
		DiameterMM:  req.Conductor.DiameterMM,
		Stranding:   req.Conductor.Stranding,
		R20Override: req.Conductor.R20Override,
		KsOverride:  req.Conductor.KsOverride,
		KpOverride:  req.Conductor.KpOverride,
	}, req.Operating.TmaxC, req.Operating.FrequencyHz, req.Conductor.PhaseSpacingMM)
	if err != nil {
		return electricalProfile{}, err
	}

	insProps, err := req.Insulation.resolve()
	if err != nil {
		return electricalProfile{}, err
	}
	wd, err := losses.DielectricLoss(insProps.RelativePermit, insProps.LossTangent, req.Operating.U0V, req.Operating.FrequencyHz, d.DiMM, d.DcMM)
	if err != nil {
		return electricalProfile{}, err
	}

	var lambda1 float64
	if req.Shield != nil {
		lambda1, _, _, err = losses.ShieldLossFactor(losses.ShieldInputs{
			Rs:           req.Shield.ResistanceOhmPerM,
			Rac:          ac.Rac,
			SpacingMM:    req.Conductor.PhaseSpacingMM,
			MeanDiaMM:    req.Shield.MeanDiaMM,
			F:            req.Operating.FrequencyHz,
			Bonding:      req.Shield.Bonding,
			EddyOverride: req.Shield.EddyLossOverride,
		})
		if err != nil {
			return electricalProfile{}, err
		}
	}

	return electricalProfile{Rac: ac.Rac, Lambda1: lambda1, WdPerM: wd}, nil
}

// cableNetwork is the assembled thermal-resistance tree for one cable at
// one installation, before mutual heating is folded in.
type cableNetwork struct {
	R1, R2, R3, RConcrete, R4 float64
}

func (req CableSpec) insulationAndJacketResistances() (r1, r2 float64, err error) {
	d := req.diameters()
	insProps, err := req.Insulation.resolve()
	if err != nil {
		return 0, 0, err
	}
	r1, err = thermal.R1(insProps.ThermalResistivity, req.Insulation.ThicknessMM, d.DcMM)
	if err != nil {
		return 0, 0, err
	}
	jacketRho, err := req.Jacket.resistivity()
	if err != nil {
		return 0, 0, err
	}
	r2, err = thermal.R2(jacketRho, d.DeMM, d.DsMM)
	if err != nil {
		return 0, 0, err
	}
	return r1, r2, nil
}

func networkDirectBuried(cable CableSpec, inst DirectBuried) (cableNetwork, error) {
	r1, r2, err := cable.insulationAndJacketResistances()
	if err != nil {
		return cableNetwork{}, err
	}
	d := cable.diameters()
	r4, err := thermal.R4(inst.RhoSoil, inst.DepthM, d.DeMM/1000.0)
	if err != nil {
		return cableNetwork{}, err
	}
	return cableNetwork{R1: r1, R2: r2, R4: r4}, nil
}

func networkConduit(cable CableSpec, inst Conduit) (cableNetwork, error) {
	r1, r2, err := cable.insulationAndJacketResistances()
	if err != nil {
		return cableNetwork{}, err
	}
	d := cable.diameters()
	condRho, ok := conduitResistivity(inst.ConduitMaterial)
	if !ok {
		return cableNetwork{}, errf(ErrInvalidMaterial, "unknown conduit material %q", inst.ConduitMaterial)
	}
	thetaMean := (cable.Operating.TmaxC + inst.TambC) / 2
	r3, err := thermal.R3(d.DeMM, inst.ConduitIDMM, inst.ConduitODMM, condRho, thetaMean)
	if err != nil {
		return cableNetwork{}, err
	}
	r4, err := thermal.R4(inst.RhoSoil, inst.DepthM, inst.ConduitODMM/1000.0)
	if err != nil {
		return cableNetwork{}, err
	}
	return cableNetwork{R1: r1, R2: r2, R3: r3, R4: r4}, nil
}

func networkDuctBank(cable CableSpec, bank DuctBank, pos DuctPosition) (cableNetwork, error) {
	r1, r2, err := cable.insulationAndJacketResistances()
	if err != nil {
		return cableNetwork{}, err
	}
	d := cable.diameters()
	condRho, ok := conduitResistivity(bank.DuctMaterial)
	if !ok {
		return cableNetwork{}, errf(ErrInvalidMaterial, "unknown duct material %q", bank.DuctMaterial)
	}
	thetaMean := (cable.Operating.TmaxC + bank.TambC) / 2
	r3, err := thermal.R3(d.DeMM, bank.DuctIDMM, bank.DuctODMM, condRho, thetaMean)
	if err != nil {
		return cableNetwork{}, err
	}

	top, bottom, left, right := bank.perpendicularDistances(pos)
	g, err := thermal.ConcreteGeometricFactor(top, bottom, left, right, bank.DuctODMM/2000.0)
	if err != nil {
		return cableNetwork{}, err
	}
	rConc := thermal.ConcreteResistance(bank.ConcreteResistivity, bank.RhoSoil, g)

	// Earth resistance on the full bank-outer-surface basis (§9
	// convention), using an equivalent circular diameter for the bank
	// cross-section and the depth to the bank's geometric centre.
	equivDe := equivalentBankDiameterM(bank)
	bankCenterDepth := bank.DepthToTopM + bank.BankHeightM/2
	r4, err := thermal.R4(bank.RhoSoil, bankCenterDepth, equivDe)
	if err != nil {
		return cableNetwork{}, err
	}

	return cableNetwork{R1: r1, R2: r2, R3: r3, RConcrete: rConc, R4: r4}, nil
}

