// Scenario decoding: the JSON-file equivalent of the interactive form,
// filling the same CableSpec/Installation/Target fields one prompt at a
// time builds up (§2 ambient stack — configuration).
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jschwehn/cableampacity"
	"github.com/jschwehn/cableampacity/internal/losses"
	"github.com/jschwehn/cableampacity/internal/materials"
)

// scenarioFile is the on-disk shape read by -scenario. It mirrors
// ampacity.CableSpec/Installation field-for-field rather than reusing
// those types directly, since Installation is a closed interface and
// needs a "type" discriminator to round-trip through JSON.
type scenarioFile struct {
	Cable        cableInput        `json:"cable"`
	Installation installationInput `json:"installation"`
	Target       *targetInput      `json:"target,omitempty"`
}

type conductorInput struct {
	Material       materials.ConductorMaterial `json:"material"`
	AreaMM2        float64                     `json:"area_mm2"`
	DiameterMM     float64                     `json:"diameter_mm"`
	Stranding      materials.Stranding         `json:"stranding"`
	PhaseSpacingMM float64                     `json:"phase_spacing_mm"`
	R20Override    float64                     `json:"r20_override,omitempty"`
	KsOverride     *float64                    `json:"ks_override,omitempty"`
	KpOverride     *float64                    `json:"kp_override,omitempty"`
}

type insulationInput struct {
	Material                   materials.InsulationMaterial `json:"material"`
	ThicknessMM                float64                      `json:"thickness_mm"`
	RelativePermitOverride     float64                      `json:"relative_permit_override,omitempty"`
	LossTangentOverride        float64                      `json:"loss_tangent_override,omitempty"`
	ThermalResistivityOverride float64                      `json:"thermal_resistivity_override,omitempty"`
	RatedTempCOverride         float64                      `json:"rated_temp_c_override,omitempty"`
}

type shieldInput struct {
	Material          string           `json:"material"`
	Type              string           `json:"type"`
	ThicknessMM       float64          `json:"thickness_mm"`
	MeanDiaMM         float64          `json:"mean_dia_mm"`
	Bonding           losses.Bonding   `json:"bonding"`
	ResistanceOhmPerM float64          `json:"resistance_ohm_per_m"`
	EddyLossOverride  *float64         `json:"eddy_loss_override,omitempty"`
}

type jacketInput struct {
	Material                   materials.JacketMaterial `json:"material"`
	ThicknessMM                float64                  `json:"thickness_mm"`
	ThermalResistivityOverride float64                  `json:"thermal_resistivity_override,omitempty"`
}

type operatingInput struct {
	U0V         float64 `json:"u0_v"`
	FrequencyHz float64 `json:"frequency_hz"`
	TmaxC       float64 `json:"tmax_c"`
	LoadFactor  float64 `json:"load_factor"`
}

type cableInput struct {
	Conductor  conductorInput   `json:"conductor"`
	Insulation insulationInput  `json:"insulation"`
	Shield     *shieldInput     `json:"shield,omitempty"`
	Jacket     jacketInput      `json:"jacket"`
	Operating  operatingInput   `json:"operating"`
}

func (c cableInput) toCableSpec() ampacity.CableSpec {
	spec := ampacity.CableSpec{
		Conductor: ampacity.Conductor{
			Material:       c.Conductor.Material,
			AreaMM2:        c.Conductor.AreaMM2,
			DiameterMM:     c.Conductor.DiameterMM,
			Stranding:      c.Conductor.Stranding,
			PhaseSpacingMM: c.Conductor.PhaseSpacingMM,
			R20Override:    c.Conductor.R20Override,
			KsOverride:     c.Conductor.KsOverride,
			KpOverride:     c.Conductor.KpOverride,
		},
		Insulation: ampacity.Insulation{
			Material:                   c.Insulation.Material,
			ThicknessMM:                c.Insulation.ThicknessMM,
			RelativePermitOverride:     c.Insulation.RelativePermitOverride,
			LossTangentOverride:        c.Insulation.LossTangentOverride,
			ThermalResistivityOverride: c.Insulation.ThermalResistivityOverride,
			RatedTempCOverride:         c.Insulation.RatedTempCOverride,
		},
		Jacket: ampacity.Jacket{
			Material:                   c.Jacket.Material,
			ThicknessMM:                c.Jacket.ThicknessMM,
			ThermalResistivityOverride: c.Jacket.ThermalResistivityOverride,
		},
		Operating: ampacity.OperatingConditions{
			U0V:         c.Operating.U0V,
			FrequencyHz: c.Operating.FrequencyHz,
			TmaxC:       c.Operating.TmaxC,
			LoadFactor:  c.Operating.LoadFactor,
		},
	}
	if c.Shield != nil {
		spec.Shield = &ampacity.Shield{
			Material:          c.Shield.Material,
			Type:              ampacity.ShieldType(c.Shield.Type),
			ThicknessMM:       c.Shield.ThicknessMM,
			MeanDiaMM:         c.Shield.MeanDiaMM,
			Bonding:           c.Shield.Bonding,
			ResistanceOhmPerM: c.Shield.ResistanceOhmPerM,
			EddyLossOverride:  c.Shield.EddyLossOverride,
		}
	}
	return spec
}

// installationInput carries at most one of the three variants,
// selected by Type; the other two are left zero-valued.
type installationInput struct {
	Type string `json:"type"` // "direct_buried", "conduit", or "duct_bank"

	DirectBuried *directBuriedInput `json:"direct_buried,omitempty"`
	Conduit      *conduitInput      `json:"conduit,omitempty"`
	DuctBank     *ductBankInput     `json:"duct_bank,omitempty"`
}

type directBuriedInput struct {
	DepthM       float64 `json:"depth_m"`
	RhoSoil      float64 `json:"rho_soil"`
	TambC        float64 `json:"tamb_c"`
	SpacingM     float64 `json:"spacing_m"`
	NumNeighbors int     `json:"num_neighbors"`
}

type conduitInput struct {
	DepthM          float64                  `json:"depth_m"`
	RhoSoil         float64                  `json:"rho_soil"`
	TambC           float64                  `json:"tamb_c"`
	ConduitIDMM     float64                  `json:"conduit_id_mm"`
	ConduitODMM     float64                  `json:"conduit_od_mm"`
	ConduitMaterial materials.ConduitMaterial `json:"conduit_material"`
	NumConduits     int                      `json:"num_conduits"`
}

type ductPositionInput struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type ductBankInput struct {
	DepthToTopM         float64                   `json:"depth_to_top_m"`
	ConcreteResistivity float64                   `json:"concrete_resistivity"`
	RhoSoil             float64                   `json:"rho_soil"`
	TambC               float64                   `json:"tamb_c"`
	BankWidthM          float64                   `json:"bank_width_m"`
	BankHeightM         float64                   `json:"bank_height_m"`
	Rows                int                       `json:"rows"`
	Cols                int                       `json:"cols"`
	HorizontalSpacingM  float64                   `json:"horizontal_spacing_m"`
	VerticalSpacingM    float64                   `json:"vertical_spacing_m"`
	DuctIDMM            float64                   `json:"duct_id_mm"`
	DuctODMM            float64                   `json:"duct_od_mm"`
	DuctMaterial        materials.ConduitMaterial `json:"duct_material"`
	OccupiedPositions   []ductPositionInput       `json:"occupied_positions"`
	TargetPosition      ductPositionInput         `json:"target_position"`
}

func (d ductBankInput) toDuctBank() ampacity.DuctBank {
	occupied := make(map[ampacity.DuctPosition]bool, len(d.OccupiedPositions))
	for _, p := range d.OccupiedPositions {
		occupied[ampacity.DuctPosition{Row: p.Row, Col: p.Col}] = true
	}
	return ampacity.DuctBank{
		DepthToTopM:         d.DepthToTopM,
		ConcreteResistivity: d.ConcreteResistivity,
		RhoSoil:             d.RhoSoil,
		TambC:               d.TambC,
		BankWidthM:          d.BankWidthM,
		BankHeightM:         d.BankHeightM,
		Rows:                d.Rows,
		Cols:                d.Cols,
		HorizontalSpacingM:  d.HorizontalSpacingM,
		VerticalSpacingM:    d.VerticalSpacingM,
		DuctIDMM:            d.DuctIDMM,
		DuctODMM:            d.DuctODMM,
		DuctMaterial:        d.DuctMaterial,
		OccupiedPositions:   occupied,
		TargetPosition:      ampacity.DuctPosition{Row: d.TargetPosition.Row, Col: d.TargetPosition.Col},
	}
}

type targetInput struct {
	CurrentA       float64 `json:"current_a"`
	MarginFraction float64 `json:"margin_fraction"`
}

func (t *targetInput) toTargetCurrent() *ampacity.TargetCurrent {
	if t == nil {
		return nil
	}
	return &ampacity.TargetCurrent{CurrentA: t.CurrentA, MarginFraction: t.MarginFraction}
}

// loadScenario reads and decodes a -scenario JSON file.
func loadScenario(path string) (scenarioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scenarioFile{}, fmt.Errorf("reading scenario file: %w", err)
	}
	var sf scenarioFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return scenarioFile{}, fmt.Errorf("parsing scenario file: %w", err)
	}
	return sf, nil
}

// toInstallation builds the Installation the scenario names. For a
// duct_bank scenario it returns a nil Installation and the duct_bank
// block instead, signalling that the system solve is needed.
func (sf scenarioFile) toInstallation() (ampacity.Installation, *ductBankInput, error) {
	switch sf.Installation.Type {
	case "direct_buried":
		if sf.Installation.DirectBuried == nil {
			return nil, nil, fmt.Errorf("installation type direct_buried requires a direct_buried block")
		}
		db := sf.Installation.DirectBuried
		return ampacity.DirectBuried{
			DepthM:       db.DepthM,
			RhoSoil:      db.RhoSoil,
			TambC:        db.TambC,
			SpacingM:     db.SpacingM,
			NumNeighbors: db.NumNeighbors,
		}, nil, nil
	case "conduit":
		if sf.Installation.Conduit == nil {
			return nil, nil, fmt.Errorf("installation type conduit requires a conduit block")
		}
		ct := sf.Installation.Conduit
		return ampacity.Conduit{
			DepthM:          ct.DepthM,
			RhoSoil:         ct.RhoSoil,
			TambC:           ct.TambC,
			ConduitIDMM:     ct.ConduitIDMM,
			ConduitODMM:     ct.ConduitODMM,
			ConduitMaterial: ct.ConduitMaterial,
			NumConduits:     ct.NumConduits,
		}, nil, nil
	case "duct_bank":
		if sf.Installation.DuctBank == nil {
			return nil, nil, fmt.Errorf("installation type duct_bank requires a duct_bank block")
		}
		return nil, sf.Installation.DuctBank, nil
	default:
		return nil, nil, fmt.Errorf("unknown installation type %q", sf.Installation.Type)
	}
}
