package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jschwehn/cableampacity"
)

const directBuriedScenarioJSON = `{
	"cable": {
		"conductor": {"material": "copper", "area_mm2": 400, "diameter_mm": 23.0, "stranding": "stranded_round", "phase_spacing_mm": 80},
		"insulation": {"material": "XLPE", "thickness_mm": 5.5},
		"jacket": {"material": "PVC", "thickness_mm": 3.0},
		"operating": {"u0_v": 64000, "frequency_hz": 50, "tmax_c": 90, "load_factor": 1.0}
	},
	"installation": {
		"type": "direct_buried",
		"direct_buried": {"depth_m": 1.0, "rho_soil": 1.0, "tamb_c": 25}
	}
}`

func TestLoadScenarioDirectBuried(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.json")
	if err := os.WriteFile(path, []byte(directBuriedScenarioJSON), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	sf, err := loadScenario(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cable := sf.Cable.toCableSpec()
	if cable.Conductor.AreaMM2 != 400 {
		t.Errorf("AreaMM2 = %g, want 400", cable.Conductor.AreaMM2)
	}

	inst, ductBank, err := sf.toInstallation()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ductBank != nil {
		t.Fatalf("expected no duct bank block for a direct_buried scenario")
	}
	db, ok := inst.(ampacity.DirectBuried)
	if !ok {
		t.Fatalf("expected a DirectBuried installation, got %T", inst)
	}
	if db.DepthM != 1.0 || db.RhoSoil != 1.0 || db.TambC != 25 {
		t.Errorf("unexpected DirectBuried fields: %+v", db)
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	if _, err := loadScenario("/nonexistent/path/scenario.json"); err == nil {
		t.Errorf("expected an error for a missing scenario file")
	}
}

func TestToInstallationRejectsUnknownType(t *testing.T) {
	sf := scenarioFile{Installation: installationInput{Type: "hanging_in_midair"}}
	if _, _, err := sf.toInstallation(); err == nil {
		t.Errorf("expected an error for an unknown installation type")
	}
}

func TestToInstallationRejectsMissingBlock(t *testing.T) {
	sf := scenarioFile{Installation: installationInput{Type: "conduit"}}
	if _, _, err := sf.toInstallation(); err == nil {
		t.Errorf("expected an error when the conduit block is absent")
	}
}

func TestDuctBankInputToDuctBank(t *testing.T) {
	d := ductBankInput{
		DepthToTopM:         0.8,
		ConcreteResistivity: 1.0,
		RhoSoil:             0.9,
		TambC:               25,
		BankWidthM:          1.0,
		BankHeightM:         0.7,
		Rows:                2,
		Cols:                3,
		HorizontalSpacingM:  0.3,
		VerticalSpacingM:    0.3,
		DuctIDMM:            100,
		DuctODMM:            115,
		DuctMaterial:        "PVC",
		OccupiedPositions:   []ductPositionInput{{Row: 0, Col: 0}, {Row: 1, Col: 2}},
		TargetPosition:      ductPositionInput{Row: 0, Col: 0},
	}
	bank := d.toDuctBank()
	if len(bank.OccupiedPositions) != 2 {
		t.Errorf("expected 2 occupied positions, got %d", len(bank.OccupiedPositions))
	}
	if !bank.OccupiedPositions[ampacity.DuctPosition{Row: 1, Col: 2}] {
		t.Errorf("expected (1,2) to be occupied")
	}
	if bank.TargetPosition != (ampacity.DuctPosition{Row: 0, Col: 0}) {
		t.Errorf("unexpected target position: %+v", bank.TargetPosition)
	}
}

func TestTargetInputNilIsNil(t *testing.T) {
	var ti *targetInput
	if ti.toTargetCurrent() != nil {
		t.Errorf("expected a nil *targetInput to produce a nil *TargetCurrent")
	}
}
