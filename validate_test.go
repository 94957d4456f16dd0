package ampacity

import (
	"errors"
	"testing"

	"github.com/jschwehn/cableampacity/internal/errs"
	"github.com/jschwehn/cableampacity/internal/materials"
)

func TestValidateCableSpecRejectsInvalidInputs(t *testing.T) {
	base := validCableSpec()

	tests := []struct {
		name   string
		mutate func(c *CableSpec)
	}{
		{"non-positive conductor area", func(c *CableSpec) { c.Conductor.AreaMM2 = 0 }},
		{"non-positive conductor diameter", func(c *CableSpec) { c.Conductor.DiameterMM = 0 }},
		{"non-positive phase spacing", func(c *CableSpec) { c.Conductor.PhaseSpacingMM = 0 }},
		{"non-positive insulation thickness", func(c *CableSpec) { c.Insulation.ThicknessMM = 0 }},
		{"non-positive jacket thickness", func(c *CableSpec) { c.Jacket.ThicknessMM = 0 }},
		{"load factor above 1", func(c *CableSpec) { c.Operating.LoadFactor = 1.5 }},
		{"load factor zero", func(c *CableSpec) { c.Operating.LoadFactor = 0 }},
		{"non-positive frequency", func(c *CableSpec) { c.Operating.FrequencyHz = 0 }},
		{"non-positive voltage", func(c *CableSpec) { c.Operating.U0V = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			if err := validateCableSpec(c); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestValidateCableSpecShieldChecks(t *testing.T) {
	c := validCableSpec()
	d := c.diameters()
	c.Shield = &Shield{MeanDiaMM: d.DiMM, ResistanceOhmPerM: 1e-4}
	if err := validateCableSpec(c); err == nil {
		t.Errorf("expected an error when shield mean diameter does not exceed diameter over insulation")
	}

	c.Shield = &Shield{MeanDiaMM: d.DiMM + 5, ResistanceOhmPerM: 0}
	if err := validateCableSpec(c); err == nil {
		t.Errorf("expected an error when a shield has non-positive resistance")
	}

	c.Shield = &Shield{MeanDiaMM: d.DiMM + 5, ResistanceOhmPerM: 1e-4}
	if err := validateCableSpec(c); err != nil {
		t.Errorf("unexpected error for a valid shield: %v", err)
	}
}

func TestValidateCableSpecAccepts(t *testing.T) {
	if err := validateCableSpec(validCableSpec()); err != nil {
		t.Errorf("unexpected error for a valid spec: %v", err)
	}
}

func TestValidateTmaxAmbient(t *testing.T) {
	if err := validateTmaxAmbient(90, 25); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := validateTmaxAmbient(25, 25)
	var e *errs.Error
	if !errors.As(err, &e) || e.Code != errs.InvalidOperating {
		t.Errorf("expected InvalidOperating when Tmax does not exceed Tamb, got %v", err)
	}
}

func TestValidateCableSpecUnknownMaterialSurfacesFromResolve(t *testing.T) {
	c := validCableSpec()
	c.Insulation.Material = materials.InsulationMaterial("unobtainium")
	if _, err := c.Insulation.resolve(); err == nil {
		t.Errorf("expected an error for an unknown insulation material")
	}

	c2 := validCableSpec()
	c2.Jacket.Material = materials.JacketMaterial("unobtainium")
	if _, err := c2.Jacket.resistivity(); err == nil {
		t.Errorf("expected an error for an unknown jacket material")
	}
}
