package losses

import (
	"math"
	"testing"
)

func TestDielectricLoss(t *testing.T) {
	tests := []struct {
		name      string
		epsR      float64
		tanDelta  float64
		u0        float64
		f         float64
		diMM      float64
		dcMM      float64
		want      float64
		tolerance float64
	}{
		{
			name:      "10kV phase-to-ground, XLPE-like, 30/20mm",
			epsR:      2.5,
			tanDelta:  0.001,
			u0:        10000,
			f:         50,
			diMM:      30,
			dcMM:      20,
			want:      0.010776,
			tolerance: 0.0002,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DielectricLoss(tt.epsR, tt.tanDelta, tt.u0, tt.f, tt.diMM, tt.dcMM)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("got %g, want %g", got, tt.want)
			}
		})
	}
}

func TestDielectricLossRejectsInvalidDiameterRatio(t *testing.T) {
	if _, err := DielectricLoss(2.5, 0.001, 10000, 50, 20, 20); err == nil {
		t.Errorf("expected an error when Di does not exceed Dc")
	}
}

func TestShieldLossFactorCirculatingComponent(t *testing.T) {
	in := ShieldInputs{
		Rs:        0.0001,
		Rac:       0.0002,
		SpacingMM: 200,
		MeanDiaMM: 50,
		F:         50,
		Bonding:   BothEnds,
	}
	lambda1, circ, eddy, err := ShieldLossFactor(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(circ-0.3153) > 0.002 {
		t.Errorf("circulating component got %g, want ~0.3153", circ)
	}
	if math.Abs(lambda1-(circ+eddy)) > 1e-9 {
		t.Errorf("both-ends lambda1 (%g) should equal circ+eddy (%g)", lambda1, circ+eddy)
	}
}

func TestShieldLossFactorBondingComparison(t *testing.T) {
	base := ShieldInputs{
		Rs:        0.0001,
		Rac:       0.0002,
		SpacingMM: 200,
		MeanDiaMM: 50,
		F:         50,
	}

	single := base
	single.Bonding = SinglePoint
	lambdaSingle, _, eddySingle, err := ShieldLossFactor(single)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	both := base
	both.Bonding = BothEnds
	lambdaBoth, circBoth, _, err := ShieldLossFactor(both)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cross := base
	cross.Bonding = CrossBonded
	lambdaCross, _, _, err := ShieldLossFactor(cross)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(lambdaSingle-eddySingle) > 1e-12 {
		t.Errorf("single-point lambda1 must equal the eddy component alone, got %g vs %g", lambdaSingle, eddySingle)
	}
	if math.Abs(lambdaCross-lambdaSingle) > 1e-12 {
		t.Errorf("ideal cross-bonding should cancel circulating loss just like single-point, got %g vs %g", lambdaCross, lambdaSingle)
	}
	if lambdaBoth <= lambdaSingle {
		t.Errorf("both-ends bonding (%g) should exceed single-point/cross-bonded (%g) when circulating loss is present", lambdaBoth, lambdaSingle)
	}
	if circBoth <= 0 {
		t.Errorf("expected a positive circulating component for both-ends bonding, got %g", circBoth)
	}
}

func TestShieldLossFactorEddyOverride(t *testing.T) {
	override := 0.05
	in := ShieldInputs{
		Rs:           0.0001,
		Rac:          0.0002,
		SpacingMM:    200,
		MeanDiaMM:    50,
		F:            50,
		Bonding:      SinglePoint,
		EddyOverride: &override,
	}
	lambda1, _, eddy, err := ShieldLossFactor(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eddy != override {
		t.Errorf("expected eddy override %g to be used verbatim, got %g", override, eddy)
	}
	if lambda1 != override {
		t.Errorf("single-point lambda1 should equal the overridden eddy value, got %g", lambda1)
	}
}

func TestShieldLossFactorRejectsInvalidInputs(t *testing.T) {
	tests := []struct {
		name string
		in   ShieldInputs
	}{
		{"non-positive shield resistance", ShieldInputs{Rs: 0, Rac: 0.0002, SpacingMM: 200, MeanDiaMM: 50, F: 50, Bonding: SinglePoint}},
		{"non-positive mean diameter", ShieldInputs{Rs: 0.0001, Rac: 0.0002, SpacingMM: 200, MeanDiaMM: 0, F: 50, Bonding: SinglePoint}},
		{"unknown bonding", ShieldInputs{Rs: 0.0001, Rac: 0.0002, SpacingMM: 200, MeanDiaMM: 50, F: 50, Bonding: "unknown"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, err := ShieldLossFactor(tt.in); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestConductorLoss(t *testing.T) {
	got := ConductorLoss(100, 0.0002)
	want := 100.0 * 100.0 * 0.0002
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("got %g, want %g", got, want)
	}
}
