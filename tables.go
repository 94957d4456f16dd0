package ampacity

import (
	"math"

	"github.com/jschwehn/cableampacity/internal/materials"
)

func conduitResistivity(m materials.ConduitMaterial) (float64, bool) {
	r, ok := materials.ConduitThermalResistivity[m]
	return r, ok
}

// equivalentBankDiameterM returns the equivalent circular diameter (m)
// of a duct bank's rectangular cross-section, used as the "outer
// diameter" term in the Neher–McGrath R4 formula applied to the whole
// bank (§9 concrete-resistance convention: R4 is evaluated on the full
// bank-outer-surface basis). The equivalent-area circle is the
// convention adopted here since spec.md leaves the exact bank-to-R4
// mapping unstated; see DESIGN.md.
func equivalentBankDiameterM(bank DuctBank) float64 {
	area := bank.BankWidthM * bank.BankHeightM
	return 2 * math.Sqrt(area/math.Pi)
}
