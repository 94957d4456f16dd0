package ampacity

// cableDiameters are the derived diameters (mm) used throughout the
// thermal and loss calculations: over conductor (dc), over insulation
// (Di), over shield (Ds), and overall (De).
type cableDiameters struct {
	DcMM, DiMM, DsMM, DeMM float64
}

func (c CableSpec) diameters() cableDiameters {
	dc := c.Conductor.DiameterMM
	di := dc + 2*c.Insulation.ThicknessMM
	ds := di
	if c.Shield != nil {
		ds = di + 2*c.Shield.ThicknessMM
	}
	de := ds + 2*c.Jacket.ThicknessMM
	return cableDiameters{DcMM: dc, DiMM: di, DsMM: ds, DeMM: de}
}
