package ampacity

func validateCableSpec(c CableSpec) error {
	if c.Conductor.AreaMM2 <= 0 || c.Conductor.DiameterMM <= 0 {
		return errf(ErrInvalidGeometry, "conductor area and diameter must be positive")
	}
	if c.Conductor.PhaseSpacingMM <= 0 {
		return errf(ErrInvalidGeometry, "conductor phase spacing must be positive")
	}
	if c.Insulation.ThicknessMM <= 0 {
		return errf(ErrInvalidGeometry, "insulation thickness must be positive")
	}
	if c.Jacket.ThicknessMM <= 0 {
		return errf(ErrInvalidGeometry, "jacket thickness must be positive")
	}
	d := c.diameters()
	if c.Shield != nil && c.Shield.MeanDiaMM <= d.DiMM {
		return errf(ErrInvalidGeometry, "shield mean diameter (%g mm) must exceed diameter over insulation (%g mm)", c.Shield.MeanDiaMM, d.DiMM)
	}
	if c.Shield != nil && c.Shield.ResistanceOhmPerM <= 0 {
		return errf(ErrInvalidGeometry, "shield resistance must be positive when a shield is present")
	}
	if c.Operating.LoadFactor <= 0 || c.Operating.LoadFactor > 1 {
		return errf(ErrInvalidOperating, "load factor must be in (0, 1], got %g", c.Operating.LoadFactor)
	}
	if c.Operating.FrequencyHz <= 0 {
		return errf(ErrInvalidOperating, "frequency must be positive")
	}
	if c.Operating.U0V <= 0 {
		return errf(ErrInvalidOperating, "voltage must be positive")
	}
	return nil
}

func validateTmaxAmbient(tmax, tamb float64) error {
	if tmax <= tamb {
		return errf(ErrInvalidOperating, "Tmax (%g°C) must exceed Tamb (%g°C)", tmax, tamb)
	}
	return nil
}
