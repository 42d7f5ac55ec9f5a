package estimation

// Validator checks farm profiles before they reach the scoring models
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateForScoring checks the inputs read in recommendation mode
func (v *Validator) ValidateForScoring(p *FarmProfile) error {
	if err := v.validateCommon(p); err != nil {
		return err
	}

	if p.Budget <= 0 {
		return invalid("budget", "must be greater than 0")
	}
	if !p.WaterAvailability.Valid() {
		return invalid("water_availability", "unknown level %q", p.WaterAvailability)
	}
	if !p.Season.Valid() {
		return invalid("season", "unknown season %q", p.Season)
	}
	if !validIrrigation(p.IrrigationType) {
		return invalid("irrigation_type", "unknown irrigation type %q", p.IrrigationType)
	}
	if p.RiskTolerance != "" && !p.RiskTolerance.Valid() {
		return invalid("risk_tolerance", "unknown level %q", p.RiskTolerance)
	}
	if p.LaborAvailability != "" && !p.LaborAvailability.Valid() {
		return invalid("labor_availability", "unknown level %q", p.LaborAvailability)
	}
	for _, pref := range p.MarketPreference {
		if !validMarket(pref) {
			return invalid("market_preference", "unknown market %q", pref)
		}
	}

	return nil
}

// ValidateForEstimate checks the inputs read in prediction mode
func (v *Validator) ValidateForEstimate(p *FarmProfile) error {
	if err := v.validateCommon(p); err != nil {
		return err
	}

	f := p.Field
	if f.SoilPH < 4 || f.SoilPH > 9 {
		return invalid("soil_ph", "must be between 4 and 9")
	}
	if f.Temperature < -10 || f.Temperature > 50 {
		return invalid("temperature", "must be between -10 and 50")
	}
	if f.Humidity < 0 || f.Humidity > 100 {
		return invalid("humidity", "must be between 0 and 100")
	}
	if f.OrganicContent < 0 {
		return invalid("organic_content", "cannot be negative")
	}
	if !validExperience(f.Experience) {
		return invalid("experience_level", "unknown experience level %q", f.Experience)
	}
	if !validWaterQuality(f.WaterQuality) {
		return invalid("water_quality", "unknown water quality %q", f.WaterQuality)
	}
	if p.IrrigationType != "" && !validIrrigation(p.IrrigationType) {
		return invalid("irrigation_type", "unknown irrigation type %q", p.IrrigationType)
	}

	return nil
}

func (v *Validator) validateCommon(p *FarmProfile) error {
	if p.FarmArea <= 0 {
		return invalid("farm_area", "must be greater than 0")
	}
	if !p.SoilType.Valid() {
		return invalid("soil_type", "unknown soil type %q", p.SoilType)
	}

	quantities := []struct {
		field string
		value float64
	}{
		{"fertilizer", p.Fertilizer},
		{"pesticide", p.Pesticide},
		{"water_usage", p.WaterUsage},
		{"labor_cost", p.LaborCost},
		{"equipment_cost", p.EquipmentCost},
	}
	for _, q := range quantities {
		if q.value < 0 {
			return invalid(q.field, "cannot be negative")
		}
	}

	return nil
}

func validIrrigation(t IrrigationType) bool {
	_, ok := irrigationBonus[t]
	return ok
}

func validMarket(m MarketPreference) bool {
	switch m {
	case MarketLocal, MarketExport, MarketGovernment, MarketContract:
		return true
	}
	return false
}

func validExperience(e ExperienceLevel) bool {
	_, ok := experienceEffects[e]
	return ok
}

func validWaterQuality(q WaterQuality) bool {
	switch q {
	case WaterQualityPoor, WaterQualityAverage, WaterQualityGood, WaterQualityExcellent:
		return true
	}
	return false
}
