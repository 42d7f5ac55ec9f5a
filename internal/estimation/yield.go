package estimation

import (
	"math"

	"cropwise/estimation-backend/internal/catalog"
)

const (
	optimalPH          = 6.5
	optimalTemperature = 27.0
	maxConfidence      = 0.95
	rangeSpread        = 0.15
)

var soilEffects = map[catalog.SoilType]float64{
	catalog.SoilLoamy:    1.0,
	catalog.SoilSandy:    0.8,
	catalog.SoilClay:     0.9,
	catalog.SoilAlluvial: 1.1,
	catalog.SoilBlack:    1.05,
	catalog.SoilRed:      0.75,
}

var experienceEffects = map[ExperienceLevel]float64{
	ExperienceBeginner:     0.9,
	ExperienceIntermediate: 1.0,
	ExperienceExpert:       1.1,
}

// RatioPolicy maps actual/optimal input ratios onto a yield multiplier.
// Inside [0.9, 1.1] the multiplier is always 1.
type RatioPolicy struct {
	Name         string
	ModerateLow  float64 // ratio in [0.7, 0.9)
	ModerateHigh float64 // ratio in (1.1, 1.3]
	SevereLow    float64 // ratio below 0.7
	SevereHigh   float64 // ratio above 1.3
}

// Effect returns the multiplier for ratio
func (p RatioPolicy) Effect(ratio float64) float64 {
	switch {
	case ratio >= 0.9 && ratio <= 1.1:
		return 1.0
	case ratio >= 0.7 && ratio < 0.9:
		return p.ModerateLow
	case ratio > 1.1 && ratio <= 1.3:
		return p.ModerateHigh
	case ratio < 0.7:
		return p.SevereLow
	default:
		return p.SevereHigh
	}
}

// WaterEffectPolicy and FertilizerEffectPolicy are intentionally asymmetric.
var (
	WaterEffectPolicy = RatioPolicy{
		Name:         "water",
		ModerateLow:  0.85,
		ModerateHigh: 0.9,
		SevereLow:    0.7,
		SevereHigh:   0.8,
	}
	FertilizerEffectPolicy = RatioPolicy{
		Name:         "fertilizer",
		ModerateLow:  0.9,
		ModerateHigh: 0.95,
		SevereLow:    0.8,
		SevereHigh:   0.85,
	}
)

// Estimator runs the multiplicative yield model for one crop
type Estimator struct {
	jitter Jitter
}

// NewEstimator creates an estimator drawing noise from jitter
func NewEstimator(jitter Jitter) *Estimator {
	return &Estimator{jitter: jitter}
}

// Estimate fills the yield fields of a YieldEstimate.
// The returned raw prediction is unrounded and feeds economics and advisories.
func (e *Estimator) Estimate(p *FarmProfile, crop catalog.Entry) (*YieldEstimate, float64) {
	waterRatio := p.WaterUsage / crop.OptimalWater
	fertilizerRatio := p.Fertilizer / crop.OptimalFertilizer

	effects := Effects{
		Soil:       SoilEffect(p.SoilType, p.Field.SoilPH, p.Field.OrganicContent),
		Water:      WaterEffectPolicy.Effect(waterRatio),
		Fertilizer: FertilizerEffectPolicy.Effect(fertilizerRatio),
		Management: ManagementEffect(p.Field.Experience, p.usesOrganicFertilizer(), p.Field.IPMApproach),
		Climate:    ClimateEffect(p.Field.Temperature, p.Field.Humidity),
		Jitter:     e.jitter.Factor(),
	}

	predicted := crop.BaseYield *
		effects.Soil *
		effects.Water *
		effects.Fertilizer *
		effects.Management *
		effects.Climate *
		effects.Jitter

	estimate := &YieldEstimate{
		Crop:           crop.Name,
		PredictedYield: round2(predicted),
		Confidence:     round2(Confidence(p, crop)),
		Suitability:    ClassifyYield(predicted, crop.BaseYield),
		YieldRange: YieldRange{
			Min: round2(predicted * (1 - rangeSpread)),
			Max: round2(predicted * (1 + rangeSpread)),
		},
		OptimizationScore: OptimizationScore(p, crop),
		Effects:           effects,
	}
	return estimate, predicted
}

// SoilEffect combines soil type, pH distance from 6.5 and organic matter
func SoilEffect(soil catalog.SoilType, ph, organicContent float64) float64 {
	effect, ok := soilEffects[soil]
	if !ok {
		effect = 1.0
	}

	phDiff := math.Abs(ph - optimalPH)
	switch {
	case phDiff <= 0.5:
	case phDiff <= 1.0:
		effect *= 0.95
	case phDiff <= 1.5:
		effect *= 0.85
	default:
		effect *= 0.7
	}

	return effect * (0.9 + organicContent*0.04)
}

// ManagementEffect rewards experience, organic fertilizer and IPM
func ManagementEffect(experience ExperienceLevel, organicFertilizer, ipm bool) float64 {
	effect, ok := experienceEffects[experience]
	if !ok {
		effect = 1.0
	}
	if organicFertilizer {
		effect *= 1.05
	}
	if ipm {
		effect *= 1.03
	}
	return effect
}

// ClimateEffect penalizes distance from 27°C and humidity outside 60-80%
func ClimateEffect(temperature, humidity float64) float64 {
	effect := 1.0

	tempDiff := math.Abs(temperature - optimalTemperature)
	switch {
	case tempDiff <= 3:
	case tempDiff <= 6:
		effect *= 0.95
	case tempDiff <= 9:
		effect *= 0.85
	default:
		effect *= 0.7
	}

	switch {
	case humidity >= 60 && humidity <= 80:
	case humidity >= 50 && humidity < 60:
		effect *= 0.95
	case humidity > 80 && humidity <= 90:
		effect *= 0.9
	default:
		effect *= 0.8
	}

	return effect
}

// Confidence scores how close the inputs sit to the crop's known optimum
func Confidence(p *FarmProfile, crop catalog.Entry) float64 {
	confidence := 0.7
	if within(p.Fertilizer, crop.OptimalFertilizer, 0.8, 1.2) {
		confidence += 0.1
	}
	if within(p.WaterUsage, crop.OptimalWater, 0.8, 1.2) {
		confidence += 0.1
	}
	if p.Field.SoilPH >= 5.5 && p.Field.SoilPH <= 7.5 {
		confidence += 0.05
	}
	if p.Field.Experience == ExperienceExpert {
		confidence += 0.05
	}
	return math.Min(confidence, maxConfidence)
}

// ClassifyYield grades a prediction by its share of base yield.
// The share is rounded to 1e-9 so that effect chains landing exactly on a
// tier boundary are not pushed below it by floating-point drift.
func ClassifyYield(predicted, baseYield float64) YieldSuitability {
	percentage := math.Round(predicted/baseYield*100*1e9) / 1e9
	switch {
	case percentage >= 90:
		return YieldHighlySuitable
	case percentage >= 75:
		return YieldSuitable
	case percentage >= 60:
		return YieldModeratelySuitable
	default:
		return YieldNotSuitable
	}
}

// OptimizationScore rates input management on a 0-100 scale
func OptimizationScore(p *FarmProfile, crop catalog.Entry) int {
	score := 50
	if within(p.Fertilizer, crop.OptimalFertilizer, 0.9, 1.1) {
		score += 20
	}
	if within(p.WaterUsage, crop.OptimalWater, 0.9, 1.1) {
		score += 20
	}
	if p.usesOrganicFertilizer() {
		score += 10
	}
	if p.Field.IPMApproach {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	return score
}

func within(actual, optimal, low, high float64) bool {
	return actual >= optimal*low && actual <= optimal*high
}
