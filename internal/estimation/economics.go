package estimation

import (
	"math"

	"cropwise/estimation-backend/internal/catalog"
)

const carbonPerYieldUnit = 50

// Projector turns a predicted yield into economic and environmental figures
type Projector struct {
	ref *catalog.Reference
}

// NewProjector creates a projector over the given price table and cost rates
func NewProjector(ref *catalog.Reference) *Projector {
	return &Projector{ref: ref}
}

// Project computes revenue, costs and returns for a season
func (pr *Projector) Project(p *FarmProfile, crop string, predicted float64) EconomicProjection {
	price := pr.ref.Price(crop)
	rates := pr.ref.Rates

	breakdown := CostBreakdown{
		Fertilizer: p.Fertilizer * rates.FertilizerPerTon,
		Pesticide:  p.Pesticide * rates.PesticidePerUnit,
		Labor:      p.FarmArea * rates.LaborPerAcre,
		Water:      p.WaterUsage * rates.WaterPerCubicM,
		Equipment:  p.FarmArea * rates.EquipmentPerAcre,
	}
	totalCost := breakdown.Total()
	revenue := predicted * p.FarmArea * price
	profit := revenue - totalCost

	return EconomicProjection{
		Revenue:   math.Round(revenue),
		Costs:     math.Round(totalCost),
		Breakdown: breakdown,
		Profit:    math.Round(profit),
		ROI:       round2(ROI(profit, totalCost)),
		BreakEven: BreakEven(totalCost, price, predicted),
	}
}

// ROI returns profit as a percentage of cost, 0 when cost is 0
func ROI(profit, cost float64) float64 {
	if cost == 0 {
		return 0
	}
	return profit / cost * 100
}

// BreakEven returns cost / (price × yield), nil when the divisor is 0
func BreakEven(cost, price, predicted float64) *float64 {
	divisor := price * predicted
	if divisor == 0 {
		return nil
	}
	v := round2(cost / divisor)
	return &v
}

// Environmental scores the footprint and sustainability of the inputs
func (pr *Projector) Environmental(p *FarmProfile, predicted float64) EnvironmentalImpact {
	return EnvironmentalImpact{
		WaterUsage:          p.WaterUsage,
		CarbonFootprint:     math.Round(predicted * carbonPerYieldUnit),
		SustainabilityScore: SustainabilityScore(p),
	}
}

// SustainabilityScore rewards organic, IPM, clean water and drip irrigation
func SustainabilityScore(p *FarmProfile) int {
	score := 50
	if p.usesOrganicFertilizer() {
		score += 20
	}
	if p.Field.IPMApproach {
		score += 15
	}
	if p.Field.WaterQuality == WaterQualityExcellent {
		score += 10
	}
	if p.IrrigationType == IrrigationDrip {
		score += 5
	}
	if score > 100 {
		score = 100
	}
	return score
}
