package estimation

import (
	"fmt"
	"strconv"

	"cropwise/estimation-backend/internal/catalog"
)

const maxQuickTips = 3

// Advice holds the text generated for one estimate
type Advice struct {
	RiskFactors     []string
	Recommendations []string
	QuickTips       []string
}

// Advise derives risk factors, recommendations and quick tips from the gap
// between actual and optimal inputs. It never changes numeric results.
func Advise(p *FarmProfile, crop catalog.Entry, predicted float64) Advice {
	return Advice{
		RiskFactors:     riskFactors(p, crop, predicted),
		Recommendations: recommendations(p, crop),
		QuickTips:       quickTips(p, crop),
	}
}

func riskFactors(p *FarmProfile, crop catalog.Entry, predicted float64) []string {
	factors := []string{}
	if predicted/crop.BaseYield*100 < 70 {
		factors = append(factors, "Yield significantly below optimal potential")
	}
	if p.Field.WaterQuality == WaterQualityPoor {
		factors = append(factors, "Poor water quality may affect crop health")
	}
	if p.Fertilizer < crop.OptimalFertilizer*0.7 {
		factors = append(factors, "Insufficient fertilizer for optimal growth")
	}
	return factors
}

func recommendations(p *FarmProfile, crop catalog.Entry) []string {
	recs := []string{}
	if p.Fertilizer < crop.OptimalFertilizer*0.8 {
		recs = append(recs, fmt.Sprintf("Increase fertilizer to %s tons for better yield", formatAmount(crop.OptimalFertilizer)))
	}
	if p.WaterUsage < crop.OptimalWater*0.8 {
		recs = append(recs, fmt.Sprintf("Increase water supply to %sm³ for optimal growth", formatAmount(crop.OptimalWater)))
	}
	if !p.usesOrganicFertilizer() {
		recs = append(recs, "Consider organic fertilizers for long-term soil health")
	}
	return recs
}

func quickTips(p *FarmProfile, crop catalog.Entry) []string {
	tips := []string{}
	if p.Fertilizer < crop.OptimalFertilizer*0.9 {
		tips = append(tips, fmt.Sprintf("Increase fertilizer to %s tons for optimal growth", formatAmount(crop.OptimalFertilizer)))
	}
	if p.WaterUsage < crop.OptimalWater*0.9 {
		tips = append(tips, fmt.Sprintf("Optimize water usage to %sm³ for better yield", formatAmount(crop.OptimalWater)))
	}
	if !p.usesOrganicFertilizer() {
		tips = append(tips, "Consider organic fertilizers for soil health")
	}
	if len(tips) > maxQuickTips {
		tips = tips[:maxQuickTips]
	}
	return tips
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
