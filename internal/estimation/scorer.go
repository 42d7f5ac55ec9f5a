package estimation

import (
	"hash/fnv"
	"math"
	"sort"

	"cropwise/estimation-backend/internal/catalog"
)

// Point weights of the suitability score
const (
	waterMatchPoints    = 35
	waterAdjustPoints   = 15
	soilMatchPoints     = 30
	soilFallbackPoints  = 10
	seasonMatchPoints   = 25
	seasonFallbackPoint = 5
	riskAlignmentPoints = 10
	confidenceBonus     = 15

	suitableThreshold = 75
	moderateThreshold = 50
)

const (
	reasonWaterMatch   = "Water availability matches crop needs"
	reasonWaterAdjust  = "Water needs adjustment required"
	reasonSoilOptimal  = "Soil type is optimal"
	reasonSoilAccepted = "Soil type acceptable"
	reasonSeasonMatch  = "Perfect for this season"
	reasonBudgetFits   = "Fits within your budget"
)

// irrigationBonus ranks irrigation methods from most to least efficient
var irrigationBonus = map[IrrigationType]int{
	IrrigationDrip:      10,
	IrrigationSprinkler: 8,
	IrrigationCanal:     7,
	IrrigationTubeWell:  5,
	IrrigationRainFed:   3,
}

var demandTiers = []catalog.Level{catalog.LevelLow, catalog.LevelMedium, catalog.LevelHigh, catalog.LevelVeryHigh}

// Scorer rates every catalog crop against a farm profile
type Scorer struct {
	ref *catalog.Reference
}

// NewScorer creates a scorer over the given reference data
func NewScorer(ref *catalog.Reference) *Scorer {
	return &Scorer{ref: ref}
}

// ScoreAll returns one result per catalog crop, best first.
// Equal scores keep catalog order.
func (s *Scorer) ScoreAll(p *FarmProfile) []RecommendationResult {
	entries := s.ref.Catalog.List()
	results := make([]RecommendationResult, 0, len(entries))
	for _, entry := range entries {
		results = append(results, s.Score(p, entry))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SuitabilityScore > results[j].SuitabilityScore
	})
	return results
}

// Score rates a single crop
func (s *Scorer) Score(p *FarmProfile, crop catalog.Entry) RecommendationResult {
	score := 0
	reasons := []string{}

	waterDiff := absInt(p.WaterAvailability.Rank() - crop.WaterNeed.Rank())
	switch {
	case waterDiff <= 1:
		score += waterMatchPoints
		reasons = append(reasons, reasonWaterMatch)
	case waterDiff == 2:
		score += waterAdjustPoints
		reasons = append(reasons, reasonWaterAdjust)
	}

	if crop.SuitsSoil(p.SoilType) {
		score += soilMatchPoints
		reasons = append(reasons, reasonSoilOptimal)
	} else {
		score += soilFallbackPoints
		reasons = append(reasons, reasonSoilAccepted)
	}

	if crop.SuitsSeason(p.Season) {
		score += seasonMatchPoints
		reasons = append(reasons, reasonSeasonMatch)
	} else {
		score += seasonFallbackPoint
	}

	score += irrigationBonus[p.IrrigationType]

	if riskAligned(p.RiskTolerance, crop.Risk) {
		score += riskAlignmentPoints
	}

	if p.Budget > 0 && p.Fertilizer+p.Pesticide+p.LaborCost+p.EquipmentCost <= p.Budget {
		reasons = append(reasons, reasonBudgetFits)
	}

	// Revenue multiplies by area twice; expectedYield already covers the whole farm.
	yieldAdjustment := float64(100-waterDiff*10) / 100
	expectedYield := round2(crop.BaseYield * p.FarmArea * yieldAdjustment)
	revenue := expectedYield * p.FarmArea * s.ref.Price(crop.Name)
	totalCost := p.Fertilizer + p.Pesticide + p.WaterUsage*s.ref.Rates.PlanningWaterRate + p.LaborCost + p.EquipmentCost
	netProfit := math.Max(0, math.Floor(revenue-totalCost))

	roi := 0
	if totalCost > 0 {
		roi = int(math.Floor(netProfit / totalCost * 100))
	}

	confidence := score + confidenceBonus
	if confidence > 100 {
		confidence = 100
	}

	return RecommendationResult{
		Crop:             crop.Name,
		SuitabilityScore: score,
		Suitability:      Classify(score),
		ExpectedYield:    expectedYield,
		NetProfit:        netProfit,
		ROI:              roi,
		Risk:             crop.Risk,
		WaterNeed:        crop.WaterNeed,
		DurationDays:     crop.DurationDays,
		Profitability:    crop.Profitability,
		MarketDemand:     MarketDemand(crop.Name, p.Season),
		MatchReasons:     reasons,
		Confidence:       confidence,
	}
}

// Classify maps a suitability score onto its class
func Classify(score int) Suitability {
	switch {
	case score >= suitableThreshold:
		return Suitable
	case score >= moderateThreshold:
		return Moderate
	default:
		return NotSuitable
	}
}

// MarketDemand derives a stable demand tier from crop and season
func MarketDemand(crop string, season catalog.Season) catalog.Level {
	h := fnv.New32a()
	h.Write([]byte(crop))
	h.Write([]byte{0})
	h.Write([]byte(season))
	return demandTiers[h.Sum32()%uint32(len(demandTiers))]
}

// riskAligned is true when a cautious farm meets a safe crop or a bold farm
// meets a risky one
func riskAligned(tolerance, risk catalog.Level) bool {
	t, r := tolerance.Rank(), risk.Rank()
	if t == 0 || r == 0 {
		return false
	}
	lowRank, highRank := catalog.LevelLow.Rank(), catalog.LevelHigh.Rank()
	return (t <= lowRank && r <= lowRank) || (t >= highRank && r >= highRank)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
