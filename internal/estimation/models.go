package estimation

import "cropwise/estimation-backend/internal/catalog"

// IrrigationType identifies how a field is watered
type IrrigationType string

const (
	IrrigationCanal     IrrigationType = "Canal"
	IrrigationTubeWell  IrrigationType = "Tube-well"
	IrrigationRainFed   IrrigationType = "Rain-fed"
	IrrigationDrip      IrrigationType = "Drip"
	IrrigationSprinkler IrrigationType = "Sprinkler"
)

// MarketPreference identifies a sales channel the farmer is open to
type MarketPreference string

const (
	MarketLocal      MarketPreference = "Local Market"
	MarketExport     MarketPreference = "Export"
	MarketGovernment MarketPreference = "Government"
	MarketContract   MarketPreference = "Contract Farming"
)

// WaterQuality grades irrigation water
type WaterQuality string

const (
	WaterQualityPoor      WaterQuality = "Poor"
	WaterQualityAverage   WaterQuality = "Average"
	WaterQualityGood      WaterQuality = "Good"
	WaterQualityExcellent WaterQuality = "Excellent"
)

// ExperienceLevel grades the farm manager
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "Beginner"
	ExperienceIntermediate ExperienceLevel = "Intermediate"
	ExperienceExpert       ExperienceLevel = "Expert"
)

// Suitability classifies a recommendation by its point score
type Suitability string

const (
	Suitable    Suitability = "Suitable"
	Moderate    Suitability = "Moderate"
	NotSuitable Suitability = "Not Suitable"
)

// YieldSuitability classifies a yield estimate by its share of base yield
type YieldSuitability string

const (
	YieldHighlySuitable     YieldSuitability = "Highly Suitable"
	YieldSuitable           YieldSuitability = "Suitable"
	YieldModeratelySuitable YieldSuitability = "Moderately Suitable"
	YieldNotSuitable        YieldSuitability = "Not Suitable"
)

// FarmProfile describes one farm for a single scoring or estimation pass
type FarmProfile struct {
	Location          string             `json:"location"`
	SoilType          catalog.SoilType   `json:"soil_type"`
	IrrigationType    IrrigationType     `json:"irrigation_type"`
	WaterAvailability catalog.Level      `json:"water_availability"`
	Season            catalog.Season     `json:"season"`
	Budget            float64            `json:"budget"`
	RiskTolerance     catalog.Level      `json:"risk_tolerance"`
	LaborAvailability catalog.Level      `json:"labor_availability"`
	MarketPreference  []MarketPreference `json:"market_preference"`
	OrganicFarming    bool               `json:"organic_farming"`
	FarmArea          float64            `json:"farm_area"`

	// Fertilizer and Pesticide are masses in prediction mode and are summed
	// as currency in recommendation mode.
	Fertilizer    float64 `json:"fertilizer"`
	Pesticide     float64 `json:"pesticide"`
	WaterUsage    float64 `json:"water_usage"`
	LaborCost     float64 `json:"labor_cost"`
	EquipmentCost float64 `json:"equipment_cost"`

	Field FieldConditions `json:"field"`
}

// FieldConditions carries the measurements only the yield model reads
type FieldConditions struct {
	SoilPH            float64         `json:"soil_ph"`
	OrganicContent    float64         `json:"organic_content"`
	SoilMoisture      float64         `json:"soil_moisture"`
	WaterQuality      WaterQuality    `json:"water_quality"`
	RainfallExpected  float64         `json:"rainfall_expected"`
	Temperature       float64         `json:"temperature"`
	Humidity          float64         `json:"humidity"`
	SunlightHours     float64         `json:"sunlight_hours"`
	Experience        ExperienceLevel `json:"experience_level"`
	OrganicFertilizer bool            `json:"organic_fertilizer"`
	IPMApproach       bool            `json:"ipm_approach"`
}

// DefaultFieldConditions returns typical mid-season readings
func DefaultFieldConditions() FieldConditions {
	return FieldConditions{
		SoilPH:           6.5,
		OrganicContent:   2.5,
		SoilMoisture:     65,
		WaterQuality:     WaterQualityGood,
		RainfallExpected: 750,
		Temperature:      25,
		Humidity:         65,
		SunlightHours:    8,
		Experience:       ExperienceIntermediate,
	}
}

func (p FarmProfile) usesOrganicFertilizer() bool {
	return p.OrganicFarming || p.Field.OrganicFertilizer
}

// RecommendationResult is the score of one crop against one farm
type RecommendationResult struct {
	Crop             string            `json:"crop"`
	SuitabilityScore int               `json:"suitability_score"`
	Suitability      Suitability       `json:"suitability"`
	ExpectedYield    float64           `json:"expected_yield"`
	NetProfit        float64           `json:"net_profit"`
	ROI              int               `json:"roi"`
	Risk             catalog.Level     `json:"risk"`
	WaterNeed        catalog.WaterNeed `json:"water_need"`
	DurationDays     int               `json:"duration_days"`
	Profitability    catalog.Level     `json:"profitability"`
	MarketDemand     catalog.Level     `json:"market_demand"`
	MatchReasons     []string          `json:"match_reasons"`
	Confidence       int               `json:"confidence"`
}

// YieldRange brackets a predicted yield
type YieldRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// YieldEstimate is the full prediction for one crop on one farm
type YieldEstimate struct {
	Crop                string              `json:"crop"`
	PredictedYield      float64             `json:"predicted_yield"`
	Confidence          float64             `json:"confidence"`
	Suitability         YieldSuitability    `json:"suitability"`
	YieldRange          YieldRange          `json:"yield_range"`
	OptimizationScore   int                 `json:"optimization_score"`
	Effects             Effects             `json:"effects"`
	RiskFactors         []string            `json:"risk_factors"`
	Recommendations     []string            `json:"recommendations"`
	QuickTips           []string            `json:"quick_tips"`
	Economics           EconomicProjection  `json:"profitability"`
	EnvironmentalImpact EnvironmentalImpact `json:"environmental_impact"`
}

// Effects records every multiplier applied to base yield
type Effects struct {
	Soil       float64 `json:"soil"`
	Water      float64 `json:"water"`
	Fertilizer float64 `json:"fertilizer"`
	Management float64 `json:"management"`
	Climate    float64 `json:"climate"`
	Jitter     float64 `json:"jitter"`
}

// CostBreakdown itemizes the cost of a season
type CostBreakdown struct {
	Fertilizer float64 `json:"fertilizer"`
	Pesticide  float64 `json:"pesticide"`
	Labor      float64 `json:"labor"`
	Water      float64 `json:"water"`
	Equipment  float64 `json:"equipment"`
}

// Total sums all cost components
func (c CostBreakdown) Total() float64 {
	return c.Fertilizer + c.Pesticide + c.Labor + c.Water + c.Equipment
}

// EconomicProjection holds revenue, cost and return figures.
// BreakEven is nil when it cannot be computed.
type EconomicProjection struct {
	Revenue   float64       `json:"revenue"`
	Costs     float64       `json:"costs"`
	Breakdown CostBreakdown `json:"cost_breakdown"`
	Profit    float64       `json:"profit"`
	ROI       float64       `json:"roi"`
	BreakEven *float64      `json:"break_even"`
}

// EnvironmentalImpact summarizes resource use and sustainability
type EnvironmentalImpact struct {
	WaterUsage          float64 `json:"water_usage"`
	CarbonFootprint     float64 `json:"carbon_footprint"`
	SustainabilityScore int     `json:"sustainability_score"`
}
