package planning

import (
	"time"

	"cropwise/estimation-backend/internal/estimation"
)

// PredictionRequest asks for a yield estimate of one crop on one farm
type PredictionRequest struct {
	CropName string `json:"crop_name"`
	estimation.FarmProfile
}

// CompareRequest asks for estimates of several crops on the same farm
type CompareRequest struct {
	Crops []string `json:"crops"`
	estimation.FarmProfile
}

// RecommendationResponse wraps the ranked crop list
type RecommendationResponse struct {
	Recommendations     []estimation.RecommendationResult `json:"recommendations"`
	TotalCropsEvaluated int                               `json:"total_crops_evaluated"`
	TopRecommendation   string                            `json:"top_recommendation,omitempty"`
	Message             string                            `json:"message"`
	AnalysisDate        string                            `json:"analysis_date"`
	Cached              bool                              `json:"cached"`
}

// PredictionResponse wraps one yield estimate
type PredictionResponse struct {
	PredictionID string                    `json:"prediction_id"`
	Crop         string                    `json:"crop"`
	Estimate     *estimation.YieldEstimate `json:"estimate"`
	Message      string                    `json:"message"`
	Timestamp    time.Time                 `json:"timestamp"`
}

// CompareResponse lists predictions in request order
type CompareResponse struct {
	Predictions    []PredictionResponse `json:"predictions"`
	MostProfitable string               `json:"most_profitable"`
}

// NewProfile returns a profile whose field conditions start at the defaults,
// so decoded requests only override what they send.
func NewProfile() estimation.FarmProfile {
	return estimation.FarmProfile{Field: estimation.DefaultFieldConditions()}
}
