package planning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cropwise/estimation-backend/internal/catalog"
	"cropwise/estimation-backend/internal/estimation"
)

const (
	maxBatchRecords     = 100
	batchConcurrency    = 8
	batchRecordIDFormat = "farm-%d"
)

// BatchProcessType selects what a batch run computes per farm
type BatchProcessType string

const (
	BatchSuitability BatchProcessType = "suitability"
	BatchYield       BatchProcessType = "yield"
)

// BatchRecord is one farm in a batch. CropName is required for yield runs.
type BatchRecord struct {
	ID       string `json:"id,omitempty"`
	CropName string `json:"crop_name,omitempty"`
	estimation.FarmProfile
}

// UnmarshalJSON starts each record from the default field conditions
func (r *BatchRecord) UnmarshalJSON(data []byte) error {
	type plain BatchRecord
	rec := plain{FarmProfile: NewProfile()}
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*r = BatchRecord(rec)
	return nil
}

// BatchRequest runs one process type over many farms
type BatchRequest struct {
	ProcessType BatchProcessType `json:"process_type"`
	Farms       []BatchRecord    `json:"farms"`
}

// BatchResult holds the outcome for one record. Exactly one of
// Recommendation, Prediction or Error is set.
type BatchResult struct {
	ID             string                  `json:"id"`
	Recommendation *RecommendationResponse `json:"recommendation,omitempty"`
	Prediction     *PredictionResponse     `json:"prediction,omitempty"`
	Error          string                  `json:"error,omitempty"`
}

// BatchSummary aggregates successful records
type BatchSummary struct {
	TotalRecords int `json:"total_records"`
	Succeeded    int `json:"succeeded"`
	Failed       int `json:"failed"`

	// suitability runs: farms whose top crop is Suitable, mean top score
	Suitable     int     `json:"suitable,omitempty"`
	AverageScore float64 `json:"average_score,omitempty"`

	// yield runs: Highly Suitable predictions, mean confidence in percent
	HighlySuitable    int     `json:"highly_suitable,omitempty"`
	AverageConfidence float64 `json:"average_confidence,omitempty"`
}

// BatchResponse lists results in request order
type BatchResponse struct {
	ProcessType BatchProcessType `json:"process_type"`
	Results     []BatchResult    `json:"results"`
	Summary     BatchSummary     `json:"summary"`
}

// Batch scores or estimates every farm in the request. Invalid farms and
// unknown crops are reported per record; any other failure aborts the batch.
func (s *Service) Batch(ctx context.Context, req BatchRequest) (*BatchResponse, error) {
	if req.ProcessType != BatchSuitability && req.ProcessType != BatchYield {
		return nil, &estimation.ValidationError{
			Field:   "process_type",
			Message: fmt.Sprintf("unknown process type %q", req.ProcessType),
		}
	}
	if len(req.Farms) == 0 {
		return nil, &estimation.ValidationError{Field: "farms", Message: "at least one farm is required"}
	}
	if len(req.Farms) > maxBatchRecords {
		return nil, &estimation.ValidationError{
			Field:   "farms",
			Message: fmt.Sprintf("at most %d farms can be processed per batch", maxBatchRecords),
		}
	}

	results := make([]BatchResult, len(req.Farms))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, record := range req.Farms {
		g.Go(func() error {
			result, err := s.processRecord(gctx, req.ProcessType, record)
			if err != nil {
				return err
			}
			if result.ID == "" {
				result.ID = fmt.Sprintf(batchRecordIDFormat, i+1)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &BatchResponse{
		ProcessType: req.ProcessType,
		Results:     results,
		Summary:     summarize(req.ProcessType, results),
	}

	s.logger.Info("Processed batch",
		zap.String("process_type", string(req.ProcessType)),
		zap.Int("records", resp.Summary.TotalRecords),
		zap.Int("failed", resp.Summary.Failed),
	)

	return resp, nil
}

func (s *Service) processRecord(ctx context.Context, processType BatchProcessType, record BatchRecord) (BatchResult, error) {
	result := BatchResult{ID: record.ID}

	var err error
	switch processType {
	case BatchSuitability:
		result.Recommendation, err = s.Recommend(ctx, record.FarmProfile)
	case BatchYield:
		if record.CropName == "" {
			result.Error = "crop_name is required"
			return result, nil
		}
		result.Prediction, err = s.Predict(ctx, PredictionRequest{CropName: record.CropName, FarmProfile: record.FarmProfile})
	}
	if err == nil {
		return result, nil
	}

	var verr *estimation.ValidationError
	if errors.As(err, &verr) || errors.Is(err, catalog.ErrNotFound) {
		result.Error = err.Error()
		return result, nil
	}
	return BatchResult{}, fmt.Errorf("failed to process farm %q: %w", record.ID, err)
}

func summarize(processType BatchProcessType, results []BatchResult) BatchSummary {
	summary := BatchSummary{TotalRecords: len(results)}

	var total float64
	for _, r := range results {
		if r.Error != "" {
			summary.Failed++
			continue
		}
		summary.Succeeded++

		switch processType {
		case BatchSuitability:
			if len(r.Recommendation.Recommendations) == 0 {
				continue
			}
			top := r.Recommendation.Recommendations[0]
			if top.Suitability == estimation.Suitable {
				summary.Suitable++
			}
			total += float64(top.SuitabilityScore)
		case BatchYield:
			if r.Prediction.Estimate.Suitability == estimation.YieldHighlySuitable {
				summary.HighlySuitable++
			}
			total += r.Prediction.Estimate.Confidence * 100
		}
	}

	if summary.Succeeded > 0 {
		avg := math.Round(total/float64(summary.Succeeded)*10) / 10
		if processType == BatchSuitability {
			summary.AverageScore = avg
		} else {
			summary.AverageConfidence = avg
		}
	}
	return summary
}
