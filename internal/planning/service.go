package planning

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cropwise/estimation-backend/internal/catalog"
	"cropwise/estimation-backend/internal/estimation"
)

const (
	maxCompareCrops = 10

	recommendationMessage = "Analysis complete"
	predictionMessage     = "Prediction complete"
)

// Estimator is the estimation surface the service depends on
type Estimator interface {
	ScoreCrops(profile estimation.FarmProfile) ([]estimation.RecommendationResult, error)
	EstimateYield(profile estimation.FarmProfile, cropName string) (*estimation.YieldEstimate, error)
	Catalog() *catalog.Catalog
}

// Service provides crop planning operations on top of the estimation engine
type Service struct {
	engine Estimator
	cache  *RecommendationCache
	logger *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewService creates a new planning service. A nil cache disables caching.
func NewService(engine Estimator, cache *RecommendationCache, logger *zap.Logger) *Service {
	return &Service{
		engine: engine,
		cache:  cache,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Recommend ranks every catalog crop for the farm
func (s *Service) Recommend(ctx context.Context, profile estimation.FarmProfile) (*RecommendationResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var key string
	if s.cache != nil {
		key = Fingerprint(profile)
		if results, ok := s.cache.Get(key); ok {
			s.logger.Debug("Recommendation cache hit", zap.String("key", key))
			return s.recommendationResponse(results, true), nil
		}
	}

	results, err := s.engine.ScoreCrops(profile)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(key, results)
	}

	s.logger.Info("Scored crops",
		zap.String("soil_type", string(profile.SoilType)),
		zap.String("season", string(profile.Season)),
		zap.Int("crops", len(results)),
	)

	return s.recommendationResponse(results, false), nil
}

func (s *Service) recommendationResponse(results []estimation.RecommendationResult, cached bool) *RecommendationResponse {
	resp := &RecommendationResponse{
		Recommendations:     results,
		TotalCropsEvaluated: len(results),
		Message:             recommendationMessage,
		AnalysisDate:        s.now().Format("2006-01-02"),
		Cached:              cached,
	}
	if len(results) > 0 {
		resp.TopRecommendation = results[0].Crop
	}
	return resp
}

// Predict estimates yield, economics and advice for one crop
func (s *Service) Predict(ctx context.Context, req PredictionRequest) (*PredictionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	estimate, err := s.engine.EstimateYield(req.FarmProfile, req.CropName)
	if err != nil {
		return nil, err
	}

	resp := &PredictionResponse{
		PredictionID: "PRED_" + s.newID(),
		Crop:         estimate.Crop,
		Estimate:     estimate,
		Message:      predictionMessage,
		Timestamp:    s.now(),
	}

	s.logger.Info("Predicted yield",
		zap.String("prediction_id", resp.PredictionID),
		zap.String("crop", estimate.Crop),
		zap.Float64("predicted_yield", estimate.PredictedYield),
	)

	return resp, nil
}

// Compare estimates several crops concurrently. Predictions keep request order.
func (s *Service) Compare(ctx context.Context, req CompareRequest) (*CompareResponse, error) {
	if len(req.Crops) == 0 {
		return nil, &estimation.ValidationError{Field: "crops", Message: "at least one crop is required"}
	}
	if len(req.Crops) > maxCompareCrops {
		return nil, &estimation.ValidationError{
			Field:   "crops",
			Message: fmt.Sprintf("at most %d crops can be compared", maxCompareCrops),
		}
	}

	predictions := make([]PredictionResponse, len(req.Crops))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range req.Crops {
		g.Go(func() error {
			resp, err := s.Predict(gctx, PredictionRequest{CropName: name, FarmProfile: req.FarmProfile})
			if err != nil {
				return fmt.Errorf("failed to estimate %s: %w", name, err)
			}
			predictions[i] = *resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := 0
	for i := range predictions {
		if predictions[i].Estimate.Economics.Profit > predictions[best].Estimate.Economics.Profit {
			best = i
		}
	}

	return &CompareResponse{
		Predictions:    predictions,
		MostProfitable: predictions[best].Crop,
	}, nil
}

// ListCrops returns the catalog entries matching filter in reference order
func (s *Service) ListCrops(filter catalog.Filter) []catalog.Entry {
	return s.engine.Catalog().Filter(filter)
}

// GetCrop returns one catalog entry, matching case-insensitively
func (s *Service) GetCrop(name string) (catalog.Entry, error) {
	return s.engine.Catalog().Lookup(name)
}
