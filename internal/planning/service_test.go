package planning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cropwise/estimation-backend/internal/catalog"
	"cropwise/estimation-backend/internal/estimation"
)

// MockEstimator is a mock implementation of the Estimator interface
type MockEstimator struct {
	mock.Mock
}

func (m *MockEstimator) ScoreCrops(profile estimation.FarmProfile) ([]estimation.RecommendationResult, error) {
	args := m.Called(profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]estimation.RecommendationResult), args.Error(1)
}

func (m *MockEstimator) EstimateYield(profile estimation.FarmProfile, cropName string) (*estimation.YieldEstimate, error) {
	args := m.Called(profile, cropName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estimation.YieldEstimate), args.Error(1)
}

func (m *MockEstimator) Catalog() *catalog.Catalog {
	args := m.Called()
	return args.Get(0).(*catalog.Catalog)
}

var fixedNow = time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, engine Estimator, cache *RecommendationCache) *Service {
	t.Helper()
	s := NewService(engine, cache, zap.NewNop())
	s.now = func() time.Time { return fixedNow }
	s.newID = func() string { return "0000-test" }
	return s
}

func estimateWithProfit(crop string, profit float64) *estimation.YieldEstimate {
	return &estimation.YieldEstimate{
		Crop:      crop,
		Economics: estimation.EconomicProjection{Profit: profit},
	}
}

func TestRecommendUsesCache(t *testing.T) {
	engine := new(MockEstimator)
	cache := NewRecommendationCache(time.Minute)
	defer cache.Stop()
	service := newTestService(t, engine, cache)

	results := []estimation.RecommendationResult{{Crop: "Rice"}, {Crop: "Wheat"}}
	profile := NewProfile()
	engine.On("ScoreCrops", profile).Return(results, nil).Once()

	first, err := service.Recommend(context.Background(), profile)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, "Rice", first.TopRecommendation)
	assert.Equal(t, 2, first.TotalCropsEvaluated)
	assert.Equal(t, "2026-06-01", first.AnalysisDate)
	assert.Equal(t, recommendationMessage, first.Message)

	second, err := service.Recommend(context.Background(), profile)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Recommendations, second.Recommendations)

	engine.AssertExpectations(t)
	engine.AssertNumberOfCalls(t, "ScoreCrops", 1)
}

func TestRecommendDoesNotCacheErrors(t *testing.T) {
	engine := new(MockEstimator)
	cache := NewRecommendationCache(time.Minute)
	defer cache.Stop()
	service := newTestService(t, engine, cache)

	verr := &estimation.ValidationError{Field: "budget", Message: "must be positive"}
	engine.On("ScoreCrops", mock.Anything).Return(nil, verr)

	for i := 0; i < 2; i++ {
		_, err := service.Recommend(context.Background(), NewProfile())
		assert.ErrorIs(t, err, verr)
	}
	engine.AssertNumberOfCalls(t, "ScoreCrops", 2)
	assert.Equal(t, 0, cache.Size())
}

func TestRecommendWithoutCache(t *testing.T) {
	engine := new(MockEstimator)
	service := newTestService(t, engine, nil)
	engine.On("ScoreCrops", mock.Anything).Return([]estimation.RecommendationResult{}, nil)

	for i := 0; i < 2; i++ {
		resp, err := service.Recommend(context.Background(), NewProfile())
		require.NoError(t, err)
		assert.False(t, resp.Cached)
		assert.Empty(t, resp.TopRecommendation)
	}
	engine.AssertNumberOfCalls(t, "ScoreCrops", 2)
}

func TestRecommendHonorsCanceledContext(t *testing.T) {
	engine := new(MockEstimator)
	service := newTestService(t, engine, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Recommend(ctx, NewProfile())
	assert.ErrorIs(t, err, context.Canceled)
	engine.AssertNotCalled(t, "ScoreCrops", mock.Anything)
}

func TestPredict(t *testing.T) {
	engine := new(MockEstimator)
	service := newTestService(t, engine, nil)

	profile := NewProfile()
	engine.On("EstimateYield", profile, "wheat").Return(estimateWithProfit("Wheat", 100), nil)

	resp, err := service.Predict(context.Background(), PredictionRequest{CropName: "wheat", FarmProfile: profile})
	require.NoError(t, err)

	assert.Equal(t, "PRED_0000-test", resp.PredictionID)
	assert.Equal(t, "Wheat", resp.Crop)
	assert.Equal(t, fixedNow, resp.Timestamp)
	assert.Equal(t, predictionMessage, resp.Message)
	engine.AssertExpectations(t)
}

func TestPredictUsesFreshIDs(t *testing.T) {
	engine := new(MockEstimator)
	service := NewService(engine, nil, zap.NewNop())
	engine.On("EstimateYield", mock.Anything, "Rice").Return(estimateWithProfit("Rice", 0), nil)

	a, err := service.Predict(context.Background(), PredictionRequest{CropName: "Rice"})
	require.NoError(t, err)
	b, err := service.Predict(context.Background(), PredictionRequest{CropName: "Rice"})
	require.NoError(t, err)

	assert.Regexp(t, `^PRED_[0-9a-f-]{36}$`, a.PredictionID)
	assert.NotEqual(t, a.PredictionID, b.PredictionID)
}

func TestComparePreservesRequestOrder(t *testing.T) {
	engine := new(MockEstimator)
	service := newTestService(t, engine, nil)

	engine.On("EstimateYield", mock.Anything, "Wheat").Return(estimateWithProfit("Wheat", -500), nil)
	engine.On("EstimateYield", mock.Anything, "Cotton").Return(estimateWithProfit("Cotton", 1200), nil)
	engine.On("EstimateYield", mock.Anything, "Rice").Return(estimateWithProfit("Rice", 300), nil)

	resp, err := service.Compare(context.Background(), CompareRequest{
		Crops:       []string{"Wheat", "Cotton", "Rice"},
		FarmProfile: NewProfile(),
	})
	require.NoError(t, err)

	require.Len(t, resp.Predictions, 3)
	assert.Equal(t, "Wheat", resp.Predictions[0].Crop)
	assert.Equal(t, "Cotton", resp.Predictions[1].Crop)
	assert.Equal(t, "Rice", resp.Predictions[2].Crop)
	assert.Equal(t, "Cotton", resp.MostProfitable)
	engine.AssertExpectations(t)
}

func TestCompareFailsOnUnknownCrop(t *testing.T) {
	engine := new(MockEstimator)
	service := newTestService(t, engine, nil)

	engine.On("EstimateYield", mock.Anything, "Wheat").Return(estimateWithProfit("Wheat", 0), nil).Maybe()
	engine.On("EstimateYield", mock.Anything, "Quinoa").Return(nil, &estimation.UnknownCropError{Name: "Quinoa"})

	_, err := service.Compare(context.Background(), CompareRequest{Crops: []string{"Wheat", "Quinoa"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, estimation.ErrUnknownCrop))
	assert.Contains(t, err.Error(), "failed to estimate Quinoa")
}

func TestCompareValidatesCropList(t *testing.T) {
	service := newTestService(t, new(MockEstimator), nil)

	_, err := service.Compare(context.Background(), CompareRequest{})
	var verr *estimation.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "crops", verr.Field)

	crops := make([]string, maxCompareCrops+1)
	for i := range crops {
		crops[i] = "Rice"
	}
	_, err = service.Compare(context.Background(), CompareRequest{Crops: crops})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "crops", verr.Field)
}

func TestListAndGetCrops(t *testing.T) {
	ref, err := catalog.Default()
	require.NoError(t, err)

	engine := new(MockEstimator)
	engine.On("Catalog").Return(ref.Catalog)
	service := newTestService(t, engine, nil)

	crops := service.ListCrops(catalog.Filter{})
	assert.Len(t, crops, 5)
	assert.Equal(t, "Rice", crops[0].Name)

	rabi := service.ListCrops(catalog.Filter{Season: catalog.SeasonRabi})
	require.Len(t, rabi, 2)
	assert.Equal(t, "Wheat", rabi[0].Name)
	assert.Equal(t, "Sugarcane", rabi[1].Name)

	cotton, err := service.GetCrop("COTTON")
	require.NoError(t, err)
	assert.Equal(t, "Cotton", cotton.Name)

	_, err = service.GetCrop("Quinoa")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}
