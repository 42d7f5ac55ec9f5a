package estimation

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cropwise/estimation-backend/internal/catalog"
)

func testReference(t *testing.T) *catalog.Reference {
	t.Helper()
	ref, err := catalog.Default()
	require.NoError(t, err)
	return ref
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(testReference(t), WithJitter(FixedJitter(1)))
}

// kharifProfile is a loamy, canal-irrigated farm with high water availability
func kharifProfile() FarmProfile {
	return FarmProfile{
		Location:          "Ludhiana",
		SoilType:          catalog.SoilLoamy,
		IrrigationType:    IrrigationCanal,
		WaterAvailability: catalog.LevelHigh,
		Season:            catalog.SeasonKharif,
		Budget:            50000,
		RiskTolerance:     catalog.LevelMedium,
		LaborAvailability: catalog.LevelMedium,
		MarketPreference:  []MarketPreference{MarketLocal},
		FarmArea:          10,
		Fertilizer:        2,
		Pesticide:         10,
		WaterUsage:        5000,
		LaborCost:         100,
		EquipmentCost:     100,
		Field:             DefaultFieldConditions(),
	}
}

// wheatProfile feeds Wheat exactly its optimal fertilizer and water
func wheatProfile() FarmProfile {
	p := kharifProfile()
	p.Fertilizer = 2.0
	p.WaterUsage = 4000
	return p
}

func TestEstimateYieldIsDeterministicWithFixedJitter(t *testing.T) {
	engine := newTestEngine(t)

	first, err := engine.EstimateYield(wheatProfile(), "Wheat")
	require.NoError(t, err)
	second, err := engine.EstimateYield(wheatProfile(), "Wheat")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEstimateYieldUnknownCrop(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.EstimateYield(wheatProfile(), "Quinoa")
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrUnknownCrop))
	assert.True(t, errors.Is(err, catalog.ErrNotFound))

	var unknown *UnknownCropError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Quinoa", unknown.Name)
}

func TestEstimateYieldCropNameIsCaseInsensitive(t *testing.T) {
	engine := newTestEngine(t)

	estimate, err := engine.EstimateYield(wheatProfile(), "wheat")
	require.NoError(t, err)
	assert.Equal(t, "Wheat", estimate.Crop)
}

func TestEstimateYieldFullPipeline(t *testing.T) {
	engine := newTestEngine(t)

	estimate, err := engine.EstimateYield(wheatProfile(), "Wheat")
	require.NoError(t, err)

	assert.InEpsilon(t, 3.5, estimate.PredictedYield, 0.01)
	assert.Equal(t, YieldHighlySuitable, estimate.Suitability)
	assert.Equal(t, 0.95, estimate.Confidence)
	assert.Equal(t, 90, estimate.OptimizationScore)
	assert.InDelta(t, 2.975, estimate.YieldRange.Min, 0.01)
	assert.InDelta(t, 4.025, estimate.YieldRange.Max, 0.01)

	econ := estimate.Economics
	assert.Equal(t, 770.0, econ.Revenue)
	assert.Equal(t, 62400.0, econ.Costs)
	assert.Equal(t, -61630.0, econ.Profit)
	assert.InDelta(t, -98.77, econ.ROI, 0.001)
	require.NotNil(t, econ.BreakEven)
	assert.InDelta(t, 810.39, *econ.BreakEven, 0.001)
	assert.Equal(t, CostBreakdown{
		Fertilizer: 10000,
		Pesticide:  2000,
		Labor:      30000,
		Water:      400,
		Equipment:  20000,
	}, econ.Breakdown)

	assert.Equal(t, EnvironmentalImpact{
		WaterUsage:          4000,
		CarbonFootprint:     175,
		SustainabilityScore: 50,
	}, estimate.EnvironmentalImpact)

	assert.Empty(t, estimate.RiskFactors)
	assert.Equal(t, []string{"Consider organic fertilizers for long-term soil health"}, estimate.Recommendations)
	assert.Equal(t, []string{"Consider organic fertilizers for soil health"}, estimate.QuickTips)
}

func TestEstimateYieldWithSeededJitterReplays(t *testing.T) {
	ref := testReference(t)
	a := NewEngine(ref, WithJitter(NewRandomJitter(42)))
	b := NewEngine(ref, WithJitter(NewRandomJitter(42)))

	for i := 0; i < 5; i++ {
		ea, err := a.EstimateYield(wheatProfile(), "Wheat")
		require.NoError(t, err)
		eb, err := b.EstimateYield(wheatProfile(), "Wheat")
		require.NoError(t, err)

		assert.Equal(t, ea.PredictedYield, eb.PredictedYield)
		assert.GreaterOrEqual(t, ea.Effects.Jitter, 0.9)
		assert.LessOrEqual(t, ea.Effects.Jitter, 1.1)
	}
}

func TestEngineIsSafeForConcurrentUse(t *testing.T) {
	engine := NewEngine(testReference(t), WithJitter(NewRandomJitter(7)))

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 32; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := engine.ScoreCrops(kharifProfile()); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := engine.EstimateYield(wheatProfile(), "Rice"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDefaultEngineUsesRandomJitter(t *testing.T) {
	engine := NewEngine(testReference(t))

	estimate, err := engine.EstimateYield(wheatProfile(), "Wheat")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, estimate.Effects.Jitter, 0.9)
	assert.LessOrEqual(t, estimate.Effects.Jitter, 1.1)
	assert.Equal(t, 5, engine.Catalog().Len())
}
