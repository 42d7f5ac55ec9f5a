package estimation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cropwise/estimation-backend/internal/catalog"
)

func TestROIGuardsZeroCost(t *testing.T) {
	assert.Equal(t, 0.0, ROI(500, 0))
	assert.Equal(t, 50.0, ROI(50, 100))
	assert.Equal(t, -25.0, ROI(-25, 100))
}

func TestBreakEvenGuardsZeroDivisor(t *testing.T) {
	assert.Nil(t, BreakEven(1000, 25, 0))
	assert.Nil(t, BreakEven(1000, 0, 3))

	v := BreakEven(1000, 25, 4)
	require.NotNil(t, v)
	assert.Equal(t, 10.0, *v)
}

func TestProjectWithZeroCostRates(t *testing.T) {
	ref := testReference(t)
	free := *ref
	free.Rates = catalog.CostRates{}

	p := wheatProfile()
	projection := NewProjector(&free).Project(&p, "Wheat", 3.5)

	assert.Equal(t, 0.0, projection.Costs)
	assert.Equal(t, 0.0, projection.ROI)
	assert.Equal(t, 770.0, projection.Revenue)
	assert.Equal(t, 770.0, projection.Profit)
	require.NotNil(t, projection.BreakEven)
	assert.Equal(t, 0.0, *projection.BreakEven)
}

func TestProjectWithZeroYield(t *testing.T) {
	p := wheatProfile()
	projection := NewProjector(testReference(t)).Project(&p, "Wheat", 0)

	assert.Equal(t, 0.0, projection.Revenue)
	assert.Nil(t, projection.BreakEven)
	assert.InDelta(t, -100.0, projection.ROI, 1e-9)
}

func TestProjectUsesDefaultPriceForUnlistedCrop(t *testing.T) {
	p := wheatProfile()
	p.Fertilizer = 0
	p.Pesticide = 0
	p.WaterUsage = 0
	projection := NewProjector(testReference(t)).Project(&p, "Millet", 2)

	// 2 t/acre × 10 acres × default price 20
	assert.Equal(t, 400.0, projection.Revenue)
	assert.Equal(t, 50000.0, projection.Costs)
}

func TestSustainabilityScore(t *testing.T) {
	p := wheatProfile()
	assert.Equal(t, 50, SustainabilityScore(&p))

	p.Field.OrganicFertilizer = true
	p.Field.IPMApproach = true
	p.Field.WaterQuality = WaterQualityExcellent
	p.IrrigationType = IrrigationDrip
	assert.Equal(t, 100, SustainabilityScore(&p))

	p.Field.IPMApproach = false
	assert.Equal(t, 85, SustainabilityScore(&p))
}

func TestEnvironmentalImpact(t *testing.T) {
	p := wheatProfile()
	impact := NewProjector(testReference(t)).Environmental(&p, 3.456)

	assert.Equal(t, 4000.0, impact.WaterUsage)
	assert.Equal(t, 173.0, impact.CarbonFootprint)
	assert.Equal(t, 50, impact.SustainabilityScore)
}
