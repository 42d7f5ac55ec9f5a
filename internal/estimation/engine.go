package estimation

import (
	"cropwise/estimation-backend/internal/catalog"
)

// Engine runs crop recommendations and yield predictions over fixed
// reference data. All methods are safe for concurrent use.
type Engine struct {
	ref       *catalog.Reference
	validator *Validator
	scorer    *Scorer
	estimator *Estimator
	projector *Projector
}

// Option configures an Engine
type Option func(*engineOptions)

type engineOptions struct {
	jitter Jitter
}

// WithJitter replaces the clock-seeded jitter source
func WithJitter(j Jitter) Option {
	return func(o *engineOptions) {
		o.jitter = j
	}
}

// NewEngine creates a new estimation engine
func NewEngine(ref *catalog.Reference, opts ...Option) *Engine {
	options := engineOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.jitter == nil {
		options.jitter = NewTimeSeededJitter()
	}

	return &Engine{
		ref:       ref,
		validator: NewValidator(),
		scorer:    NewScorer(ref),
		estimator: NewEstimator(options.jitter),
		projector: NewProjector(ref),
	}
}

// Catalog returns the crops the engine knows about
func (e *Engine) Catalog() *catalog.Catalog {
	return e.ref.Catalog
}

// ScoreCrops rates every catalog crop for the farm, best first
func (e *Engine) ScoreCrops(profile FarmProfile) ([]RecommendationResult, error) {
	if err := e.validator.ValidateForScoring(&profile); err != nil {
		return nil, err
	}
	return e.scorer.ScoreAll(&profile), nil
}

// EstimateYield predicts yield, economics and advice for one crop
func (e *Engine) EstimateYield(profile FarmProfile, cropName string) (*YieldEstimate, error) {
	if err := e.validator.ValidateForEstimate(&profile); err != nil {
		return nil, err
	}

	crop, ok := e.ref.Catalog.Get(cropName)
	if !ok {
		return nil, &UnknownCropError{Name: cropName}
	}

	estimate, predicted := e.estimator.Estimate(&profile, crop)
	estimate.Economics = e.projector.Project(&profile, crop.Name, predicted)
	estimate.EnvironmentalImpact = e.projector.Environmental(&profile, predicted)

	advice := Advise(&profile, crop, predicted)
	estimate.RiskFactors = advice.RiskFactors
	estimate.Recommendations = advice.Recommendations
	estimate.QuickTips = advice.QuickTips

	return estimate, nil
}
