package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPrice is charged per yield unit for crops missing from the price table
const DefaultPrice = 20.0

//go:embed crops.yaml
var defaultDocument []byte

// CostRates converts input quantities into currency
type CostRates struct {
	FertilizerPerTon  float64 `json:"fertilizer_per_ton" yaml:"fertilizer_per_ton"`
	PesticidePerUnit  float64 `json:"pesticide_per_unit" yaml:"pesticide_per_unit"`
	LaborPerAcre      float64 `json:"labor_per_acre" yaml:"labor_per_acre"`
	WaterPerCubicM    float64 `json:"water_per_cubic_m" yaml:"water_per_cubic_m"`
	EquipmentPerAcre  float64 `json:"equipment_per_acre" yaml:"equipment_per_acre"`
	PlanningWaterRate float64 `json:"planning_water_rate" yaml:"planning_water_rate"`
}

// DefaultCostRates returns the stock per-unit rates
func DefaultCostRates() CostRates {
	return CostRates{
		FertilizerPerTon:  5000,
		PesticidePerUnit:  200,
		LaborPerAcre:      3000,
		WaterPerCubicM:    0.1,
		EquipmentPerAcre:  2000,
		PlanningWaterRate: 0.5,
	}
}

// Reference bundles the static tables the estimation engine reads
type Reference struct {
	Catalog      *Catalog
	Prices       map[string]float64
	DefaultPrice float64
	Rates        CostRates
}

// Price returns the market price per yield unit for a crop
func (r *Reference) Price(crop string) float64 {
	if price, ok := r.Prices[normalize(crop)]; ok {
		return price
	}
	return r.DefaultPrice
}

// document is the on-disk YAML shape of reference data
type document struct {
	Crops        []Entry            `yaml:"crops"`
	Prices       map[string]float64 `yaml:"prices"`
	DefaultPrice *float64           `yaml:"default_price"`
	CostRates    CostRates          `yaml:"cost_rates"`
}

// Load parses a YAML reference document.
// Prices default to each crop's market_price unless the document overrides them.
func Load(r io.Reader) (*Reference, error) {
	// cost_rates keys left out of the document keep their default values
	doc := document{CostRates: DefaultCostRates()}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse reference data: %w", err)
	}

	cat, err := New(doc.Crops)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	ref := &Reference{
		Catalog:      cat,
		Prices:       make(map[string]float64, cat.Len()),
		DefaultPrice: DefaultPrice,
		Rates:        doc.CostRates,
	}
	for _, entry := range cat.List() {
		ref.Prices[normalize(entry.Name)] = entry.MarketPrice
	}
	for crop, price := range doc.Prices {
		if price <= 0 {
			return nil, fmt.Errorf("price for %s must be positive", crop)
		}
		ref.Prices[normalize(crop)] = price
	}
	if doc.DefaultPrice != nil {
		if *doc.DefaultPrice <= 0 {
			return nil, fmt.Errorf("default_price must be positive")
		}
		ref.DefaultPrice = *doc.DefaultPrice
	}
	if err := ref.Rates.validate(); err != nil {
		return nil, err
	}

	return ref, nil
}

// LoadFile reads reference data from a YAML file
func LoadFile(path string) (*Reference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference data: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Default returns the built-in reference data
func Default() (*Reference, error) {
	return Load(bytes.NewReader(defaultDocument))
}

func (r CostRates) validate() error {
	rates := map[string]float64{
		"fertilizer_per_ton":  r.FertilizerPerTon,
		"pesticide_per_unit":  r.PesticidePerUnit,
		"labor_per_acre":      r.LaborPerAcre,
		"water_per_cubic_m":   r.WaterPerCubicM,
		"equipment_per_acre":  r.EquipmentPerAcre,
		"planning_water_rate": r.PlanningWaterRate,
	}
	for name, rate := range rates {
		if rate < 0 {
			return fmt.Errorf("cost_rates.%s cannot be negative", name)
		}
	}
	return nil
}
