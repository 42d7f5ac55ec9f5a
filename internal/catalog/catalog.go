package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a crop is not present in the catalog
var ErrNotFound = errors.New("crop not found")

// Entry holds the static agronomic constants of one crop
type Entry struct {
	Name              string     `json:"name" yaml:"name"`
	Category          string     `json:"category,omitempty" yaml:"category"`
	BaseYield         float64    `json:"base_yield" yaml:"base_yield"`
	WaterNeed         WaterNeed  `json:"water_need" yaml:"water_need"`
	OptimalFertilizer float64    `json:"optimal_fertilizer" yaml:"optimal_fertilizer"`
	OptimalWater      float64    `json:"optimal_water" yaml:"optimal_water"`
	DurationDays      int        `json:"duration_days" yaml:"duration_days"`
	Profitability     Level      `json:"profitability" yaml:"profitability"`
	Risk              Level      `json:"risk" yaml:"risk"`
	CompatibleSoils   []SoilType `json:"compatible_soils" yaml:"compatible_soils"`
	CompatibleSeasons []Season   `json:"compatible_seasons" yaml:"compatible_seasons"`
	MarketPrice       float64    `json:"market_price" yaml:"market_price"`
}

// SuitsSoil reports whether the crop grows well on the given soil
func (e Entry) SuitsSoil(soil SoilType) bool {
	for _, s := range e.CompatibleSoils {
		if s == soil {
			return true
		}
	}
	return false
}

// SuitsSeason reports whether the crop is sown in the given season
func (e Entry) SuitsSeason(season Season) bool {
	for _, s := range e.CompatibleSeasons {
		if s == season {
			return true
		}
	}
	return false
}

func (e Entry) validate() error {
	switch {
	case strings.TrimSpace(e.Name) == "":
		return fmt.Errorf("name is required")
	case e.BaseYield <= 0:
		return fmt.Errorf("%s: base_yield must be positive", e.Name)
	case !e.WaterNeed.Valid():
		return fmt.Errorf("%s: unknown water_need %q", e.Name, e.WaterNeed)
	case e.OptimalFertilizer <= 0:
		return fmt.Errorf("%s: optimal_fertilizer must be positive", e.Name)
	case e.OptimalWater <= 0:
		return fmt.Errorf("%s: optimal_water must be positive", e.Name)
	case e.DurationDays <= 0:
		return fmt.Errorf("%s: duration_days must be positive", e.Name)
	case !e.Profitability.Valid():
		return fmt.Errorf("%s: unknown profitability %q", e.Name, e.Profitability)
	case !e.Risk.Valid():
		return fmt.Errorf("%s: unknown risk %q", e.Name, e.Risk)
	case len(e.CompatibleSoils) == 0:
		return fmt.Errorf("%s: at least one compatible soil is required", e.Name)
	case len(e.CompatibleSeasons) == 0:
		return fmt.Errorf("%s: at least one compatible season is required", e.Name)
	case e.MarketPrice <= 0:
		return fmt.Errorf("%s: market_price must be positive", e.Name)
	}

	for _, soil := range e.CompatibleSoils {
		if !soil.Valid() {
			return fmt.Errorf("%s: unknown soil type %q", e.Name, soil)
		}
	}
	for _, season := range e.CompatibleSeasons {
		if !season.Valid() {
			return fmt.Errorf("%s: unknown season %q", e.Name, season)
		}
	}
	return nil
}

// Catalog is an ordered, read-only set of crop entries.
// Iteration order is insertion order and breaks score ties downstream.
type Catalog struct {
	entries []Entry
	index   map[string]int
}

// New builds a catalog from entries, rejecting invalid or duplicate crops
func New(entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog must contain at least one crop")
	}

	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for i, entry := range entries {
		if err := entry.validate(); err != nil {
			return nil, fmt.Errorf("invalid crop at index %d: %w", i, err)
		}
		key := normalize(entry.Name)
		if _, dup := c.index[key]; dup {
			return nil, fmt.Errorf("duplicate crop: %s", entry.Name)
		}
		c.index[key] = len(c.entries)
		c.entries = append(c.entries, entry)
	}
	return c, nil
}

// Get returns the entry for a crop name, matched case-insensitively
func (c *Catalog) Get(name string) (Entry, bool) {
	i, ok := c.index[normalize(name)]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Lookup is Get with an ErrNotFound-wrapping error
func (c *Catalog) Lookup(name string) (Entry, error) {
	entry, ok := c.Get(name)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return entry, nil
}

// List returns a copy of all entries in insertion order
func (c *Catalog) List() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Names returns the crop names in insertion order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, entry := range c.entries {
		names[i] = entry.Name
	}
	return names
}

// Len returns the number of crops
func (c *Catalog) Len() int {
	return len(c.entries)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
