package catalog

import (
	"fmt"
	"strings"
)

// Filter narrows a catalog listing. Zero-valued fields match every crop.
type Filter struct {
	Season        Season
	WaterNeed     WaterNeed
	Profitability Level
	// Search matches a case-insensitive substring of the name, category or a compatible soil
	Search string
}

// Validate rejects filter values outside the known enums
func (f Filter) Validate() error {
	if f.Season != "" && !f.Season.Valid() {
		return fmt.Errorf("unknown season %q", f.Season)
	}
	if f.WaterNeed != "" && !f.WaterNeed.Valid() {
		return fmt.Errorf("unknown water need %q", f.WaterNeed)
	}
	if f.Profitability != "" && !f.Profitability.Valid() {
		return fmt.Errorf("unknown profitability %q", f.Profitability)
	}
	return nil
}

// ParseFilter builds a filter from raw query values. Empty values and "All"
// leave a criterion unset; seasons accept the same aliases as ParseSeason.
func ParseFilter(season, waterNeed, profitability, search string) (Filter, error) {
	f := Filter{
		WaterNeed:     WaterNeed(unlessAll(waterNeed)),
		Profitability: Level(unlessAll(profitability)),
		Search:        search,
	}
	if s := unlessAll(season); s != "" {
		parsed, err := ParseSeason(s)
		if err != nil {
			return Filter{}, err
		}
		f.Season = parsed
	}
	if err := f.Validate(); err != nil {
		return Filter{}, err
	}
	return f, nil
}

func unlessAll(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "All") {
		return ""
	}
	return v
}

func (f Filter) matches(e Entry) bool {
	if f.Season != "" && !e.SuitsSeason(f.Season) {
		return false
	}
	if f.WaterNeed != "" && e.WaterNeed != f.WaterNeed {
		return false
	}
	if f.Profitability != "" && e.Profitability != f.Profitability {
		return false
	}
	if term := normalize(f.Search); term != "" {
		return matchesSearch(e, term)
	}
	return true
}

func matchesSearch(e Entry, term string) bool {
	if strings.Contains(strings.ToLower(e.Name), term) || strings.Contains(strings.ToLower(e.Category), term) {
		return true
	}
	for _, soil := range e.CompatibleSoils {
		if strings.Contains(strings.ToLower(string(soil)), term) {
			return true
		}
	}
	return false
}

// Filter returns the entries matching f in insertion order
func (c *Catalog) Filter(f Filter) []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		if f.matches(entry) {
			out = append(out, entry)
		}
	}
	return out
}
