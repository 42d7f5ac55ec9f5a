package catalog

import (
	"fmt"
	"strings"
)

// SoilType identifies the dominant soil of a field
type SoilType string

const (
	SoilLoamy    SoilType = "Loamy"
	SoilSandy    SoilType = "Sandy"
	SoilClay     SoilType = "Clay"
	SoilAlluvial SoilType = "Alluvial"
	SoilBlack    SoilType = "Black"
	SoilRed      SoilType = "Red"
	SoilLaterite SoilType = "Laterite"
)

// SoilTypes lists every known soil type
var SoilTypes = []SoilType{SoilLoamy, SoilSandy, SoilClay, SoilAlluvial, SoilBlack, SoilRed, SoilLaterite}

// Valid reports whether s is a known soil type
func (s SoilType) Valid() bool {
	for _, known := range SoilTypes {
		if s == known {
			return true
		}
	}
	return false
}

// Season identifies a cropping season
type Season string

const (
	SeasonKharif Season = "Kharif"
	SeasonRabi   Season = "Rabi"
	SeasonZaid   Season = "Zaid"
	SeasonAnnual Season = "Annual"
)

// Seasons lists every known season
var Seasons = []Season{SeasonKharif, SeasonRabi, SeasonZaid, SeasonAnnual}

// Valid reports whether s is a known season
func (s Season) Valid() bool {
	for _, known := range Seasons {
		if s == known {
			return true
		}
	}
	return false
}

// ParseSeason resolves a season name, accepting "Whole Year" for Annual
func ParseSeason(name string) (Season, error) {
	trimmed := strings.TrimSpace(name)
	if strings.EqualFold(trimmed, "Whole Year") || strings.EqualFold(trimmed, "Throughout Year") {
		return SeasonAnnual, nil
	}
	for _, known := range Seasons {
		if strings.EqualFold(trimmed, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown season: %q", name)
}

// UnmarshalText normalizes season aliases while decoding JSON and YAML
func (s *Season) UnmarshalText(text []byte) error {
	parsed, err := ParseSeason(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Level is a five-step ordinal tier compared by rank
type Level string

const (
	LevelVeryLow  Level = "Very Low"
	LevelLow      Level = "Low"
	LevelMedium   Level = "Medium"
	LevelHigh     Level = "High"
	LevelVeryHigh Level = "Very High"
)

var levelRanks = map[Level]int{
	LevelVeryLow:  1,
	LevelLow:      2,
	LevelMedium:   3,
	LevelHigh:     4,
	LevelVeryHigh: 5,
}

// Rank returns the 1..5 position of the level, 0 when unknown
func (l Level) Rank() int {
	return levelRanks[l]
}

// Valid reports whether l is a known level
func (l Level) Valid() bool {
	return l.Rank() > 0
}

// WaterNeed is the water requirement tier of a crop.
// It has its own vocabulary but shares the 1..5 scale with Level.
type WaterNeed string

const (
	WaterNeedLow        WaterNeed = "Low"
	WaterNeedMedium     WaterNeed = "Medium"
	WaterNeedMediumHigh WaterNeed = "Medium-High"
	WaterNeedHigh       WaterNeed = "High"
	WaterNeedVeryHigh   WaterNeed = "Very High"
)

var waterNeedRanks = map[WaterNeed]int{
	WaterNeedLow:        1,
	WaterNeedMedium:     2,
	WaterNeedMediumHigh: 3,
	WaterNeedHigh:       4,
	WaterNeedVeryHigh:   5,
}

// Rank returns the 1..5 position of the water need, 0 when unknown
func (w WaterNeed) Rank() int {
	return waterNeedRanks[w]
}

// Valid reports whether w is a known water need tier
func (w WaterNeed) Valid() bool {
	return w.Rank() > 0
}
