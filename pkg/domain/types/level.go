package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Level is the qualitative bucket derived from a risk score
type Level string

const (
	LevelLow      Level = "Low"
	LevelModerate Level = "Moderate"
	LevelHigh     Level = "High"
	LevelCritical Level = "Critical"
)

// AllLevels returns all levels from least to most severe
func AllLevels() []Level {
	return []Level{
		LevelLow,
		LevelModerate,
		LevelHigh,
		LevelCritical,
	}
}

// LevelFromScore maps a score to its level.
// Scores up to 5 are Low, up to 10 Moderate, up to 15 High, anything above is Critical.
func LevelFromScore(score int) Level {
	switch {
	case score <= 5:
		return LevelLow
	case score <= 10:
		return LevelModerate
	case score <= 15:
		return LevelHigh
	default:
		return LevelCritical
	}
}

// IsValid checks if the level is valid
func (l Level) IsValid() bool {
	return l.Rank() > 0
}

// Rank orders levels by severity. It returns 0 for unknown levels.
func (l Level) Rank() int {
	switch l {
	case LevelLow:
		return 1
	case LevelModerate:
		return 2
	case LevelHigh:
		return 3
	case LevelCritical:
		return 4
	default:
		return 0
	}
}

// String returns the string representation of the level
func (l Level) String() string {
	return string(l)
}

// ParseLevel parses a level name case-insensitively
func ParseLevel(s string) (Level, error) {
	for _, level := range AllLevels() {
		if strings.EqualFold(string(level), s) {
			return level, nil
		}
	}
	return "", goerr.Wrap(ErrInvalidLevel, "unknown level", goerr.V("level", s))
}
