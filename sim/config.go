package sim

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Indexes into GameConfig.FoulsUntilBonus.
const (
	BonusNormal = iota
	BonusOvertime
	BonusLastTwoMinutes
)

// Upper bounds on the rule factors. Past these a possession stops being a
// contest: e.g. a large turnover factor makes every possession a turnover.
const (
	maxRateFactor         = 5
	maxHomeCourtAdvantage = 100 // percent
)

// GameConfig is the league rule snapshot for one game. It is never mutated by
// the engine.
type GameConfig struct {
	FoulsNeededToFoulOut int     `yaml:"fouls_needed_to_foul_out" env:"FOULS_NEEDED_TO_FOUL_OUT"` // 0 disables fouling out
	NumPlayersOnCourt    int     `yaml:"num_players_on_court" env:"NUM_PLAYERS_ON_COURT"`
	NumPeriods           int     `yaml:"num_periods" env:"NUM_PERIODS"`
	QuarterLength        float64 `yaml:"quarter_length" env:"QUARTER_LENGTH"` // minutes
	Pace                 float64 `yaml:"pace" env:"PACE"`                     // league pace, 100 = neutral
	// FoulsUntilBonus holds [normal, overtime, last two minutes] team-foul thresholds.
	FoulsUntilBonus          []int   `yaml:"fouls_until_bonus" env:"FOULS_UNTIL_BONUS"`
	FoulRateFactor           float64 `yaml:"foul_rate_factor" env:"FOUL_RATE_FACTOR"`
	TurnoverFactor           float64 `yaml:"turnover_factor" env:"TURNOVER_FACTOR"`
	DisableInjuries          bool    `yaml:"disable_injuries" env:"DISABLE_INJURIES"`
	HomeCourtAdvantage       float64 `yaml:"home_court_advantage" env:"HOME_COURT_ADVANTAGE"` // percent
	ThreePointTendencyFactor float64 `yaml:"three_point_tendency_factor" env:"THREE_POINT_TENDENCY_FACTOR"`
	ThreePointAccuracyFactor float64 `yaml:"three_point_accuracy_factor" env:"THREE_POINT_ACCURACY_FACTOR"`
	Elam                     bool    `yaml:"elam" env:"ELAM"`
	ElamMinutes              float64 `yaml:"elam_minutes" env:"ELAM_MINUTES"`
	ElamPoints               int     `yaml:"elam_points" env:"ELAM_POINTS"`
}

// DefaultGameConfig returns NBA-like rules.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		FoulsNeededToFoulOut:     6,
		NumPlayersOnCourt:        5,
		NumPeriods:               4,
		QuarterLength:            12,
		Pace:                     100,
		FoulsUntilBonus:          []int{5, 4, 2},
		FoulRateFactor:           1,
		TurnoverFactor:           1,
		HomeCourtAdvantage:       1,
		ThreePointTendencyFactor: 1,
		ThreePointAccuracyFactor: 1,
		ElamMinutes:              4,
		ElamPoints:               8,
	}
}

// LoadGameConfig reads a YAML rule file on top of DefaultGameConfig.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadGameConfig(path string) (GameConfig, error) {
	cfg := DefaultGameConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading game config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing game config: %w", err)
	}
	return cfg, nil
}

// Validate checks that every required field is present and in range.
func (c GameConfig) Validate() error {
	if c.NumPlayersOnCourt <= 0 {
		return fmt.Errorf("num_players_on_court must be positive, got %d", c.NumPlayersOnCourt)
	}
	if c.NumPeriods <= 0 {
		return fmt.Errorf("num_periods must be positive, got %d", c.NumPeriods)
	}
	if c.FoulsNeededToFoulOut != 0 && c.FoulsNeededToFoulOut < 3 {
		return fmt.Errorf("fouls_needed_to_foul_out must be 0 (disabled) or at least 3, got %d", c.FoulsNeededToFoulOut)
	}
	if len(c.FoulsUntilBonus) != 3 {
		return fmt.Errorf("fouls_until_bonus must have 3 entries [normal, overtime, last two minutes], got %d", len(c.FoulsUntilBonus))
	}
	if err := validateFinitePositive("quarter_length", c.QuarterLength); err != nil {
		return err
	}
	if err := validateFinitePositive("pace", c.Pace); err != nil {
		return err
	}
	factors := []struct {
		name string
		val  float64
		max  float64
	}{
		{"foul_rate_factor", c.FoulRateFactor, maxRateFactor},
		{"turnover_factor", c.TurnoverFactor, maxRateFactor},
		{"home_court_advantage", c.HomeCourtAdvantage, maxHomeCourtAdvantage},
		{"three_point_tendency_factor", c.ThreePointTendencyFactor, maxRateFactor},
		{"three_point_accuracy_factor", c.ThreePointAccuracyFactor, maxRateFactor},
	}
	for _, f := range factors {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) || f.val < 0 {
			return fmt.Errorf("%s must be a finite non-negative number, got %f", f.name, f.val)
		}
		if f.val > f.max {
			return fmt.Errorf("%s must be at most %g, got %g", f.name, f.max, f.val)
		}
	}
	if c.Elam {
		if err := validateFinitePositive("elam_minutes", c.ElamMinutes); err != nil {
			return err
		}
		if c.ElamPoints <= 0 {
			return fmt.Errorf("elam_points must be positive when elam is enabled, got %d", c.ElamPoints)
		}
	}
	return nil
}

// GameOptions carries the per-game construction parameters that are not
// league rules.
type GameOptions struct {
	GameID                    int
	Day                       *int // nil when the game is not part of a schedule
	PlayByPlay                bool
	HomeCourtFactor           float64
	AllStarGame               bool
	BaseInjuryRate            float64
	DisableHomeCourtAdvantage bool
}

// DefaultGameOptions returns options for a regular-season game.
func DefaultGameOptions(gid int) GameOptions {
	return GameOptions{
		GameID:          gid,
		HomeCourtFactor: 1,
		BaseInjuryRate:  0.000125,
	}
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	if val <= 0 {
		return fmt.Errorf("%s must be positive, got %f", name, val)
	}
	return nil
}
