package sim

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoopsim/hoopsim/sim/internal/testutil"
)

func TestDefaultGameConfig_IsValid(t *testing.T) {
	assert.NoError(t, DefaultGameConfig().Validate())
}

func TestGameConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *GameConfig)
		wantErr string
	}{
		{"zero players on court", func(c *GameConfig) { c.NumPlayersOnCourt = 0 }, "num_players_on_court"},
		{"zero periods", func(c *GameConfig) { c.NumPeriods = 0 }, "num_periods"},
		{"foul out of two", func(c *GameConfig) { c.FoulsNeededToFoulOut = 2 }, "fouls_needed_to_foul_out"},
		{"short bonus table", func(c *GameConfig) { c.FoulsUntilBonus = []int{5, 4} }, "fouls_until_bonus"},
		{"zero quarter length", func(c *GameConfig) { c.QuarterLength = 0 }, "quarter_length"},
		{"NaN pace", func(c *GameConfig) { c.Pace = math.NaN() }, "pace"},
		{"negative turnover factor", func(c *GameConfig) { c.TurnoverFactor = -1 }, "turnover_factor"},
		{"infinite foul rate", func(c *GameConfig) { c.FoulRateFactor = math.Inf(1) }, "foul_rate_factor"},
		{"huge turnover factor", func(c *GameConfig) { c.TurnoverFactor = 1000 }, "turnover_factor"},
		{"huge foul rate", func(c *GameConfig) { c.FoulRateFactor = maxRateFactor + 0.1 }, "foul_rate_factor"},
		{"huge three point tendency", func(c *GameConfig) { c.ThreePointTendencyFactor = 50 }, "three_point_tendency_factor"},
		{"huge three point accuracy", func(c *GameConfig) { c.ThreePointAccuracyFactor = 50 }, "three_point_accuracy_factor"},
		{"home court over 100 percent", func(c *GameConfig) { c.HomeCourtAdvantage = 150 }, "home_court_advantage"},
		{"elam without points", func(c *GameConfig) { c.Elam = true; c.ElamPoints = 0 }, "elam_points"},
		{"elam without minutes", func(c *GameConfig) { c.Elam = true; c.ElamMinutes = 0 }, "elam_minutes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGameConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGameConfig_Validate_RateFactorUpperBoundInclusive(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.TurnoverFactor = maxRateFactor
	cfg.FoulRateFactor = maxRateFactor
	assert.NoError(t, cfg.Validate())
}

func TestGameConfig_FoulOutDisabledIsValid(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.FoulsNeededToFoulOut = 0
	assert.NoError(t, cfg.Validate())
}

func TestLoadGameConfig_Fixtures(t *testing.T) {
	cfg, err := LoadGameConfig(testutil.TestdataPath(t, "rules", "default.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultGameConfig(), cfg)

	// GIVEN a partial file, unspecified fields keep their defaults
	elam, err := LoadGameConfig(testutil.TestdataPath(t, "rules", "elam.yaml"))
	require.NoError(t, err)
	assert.True(t, elam.Elam)
	assert.Equal(t, 24, elam.ElamPoints)
	assert.Equal(t, 0, elam.FoulsNeededToFoulOut)
	assert.Equal(t, 12.0, elam.QuarterLength)
	assert.NoError(t, elam.Validate())
}

func TestLoadGameConfig_RejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quater_length: 10\n"), 0o644))

	_, err := LoadGameConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quater_length")
}

func TestLoadGameConfig_MissingFile(t *testing.T) {
	_, err := LoadGameConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
