package cmd

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/hoopsim/hoopsim/sim"
)

// envPrefix namespaces rule overrides, e.g. HOOPSIM_QUARTER_LENGTH=10.
const envPrefix = "HOOPSIM_"

// loadRules builds the game config: defaults, then the YAML rule file if
// given (strict parsing), then HOOPSIM_* environment overrides.
func loadRules(path string) (sim.GameConfig, error) {
	cfg := sim.DefaultGameConfig()
	if path != "" {
		loaded, err := sim.LoadGameConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid rules: %w", err)
	}
	return cfg, nil
}

// loadTeams reads the home and away roster files.
func loadTeams(homePath, awayPath string) ([2]sim.TeamInput, error) {
	var teams [2]sim.TeamInput
	if homePath == "" || awayPath == "" {
		return teams, fmt.Errorf("both --home and --away roster files are required")
	}
	for i, path := range []string{homePath, awayPath} {
		team, err := sim.LoadTeamFile(path)
		if err != nil {
			return teams, err
		}
		teams[i] = team
	}
	return teams, nil
}
