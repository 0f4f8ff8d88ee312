package sim

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// TeamInput is an immutable roster snapshot supplied by the caller.
// Players are listed in depth-chart order: the first NumPlayersOnCourt
// healthy players start.
type TeamInput struct {
	ID      int           `yaml:"id"`
	Name    string        `yaml:"name"`
	Pace    float64       `yaml:"pace"`
	Players []PlayerInput `yaml:"players"`
}

// PlayerInput is one rostered player.
type PlayerInput struct {
	ID                   int                `yaml:"id"`
	Name                 string             `yaml:"name"`
	Age                  float64            `yaml:"age"`
	Pos                  string             `yaml:"pos"`
	Value                float64            `yaml:"value"`
	PTModifier           *float64           `yaml:"pt_modifier,omitempty"` // nil = 1
	Injured              bool               `yaml:"injured,omitempty"`
	PlayingThroughInjury bool               `yaml:"playing_through_injury,omitempty"`
	Ratings              map[string]float64 `yaml:"ratings"`
}

// LoadTeamFile reads a YAML roster file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadTeamFile(path string) (TeamInput, error) {
	var team TeamInput
	data, err := os.ReadFile(path)
	if err != nil {
		return team, fmt.Errorf("reading roster: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&team); err != nil {
		return team, fmt.Errorf("parsing roster %s: %w", path, err)
	}
	return team, nil
}

// newTeamState validates a roster and builds the mutable in-game state.
// The returned state shares no memory with the input.
func newTeamState(in TeamInput, numPlayersOnCourt int, label string) (TeamState, error) {
	ts := TeamState{
		ID:   in.ID,
		Name: in.Name,
		Pace: in.Pace,
		Stat: TeamStat{PtsQtrs: []int{0}},
	}
	if err := validateFinitePositive(label+".pace", in.Pace); err != nil {
		return ts, err
	}
	if len(in.Players) < numPlayersOnCourt {
		return ts, fmt.Errorf("%s: roster has %d players, need at least %d", label, len(in.Players), numPlayersOnCourt)
	}
	seen := make(map[int]bool, len(in.Players))
	ts.Players = make([]PlayerState, len(in.Players))
	for i, p := range in.Players {
		prefix := fmt.Sprintf("%s.players[%d]", label, i)
		if seen[p.ID] {
			return ts, fmt.Errorf("%s: duplicate player id %d", prefix, p.ID)
		}
		seen[p.ID] = true
		ratings, err := RatingsFromMap(p.Ratings)
		if err != nil {
			return ts, fmt.Errorf("%s: %w", prefix, err)
		}
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) || p.Value < 0 {
			return ts, fmt.Errorf("%s: value must be a finite non-negative number, got %f", prefix, p.Value)
		}
		if math.IsNaN(p.Age) || p.Age <= 0 {
			return ts, fmt.Errorf("%s: age must be positive, got %f", prefix, p.Age)
		}
		ptModifier := 1.0
		if p.PTModifier != nil {
			ptModifier = *p.PTModifier
			if math.IsNaN(ptModifier) || ptModifier < 0 {
				return ts, fmt.Errorf("%s: pt_modifier must be non-negative, got %f", prefix, ptModifier)
			}
		}
		ts.Players[i] = PlayerState{
			ID:                   p.ID,
			Name:                 p.Name,
			Age:                  p.Age,
			Pos:                  p.Pos,
			Value:                p.Value,
			PTModifier:           ptModifier,
			Ratings:              ratings,
			Stat:                 Stat{Energy: 1},
			Injured:              p.Injured,
			PlayingThroughInjury: p.PlayingThroughInjury,
		}
	}
	ts.OnCourt = make([]int, numPlayersOnCourt)
	for i := range ts.OnCourt {
		ts.OnCourt[i] = i
	}
	return ts, nil
}
