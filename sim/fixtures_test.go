package sim

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hoopsim/hoopsim/sim/internal/testutil"
)

var testPositions = []string{"PG", "SG", "SF", "PF", "C"}

// testPlayer returns a player with every rating set to rating.
func testPlayer(id int, pos string, value, rating float64) PlayerInput {
	return PlayerInput{
		ID:      id,
		Name:    fmt.Sprintf("Player %d", id),
		Age:     27,
		Pos:     pos,
		Value:   value,
		Ratings: uniformRatingMap(rating),
	}
}

// testTeam returns a roster of n uniform players in depth-chart order,
// positions cycling PG, SG, SF, PF, C.
func testTeam(id, n int, rating float64) TeamInput {
	team := TeamInput{ID: id, Name: fmt.Sprintf("Team %d", id), Pace: 100}
	for i := 0; i < n; i++ {
		team.Players = append(team.Players,
			testPlayer(id*100+i, testPositions[i%len(testPositions)], float64(60-i), rating))
	}
	return team
}

// fixtureTeams loads the repo-root testdata rosters.
func fixtureTeams(t *testing.T) [2]TeamInput {
	t.Helper()
	home, err := LoadTeamFile(testutil.TestdataPath(t, "rosters", "home.yaml"))
	require.NoError(t, err)
	away, err := LoadTeamFile(testutil.TestdataPath(t, "rosters", "away.yaml"))
	require.NoError(t, err)
	return [2]TeamInput{home, away}
}

// newTestGame builds a GameSim or fails the test.
func newTestGame(t *testing.T, cfg GameConfig, opts GameOptions, teams [2]TeamInput, seed int64) *GameSim {
	t.Helper()
	g, err := NewGameSim(cfg, opts, teams, NewPartitionedRNG(NewSimulationKey(seed)))
	require.NoError(t, err)
	return g
}

// uniformGame is a game between two identical ten-man uniform rosters.
func uniformGame(t *testing.T, cfg GameConfig, seed int64) *GameSim {
	t.Helper()
	opts := DefaultGameOptions(1)
	opts.PlayByPlay = true
	return newTestGame(t, cfg, opts, [2]TeamInput{testTeam(1, 10, 0.5), testTeam(2, 10, 0.5)}, seed)
}

// lineupIDs returns the player IDs currently on court for team t.
func lineupIDs(g *GameSim, t int) []int {
	ids := make([]int, 0, len(g.team[t].OnCourt))
	for _, p := range g.team[t].OnCourt {
		ids = append(ids, g.team[t].Players[p].ID)
	}
	return ids
}
