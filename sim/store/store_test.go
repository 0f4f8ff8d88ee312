package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoopsim/hoopsim/sim"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "results.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testResult(gameID int) *sim.GameResult {
	day := 3
	return &sim.GameResult{
		GameID:         gameID,
		Day:            &day,
		NumPossessions: 201,
		Teams: [2]sim.TeamBoxScore{
			{
				ID: 1, Name: "Home", Pts: 101, PtsQtrs: []int{25, 25, 25, 26},
				Players: []sim.PlayerBoxScore{
					{ID: 10, Name: "A", Pos: "G", Stat: sim.Stat{GS: 1, Min: 30.5, Pts: 60}},
					{ID: 11, Name: "B", Pos: "C", Stat: sim.Stat{Pts: 41}},
				},
			},
			{
				ID: 2, Name: "Away", Pts: 99, PtsQtrs: []int{20, 30, 20, 29},
				Players: []sim.PlayerBoxScore{
					{ID: 20, Name: "C", Pos: "F", Injured: true, Stat: sim.Stat{Pts: 99}},
				},
			},
		},
	}
}

func TestSaveGame_RoundTrip(t *testing.T) {
	// GIVEN a stored game
	s := openTempStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveGame(ctx, "run-1", 42, testResult(7)))

	// WHEN it is queried back
	count, err := s.GameCount(ctx, "run-1")
	require.NoError(t, err)
	home, away, err := s.TeamPoints(ctx, "run-1", 7)
	require.NoError(t, err)
	loaded, err := s.LoadGame(ctx, "run-1", 7)
	require.NoError(t, err)

	// THEN the stored values match
	assert.Equal(t, 1, count)
	assert.Equal(t, 101, home)
	assert.Equal(t, 99, away)
	assert.Equal(t, []int{25, 25, 25, 26}, loaded.Teams[sim.Home].PtsQtrs)
	require.NotNil(t, loaded.Day)
	assert.Equal(t, 3, *loaded.Day)
	assert.Equal(t, 30.5, loaded.Teams[sim.Home].Players[0].Stat.Min)
}

func TestSaveGame_RunsAreSeparate(t *testing.T) {
	s := openTempStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveGame(ctx, "run-1", 1, testResult(0)))
	require.NoError(t, s.SaveGame(ctx, "run-1", 2, testResult(1)))
	require.NoError(t, s.SaveGame(ctx, "run-2", 1, testResult(0)))

	n1, err := s.GameCount(ctx, "run-1")
	require.NoError(t, err)
	n2, err := s.GameCount(ctx, "run-2")
	require.NoError(t, err)
	n3, err := s.GameCount(ctx, "run-3")
	require.NoError(t, err)

	assert.Equal(t, 2, n1)
	assert.Equal(t, 1, n2)
	assert.Equal(t, 0, n3)

	pts, err := s.PlayerPoints(ctx, "run-1", 10)
	require.NoError(t, err)
	assert.Equal(t, 120, pts)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"run-1", "run-2"}, runs)
}

func TestSaveGame_SameTeamOnBothSides(t *testing.T) {
	// GIVEN an exhibition where both sides carry the same team and player IDs
	s := openTempStore(t)
	ctx := context.Background()
	res := testResult(0)
	res.Teams[sim.Away].ID = res.Teams[sim.Home].ID
	res.Teams[sim.Away].Players[0].ID = res.Teams[sim.Home].Players[0].ID

	// WHEN it is saved
	require.NoError(t, s.SaveGame(ctx, "run-1", 1, res))

	// THEN both player lines are kept
	pts, err := s.PlayerPoints(ctx, "run-1", res.Teams[sim.Home].Players[0].ID)
	require.NoError(t, err)
	assert.Equal(t, res.Teams[sim.Home].Players[0].Stat.Pts+res.Teams[sim.Away].Players[0].Stat.Pts, pts)
}

func TestSaveGame_DuplicateRejected(t *testing.T) {
	s := openTempStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveGame(ctx, "run-1", 1, testResult(0)))

	assert.Error(t, s.SaveGame(ctx, "run-1", 1, testResult(0)))

	n, err := s.GameCount(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "failed save leaves no partial rows")
}

func TestSaveGame_Validation(t *testing.T) {
	s := openTempStore(t)
	ctx := context.Background()

	assert.Error(t, s.SaveGame(ctx, " ", 1, testResult(0)))
	assert.Error(t, s.SaveGame(ctx, "run-1", 1, nil))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	assert.Error(t, s.SaveGame(canceled, "run-1", 1, testResult(0)))
}

func TestTeamPoints_NotFound(t *testing.T) {
	s := openTempStore(t)
	_, _, err := s.TeamPoints(context.Background(), "run-1", 99)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = s.LoadGame(context.Background(), "run-1", 99)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.sqlite")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveGame(context.Background(), "run-1", 1, testResult(0)))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	n, err := s.GameCount(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
