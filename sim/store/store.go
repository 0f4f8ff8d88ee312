// Package store persists finished games to SQLite.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hoopsim/hoopsim/sim"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when a game is not stored.
var ErrNotFound = errors.New("game not found")

// Store provides SQLite-backed game persistence.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a store at path, creating the schema if needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schemaSQL); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveGame stores a game result and its player lines under runID.
func (s *Store) SaveGame(ctx context.Context, runID string, seed int64, res *sim.GameResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return fmt.Errorf("run id is required")
	}
	if res == nil {
		return fmt.Errorf("game result is required")
	}

	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode game result: %w", err)
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save game: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	home, away := res.Teams[sim.Home], res.Teams[sim.Away]
	_, err = tx.ExecContext(ctx, `
INSERT INTO games (
	run_id, game_id, seed, day,
	home_team_id, home_name, home_pts,
	away_team_id, away_name, away_pts,
	overtimes, num_possessions, result_json, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		runID, res.GameID, seed, nullableInt(res.Day),
		home.ID, home.Name, home.Pts,
		away.ID, away.Name, away.Pts,
		res.Overtimes, res.NumPossessions, string(payload), time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert game %d: %w", res.GameID, err)
	}

	for t, team := range res.Teams {
		for _, p := range team.Players {
			st := p.Stat
			_, err = tx.ExecContext(ctx, `
INSERT INTO player_games (
	run_id, game_id, team_index, team_id, player_id, name,
	gs, min, pts, fg, fga, tp, tpa, ft, fta,
	orb, drb, ast, tov, stl, blk, pf, pm, injured
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
				runID, res.GameID, t, team.ID, p.ID, p.Name,
				st.GS, st.Min, st.Pts, st.FG, st.FGA, st.TP, st.TPA, st.FT, st.FTA,
				st.ORB, st.DRB, st.Ast, st.Tov, st.Stl, st.Blk, st.PF, st.PM, boolToInt(p.Injured),
			)
			if err != nil {
				return fmt.Errorf("insert player %d of game %d: %w", p.ID, res.GameID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit game %d: %w", res.GameID, err)
	}
	return nil
}

// GameCount returns how many games are stored under runID.
func (s *Store) GameCount(ctx context.Context, runID string) (int, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	var n int
	row := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM games WHERE run_id = ?`, runID)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return n, nil
}

// Runs returns every stored run ID, oldest first.
func (s *Store) Runs(ctx context.Context) ([]string, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT run_id FROM games GROUP BY run_id ORDER BY MIN(created_at), run_id`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// TeamPoints returns the final home and away score of a stored game.
func (s *Store) TeamPoints(ctx context.Context, runID string, gameID int) (home, away int, err error) {
	if s == nil || s.sqlDB == nil {
		return 0, 0, fmt.Errorf("storage is not configured")
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT home_pts, away_pts FROM games WHERE run_id = ? AND game_id = ?`, runID, gameID)
	if err := row.Scan(&home, &away); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, ErrNotFound
		}
		return 0, 0, fmt.Errorf("team points: %w", err)
	}
	return home, away, nil
}

// LoadGame decodes the full stored result of a game.
func (s *Store) LoadGame(ctx context.Context, runID string, gameID int) (*sim.GameResult, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	var payload string
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT result_json FROM games WHERE run_id = ? AND game_id = ?`, runID, gameID)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load game: %w", err)
	}
	var res sim.GameResult
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return nil, fmt.Errorf("decode game %d: %w", gameID, err)
	}
	return &res, nil
}

// PlayerPoints returns a player's total points across every game of runID.
func (s *Store) PlayerPoints(ctx context.Context, runID string, playerID int) (int, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	var pts int
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(pts), 0) FROM player_games WHERE run_id = ? AND player_id = ?`, runID, playerID)
	if err := row.Scan(&pts); err != nil {
		return 0, fmt.Errorf("player points: %w", err)
	}
	return pts, nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
