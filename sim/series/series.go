// Package series runs many independently seeded games between the same two
// rosters and summarizes the results.
package series

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/hoopsim/hoopsim/sim"
)

// Config describes a series. Game i uses seed Seed+i and game ID
// Options.GameID+i.
type Config struct {
	Rules    sim.GameConfig
	Options  sim.GameOptions
	Teams    [2]sim.TeamInput
	Games    int
	Seed     int64
	Parallel int // <= 0 means one game at a time
}

// Summary aggregates a finished series. Margins are home minus away.
type Summary struct {
	Games          int     `json:"games"`
	HomeWins       int     `json:"homeWins"`
	AwayWins       int     `json:"awayWins"`
	OvertimeGames  int     `json:"overtimeGames"`
	MeanHomePts    float64 `json:"meanHomePts"`
	MeanAwayPts    float64 `json:"meanAwayPts"`
	MeanTotal      float64 `json:"meanTotal"`
	MeanMargin     float64 `json:"meanMargin"`
	StdDevMargin   float64 `json:"stdDevMargin"`
	P10Margin      float64 `json:"p10Margin"`
	P90Margin      float64 `json:"p90Margin"`
	MeanPossession float64 `json:"meanPossessions"`
}

// Run simulates every game of the series. Results are returned in game
// order regardless of Parallel, and are identical for any Parallel value.
func Run(ctx context.Context, cfg Config) (*Summary, []*sim.GameResult, error) {
	if cfg.Games <= 0 {
		return nil, nil, fmt.Errorf("games must be positive, got %d", cfg.Games)
	}
	if err := cfg.Rules.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid game config: %w", err)
	}

	results := make([]*sim.GameResult, cfg.Games)
	g, ctx := errgroup.WithContext(ctx)
	if cfg.Parallel > 0 {
		g.SetLimit(cfg.Parallel)
	} else {
		g.SetLimit(1)
	}

	for i := 0; i < cfg.Games; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			opts := cfg.Options
			opts.GameID = cfg.Options.GameID + i
			rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed + int64(i)))
			game, err := sim.NewGameSim(cfg.Rules, opts, cfg.Teams, rng)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			results[i] = game.Run()
			logrus.Debugf("[series] game %d (seed %d) finished %d-%d", i, cfg.Seed+int64(i),
				results[i].Teams[sim.Home].Pts, results[i].Teams[sim.Away].Pts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	summary := Summarize(results)
	logrus.Infof("[series] %d games: home %d-%d, mean margin %.2f", summary.Games,
		summary.HomeWins, summary.AwayWins, summary.MeanMargin)
	return summary, results, nil
}

// Summarize computes series statistics. Safe for an empty slice.
func Summarize(results []*sim.GameResult) *Summary {
	s := &Summary{Games: len(results)}
	if len(results) == 0 {
		return s
	}

	margins := make([]float64, len(results))
	totals := make([]float64, len(results))
	home := make([]float64, len(results))
	away := make([]float64, len(results))
	possessions := make([]float64, len(results))
	for i, r := range results {
		switch r.Winner() {
		case sim.Home:
			s.HomeWins++
		case sim.Away:
			s.AwayWins++
		}
		if r.Overtimes > 0 {
			s.OvertimeGames++
		}
		home[i] = float64(r.Teams[sim.Home].Pts)
		away[i] = float64(r.Teams[sim.Away].Pts)
		margins[i] = float64(r.Margin())
		totals[i] = home[i] + away[i]
		possessions[i] = float64(r.NumPossessions)
	}

	s.MeanHomePts = stat.Mean(home, nil)
	s.MeanAwayPts = stat.Mean(away, nil)
	s.MeanTotal = stat.Mean(totals, nil)
	s.MeanMargin = stat.Mean(margins, nil)
	s.MeanPossession = stat.Mean(possessions, nil)
	if len(margins) > 1 {
		s.StdDevMargin = stat.StdDev(margins, nil)
	}

	sorted := append([]float64(nil), margins...)
	sort.Float64s(sorted)
	s.P10Margin = stat.Quantile(0.1, stat.Empirical, sorted, nil)
	s.P90Margin = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	if math.IsNaN(s.StdDevMargin) {
		s.StdDevMargin = 0
	}
	return s
}
