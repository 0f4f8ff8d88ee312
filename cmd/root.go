package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hoopsim/hoopsim/sim"
	"github.com/hoopsim/hoopsim/sim/series"
	"github.com/hoopsim/hoopsim/sim/store"
)

var (
	// Inputs
	homePath  string // Home roster YAML
	awayPath  string // Away roster YAML
	rulesPath string // League rules YAML (optional)

	// Game options
	seed            int64   // Seed for the game (series game i uses seed+i)
	gameID          int     // Game ID (series game i uses gameID+i)
	day             int     // Schedule day, recorded only when set
	playByPlay      bool    // Record the play-by-play log
	homeCourtFactor float64 // Multiplier on the league home-court advantage
	allStar         bool    // All-star game: no home court, playing-time modifiers ignored
	injuryRate      float64 // Base injury rate per player per possession
	noHomeCourt     bool    // Neutral-site game

	// Series
	numGames int // Number of games in a series
	parallel int // Games simulated concurrently

	// Output
	format   string // Output format: text or json
	dbPath   string // SQLite file to store results in (optional)
	logLevel string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "hoopsim",
	Short: "Possession-by-possession basketball game simulator",
}

// runCmd simulates a single game and prints the box score
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate one game",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		rules, teams := loadInputs()
		opts := buildOptions(cmd)

		if err := runGame(cmd.Context(), os.Stdout, rules, opts, teams); err != nil {
			logrus.Fatalf("Game failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// seriesCmd simulates many games between the same two rosters
var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Simulate a series of independently seeded games and summarize them",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		rules, teams := loadInputs()
		opts := buildOptions(cmd)
		opts.PlayByPlay = false

		cfg := series.Config{
			Rules:    rules,
			Options:  opts,
			Teams:    teams,
			Games:    numGames,
			Seed:     seed,
			Parallel: parallel,
		}
		if err := runSeries(cmd.Context(), os.Stdout, cfg); err != nil {
			logrus.Fatalf("Series failed: %v", err)
		}
		logrus.Info("Series complete.")
	},
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

func loadInputs() (sim.GameConfig, [2]sim.TeamInput) {
	rules, err := loadRules(rulesPath)
	if err != nil {
		logrus.Fatalf("Unable to load rules: %v", err)
	}
	teams, err := loadTeams(homePath, awayPath)
	if err != nil {
		logrus.Fatalf("Unable to load rosters: %v", err)
	}
	if format != "text" && format != "json" {
		logrus.Fatalf("Unknown output format %q (want text or json)", format)
	}
	return rules, teams
}

// buildOptions maps the flags onto game options. The day is recorded only
// when --day was given explicitly.
func buildOptions(cmd *cobra.Command) sim.GameOptions {
	opts := sim.DefaultGameOptions(gameID)
	opts.PlayByPlay = playByPlay
	opts.HomeCourtFactor = homeCourtFactor
	opts.AllStarGame = allStar
	opts.BaseInjuryRate = injuryRate
	opts.DisableHomeCourtAdvantage = noHomeCourt
	if cmd.Flags().Changed("day") {
		d := day
		opts.Day = &d
	}
	return opts
}

// runGame simulates one game, writes it in the selected format and stores
// it when a database is configured.
func runGame(ctx context.Context, out io.Writer, rules sim.GameConfig, opts sim.GameOptions, teams [2]sim.TeamInput) error {
	logrus.Infof("Starting game %d: %s vs %s, seed=%d", opts.GameID, teams[sim.Home].Name, teams[sim.Away].Name, seed)
	game, err := sim.NewGameSim(rules, opts, teams, sim.NewPartitionedRNG(sim.NewSimulationKey(seed)))
	if err != nil {
		return err
	}
	res := game.Run()

	if err := saveResults(ctx, []*sim.GameResult{res}); err != nil {
		return err
	}
	if format == "json" {
		return writeJSON(out, res)
	}
	return writeBoxScore(out, res)
}

// runSeries simulates a series, writes the summary and stores every game
// when a database is configured.
func runSeries(ctx context.Context, out io.Writer, cfg series.Config) error {
	logrus.Infof("Starting series of %d games: %s vs %s, seed=%d, parallel=%d", cfg.Games,
		cfg.Teams[sim.Home].Name, cfg.Teams[sim.Away].Name, cfg.Seed, cfg.Parallel)
	summary, results, err := series.Run(ctx, cfg)
	if err != nil {
		return err
	}

	if err := saveResults(ctx, results); err != nil {
		return err
	}
	if format == "json" {
		return writeJSON(out, summary)
	}
	return writeSeriesSummary(out, [2]string{cfg.Teams[sim.Home].Name, cfg.Teams[sim.Away].Name}, summary)
}

// saveResults writes results under a fresh run ID. No-op without --db.
func saveResults(ctx context.Context, results []*sim.GameResult) error {
	if dbPath == "" {
		return nil
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	runID := uuid.NewString()
	for i, res := range results {
		if err := db.SaveGame(ctx, runID, seed+int64(i), res); err != nil {
			return fmt.Errorf("save game %d: %w", res.GameID, err)
		}
	}
	logrus.Infof("Stored %d game(s) in %s as run %s", len(results), dbPath, runID)
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, c := range []*cobra.Command{runCmd, seriesCmd} {
		c.Flags().StringVar(&homePath, "home", "", "Home team roster YAML")
		c.Flags().StringVar(&awayPath, "away", "", "Away team roster YAML")
		c.Flags().StringVar(&rulesPath, "rules", "", "League rules YAML (defaults to NBA rules; HOOPSIM_* env vars override)")
		c.Flags().Int64Var(&seed, "seed", 42, "Seed for the game simulation")
		c.Flags().IntVar(&gameID, "game-id", 0, "Game ID")
		c.Flags().IntVar(&day, "day", 0, "Schedule day recorded with the result")
		c.Flags().Float64Var(&homeCourtFactor, "home-court-factor", 1, "Multiplier on the league home-court advantage")
		c.Flags().BoolVar(&allStar, "all-star", false, "All-star game")
		c.Flags().Float64Var(&injuryRate, "injury-rate", 0.000125, "Base injury rate per player per possession")
		c.Flags().BoolVar(&noHomeCourt, "no-home-court", false, "Play at a neutral site")
		c.Flags().StringVar(&format, "format", "text", "Output format (text, json)")
		c.Flags().StringVar(&dbPath, "db", "", "SQLite file to store results in")
		c.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	}
	runCmd.Flags().BoolVar(&playByPlay, "play-by-play", false, "Include the play-by-play log in JSON output")

	seriesCmd.Flags().IntVar(&numGames, "games", 100, "Number of games to simulate")
	seriesCmd.Flags().IntVar(&parallel, "parallel", 4, "Games simulated concurrently")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(seriesCmd)
}
