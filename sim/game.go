package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/hoopsim/hoopsim/sim/trace"
)

// Termination guards for rosters that cannot score. Overtimes stop after
// maxOvertimes and the game ends tied; an Elam ending that goes
// maxElamPossessions without reaching the target ends regulation.
const (
	maxOvertimes       = 20
	maxElamPossessions = 1000
)

// Team indexes. The home team is always index 0.
const (
	Home = 0
	Away = 1
)

// GameSim simulates a single game. It owns both team states exclusively;
// components borrow them for the duration of a call. A GameSim runs once.
type GameSim struct {
	cfg  GameConfig
	opts GameOptions
	rng  *PartitionedRNG

	team [2]TeamState
	o, d int // offense and defense team indexes

	t                       float64 // minutes remaining in the current period
	overtimes               int
	numPossessions          int
	averagePossessionLength float64 // minutes
	foulsThisQuarter        [2]int
	foulsLastTwoMinutes     [2]int
	startersRecorded        bool
	jumpBallWinner          int

	elamActive bool
	elamDone   bool
	elamTarget int
	elamStart  int // numPossessions when the Elam ending began

	playByPlay *trace.PlayByPlay
	result     *GameResult
}

// NewGameSim validates the configuration and rosters, applies home-court
// advantage and picks the starting lineups.
func NewGameSim(cfg GameConfig, opts GameOptions, teams [2]TeamInput, rng *PartitionedRNG) (*GameSim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	if rng == nil {
		return nil, fmt.Errorf("NewGameSim: rng must not be nil")
	}
	if math.IsNaN(opts.BaseInjuryRate) || math.IsInf(opts.BaseInjuryRate, 0) || opts.BaseInjuryRate < 0 {
		return nil, fmt.Errorf("base injury rate must be a finite non-negative number, got %f", opts.BaseInjuryRate)
	}
	if math.IsNaN(opts.HomeCourtFactor) || math.IsInf(opts.HomeCourtFactor, 0) || opts.HomeCourtFactor < 0 {
		return nil, fmt.Errorf("home court factor must be a finite non-negative number, got %f", opts.HomeCourtFactor)
	}

	g := &GameSim{
		cfg:  cfg,
		opts: opts,
		rng:  rng,
		t:    cfg.QuarterLength,
		o:    Home,
		d:    Away,
	}
	for i, in := range teams {
		ts, err := newTeamState(in, cfg.NumPlayersOnCourt, teamLabel(i))
		if err != nil {
			return nil, err
		}
		g.team[i] = ts
	}
	if opts.PlayByPlay {
		g.playByPlay = trace.NewPlayByPlay()
	}

	// Possessions per 48 minutes, per team
	numPossessions := (g.team[Home].Pace + g.team[Away].Pace) / 2 * 1.1 * (cfg.Pace / 100)
	g.averagePossessionLength = 48 / (2 * numPossessions)

	if !opts.AllStarGame && !opts.DisableHomeCourtAdvantage {
		g.homeCourtAdvantage()
	}

	g.updatePlayersOnCourt()
	for t := range g.team {
		g.team[t].Synergy = computeSynergy(&g.team[t])
	}

	logrus.Debugf("[game %d] %s vs %s, avg possession %.1fs", opts.GameID,
		g.team[Home].Name, g.team[Away].Name, g.averagePossessionLength*60)
	return g, nil
}

func teamLabel(t int) string {
	if t == Home {
		return "home"
	}
	return "away"
}

// homeCourtAdvantage boosts the home team's ratings and penalizes the away
// team's by the same factor. Endurance is not affected.
func (g *GameSim) homeCourtAdvantage() {
	factor := 1 + g.cfg.HomeCourtAdvantage*g.opts.HomeCourtFactor/100
	for t := range g.team {
		f := factor
		if t == Away {
			f = 1 / factor
		}
		for p := range g.team[t].Players {
			for _, k := range AllRatingKinds() {
				if k == RatingEndurance {
					continue
				}
				g.team[t].Players[p].Ratings.Scale(k, f)
			}
		}
	}
}

// Run simulates the game to completion and returns the box score. Calling
// Run again returns the same result.
func (g *GameSim) Run() *GameResult {
	if g.result != nil {
		return g.result
	}

	g.jumpBall()
	g.simRegulation()
	for !g.elamDone && g.team[Home].Stat.Pts == g.team[Away].Stat.Pts {
		if g.overtimes >= maxOvertimes {
			logrus.Warnf("[game %d] still tied after %d overtimes, ending in a tie", g.opts.GameID, g.overtimes)
			break
		}
		g.simOvertime()
	}

	g.recordPlay(trace.PlayGameOver, trace.NoPlayer, trace.NoPlayer, trace.NoPlayer)
	logrus.Debugf("[game %d] final %s %d, %s %d (%d OT, %d possessions)", g.opts.GameID,
		g.team[Home].Name, g.team[Home].Stat.Pts, g.team[Away].Name, g.team[Away].Stat.Pts,
		g.overtimes, g.numPossessions)

	g.result = g.buildResult()
	return g.result
}

func (g *GameSim) simRegulation() {
	for {
		for {
			g.checkElamEnding()
			if (g.t <= 0 && !g.elamActive) || g.elamDone {
				break
			}
			if g.elamActive && g.numPossessions-g.elamStart >= maxElamPossessions {
				logrus.Warnf("[game %d] Elam target %d not reached after %d possessions", g.opts.GameID,
					g.elamTarget, maxElamPossessions)
				// Overtime, if needed, runs on the clock
				g.elamActive = false
				break
			}
			g.simPossession()
		}
		if g.elamDone || g.team[Home].period() >= g.cfg.NumPeriods {
			return
		}
		g.startPeriod()
	}
}

// startPeriod opens the next regulation period. Possession alternates,
// starting with the team that lost the opening tip in the second period.
func (g *GameSim) startPeriod() {
	for t := range g.team {
		g.team[t].Stat.PtsQtrs = append(g.team[t].Stat.PtsQtrs, 0)
	}
	g.t = g.cfg.QuarterLength
	g.foulsThisQuarter = [2]int{}
	g.foulsLastTwoMinutes = [2]int{}
	g.recordPlay(trace.PlayQuarter, trace.NoPlayer, trace.NoPlayer, trace.NoPlayer)

	first := g.jumpBallWinner
	if g.team[Home].period()%2 == 0 {
		first = 1 - first
	}
	g.setPossession(first)
}

func (g *GameSim) simOvertime() {
	g.overtimes++
	for t := range g.team {
		g.team[t].Stat.PtsQtrs = append(g.team[t].Stat.PtsQtrs, 0)
	}
	g.t = math.Ceil(0.4 * g.cfg.QuarterLength)
	g.foulsThisQuarter = [2]int{}
	g.foulsLastTwoMinutes = [2]int{}
	g.recordPlay(trace.PlayOvertime, trace.NoPlayer, trace.NoPlayer, trace.NoPlayer)

	g.jumpBall()
	for g.t > 0 {
		g.simPossession()
	}
}

// setPossession arranges o/d so that team t has the ball on the next
// possession (simPossession swaps sides first).
func (g *GameSim) setPossession(t int) {
	g.o, g.d = 1-t, t
}

// jumpBall contests a tip between the best on-court jumper of each team.
func (g *GameSim) jumpBall() {
	rng := g.rng.ForSubsystem(SubsystemPossession)

	var jumper [2]int
	var rating [2]float64
	for t := range g.team {
		ratios := ratingArray(&g.team[t], RatingJumpBall, 1)
		best := 0
		for i, r := range ratios {
			if r > ratios[best] {
				best = i
			}
		}
		jumper[t] = g.team[t].OnCourt[best]
		rating[t] = math.Max(ratios[best], 0)
	}

	prob := 0.5
	if denom := rating[Home]*rating[Home] + rating[Away]*rating[Away]; denom > 0 {
		prob = rating[Home] * rating[Home] / denom
	}
	winner := Away
	if prob > rng.Float64() {
		winner = Home
	}
	loser := 1 - winner
	g.jumpBallWinner = winner

	g.recordPlay(trace.PlayJumpBall, winner,
		g.team[winner].Players[jumper[winner]].ID,
		g.team[loser].Players[jumper[loser]].ID)
	g.setPossession(winner)
}

// simPossession plays one possession: swap sides, rotate, refresh team
// ratings, run the clock, resolve the outcome, then fatigue and injuries.
func (g *GameSim) simPossession() {
	g.o, g.d = g.d, g.o

	g.updatePlayersOnCourt()
	for t := range g.team {
		g.team[t].Synergy = computeSynergy(&g.team[t])
	}
	foulLimit := g.getFoulTroubleLimit()
	updateTeamCompositeRatings(&g.team[Home], g.team[Away].Stat.Pts, foulLimit)
	updateTeamCompositeRatings(&g.team[Away], g.team[Home].Stat.Pts, foulLimit)

	intentionalFoul := g.shouldIntentionalFoul()
	possessionLength := g.getPossessionLength(intentionalFoul)
	if !g.elamActive {
		g.t -= possessionLength
		if g.t < 0 {
			g.t = 0
		}
	}

	outcome := g.getPossessionOutcome(possessionLength, intentionalFoul)
	g.numPossessions++
	logrus.Debugf("%s %s possession: %s", g.clockPrefix(), g.team[g.o].Name, outcome.Kind)
	if outcome.Retain {
		// Undo the swap at the top of the next possession
		g.o, g.d = g.d, g.o
	}

	for t := range g.team {
		updatePlayingTime(&g.team[t], possessionLength)
	}
	g.injuries()
}

// checkElamEnding turns the Elam ending on once the final regulation period
// reaches the configured time. The clock stops and the first team to the
// target score wins.
func (g *GameSim) checkElamEnding() {
	if !g.cfg.Elam || g.elamActive || g.overtimes > 0 ||
		g.team[Home].period() != g.cfg.NumPeriods || g.t > g.cfg.ElamMinutes {
		return
	}
	g.elamActive = true
	g.elamStart = g.numPossessions
	g.elamTarget = max(g.team[Home].Stat.Pts, g.team[Away].Stat.Pts) + g.cfg.ElamPoints
	g.recordPlay(trace.PlayElamActive, trace.NoPlayer, trace.NoPlayer, trace.NoPlayer)
	logrus.Debugf("%s Elam ending, target %d", g.clockPrefix(), g.elamTarget)
}

// shouldIntentionalFoul reports whether the trailing defense fouls to stop
// the clock: final period, under 24 seconds, down one to six.
func (g *GameSim) shouldIntentionalFoul() bool {
	diff := g.team[g.o].Stat.Pts - g.team[g.d].Stat.Pts
	return !g.elamActive &&
		g.team[Home].period() >= g.cfg.NumPeriods &&
		g.t > 0 && g.t <= 24.0/60 &&
		diff >= 1 && diff <= 6
}

// getPossessionLength draws the possession duration in minutes. Never more
// than the time left in the period.
func (g *GameSim) getPossessionLength(intentionalFoul bool) float64 {
	rng := g.rng.ForSubsystem(SubsystemPossession)
	offense, defense := &g.team[g.o], &g.team[g.d]

	var possessionLength float64
	switch {
	case intentionalFoul:
		possessionLength = rng.Float64() * 4.0 / 60
	case !g.elamActive && offense.period() >= g.cfg.NumPeriods &&
		offense.Stat.Pts > defense.Stat.Pts && g.t <= 24.0/60:
		// Leading team runs out the clock
		possessionLength = g.t
	default:
		possessionLength = bound(
			g.averagePossessionLength+rng.NormFloat64()*0.25*g.averagePossessionLength,
			4.0/60, 30.0/60)
	}

	if !g.elamActive && possessionLength > g.t {
		possessionLength = g.t
	}
	return possessionLength
}

// recordPlay appends to the play-by-play log when it is enabled.
func (g *GameSim) recordPlay(kind trace.PlayKind, t, on, off int) {
	g.playByPlay.Record(trace.Play{
		Kind:   kind,
		Team:   t,
		On:     on,
		Off:    off,
		Period: g.team[Home].period(),
		Clock:  math.Max(g.t, 0),
	})
}

// clockPrefix formats the game clock for log lines.
func (g *GameSim) clockPrefix() string {
	return fmt.Sprintf("[Q%d %05.2f]", g.team[Home].period(), g.t)
}
