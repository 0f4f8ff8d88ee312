package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/hoopsim/hoopsim/sim/trace"
)

// OutcomeKind classifies how a possession ended.
type OutcomeKind int

const (
	OutcomeEndOfQuarter OutcomeKind = iota
	OutcomeTurnover
	OutcomeFoul
	OutcomeShot
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeEndOfQuarter:
		return "endOfQuarter"
	case OutcomeTurnover:
		return "turnover"
	case OutcomeFoul:
		return "foul"
	case OutcomeShot:
		return "shot"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// possessionOutcome is the result of one possession. Retain is true when
// the offense keeps the ball (offensive rebound, non-shooting foul).
type possessionOutcome struct {
	Kind   OutcomeKind
	Retain bool
}

// getPossessionOutcome resolves a possession in precedence order: clock
// expiry, turnover, foul, shot. Exactly one outcome is produced.
func (g *GameSim) getPossessionOutcome(possessionLength float64, intentionalFoul bool) possessionOutcome {
	rng := g.rng.ForSubsystem(SubsystemPossession)
	offense, defense := &g.team[g.o], &g.team[g.d]

	// No need to play out the final possession when the offense already leads
	if g.t <= 0 && !g.elamActive && offense.period() >= g.cfg.NumPeriods &&
		offense.Stat.Pts > defense.Stat.Pts {
		return possessionOutcome{Kind: OutcomeEndOfQuarter}
	}

	// Short buzzer possessions usually produce no shot
	if g.t <= 0 && !g.elamActive && possessionLength < 6.0/60 {
		if rng.Float64() > math.Pow(possessionLength/(8.0/60), 0.25) {
			return possessionOutcome{Kind: OutcomeEndOfQuarter}
		}
	}

	if g.probTov() > rng.Float64() {
		g.doTov()
		return possessionOutcome{Kind: OutcomeTurnover}
	}

	shooter := pickPlayer(rng, ratingArray(offense, RatingUsage, 1.25), noExempt)

	if intentionalFoul || 0.08*g.cfg.FoulRateFactor > rng.Float64() {
		if g.getNumFoulsUntilBonus() <= 1 {
			g.doPf(g.d, trace.PlayPfBonus, shooter)
			return possessionOutcome{Kind: OutcomeFoul, Retain: g.doFt(shooter, 2)}
		}
		g.doPf(g.d, trace.PlayPfNonShooting, noExempt)
		return possessionOutcome{Kind: OutcomeFoul, Retain: true}
	}

	return possessionOutcome{Kind: OutcomeShot, Retain: g.doShot(shooter)}
}

// getNumFoulsUntilBonus returns how many more team fouls the defense can
// commit before the offense shoots free throws on every foul.
func (g *GameSim) getNumFoulsUntilBonus() int {
	if g.t <= 2 {
		return g.cfg.FoulsUntilBonus[BonusLastTwoMinutes] - g.foulsLastTwoMinutes[g.d]
	}
	if g.overtimes >= 1 {
		return g.cfg.FoulsUntilBonus[BonusOvertime] - g.foulsThisQuarter[g.d]
	}
	return g.cfg.FoulsUntilBonus[BonusNormal] - g.foulsThisQuarter[g.d]
}

// doPf charges a personal foul to a defender of team t. shooter is the
// on-court slot of the fouled offensive player, or noExempt.
func (g *GameSim) doPf(t int, kind trace.PlayKind, shooter int) {
	rng := g.rng.ForSubsystem(SubsystemPossession)
	team := &g.team[t]
	p := team.OnCourt[pickPlayer(rng, ratingArray(team, RatingFouling, 2), noExempt)]
	fouler := &team.Players[p]
	fouler.Stat.PF++

	g.foulsThisQuarter[t]++
	if g.t <= 2 {
		g.foulsLastTwoMinutes[t]++
	}

	fouled := trace.NoPlayer
	if shooter != noExempt {
		offense := &g.team[1-t]
		fouled = offense.Players[offense.OnCourt[shooter]].ID
	}
	g.recordPlay(kind, t, fouler.ID, fouled)

	if g.cfg.FoulsNeededToFoulOut > 0 && fouler.Stat.PF == g.cfg.FoulsNeededToFoulOut {
		g.recordPlay(trace.PlayFoulOut, t, fouler.ID, trace.NoPlayer)
		logrus.Debugf("%s %s: %s fouled out", g.clockPrefix(), team.Name, fouler.Name)
	}
}

func (g *GameSim) probTov() float64 {
	offense, defense := &g.team[g.o].Composite, &g.team[g.d].Composite
	return boundProb(g.cfg.TurnoverFactor * 0.14 * defense.Get(RatingDefense) /
		(0.5*offense.Get(RatingDribbling) + offense.Get(RatingPassing)))
}

func (g *GameSim) doTov() {
	rng := g.rng.ForSubsystem(SubsystemPossession)
	offense := &g.team[g.o]
	p := offense.OnCourt[pickPlayer(rng, ratingArray(offense, RatingTurnovers, 2), noExempt)]
	offense.Players[p].Stat.Tov++

	if g.probStl() > rng.Float64() {
		g.doStl(p)
		return
	}
	g.recordPlay(trace.PlayTov, g.o, offense.Players[p].ID, trace.NoPlayer)
}

func (g *GameSim) probStl() float64 {
	offense, defense := &g.team[g.o].Composite, &g.team[g.d].Composite
	return boundProb(0.55 * defense.Get(RatingDefensePerimeter) /
		(0.5 * (offense.Get(RatingDribbling) + offense.Get(RatingPassing))))
}

// doStl credits a steal against roster index stoleFrom of the offense.
func (g *GameSim) doStl(stoleFrom int) {
	rng := g.rng.ForSubsystem(SubsystemPossession)
	defense := &g.team[g.d]
	p := defense.OnCourt[pickPlayer(rng, ratingArray(defense, RatingStealing, 4), noExempt)]
	defense.Players[p].Stat.Stl++
	g.recordPlay(trace.PlayStl, g.d, defense.Players[p].ID, g.team[g.o].Players[stoleFrom].ID)
}
