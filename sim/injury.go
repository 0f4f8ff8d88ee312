package sim

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/hoopsim/hoopsim/sim/trace"
)

// InjuryRate returns the per-possession injury probability of a player.
// Risk grows 3% per year of age past 26 (capped at 50) and by half again for
// players already playing through an injury.
func InjuryRate(baseRate, age float64, playingThroughInjury bool) float64 {
	injuryRate := baseRate * math.Pow(1.03, math.Min(50, age)-26)
	if playingThroughInjury {
		injuryRate *= 1.5
	}
	return injuryRate
}

// injuries rolls for an injury to every on-court player and re-runs the
// rotation if anyone got hurt.
func (g *GameSim) injuries() {
	if g.cfg.DisableInjuries {
		return
	}

	rng := g.rng.ForSubsystem(SubsystemInjury)
	baseRate := g.opts.BaseInjuryRate * 100 / g.cfg.Pace

	newInjury := false
	for t := range g.team {
		team := &g.team[t]
		for _, p := range team.OnCourt {
			pl := &team.Players[p]
			if pl.Injured {
				continue
			}
			if rng.Float64() < InjuryRate(baseRate, pl.Age, pl.PlayingThroughInjury) {
				pl.Injured = true
				pl.NewInjury = true
				newInjury = true
				g.recordPlay(trace.PlayInjury, t, pl.ID, trace.NoPlayer)
				logrus.Debugf("%s %s: %s injured", g.clockPrefix(), team.Name, pl.Name)
			}
		}
	}

	if newInjury {
		g.updatePlayersOnCourt()
	}
}
