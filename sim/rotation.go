package sim

import (
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hoopsim/hoopsim/sim/trace"
)

// noFoulLimit is returned by getFoulTroubleLimit when fouling out is
// disabled; no player can reach it.
const noFoulLimit = math.MaxInt32

// Player severities used when a lineup slot must be vacated.
const (
	sevEligible  = 0
	sevFouledOut = 1 // fouled out, but admitted because too few players are eligible
	sevBarred    = 2 // injured, or fouled out while enough others are eligible
)

// rotationContext holds the game-wide inputs of one rotation pass.
type rotationContext struct {
	rng         *rand.Rand
	numOnCourt  int
	foulOut     int
	foulLimit   int
	blowout     bool
	lateGame    bool
	allStarGame bool
}

// substitution records one accepted swap, as roster indexes.
type substitution struct {
	on, off int
}

func (rc *rotationContext) fouledOut(pl *PlayerState) bool {
	return rc.foulOut > 0 && pl.Stat.PF >= rc.foulOut
}

// foulTroubleFactor suppresses the rotation rating of players near the foul
// limit. Always in (0, 1].
func foulTroubleFactor(pf, foulLimit, foulOut int) float64 {
	switch {
	case foulOut > 0 && pf >= foulOut:
		return 0.1
	case pf == foulLimit:
		return 0.8
	case pf > foulLimit:
		return 0.7
	default:
		return 1
	}
}

// blowoutFactor favors the end of the bench in garbage time.
func blowoutFactor(rosterIndex int) float64 {
	return float64(rosterIndex+1) / 10
}

// playerRatings computes the situational rotation rating of every rostered
// player. Ineligible players get -Inf.
func (rc *rotationContext) playerRatings(team *TeamState, includeFouledOut bool) []float64 {
	ovrs := make([]float64, len(team.Players))
	for p := range team.Players {
		pl := &team.Players[p]
		if pl.Injured || (!includeFouledOut && rc.fouledOut(pl)) {
			ovrs[p] = math.Inf(-1)
			continue
		}

		noise := 1.0
		if !rc.lateGame {
			noise = 0.9 + 0.2*rc.rng.Float64()
		}
		ovr := pl.Value * Fatigue(pl.Stat.Energy) * noise

		if !rc.allStarGame {
			ovr *= pl.PTModifier
		}

		if rc.blowout {
			ovr *= blowoutFactor(p)
		} else {
			ovr *= foulTroubleFactor(pl.Stat.PF, rc.foulLimit, rc.foulOut)
		}
		ovrs[p] = ovr
	}
	return ovrs
}

func numEligible(ovrs []float64) int {
	count := 0
	for _, ovr := range ovrs {
		if !math.IsInf(ovr, -1) {
			count++
		}
	}
	return count
}

// positionCutoff is the minimum number of guards and of forwards a lineup
// of n players should carry.
func positionCutoff(n int) int {
	switch {
	case n >= 5:
		return 2
	case n >= 3:
		return 1
	default:
		return 0
	}
}

// positionsBalanced reports whether the lineup stays balanced when slot is
// taken by roster index incoming. Two guards (or one point guard) and two
// forwards (or one center) for five-a-side.
func positionsBalanced(team *TeamState, slot, incoming int) bool {
	var numG, numPG, numF, numC int
	count := func(pos string) {
		if strings.Contains(pos, "G") {
			numG++
		}
		if strings.Contains(pos, "PG") {
			numPG++
		}
		if strings.Contains(pos, "F") {
			numF++
		}
		if strings.Contains(pos, "C") {
			numC++
		}
	}
	for j, p := range team.OnCourt {
		if j != slot {
			count(team.Players[p].Pos)
		}
	}
	count(team.Players[incoming].Pos)

	cutoff := positionCutoff(len(team.OnCourt))
	return !((numG < cutoff && numPG == 0) || (numF < cutoff && numC == 0))
}

// rotate performs one substitution pass over team's lineup, weakest slot
// first, and returns the swaps made.
func (rc *rotationContext) rotate(team *TeamState) []substitution {
	ovrs := rc.playerRatings(team, false)
	fallback := false
	if numEligible(ovrs) < rc.numOnCourt {
		// Never leave a team unable to field a lineup
		ovrs = rc.playerRatings(team, true)
		fallback = true
	}

	severity := func(p int) int {
		switch {
		case math.IsInf(ovrs[p], -1):
			return sevBarred
		case fallback && rc.fouledOut(&team.Players[p]):
			return sevFouledOut
		default:
			return sevEligible
		}
	}

	// Bench in severity order, depth chart order within a severity
	bench := make([]int, 0, len(team.Players))
	for b := range team.Players {
		if !team.isOnCourt(b) {
			bench = append(bench, b)
		}
	}
	sort.SliceStable(bench, func(i, j int) bool {
		return severity(bench[i]) < severity(bench[j])
	})

	onCourtOvrs := make([]float64, len(team.OnCourt))
	for i, p := range team.OnCourt {
		onCourtOvrs[i] = ovrs[p]
	}

	var subs []substitution
	for _, pp := range sortedIndexes(onCourtOvrs) {
		p := team.OnCourt[pp]
		sevP := severity(p)
		onCourtIsIneligible := sevP > sevEligible

		for _, b := range bench {
			if team.isOnCourt(b) {
				continue
			}
			sevB := severity(b)
			benchIsValidAndBetter := team.Players[p].Stat.CourtTime > 2 &&
				team.Players[b].Stat.BenchTime > 2 &&
				sevB <= sevP &&
				ovrs[b] > ovrs[p]
			benchIsEligibleReplacement := sevB < sevP

			if !benchIsValidAndBetter && !benchIsEligibleReplacement {
				continue
			}

			if !positionsBalanced(team, pp, b) &&
				Fatigue(team.Players[p].Stat.Energy) > fatigueSubThreshold &&
				!onCourtIsIneligible {
				continue
			}

			team.OnCourt[pp] = b
			team.Players[b].Stat.CourtTime = -2 + 4*rc.rng.Float64()
			team.Players[b].Stat.BenchTime = -2 + 4*rc.rng.Float64()
			team.Players[p].Stat.CourtTime = -2 + 4*rc.rng.Float64()
			team.Players[p].Stat.BenchTime = -2 + 4*rc.rng.Float64()
			subs = append(subs, substitution{on: b, off: p})
			break
		}
	}
	return subs
}

// updatePlayersOnCourt runs a rotation pass for both teams and reports
// whether any substitution was made. The first call also credits starts.
func (g *GameSim) updatePlayersOnCourt() bool {
	rc := &rotationContext{
		rng:         g.rng.ForSubsystem(SubsystemRotation),
		numOnCourt:  g.cfg.NumPlayersOnCourt,
		foulOut:     g.cfg.FoulsNeededToFoulOut,
		foulLimit:   g.getFoulTroubleLimit(),
		blowout:     g.isBlowout(),
		lateGame:    g.isLateGame(),
		allStarGame: g.opts.AllStarGame,
	}

	substitutions := false
	for t := range g.team {
		team := &g.team[t]
		for _, sub := range rc.rotate(team) {
			substitutions = true
			on, off := &team.Players[sub.on], &team.Players[sub.off]
			if g.startersRecorded {
				g.recordPlay(trace.PlaySub, t, on.ID, off.ID)
				logrus.Debugf("%s %s: %s in for %s", g.clockPrefix(), team.Name, on.Name, off.Name)
			}
		}
	}

	if !g.startersRecorded {
		for t := range g.team {
			for _, p := range g.team[t].OnCourt {
				g.team[t].Players[p].Stat.GS = 1
			}
		}
		g.startersRecorded = true
	}

	return substitutions
}

// isBlowout reports garbage time: a large margin late in the final
// regulation period, or an insurmountable margin under the Elam ending.
func (g *GameSim) isBlowout() bool {
	diff := g.team[0].Stat.Pts - g.team[1].Stat.Pts
	if diff < 0 {
		diff = -diff
	}

	if g.elamActive {
		ptsToTarget := g.elamTarget - max(g.team[0].Stat.Pts, g.team[1].Stat.Pts)
		return diff >= 20 && ptsToTarget < diff
	}

	t := g.t
	return g.team[0].period() == g.cfg.NumPeriods &&
		((diff >= 30 && t < 12) ||
			(diff >= 25 && t < 9) ||
			(diff >= 20 && t < 7) ||
			(diff >= 15 && t < 3) ||
			(diff >= 10 && t < 1))
}

// isLateGame reports crunch time, when rotation noise is suppressed.
func (g *GameSim) isLateGame() bool {
	if g.elamActive {
		ptsToTarget := g.elamTarget - max(g.team[0].Stat.Pts, g.team[1].Stat.Pts)
		return ptsToTarget <= 15
	}
	return g.team[0].period() >= g.cfg.NumPeriods && g.t < 6
}

// getFoulTroubleLimit returns the personal-foul count above which a player
// is considered in foul trouble at this point of the game.
func (g *GameSim) getFoulTroubleLimit() int {
	foulsNeededToFoulOut := g.cfg.FoulsNeededToFoulOut
	if foulsNeededToFoulOut <= 0 {
		return noFoulLimit
	}

	quarter := g.team[0].period()
	if g.overtimes > 0 || g.elamActive || (quarter == g.cfg.NumPeriods && g.t < 8) {
		return foulsNeededToFoulOut
	}

	gameCompletionFraction := (float64(quarter) - g.t/g.cfg.QuarterLength) / float64(g.cfg.NumPeriods)
	foulLimit := int(math.Ceil(gameCompletionFraction * float64(foulsNeededToFoulOut)))

	if foulLimit < 2 {
		foulLimit = 2
	} else if foulLimit >= foulsNeededToFoulOut {
		foulLimit = foulsNeededToFoulOut - 1
	}
	return foulLimit
}
