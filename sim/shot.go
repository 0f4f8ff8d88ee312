package sim

import (
	"fmt"
	"math"

	"github.com/hoopsim/hoopsim/sim/trace"
)

// shotType is the zone a field goal attempt is taken from.
type shotType int

const (
	shotAtRim shotType = iota
	shotLowPost
	shotMidRange
	shotThreePointer
)

func (s shotType) points() int {
	if s == shotThreePointer {
		return 3
	}
	return 2
}

// Play kinds per zone: made, made and-one, missed, blocked.
func (s shotType) plays() (made, andOne, miss, blk trace.PlayKind) {
	switch s {
	case shotAtRim:
		return trace.PlayFgAtRim, trace.PlayFgAtRimAndOne, trace.PlayMissAtRim, trace.PlayBlkAtRim
	case shotLowPost:
		return trace.PlayFgLowPost, trace.PlayFgLowPostAndOne, trace.PlayMissLowPost, trace.PlayBlkLowPost
	case shotMidRange:
		return trace.PlayFgMidRange, trace.PlayFgMidRangeAndOne, trace.PlayMissMidRange, trace.PlayBlkMidRange
	case shotThreePointer:
		return trace.PlayTp, trace.PlayTpAndOne, trace.PlayMissTp, trace.PlayBlkTp
	default:
		panic(fmt.Sprintf("unknown shot type %d", int(s)))
	}
}

// recordAttempt credits a field goal attempt (and make) in the zone columns.
func (s shotType) recordAttempt(st *Stat, made bool) {
	inc := 0
	if made {
		inc = 1
	}
	st.FGA++
	st.FG += inc
	switch s {
	case shotAtRim:
		st.FGAAtRim++
		st.FGAtRim += inc
	case shotLowPost:
		st.FGALowPost++
		st.FGLowPost += inc
	case shotMidRange:
		st.FGAMidRange++
		st.FGMidRange += inc
	case shotThreePointer:
		st.TPA++
		st.TP += inc
	}
}

// scaleThreePointRating flattens the top of the three-point rating scale.
func scaleThreePointRating(tp float64) float64 {
	if tp > 0.55 {
		return 0.55 + (tp-0.55)*(0.3/0.45)
	}
	return tp
}

// doShot resolves a field goal attempt by the on-court slot shooter and
// reports whether the offense retains possession.
func (g *GameSim) doShot(shooter int) bool {
	rng := g.rng.ForSubsystem(SubsystemPossession)
	offense, defense := &g.team[g.o], &g.team[g.d]
	p := offense.OnCourt[shooter]
	pl := &offense.Players[p]
	currentFatigue := Fatigue(pl.Stat.Energy)

	passer := noExempt
	if len(offense.OnCourt) > 1 && g.probAst() > rng.Float64() {
		passer = pickPlayer(rng, ratingArray(offense, RatingPassing, 10), shooter)
	}

	synergyDiff := synergyFactor * (offense.Synergy.Off - defense.Synergy.Def)
	tp := pl.Ratings.Get(RatingShootingThreePointer)
	tpScaled := scaleThreePointRating(tp)

	var st shotType
	var probMake, probAndOne, probMissAndFoul float64
	if tp > 0.35 && 0.67*tpScaled*g.cfg.ThreePointTendencyFactor > rng.Float64() {
		st = shotThreePointer
		probMissAndFoul = 0.02
		probMake = (tpScaled*0.3+0.36)*g.cfg.ThreePointAccuracyFactor -
			0.25*defense.Composite.Get(RatingDefensePerimeter)
		probAndOne = 0.01
	} else {
		r1 := 0.8 * rng.Float64() * pl.Ratings.Get(RatingShootingMidRange)
		r2 := rng.Float64() * (pl.Ratings.Get(RatingShootingAtRim) + synergyDiff)
		r3 := rng.Float64() * (pl.Ratings.Get(RatingShootingLowPost) + synergyDiff)
		switch {
		case r1 > r2 && r1 > r3:
			st = shotMidRange
			probMissAndFoul = 0.07
			probMake = pl.Ratings.Get(RatingShootingMidRange)*0.32 + 0.42 -
				0.25*defense.Composite.Get(RatingDefensePerimeter)
			probAndOne = 0.05
		case r2 > r3:
			st = shotAtRim
			probMissAndFoul = 0.37
			probMake = pl.Ratings.Get(RatingShootingAtRim)*0.41 + 0.54 -
				0.25*defense.Composite.Get(RatingDefense)
			probAndOne = 0.25
		default:
			st = shotLowPost
			probMissAndFoul = 0.33
			probMake = pl.Ratings.Get(RatingShootingLowPost)*0.32 + 0.34 -
				0.25*defense.Composite.Get(RatingDefense)
			probAndOne = 0.15
		}
	}

	foulFactor := 0.65 * math.Pow(pl.Ratings.Get(RatingDrawingFouls)/0.5, 2) * g.cfg.FoulRateFactor
	probMissAndFoul *= foulFactor
	probAndOne *= foulFactor

	probMake = (probMake + synergyDiff) * currentFatigue
	if passer != noExempt {
		probMake += 0.025
	}

	if g.probBlk() > rng.Float64() {
		return g.doBlk(shooter, st)
	}

	if probMake > rng.Float64() {
		andOne := probAndOne > rng.Float64()
		return g.doFg(shooter, passer, st, andOne)
	}

	if probMissAndFoul > rng.Float64() {
		if st == shotThreePointer {
			g.doPf(g.d, trace.PlayPfTP, shooter)
			return g.doFt(shooter, 3)
		}
		g.doPf(g.d, trace.PlayPfFG, shooter)
		return g.doFt(shooter, 2)
	}

	st.recordAttempt(&pl.Stat, false)
	_, _, miss, _ := st.plays()
	g.recordPlay(miss, g.o, pl.ID, trace.NoPlayer)
	return g.doReb()
}

func (g *GameSim) probAst() float64 {
	return 0.6 * (2 + g.team[g.o].Composite.Get(RatingPassing)) /
		(2 + g.team[g.d].Composite.Get(RatingDefense))
}

func (g *GameSim) probBlk() float64 {
	return 0.2 * math.Pow(g.team[g.d].Composite.Get(RatingBlocking), 2)
}

func (g *GameSim) doBlk(shooter int, st shotType) bool {
	rng := g.rng.ForSubsystem(SubsystemPossession)
	offense, defense := &g.team[g.o], &g.team[g.d]
	pl := &offense.Players[offense.OnCourt[shooter]]
	pl.Stat.BA++
	st.recordAttempt(&pl.Stat, false)

	blocker := &defense.Players[defense.OnCourt[pickPlayer(rng, ratingArray(defense, RatingBlocking, 10), noExempt)]]
	blocker.Stat.Blk++

	_, _, _, blk := st.plays()
	g.recordPlay(blk, g.d, blocker.ID, pl.ID)
	return g.doReb()
}

// doFg credits a made field goal, the optional assist and the and-one free
// throw.
func (g *GameSim) doFg(shooter, passer int, st shotType, andOne bool) bool {
	offense := &g.team[g.o]
	p := offense.OnCourt[shooter]
	pl := &offense.Players[p]
	st.recordAttempt(&pl.Stat, true)
	g.recordPts(g.o, p, st.points())

	made, madeAndOne, _, _ := st.plays()
	kind := made
	if andOne {
		kind = madeAndOne
	}
	g.recordPlay(kind, g.o, pl.ID, trace.NoPlayer)

	if passer != noExempt {
		ast := &offense.Players[offense.OnCourt[passer]]
		ast.Stat.Ast++
		g.recordPlay(trace.PlayAst, g.o, ast.ID, pl.ID)
	}

	if andOne && !g.elamDone {
		g.doPf(g.d, trace.PlayPfAndOne, shooter)
		return g.doFt(shooter, 1)
	}
	return false
}

// doFt shoots amount free throws. A miss on the last one goes to the
// rebound model.
func (g *GameSim) doFt(shooter, amount int) bool {
	rng := g.rng.ForSubsystem(SubsystemPossession)
	offense := &g.team[g.o]
	p := offense.OnCourt[shooter]
	pl := &offense.Players[p]

	made := false
	for i := 0; i < amount; i++ {
		pl.Stat.FTA++
		if pl.Ratings.Get(RatingShootingFT)*0.3+0.6 > rng.Float64() {
			pl.Stat.FT++
			g.recordPts(g.o, p, 1)
			g.recordPlay(trace.PlayFt, g.o, pl.ID, trace.NoPlayer)
			made = true
		} else {
			g.recordPlay(trace.PlayMissFt, g.o, pl.ID, trace.NoPlayer)
			made = false
		}
		if g.elamDone {
			return false
		}
	}

	if !made {
		return g.doReb()
	}
	return false
}

// doReb resolves a missed shot and reports whether the offense got the ball
// back.
func (g *GameSim) doReb() bool {
	rng := g.rng.ForSubsystem(SubsystemPossession)
	offense, defense := &g.team[g.o], &g.team[g.d]

	// Out of bounds off the miss, nobody credited
	if 0.15 > rng.Float64() {
		return false
	}

	if 0.75*(2+defense.Composite.Get(RatingRebounding))/(2+offense.Composite.Get(RatingRebounding)) > rng.Float64() {
		p := defense.OnCourt[pickPlayer(rng, ratingArray(defense, RatingRebounding, 3), noExempt)]
		defense.Players[p].Stat.DRB++
		g.recordPlay(trace.PlayDrb, g.d, defense.Players[p].ID, trace.NoPlayer)
		return false
	}

	p := offense.OnCourt[pickPlayer(rng, ratingArray(offense, RatingRebounding, 5), noExempt)]
	offense.Players[p].Stat.ORB++
	g.recordPlay(trace.PlayOrb, g.o, offense.Players[p].ID, trace.NoPlayer)
	return true
}

// recordPts credits pts to roster index p of team t, the team's period
// line and every on-court plus/minus.
func (g *GameSim) recordPts(t, p, pts int) {
	team, opp := &g.team[t], &g.team[1-t]
	team.Players[p].Stat.Pts += pts
	team.Stat.Pts += pts
	team.Stat.PtsQtrs[len(team.Stat.PtsQtrs)-1] += pts

	for _, q := range team.OnCourt {
		team.Players[q].Stat.PM += pts
	}
	for _, q := range opp.OnCourt {
		opp.Players[q].Stat.PM -= pts
	}

	if g.elamActive && team.Stat.Pts >= g.elamTarget {
		g.elamDone = true
	}
}
