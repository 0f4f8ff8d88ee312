package sim

import "math"

// synergyFactor scales how much synergy is added to team composite ratings
// and shot probabilities.
const synergyFactor = 0.1

// teamCompositeKinds are the ratings aggregated to team level each possession.
var teamCompositeKinds = [...]RatingKind{
	RatingDribbling,
	RatingPassing,
	RatingRebounding,
	RatingDefense,
	RatingDefensePerimeter,
	RatingBlocking,
}

func isDefensiveKind(k RatingKind) bool {
	return k == RatingDefense || k == RatingDefensePerimeter || k == RatingBlocking
}

// performanceFactor damps the team that is ahead and lifts the team that is
// behind, capped at ±20%.
func performanceFactor(pointDiff int) float64 {
	return 1 - 0.2*math.Tanh(float64(pointDiff)/60)
}

// foulLimitFactor penalizes defense for players playing in foul trouble.
func foulLimitFactor(pf, foulLimit int) float64 {
	switch {
	case pf == foulLimit:
		return 0.9
	case pf > foulLimit:
		return 0.75
	default:
		return 1
	}
}

// updateTeamCompositeRatings recomputes the six team composite ratings from
// the on-court players and the team's current synergy.
func updateTeamCompositeRatings(team *TeamState, oppPts int, foulLimit int) {
	perfFactor := performanceFactor(team.Stat.Pts - oppPts)
	n := float64(len(team.OnCourt))

	for _, k := range teamCompositeKinds {
		sum := 0.0
		for _, p := range team.OnCourt {
			pl := &team.Players[p]
			f := 1.0
			if isDefensiveKind(k) {
				f = foulLimitFactor(pl.Stat.PF, foulLimit)
			}
			sum += pl.Ratings.Get(k) * Fatigue(pl.Stat.Energy) * perfFactor * f
		}
		team.Composite.Set(k, sum/n)
	}

	team.Composite.Add(RatingDribbling, synergyFactor*team.Synergy.Off)
	team.Composite.Add(RatingPassing, synergyFactor*team.Synergy.Off)
	team.Composite.Add(RatingRebounding, synergyFactor*team.Synergy.Reb)
	team.Composite.Add(RatingDefense, synergyFactor*team.Synergy.Def)
	team.Composite.Add(RatingDefensePerimeter, synergyFactor*team.Synergy.Def)
	team.Composite.Add(RatingBlocking, synergyFactor*team.Synergy.Def)
}
