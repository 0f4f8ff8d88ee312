package sim

import "math"

// skillCurve maps one rating to a soft "has this skill" score.
type skillCurve struct {
	kind     RatingKind
	midpoint float64
}

const skillSteepness = 15

var (
	skillThree    = skillCurve{RatingShootingThreePointer, 0.59}
	skillAthlete  = skillCurve{RatingAthleticism, 0.63}
	skillHandle   = skillCurve{RatingDribbling, 0.68}
	skillInterior = skillCurve{RatingDefenseInterior, 0.57}
	skillPerim    = skillCurve{RatingDefensePerimeter, 0.61}
	skillPost     = skillCurve{RatingShootingLowPost, 0.61}
	skillPasser   = skillCurve{RatingPassing, 0.63}
	skillRebound  = skillCurve{RatingRebounding, 0.61}
)

// skillSum adds the sigmoid skill score of every on-court player.
func skillSum(team *TeamState, c skillCurve) float64 {
	sum := 0.0
	for _, p := range team.OnCourt {
		sum += sigmoid(team.Players[p].Ratings.Get(c.kind), skillSteepness, c.midpoint)
	}
	return sum
}

// computeSynergy derives the offense, defense and rebounding multipliers
// from the players currently on court. Called every possession.
func computeSynergy(team *TeamState) Synergy {
	three := skillSum(team, skillThree)
	athlete := skillSum(team, skillAthlete)
	handle := skillSum(team, skillHandle)
	interior := skillSum(team, skillInterior)
	perim := skillSum(team, skillPerim)
	post := skillSum(team, skillPost)
	passer := skillSum(team, skillPasser)
	rebound := skillSum(team, skillRebound)

	var s Synergy

	s.Off = 5 * sigmoid(three, 3, 2)
	s.Off += 3*sigmoid(handle, 15, 0.75) + sigmoid(handle, 5, 1.75)
	s.Off += 3*sigmoid(passer, 15, 0.75) + sigmoid(passer, 5, 1.75) + sigmoid(passer, 5, 2.75)
	s.Off += sigmoid(post, 15, 0.75)
	s.Off += sigmoid(athlete, 15, 1.75) + sigmoid(athlete, 5, 2.75)
	s.Off /= 17

	// Punish teams for not having multiple perimeter skills
	perimFactor := bound(math.Sqrt(1+handle+passer+three)-1, 0, 2) / 2
	s.Off *= 0.5 + 0.5*perimFactor

	s.Def = sigmoid(perim, 15, 0.75)
	s.Def += 2 * sigmoid(interior, 15, 0.75)
	s.Def += sigmoid(athlete, 5, 2) + sigmoid(athlete, 5, 3.25)
	s.Def /= 6

	s.Reb = sigmoid(rebound, 15, 0.75) + sigmoid(rebound, 5, 1.75)
	s.Reb /= 4

	return s
}
