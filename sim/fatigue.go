package sim

const (
	// fatigueFactor scales on-court energy loss per minute.
	fatigueFactor = 0.055
	// benchRecoveryRate is energy regained per minute on the bench.
	benchRecoveryRate = 0.094
	// fatigueSubThreshold: a player whose fatigue multiplier is at or below
	// this may be subbed out even if the replacement unbalances positions.
	fatigueSubThreshold = 0.728
)

// Fatigue maps an energy level in [0, 1] to a performance multiplier.
// Monotonically non-decreasing in energy and capped at 1.
func Fatigue(energy float64) float64 {
	energy += 0.016
	if energy > 1 {
		energy = 1
	}
	if energy < 0 {
		energy = 0
	}
	return energy
}

// updatePlayingTime charges one possession of length possessionLength
// (minutes) to every player on the team.
func updatePlayingTime(team *TeamState, possessionLength float64) {
	for p := range team.Players {
		st := &team.Players[p].Stat
		if team.isOnCourt(p) {
			st.Min += possessionLength
			st.CourtTime += possessionLength
			st.Energy -= possessionLength * fatigueFactor * (1 - team.Players[p].Ratings.Get(RatingEndurance))
		} else {
			st.BenchTime += possessionLength
			st.Energy += possessionLength * benchRecoveryRate
		}
		st.Energy = bound(st.Energy, 0, 1)
	}
}
