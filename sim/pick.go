package sim

import (
	"math"
	"math/rand"
	"sort"
)

// noExempt disables the exclusion argument of pickPlayer.
const noExempt = -1

// pickPlayer draws an index with probability proportional to its weight.
// exempt (if not noExempt) is never chosen. Negative or NaN weights count
// as zero.
//
// When every weight is zero the draw falls back to a uniform choice among
// strictly positive candidates, and if there are none, among all non-exempt
// indexes. A single exempt entry yields 0.
func pickPlayer(rng *rand.Rand, ratios []float64, exempt int) int {
	weights := make([]float64, len(ratios))
	sum := 0.0
	for i, r := range ratios {
		if i == exempt || math.IsNaN(r) || r <= 0 {
			continue
		}
		weights[i] = r
		sum += r
	}

	if sum == 0 {
		candidates := make([]int, 0, len(ratios))
		for i, w := range weights {
			if w > 0 {
				candidates = append(candidates, i)
			}
		}
		if len(candidates) == 0 {
			for i := range ratios {
				if i != exempt {
					candidates = append(candidates, i)
				}
			}
		}
		if len(candidates) == 0 {
			return 0
		}
		return candidates[rng.Intn(len(candidates))]
	}

	r := rng.Float64() * sum
	runningSum := 0.0
	last := 0
	for i, w := range weights {
		if w == 0 {
			continue
		}
		runningSum += w
		last = i
		if r < runningSum {
			return i
		}
	}
	// Rounding can leave r == sum; attribute it to the last weighted index.
	return last
}

// sortedIndexes returns the indexes of values ordered from lowest to
// highest value, ties broken by ascending index. The result is always a
// permutation of 0..len(values)-1.
func sortedIndexes(values []float64) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		va, vb := values[idx[a]], values[idx[b]]
		if va != vb {
			return va < vb
		}
		return idx[a] < idx[b]
	})
	return idx
}

// ratingArray returns fatigue-adjusted ratings of the on-court players of
// team, raised to power, in lineup order.
func ratingArray(team *TeamState, k RatingKind, power float64) []float64 {
	out := make([]float64, len(team.OnCourt))
	for i, p := range team.OnCourt {
		pl := &team.Players[p]
		out[i] = math.Pow(pl.Ratings.Get(k)*Fatigue(pl.Stat.Energy), power)
	}
	return out
}
