package sim

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// RatingKind enumerates the composite ratings a player or team can carry.
// The set is closed: every Ratings record holds a value for every kind.
type RatingKind int

const (
	RatingUsage RatingKind = iota
	RatingDribbling
	RatingPassing
	RatingTurnovers
	RatingShootingAtRim
	RatingShootingLowPost
	RatingShootingMidRange
	RatingShootingThreePointer
	RatingShootingFT
	RatingRebounding
	RatingStealing
	RatingBlocking
	RatingFouling
	RatingDrawingFouls
	RatingDefense
	RatingDefenseInterior
	RatingDefensePerimeter
	RatingEndurance
	RatingAthleticism
	RatingJumpBall

	numRatingKinds
)

var ratingNames = [numRatingKinds]string{
	RatingUsage:                "usage",
	RatingDribbling:            "dribbling",
	RatingPassing:              "passing",
	RatingTurnovers:            "turnovers",
	RatingShootingAtRim:        "shootingAtRim",
	RatingShootingLowPost:      "shootingLowPost",
	RatingShootingMidRange:     "shootingMidRange",
	RatingShootingThreePointer: "shootingThreePointer",
	RatingShootingFT:           "shootingFT",
	RatingRebounding:           "rebounding",
	RatingStealing:             "stealing",
	RatingBlocking:             "blocking",
	RatingFouling:              "fouling",
	RatingDrawingFouls:         "drawingFouls",
	RatingDefense:              "defense",
	RatingDefenseInterior:      "defenseInterior",
	RatingDefensePerimeter:     "defensePerimeter",
	RatingEndurance:            "endurance",
	RatingAthleticism:          "athleticism",
	RatingJumpBall:             "jumpBall",
}

// String returns the rating's canonical name as used in roster files.
func (k RatingKind) String() string {
	if k < 0 || k >= numRatingKinds {
		return fmt.Sprintf("RatingKind(%d)", int(k))
	}
	return ratingNames[k]
}

// AllRatingKinds returns every rating kind in declaration order.
func AllRatingKinds() []RatingKind {
	kinds := make([]RatingKind, numRatingKinds)
	for i := range kinds {
		kinds[i] = RatingKind(i)
	}
	return kinds
}

// ParseRatingKind maps a rating name to its kind.
func ParseRatingKind(name string) (RatingKind, bool) {
	for i, n := range ratingNames {
		if n == name {
			return RatingKind(i), true
		}
	}
	return 0, false
}

// Ratings is a fixed-size record holding one scalar per RatingKind.
// Accessing a kind outside the enum panics: it can only happen through a
// programming error, and a silently defaulted rating would skew every later
// possession.
type Ratings [numRatingKinds]float64

// Get returns the value for kind k.
func (r *Ratings) Get(k RatingKind) float64 {
	checkKind(k)
	return r[k]
}

// Set overwrites the value for kind k.
func (r *Ratings) Set(k RatingKind, v float64) {
	checkKind(k)
	r[k] = v
}

// Add accumulates v into kind k.
func (r *Ratings) Add(k RatingKind, v float64) {
	checkKind(k)
	r[k] += v
}

// Scale multiplies kind k by factor.
func (r *Ratings) Scale(k RatingKind, factor float64) {
	checkKind(k)
	r[k] *= factor
}

func checkKind(k RatingKind) {
	if k < 0 || k >= numRatingKinds {
		panic(fmt.Sprintf("unknown rating kind %d", int(k)))
	}
}

// RatingsFromMap builds a Ratings record from name-keyed values.
// Every rating kind must be present and finite; unknown names are rejected.
func RatingsFromMap(values map[string]float64) (Ratings, error) {
	var r Ratings
	var missing, unknown []string
	seen := make(map[RatingKind]bool, len(values))
	for name, v := range values {
		k, ok := ParseRatingKind(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return r, fmt.Errorf("rating %s must be a finite number, got %f", name, v)
		}
		r[k] = v
		seen[k] = true
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return r, fmt.Errorf("unknown ratings: %s", strings.Join(unknown, ", "))
	}
	for _, k := range AllRatingKinds() {
		if !seen[k] {
			missing = append(missing, k.String())
		}
	}
	if len(missing) > 0 {
		return r, fmt.Errorf("missing ratings: %s", strings.Join(missing, ", "))
	}
	return r, nil
}
