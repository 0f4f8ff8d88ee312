// Package trace provides play-by-play recording for a simulated game.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

import "fmt"

// PlayKind identifies what happened in a Play.
type PlayKind int

const (
	PlayAst PlayKind = iota
	PlayBlkAtRim
	PlayBlkLowPost
	PlayBlkMidRange
	PlayBlkTp
	PlayDrb
	PlayElamActive
	PlayFgAtRim
	PlayFgAtRimAndOne
	PlayFgLowPost
	PlayFgLowPostAndOne
	PlayFgMidRange
	PlayFgMidRangeAndOne
	PlayFoulOut
	PlayFt
	PlayGameOver
	PlayInjury
	PlayJumpBall
	PlayMissAtRim
	PlayMissFt
	PlayMissLowPost
	PlayMissMidRange
	PlayMissTp
	PlayOrb
	PlayOvertime
	PlayPfNonShooting
	PlayPfBonus
	PlayPfFG
	PlayPfTP
	PlayPfAndOne
	PlayQuarter
	PlayStl
	PlaySub
	PlayTov
	PlayTp
	PlayTpAndOne

	numPlayKinds
)

var playKindNames = [numPlayKinds]string{
	PlayAst:              "ast",
	PlayBlkAtRim:         "blkAtRim",
	PlayBlkLowPost:       "blkLowPost",
	PlayBlkMidRange:      "blkMidRange",
	PlayBlkTp:            "blkTp",
	PlayDrb:              "drb",
	PlayElamActive:       "elamActive",
	PlayFgAtRim:          "fgAtRim",
	PlayFgAtRimAndOne:    "fgAtRimAndOne",
	PlayFgLowPost:        "fgLowPost",
	PlayFgLowPostAndOne:  "fgLowPostAndOne",
	PlayFgMidRange:       "fgMidRange",
	PlayFgMidRangeAndOne: "fgMidRangeAndOne",
	PlayFoulOut:          "foulOut",
	PlayFt:               "ft",
	PlayGameOver:         "gameOver",
	PlayInjury:           "injury",
	PlayJumpBall:         "jumpBall",
	PlayMissAtRim:        "missAtRim",
	PlayMissFt:           "missFt",
	PlayMissLowPost:      "missLowPost",
	PlayMissMidRange:     "missMidRange",
	PlayMissTp:           "missTp",
	PlayOrb:              "orb",
	PlayOvertime:         "overtime",
	PlayPfNonShooting:    "pfNonShooting",
	PlayPfBonus:          "pfBonus",
	PlayPfFG:             "pfFG",
	PlayPfTP:             "pfTP",
	PlayPfAndOne:         "pfAndOne",
	PlayQuarter:          "quarter",
	PlayStl:              "stl",
	PlaySub:              "sub",
	PlayTov:              "tov",
	PlayTp:               "tp",
	PlayTpAndOne:         "tpAndOne",
}

// String returns the play kind's short name.
func (k PlayKind) String() string {
	if k < 0 || k >= numPlayKinds {
		return fmt.Sprintf("PlayKind(%d)", int(k))
	}
	return playKindNames[k]
}

// MarshalText renders the kind by name so JSON play logs stay readable.
func (k PlayKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind written by MarshalText.
func (k *PlayKind) UnmarshalText(text []byte) error {
	for i, name := range playKindNames {
		if name == string(text) {
			*k = PlayKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown play kind %q", text)
}

// NoPlayer marks an unused player reference in a Play.
const NoPlayer = -1

// Play is a single play-by-play entry. Plays are values: once appended to a
// PlayByPlay they are never modified.
//
// For substitutions On is the player entering and Off the player leaving.
// For other plays On is the acting player and Off an optional second player
// (the player stolen from, the shooter on an assist, the shooter on a block).
type Play struct {
	Kind   PlayKind `json:"kind"`
	Team   int      `json:"team"`
	On     int      `json:"on"`
	Off    int      `json:"off"`
	Period int      `json:"period"`
	Clock  float64  `json:"clock"` // minutes remaining in the period
}
