package sim

// Stat holds the per-game counters for one player.
// CourtTime and BenchTime are rotation bookkeeping, not box-score output.
type Stat struct {
	GS          int     `json:"gs"`
	Min         float64 `json:"min"`
	Pts         int     `json:"pts"`
	FG          int     `json:"fg"`
	FGA         int     `json:"fga"`
	FGAtRim     int     `json:"fgAtRim"`
	FGAAtRim    int     `json:"fgaAtRim"`
	FGLowPost   int     `json:"fgLowPost"`
	FGALowPost  int     `json:"fgaLowPost"`
	FGMidRange  int     `json:"fgMidRange"`
	FGAMidRange int     `json:"fgaMidRange"`
	TP          int     `json:"tp"`
	TPA         int     `json:"tpa"`
	FT          int     `json:"ft"`
	FTA         int     `json:"fta"`
	ORB         int     `json:"orb"`
	DRB         int     `json:"drb"`
	Ast         int     `json:"ast"`
	Tov         int     `json:"tov"`
	Stl         int     `json:"stl"`
	Blk         int     `json:"blk"`
	BA          int     `json:"ba"`
	PF          int     `json:"pf"`
	PM          int     `json:"pm"`
	Energy      float64 `json:"energy"`
	CourtTime   float64 `json:"-"`
	BenchTime   float64 `json:"-"`
}

// TRB returns total rebounds.
func (s Stat) TRB() int { return s.ORB + s.DRB }

// add accumulates the counting stats of o into s (used for team totals).
func (s *Stat) add(o Stat) {
	s.GS += o.GS
	s.Min += o.Min
	s.Pts += o.Pts
	s.FG += o.FG
	s.FGA += o.FGA
	s.FGAtRim += o.FGAtRim
	s.FGAAtRim += o.FGAAtRim
	s.FGLowPost += o.FGLowPost
	s.FGALowPost += o.FGALowPost
	s.FGMidRange += o.FGMidRange
	s.FGAMidRange += o.FGAMidRange
	s.TP += o.TP
	s.TPA += o.TPA
	s.FT += o.FT
	s.FTA += o.FTA
	s.ORB += o.ORB
	s.DRB += o.DRB
	s.Ast += o.Ast
	s.Tov += o.Tov
	s.Stl += o.Stl
	s.Blk += o.Blk
	s.BA += o.BA
	s.PF += o.PF
}

// PlayerState is a player's in-game state. Owned by exactly one TeamState.
type PlayerState struct {
	ID                   int
	Name                 string
	Age                  float64
	Pos                  string
	Value                float64 // overall value used by the rotation
	PTModifier           float64
	Ratings              Ratings
	Stat                 Stat
	Injured              bool
	NewInjury            bool
	PlayingThroughInjury bool
}

// Synergy holds the per-possession team multipliers.
type Synergy struct {
	Off float64
	Def float64
	Reb float64
}

// TeamStat holds team-level scoring.
type TeamStat struct {
	Pts     int
	PtsQtrs []int
}

// TeamState is one side of the game. The GameSim owns both TeamStates;
// components receive them for the duration of a single call only.
type TeamState struct {
	ID        int
	Name      string
	Pace      float64
	Stat      TeamStat
	Composite Ratings // only the six team composite kinds are populated
	Synergy   Synergy
	Players   []PlayerState
	OnCourt   []int // roster indexes, len == NumPlayersOnCourt
}

// isOnCourt reports whether roster index p is in the lineup.
func (t *TeamState) isOnCourt(p int) bool {
	for _, q := range t.OnCourt {
		if q == p {
			return true
		}
	}
	return false
}

// period returns the 1-based period currently being played.
func (t *TeamState) period() int {
	return len(t.Stat.PtsQtrs)
}
