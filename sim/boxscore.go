package sim

import "github.com/hoopsim/hoopsim/sim/trace"

// GameResult is the final output of a game: box score, period scoring and
// the optional play-by-play.
type GameResult struct {
	GameID         int             `json:"gid"`
	Day            *int            `json:"day,omitempty"`
	Overtimes      int             `json:"overtimes"`
	NumPossessions int             `json:"numPossessions"`
	ElamTarget     int             `json:"elamTarget,omitempty"`
	Teams          [2]TeamBoxScore `json:"teams"`
	Plays          []trace.Play    `json:"plays,omitempty"`
}

// TeamBoxScore is one team's line. Totals sums every player's counting stats.
type TeamBoxScore struct {
	ID      int              `json:"tid"`
	Name    string           `json:"name"`
	Pts     int              `json:"pts"`
	PtsQtrs []int            `json:"ptsQtrs"`
	Totals  Stat             `json:"totals"`
	Players []PlayerBoxScore `json:"players"`
}

// PlayerBoxScore is one player's line.
type PlayerBoxScore struct {
	ID        int    `json:"pid"`
	Name      string `json:"name"`
	Pos       string `json:"pos"`
	Injured   bool   `json:"injured"`
	NewInjury bool   `json:"newInjury"`
	Stat      Stat   `json:"stat"`
}

// Winner returns the index of the winning team, or -1 for a tie.
func (r *GameResult) Winner() int {
	switch {
	case r.Teams[Home].Pts > r.Teams[Away].Pts:
		return Home
	case r.Teams[Away].Pts > r.Teams[Home].Pts:
		return Away
	default:
		return -1
	}
}

// Margin returns home points minus away points.
func (r *GameResult) Margin() int {
	return r.Teams[Home].Pts - r.Teams[Away].Pts
}

func (g *GameSim) buildResult() *GameResult {
	res := &GameResult{
		GameID:         g.opts.GameID,
		Day:            g.opts.Day,
		Overtimes:      g.overtimes,
		NumPossessions: g.numPossessions,
		Plays:          g.playByPlay.Plays(),
	}
	res.ElamTarget = g.elamTarget

	for t := range g.team {
		team := &g.team[t]
		box := TeamBoxScore{
			ID:      team.ID,
			Name:    team.Name,
			Pts:     team.Stat.Pts,
			PtsQtrs: append([]int(nil), team.Stat.PtsQtrs...),
			Players: make([]PlayerBoxScore, len(team.Players)),
		}
		for p := range team.Players {
			pl := &team.Players[p]
			box.Players[p] = PlayerBoxScore{
				ID:        pl.ID,
				Name:      pl.Name,
				Pos:       pl.Pos,
				Injured:   pl.Injured,
				NewInjury: pl.NewInjury,
				Stat:      pl.Stat,
			}
			box.Totals.add(pl.Stat)
		}
		res.Teams[t] = box
	}
	return res
}
