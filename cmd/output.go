package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/hoopsim/hoopsim/sim"
	"github.com/hoopsim/hoopsim/sim/series"
)

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeBoxScore renders a finished game as plain text tables.
func writeBoxScore(w io.Writer, res *sim.GameResult) error {
	home, away := res.Teams[sim.Home], res.Teams[sim.Away]
	suffix := ""
	if res.Overtimes == 1 {
		suffix = " (OT)"
	} else if res.Overtimes > 1 {
		suffix = fmt.Sprintf(" (%dOT)", res.Overtimes)
	}
	if _, err := fmt.Fprintf(w, "=== Game %d: %s %d, %s %d%s ===\n",
		res.GameID, home.Name, home.Pts, away.Name, away.Pts, suffix); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "\t")
	for q := range home.PtsQtrs {
		fmt.Fprintf(tw, "%s\t", periodLabel(q, len(home.PtsQtrs)-res.Overtimes))
	}
	fmt.Fprint(tw, "T\t\n")
	for _, team := range res.Teams {
		fmt.Fprintf(tw, "%s\t", team.Name)
		for _, pts := range team.PtsQtrs {
			fmt.Fprintf(tw, "%d\t", pts)
		}
		fmt.Fprintf(tw, "%d\t\n", team.Pts)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, team := range res.Teams {
		if _, err := fmt.Fprintf(w, "\n%s\n", team.Name); err != nil {
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "Name\tPos\tMIN\tFG\t3P\tFT\tORB\tTRB\tAST\tTOV\tSTL\tBLK\tPF\tPTS\t+/-\t")
		for _, p := range team.Players {
			name := p.Name
			if p.Stat.GS > 0 {
				name += "*"
			}
			if p.NewInjury {
				name += " (inj)"
			}
			writeStatLine(tw, name, p.Pos, p.Stat, fmt.Sprintf("%+d", p.Stat.PM))
		}
		writeStatLine(tw, "Totals", "", team.Totals, "")
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func writeStatLine(w io.Writer, name, pos string, st sim.Stat, pm string) {
	fmt.Fprintf(w, "%s\t%s\t%.1f\t%d-%d\t%d-%d\t%d-%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%s\t\n",
		name, pos, st.Min, st.FG, st.FGA, st.TP, st.TPA, st.FT, st.FTA,
		st.ORB, st.TRB(), st.Ast, st.Tov, st.Stl, st.Blk, st.PF, st.Pts, pm)
}

func periodLabel(i, numPeriods int) string {
	if i < numPeriods {
		return fmt.Sprintf("Q%d", i+1)
	}
	if ot := i - numPeriods + 1; ot > 1 {
		return fmt.Sprintf("OT%d", ot)
	}
	return "OT"
}

// writeSeriesSummary renders series statistics as plain text.
func writeSeriesSummary(w io.Writer, names [2]string, s *series.Summary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "=== Series: %s vs %s ===\n", names[sim.Home], names[sim.Away])
	fmt.Fprintf(&b, "Games            : %d\n", s.Games)
	fmt.Fprintf(&b, "Record           : %d-%d\n", s.HomeWins, s.AwayWins)
	fmt.Fprintf(&b, "Overtime games   : %d\n", s.OvertimeGames)
	fmt.Fprintf(&b, "Mean score       : %.1f-%.1f\n", s.MeanHomePts, s.MeanAwayPts)
	fmt.Fprintf(&b, "Mean total       : %.1f\n", s.MeanTotal)
	fmt.Fprintf(&b, "Margin mean/std  : %+.2f / %.2f\n", s.MeanMargin, s.StdDevMargin)
	fmt.Fprintf(&b, "Margin p10/p90   : %+.0f / %+.0f\n", s.P10Margin, s.P90Margin)
	fmt.Fprintf(&b, "Mean possessions : %.1f\n", s.MeanPossession)
	_, err := io.WriteString(w, b.String())
	return err
}
