package trace

// PlaySummary aggregates counts from a play list.
type PlaySummary struct {
	TotalPlays    int
	Substitutions int
	Injuries      int
	KindCounts    map[string]int // play kind name → count
	TeamCounts    [2]int         // plays credited to each team
}

// Summarize computes aggregate counts from a play list.
// Safe for nil or empty input (returns zero-value fields).
func Summarize(plays []Play) *PlaySummary {
	summary := &PlaySummary{
		KindCounts: make(map[string]int),
	}

	summary.TotalPlays = len(plays)
	for _, p := range plays {
		summary.KindCounts[p.Kind.String()]++
		if p.Team == 0 || p.Team == 1 {
			summary.TeamCounts[p.Team]++
		}
		switch p.Kind {
		case PlaySub:
			summary.Substitutions++
		case PlayInjury:
			summary.Injuries++
		}
	}

	return summary
}
