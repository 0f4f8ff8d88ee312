package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN no plays
	// WHEN summarized
	summary := Summarize(nil)

	// THEN all counts are zero
	if summary.TotalPlays != 0 || summary.Substitutions != 0 || summary.Injuries != 0 {
		t.Errorf("expected zero counts, got %+v", summary)
	}
	if len(summary.KindCounts) != 0 {
		t.Error("expected empty kind counts")
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a mixed play list
	plays := []Play{
		{Kind: PlaySub, Team: 0, On: 1, Off: 2},
		{Kind: PlaySub, Team: 1, On: 11, Off: 12},
		{Kind: PlayInjury, Team: 1, On: 13, Off: NoPlayer},
		{Kind: PlayFgAtRim, Team: 0, On: 3, Off: NoPlayer},
		{Kind: PlayQuarter, Team: -1, On: NoPlayer, Off: NoPlayer},
	}

	// WHEN summarized
	summary := Summarize(plays)

	// THEN counts match
	if summary.TotalPlays != 5 {
		t.Errorf("expected 5 plays, got %d", summary.TotalPlays)
	}
	if summary.Substitutions != 2 {
		t.Errorf("expected 2 substitutions, got %d", summary.Substitutions)
	}
	if summary.Injuries != 1 {
		t.Errorf("expected 1 injury, got %d", summary.Injuries)
	}
	if summary.KindCounts["sub"] != 2 || summary.KindCounts["fgAtRim"] != 1 {
		t.Errorf("unexpected kind counts: %v", summary.KindCounts)
	}
	if summary.TeamCounts != [2]int{2, 2} {
		t.Errorf("team counts = %v, want [2 2]", summary.TeamCounts)
	}
}
