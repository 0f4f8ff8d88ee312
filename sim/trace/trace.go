package trace

// PlayByPlay is an append-only log of plays for one game.
type PlayByPlay struct {
	plays []Play
}

// NewPlayByPlay creates an empty log ready for recording.
func NewPlayByPlay() *PlayByPlay {
	return &PlayByPlay{plays: make([]Play, 0, 512)}
}

// Record appends a play. Safe to call on a nil log (no-op), so callers can
// leave play-by-play disabled without branching.
func (pbp *PlayByPlay) Record(play Play) {
	if pbp == nil {
		return
	}
	pbp.plays = append(pbp.plays, play)
}

// Len returns the number of recorded plays.
func (pbp *PlayByPlay) Len() int {
	if pbp == nil {
		return 0
	}
	return len(pbp.plays)
}

// Plays returns a copy of the recorded plays in order.
// Returns nil for a nil log.
func (pbp *PlayByPlay) Plays() []Play {
	if pbp == nil {
		return nil
	}
	out := make([]Play, len(pbp.plays))
	copy(out, pbp.plays)
	return out
}
