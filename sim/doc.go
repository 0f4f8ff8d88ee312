// Package sim simulates a single basketball game possession by possession.
//
// # Reading Guide
//
// Start with these files to understand the game loop:
//   - game.go: GameSim construction, periods, overtime, the Elam ending and
//     the per-possession sequence
//   - outcome.go: possession outcomes (clock expiry, turnover, foul, shot)
//   - shot.go: shot selection, blocks, makes, free throws and rebounds
//   - rotation.go: substitutions, foul trouble and blowout handling
//
// # Architecture
//
// A GameSim owns both TeamStates for the length of one game. Every
// possession swaps offense and defense, lets the rotation update the
// lineups, refreshes synergy and composite ratings, resolves the outcome,
// then applies fatigue and injuries. The result is a GameResult box score
// and, when enabled, a trace.PlayByPlay log.
//
// Randomness comes from a PartitionedRNG: each subsystem (possession,
// rotation, injury) draws from its own stream derived from the game seed,
// so adding draws in one subsystem does not shift the others. Equal seeds
// and inputs produce identical games.
//
// Sub-packages:
//   - sim/trace/: play-by-play records and summaries
//   - sim/series/: concurrent multi-game series with summary statistics
//   - sim/store/: SQLite persistence for finished games
package sim
