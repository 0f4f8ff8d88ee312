package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoopsim/hoopsim/sim/trace"
)

func TestRotation_StartersCreditedOnce(t *testing.T) {
	g := uniformGame(t, DefaultGameConfig(), 1)

	for tm := range g.team {
		for p, pl := range g.team[tm].Players {
			want := 0
			if p < 5 {
				want = 1
			}
			assert.Equal(t, want, pl.Stat.GS, "team %d player %d", tm, p)
		}
	}

	// WHEN another rotation pass runs
	g.updatePlayersOnCourt()

	// THEN starts are not credited again
	gs := 0
	for _, pl := range g.team[Home].Players {
		gs += pl.Stat.GS
	}
	assert.Equal(t, 5, gs)
	assert.Empty(t, g.playByPlay.Plays(), "starting lineups are not substitutions")
}

func TestRotation_InjuredStarterReplaced(t *testing.T) {
	// GIVEN a depth chart whose first player is injured
	home := testTeam(1, 10, 0.5)
	home.Players[0].Injured = true

	g := newTestGame(t, DefaultGameConfig(), DefaultGameOptions(1), [2]TeamInput{home, testTeam(2, 10, 0.5)}, 3)

	// THEN the first healthy reserve starts in their place
	assert.Equal(t, []int{105, 101, 102, 103, 104}, lineupIDs(g, Home))
	assert.Equal(t, 0, g.team[Home].Players[0].Stat.GS)
	assert.Equal(t, 1, g.team[Home].Players[5].Stat.GS)
}

func TestRotation_InjuredPlayerStaysWhenUnavoidable(t *testing.T) {
	// GIVEN only five players, one injured
	home := testTeam(1, 5, 0.5)
	home.Players[2].Injured = true

	g := newTestGame(t, DefaultGameConfig(), DefaultGameOptions(1), [2]TeamInput{home, testTeam(2, 5, 0.5)}, 3)

	// THEN the team still fields five
	assert.Equal(t, []int{100, 101, 102, 103, 104}, lineupIDs(g, Home))
}

func TestRotation_FouledOutPlayerReplaced(t *testing.T) {
	// GIVEN a starter reaching the foul-out limit mid-game
	g := uniformGame(t, DefaultGameConfig(), 5)
	g.team[Home].Players[1].Stat.PF = 6

	// WHEN the rotation runs
	subs := g.updatePlayersOnCourt()

	// THEN the player leaves for the first eligible reserve and a sub play is logged
	require.True(t, subs)
	assert.False(t, g.team[Home].isOnCourt(1))
	assert.True(t, g.team[Home].isOnCourt(5))
	plays := g.playByPlay.Plays()
	require.Len(t, plays, 1)
	assert.Equal(t, trace.PlaySub, plays[0].Kind)
	assert.Equal(t, Home, plays[0].Team)
	assert.Equal(t, 105, plays[0].On)
	assert.Equal(t, 101, plays[0].Off)
}

func TestRotation_FouledOutFallback(t *testing.T) {
	// GIVEN six players, two of them fouled out and on court
	g := newTestGame(t, DefaultGameConfig(), DefaultGameOptions(1),
		[2]TeamInput{testTeam(1, 6, 0.5), testTeam(2, 6, 0.5)}, 9)
	g.team[Home].Players[0].Stat.PF = 6
	g.team[Home].Players[1].Stat.PF = 6

	// WHEN the rotation runs
	g.updatePlayersOnCourt()

	// THEN the only eligible reserve comes in and one fouled-out player
	// has to stay on court
	home := &g.team[Home]
	assert.Len(t, home.OnCourt, 5)
	assert.True(t, home.isOnCourt(5))
	fouledOut := 0
	for _, p := range home.OnCourt {
		if home.Players[p].Stat.PF >= 6 {
			fouledOut++
		}
	}
	assert.Equal(t, 1, fouledOut)
}

func TestRotation_PositionalVeto(t *testing.T) {
	// GIVEN a weak point guard and a much better center on the bench,
	// everyone past the minimum court and bench time
	home := testTeam(1, 6, 0.5)
	home.Players[0].Value = 10
	for i := 1; i < 5; i++ {
		home.Players[i].Value = 60
	}
	home.Players[5].Pos = "C"
	home.Players[5].Value = 100

	setup := func(pgEnergy float64) *GameSim {
		g := newTestGame(t, DefaultGameConfig(), DefaultGameOptions(1), [2]TeamInput{home, testTeam(2, 6, 0.5)}, 11)
		for i := 0; i < 5; i++ {
			g.team[Home].Players[i].Stat.CourtTime = 3
		}
		g.team[Home].Players[5].Stat.BenchTime = 3
		g.team[Home].Players[0].Stat.Energy = pgEnergy
		return g
	}

	t.Run("fresh guard is not swapped for a center", func(t *testing.T) {
		g := setup(1)
		g.updatePlayersOnCourt()
		assert.True(t, g.team[Home].isOnCourt(0), "point guard stays")
		assert.True(t, g.team[Home].isOnCourt(5), "center replaces another slot")
	})

	t.Run("exhausted guard is swapped anyway", func(t *testing.T) {
		g := setup(0.5)
		g.updatePlayersOnCourt()
		assert.False(t, g.team[Home].isOnCourt(0))
		assert.True(t, g.team[Home].isOnCourt(5))
	})
}

func TestPositionsBalanced(t *testing.T) {
	lineup := func(pos ...string) *TeamState {
		ts := &TeamState{}
		for i, p := range pos {
			ts.Players = append(ts.Players, PlayerState{Pos: p})
			ts.OnCourt = append(ts.OnCourt, i)
		}
		return ts
	}
	withBench := func(ts *TeamState, pos string) int {
		ts.Players = append(ts.Players, PlayerState{Pos: pos})
		return len(ts.Players) - 1
	}

	tests := []struct {
		name     string
		lineup   []string
		slot     int
		incoming string
		want     bool
	}{
		{"one guard and no point guard", []string{"SG", "SF", "SF", "PF", "C"}, 1, "SF", false},
		{"point guard covers guards", []string{"SG", "SF", "SF", "PF", "C"}, 1, "PG", true},
		{"no forwards and no center", []string{"PG", "SG", "SF", "SG", "C"}, 4, "G", false},
		{"center covers forwards", []string{"PG", "SG", "SF", "SG", "C"}, 2, "G", true},
		{"three a side needs a guard", []string{"PG", "SF", "C"}, 0, "C", false},
		{"two a side is unconstrained", []string{"C", "C"}, 0, "C", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := lineup(tt.lineup...)
			b := withBench(ts, tt.incoming)
			assert.Equal(t, tt.want, positionsBalanced(ts, tt.slot, b))
		})
	}
}

func TestFoulTroubleFactor(t *testing.T) {
	assert.Equal(t, 1.0, foulTroubleFactor(1, 3, 6))
	assert.Equal(t, 0.8, foulTroubleFactor(3, 3, 6))
	assert.Equal(t, 0.7, foulTroubleFactor(4, 3, 6))
	assert.Equal(t, 0.1, foulTroubleFactor(6, 6, 6))
	assert.Equal(t, 1.0, foulTroubleFactor(9, noFoulLimit, 0), "foul outs disabled")
}

func TestGetFoulTroubleLimit(t *testing.T) {
	cfg := DefaultGameConfig()
	g := uniformGame(t, cfg, 1)
	setClock := func(period int, minutesLeft float64) {
		g.team[Home].Stat.PtsQtrs = make([]int, period)
		g.team[Away].Stat.PtsQtrs = make([]int, period)
		g.t = minutesLeft
	}

	setClock(1, 12)
	assert.Equal(t, 2, g.getFoulTroubleLimit(), "start of game")

	setClock(3, 6)
	assert.Equal(t, 4, g.getFoulTroubleLimit(), "ceil(0.625 * 6)")

	setClock(4, 10)
	assert.Equal(t, 5, g.getFoulTroubleLimit(), "ceil(0.79 * 6)")

	setClock(4, 7)
	assert.Equal(t, 6, g.getFoulTroubleLimit(), "late fourth quarter")

	setClock(5, 5)
	g.overtimes = 1
	assert.Equal(t, 6, g.getFoulTroubleLimit(), "overtime")
}

func TestGetFoulTroubleLimit_AlwaysInRange(t *testing.T) {
	for _, foulOut := range []int{3, 5, 6, 10} {
		cfg := DefaultGameConfig()
		cfg.FoulsNeededToFoulOut = foulOut
		g := uniformGame(t, cfg, 1)
		for period := 1; period <= cfg.NumPeriods; period++ {
			g.team[Home].Stat.PtsQtrs = make([]int, period)
			for tLeft := cfg.QuarterLength; tLeft >= 0; tLeft -= 0.25 {
				g.t = tLeft
				limit := g.getFoulTroubleLimit()
				assert.GreaterOrEqual(t, limit, 2)
				assert.LessOrEqual(t, limit, foulOut)
			}
		}
	}
}

func TestGetFoulTroubleLimit_FoulOutsDisabled(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.FoulsNeededToFoulOut = 0
	g := uniformGame(t, cfg, 1)
	assert.Equal(t, noFoulLimit, g.getFoulTroubleLimit())
}

func TestIsBlowout(t *testing.T) {
	g := uniformGame(t, DefaultGameConfig(), 1)
	g.team[Home].Stat.PtsQtrs = []int{0, 0, 0, 0}
	g.team[Home].Stat.Pts = 100
	g.team[Away].Stat.Pts = 80

	g.t = 5
	assert.True(t, g.isBlowout())
	g.t = 8
	assert.False(t, g.isBlowout())

	// Not in the third quarter
	g.team[Home].Stat.PtsQtrs = []int{0, 0, 0}
	g.t = 0.5
	assert.False(t, g.isBlowout())
}

func TestIsLateGame(t *testing.T) {
	tests := []struct {
		name        string
		period      int
		minutesLeft float64
		elamTarget  int // 0 = no Elam ending
		leaderPts   int
		want        bool
	}{
		{"third quarter", 3, 2, 0, 80, false},
		{"final period, six minutes left", 4, 6, 0, 80, false},
		{"final period, under six minutes", 4, 5.9, 0, 80, true},
		{"overtime", 5, 4, 0, 100, true},
		{"elam, fifteen to target", 4, 3, 115, 100, true},
		{"elam, sixteen to target", 4, 3, 116, 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := uniformGame(t, DefaultGameConfig(), 1)
			g.team[Home].Stat.PtsQtrs = make([]int, tt.period)
			g.t = tt.minutesLeft
			g.team[Home].Stat.Pts = tt.leaderPts
			g.team[Away].Stat.Pts = tt.leaderPts - 3
			if tt.elamTarget > 0 {
				g.elamActive = true
				g.elamTarget = tt.elamTarget
			}
			assert.Equal(t, tt.want, g.isLateGame())
		})
	}
}

func TestPlayerRatings_LateGameHasNoNoise(t *testing.T) {
	// GIVEN a rested ten-man roster
	team, err := newTeamState(testTeam(1, 10, 0.5), 5, "home")
	require.NoError(t, err)

	t.Run("late game", func(t *testing.T) {
		rc := &rotationContext{rng: rand.New(rand.NewSource(7)), numOnCourt: 5, foulOut: 6, foulLimit: 3, lateGame: true}

		// WHEN ratings are computed in crunch time
		ovrs := rc.playerRatings(&team, false)

		// THEN each rating is the bare value and no noise is drawn
		for p, ovr := range ovrs {
			assert.Equal(t, team.Players[p].Value, ovr)
		}
		assert.Equal(t, rand.New(rand.NewSource(7)).Float64(), rc.rng.Float64())
	})

	t.Run("earlier in the game", func(t *testing.T) {
		rc := &rotationContext{rng: rand.New(rand.NewSource(7)), numOnCourt: 5, foulOut: 6, foulLimit: 3}

		ovrs := rc.playerRatings(&team, false)

		// THEN ratings carry up to 10% noise drawn from the rotation stream
		noisy := 0
		for p, ovr := range ovrs {
			value := team.Players[p].Value
			assert.GreaterOrEqual(t, ovr, 0.9*value)
			assert.LessOrEqual(t, ovr, 1.1*value)
			if ovr != value {
				noisy++
			}
		}
		assert.Positive(t, noisy)
	})
}
