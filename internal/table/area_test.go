package table

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/azul/internal/rng"
	"github.com/roach88/azul/internal/testutil"
	"github.com/roach88/azul/internal/tile"
)

func mustTiles(t *testing.T, s string) []tile.Tile {
	t.Helper()
	tiles, err := tile.ParseList(s)
	require.NoError(t, err)
	return tiles
}

func midRoundArea(t *testing.T) Area {
	return Compose(
		[]Factory{
			NewFactory(mustTiles(t, "R,B,R,Y")),
			NewFactory(mustTiles(t, "K,W,K,B")),
		},
		NewCenter(mustTiles(t, "S")),
		fullBag(),
		NewUsedTiles(nil),
	)
}

func emptyArea(t *testing.T, bag, used string) Area {
	return NewArea(Config{Factories: 2}, NewBag(mustTiles(t, bag)), NewUsedTiles(mustTiles(t, used)))
}

func TestTakeTiles_FromFactoryFlushesLeftovers(t *testing.T) {
	area := midRoundArea(t)

	next, taken := area.TakeTiles(0, 0)

	assert.Equal(t, []tile.Tile{tile.Red, tile.Red}, taken)
	assert.True(t, next.Factory(0).IsEmpty())
	assert.Equal(t, "Center(S,B,Y)", next.Center().Describe())
	assert.Equal(t, area.Factory(1).Tiles(), next.Factory(1).Tiles())
	assert.Equal(t, area.TotalTiles(), next.TotalTiles()+len(taken))
}

func TestTakeTiles_EmptiedFactoryLeavesCenter(t *testing.T) {
	area := Compose(
		[]Factory{NewFactory(mustTiles(t, "Y,Y,Y,Y"))},
		NewCenter(mustTiles(t, "S,R")),
		NewBag(nil),
		NewUsedTiles(nil),
	)

	next, taken := area.TakeTiles(0, 1)

	assert.Len(t, taken, 4)
	assert.Equal(t, "Factory0()|Center(S,R)|Bag()|UsedTiles()", next.Describe())
}

func TestTakeTiles_FromCenter(t *testing.T) {
	area := Compose(
		[]Factory{NewFactory(mustTiles(t, "R,B,R,Y")), NewFactory(nil)},
		NewCenter(mustTiles(t, "S,K,W,K")),
		NewBag(nil),
		NewUsedTiles(nil),
	)

	next, taken := area.TakeTiles(area.CenterSource(), 1)

	assert.Equal(t, []tile.Tile{tile.Black, tile.Black}, taken)
	assert.Equal(t, "Center(S,W)", next.Center().Describe())
	assert.Equal(t, area.Factory(0).Tiles(), next.Factory(0).Tiles())
}

func TestTakeTiles_ReceiverUnchanged(t *testing.T) {
	area := midRoundArea(t)
	before := area.Describe()

	_, _ = area.TakeTiles(1, 0)
	_, _ = area.TakeTiles(2, 0)

	assert.Equal(t, before, area.Describe())
}

func TestTakeTiles_InvalidSelectionPanics(t *testing.T) {
	area := midRoundArea(t)

	tests := []struct {
		name   string
		source int
		index  int
		code   ContractErrorCode
	}{
		{"negative source", -1, 0, ErrCodeSourceOutOfRange},
		{"source past center", 3, 0, ErrCodeSourceOutOfRange},
		{"factory index too large", 0, 4, ErrCodeTileOutOfRange},
		{"center index too large", 2, 1, ErrCodeTileOutOfRange},
		{"negative index", 1, -1, ErrCodeTileOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := area.CheckTake(tt.source, tt.index)
			require.Error(t, err)
			var ce *ContractError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.code, ce.Code)

			assert.PanicsWithValue(t, err, func() { area.TakeTiles(tt.source, tt.index) })
		})
	}

	assert.NoError(t, area.CheckTake(2, 0))
}

func TestIsRoundEnd(t *testing.T) {
	assert.False(t, midRoundArea(t).IsRoundEnd())

	empty := Compose(
		[]Factory{NewFactory(nil), NewFactory(nil)},
		NewCenter(nil),
		fullBag(),
		NewUsedTiles(nil),
	)
	assert.True(t, empty.IsRoundEnd())

	centerOnly := Compose([]Factory{NewFactory(nil)}, NewCenter(mustTiles(t, "S")), NewBag(nil), NewUsedTiles(nil))
	assert.False(t, centerOnly.IsRoundEnd())

	factoryOnly := Compose([]Factory{NewFactory(nil), NewFactory(mustTiles(t, "R"))}, NewCenter(nil), NewBag(nil), NewUsedTiles(nil))
	assert.False(t, factoryOnly.IsRoundEnd())
}

func TestStartNewRound_FillsFactories(t *testing.T) {
	area := NewArea(Config{Factories: 2}, fullBag(), NewUsedTiles(nil))
	src := testutil.NewScriptedSource(testutil.Cycle(2, 0, 1, 2, 3)...)

	next := area.StartNewRound(src)

	require.Equal(t, 2, next.FactoryCount())
	for i := range next.FactoryCount() {
		assert.Equal(t, 4, next.Factory(i).Len())
	}
	assert.Equal(t,
		"Factory0(R,R,B,B)|Factory1(R,B,Y,Y)|Center()|Bag(R,B,Y,Y,K,K,K,K,W,W,W,W)|UsedTiles()",
		next.Describe())
	assert.Equal(t, []int{20, 19, 18, 17, 16, 15, 14, 13}, src.Bounds())
	assert.Equal(t, area.TotalTiles(), next.TotalTiles())
}

func TestStartNewRound_ReplenishesFromUsed(t *testing.T) {
	area := emptyArea(t, "R,B", "Y,K,W")
	require.True(t, area.NeedsReplenish())
	src := testutil.NewScriptedSource(testutil.Cycle(2, 0, 1, 2, 3, 4)...)

	next := area.StartNewRound(src)

	assert.Zero(t, next.Used().Len())
	assert.Equal(t, "Factory0(R,Y,W,K)|Factory1()|Center()|Bag(B)|UsedTiles()", next.Describe())
	assert.Equal(t, area.TotalTiles(), next.TotalTiles())
}

func TestStartNewRound_UsedUntouchedWhenBagSuffices(t *testing.T) {
	area := NewArea(Config{Factories: 2}, NewBag(tile.NewSet(2)), NewUsedTiles(mustTiles(t, "K,K")))
	require.False(t, area.NeedsReplenish())

	next := area.StartNewRound(testutil.NewScriptedSource())

	assert.Equal(t, "UsedTiles(K,K)", next.Used().Describe())
	assert.Equal(t, 2, next.Bag().Len())
}

func TestStartNewRound_ReplenishBoundary(t *testing.T) {
	// Exactly factories*capacity tiles: no replenishment.
	area := emptyArea(t, "R,R,R,R,B,B,B,B", "W")
	assert.False(t, area.NeedsReplenish())
	next := area.StartNewRound(testutil.NewScriptedSource())
	assert.Equal(t, 1, next.Used().Len())
	assert.Zero(t, next.Bag().Len())

	// One short: replenishment.
	area = emptyArea(t, "R,R,R,R,B,B,B", "W")
	assert.True(t, area.NeedsReplenish())
	next = area.StartNewRound(testutil.NewScriptedSource())
	assert.Zero(t, next.Used().Len())
	assert.Zero(t, next.Bag().Len())
}

func TestStartNewRound_ClearsCenter(t *testing.T) {
	area := Compose([]Factory{NewFactory(nil)}, NewCenter(nil), fullBag(), NewUsedTiles(nil))

	next := area.StartNewRound(testutil.NewScriptedSource())

	assert.Equal(t, "Center()", next.Center().Describe())
	assert.Equal(t, "Factory0(R,R,R,R)", strings.Split(next.Describe(), "|")[0])
}

func TestStartNewRound_UnderfilledWhenExhausted(t *testing.T) {
	area := NewArea(Config{Factories: 3}, NewBag(mustTiles(t, "R,B,Y,K,W")), NewUsedTiles(nil))

	next := area.StartNewRound(testutil.NewScriptedSource())

	assert.Equal(t, 4, next.Factory(0).Len())
	assert.True(t, next.Factory(1).IsEmpty())
	assert.True(t, next.Factory(2).IsEmpty())
	assert.Equal(t, "Bag(W)", next.Bag().Describe())
}

func TestStartNewRound_CustomCapacity(t *testing.T) {
	area := NewArea(Config{Factories: 2, FactoryCapacity: 3}, fullBag(), NewUsedTiles(nil))
	assert.Equal(t, 3, area.FactoryCapacity())

	next := area.StartNewRound(testutil.NewScriptedSource())
	assert.Equal(t, 3, next.Factory(0).Len())
	assert.Equal(t, 3, next.Factory(1).Len())
	assert.Equal(t, 3, next.FactoryCapacity())

	assert.Equal(t, DefaultFactoryCapacity, area.WithFactoryCapacity(0).FactoryCapacity())
}

func TestGiveUsed(t *testing.T) {
	area := emptyArea(t, "", "R")
	next := area.GiveUsed(mustTiles(t, "B,Y"))

	assert.Equal(t, "UsedTiles(R,B,Y)", next.Used().Describe())
	assert.Equal(t, "UsedTiles(R)", area.Used().Describe())
}

// TestConservation_SeededPlay plays many seeded rounds, picking a valid take
// each turn and recycling every taken tile through the used pile.
func TestConservation_SeededPlay(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		t.Run(fmt.Sprintf("seed_%d", seed), func(t *testing.T) {
			src := rng.NewSeeded(seed)
			pick := rng.NewSeeded(seed + 1000)
			area := NewArea(Config{Factories: 5}, NewBag(tile.NewSet(20)), NewUsedTiles(nil))
			total := area.TotalTiles()
			perColour := make(map[tile.Tile]int)
			for _, c := range tile.Colors() {
				perColour[c] = area.Count(c)
			}

			for round := 0; round < 8; round++ {
				require.True(t, area.IsRoundEnd())
				area = area.StartNewRound(src)
				require.Equal(t, total, area.TotalTiles())

				var taken []tile.Tile
				for !area.IsRoundEnd() {
					source := nonEmptySource(area, pick)
					size := area.Center().Len()
					if source < area.FactoryCount() {
						size = area.Factory(source).Len()
					}
					before := area.TotalTiles()
					var got []tile.Tile
					area, got = area.TakeTiles(source, pick.NextIndex(size))
					require.NotEmpty(t, got)
					require.Equal(t, before, area.TotalTiles()+len(got))
					for _, f := range area.Factories() {
						require.True(t, f.IsEmpty() || f.Len() == area.FactoryCapacity(), "factory kept a remainder")
					}
					taken = append(taken, got...)
				}
				area = area.GiveUsed(taken)
				require.Equal(t, total, area.TotalTiles())
			}
			for c, n := range perColour {
				assert.Equal(t, n, area.Count(c), "colour %s", c)
			}
		})
	}
}

func nonEmptySource(a Area, pick rng.Source) int {
	var sources []int
	for i, f := range a.Factories() {
		if !f.IsEmpty() {
			sources = append(sources, i)
		}
	}
	if a.Center().Len() > 0 {
		sources = append(sources, a.CenterSource())
	}
	return sources[pick.NextIndex(len(sources))]
}

func TestDescribe_GoldenRound(t *testing.T) {
	area := NewArea(Config{Factories: 2}, fullBag(), NewUsedTiles(nil))
	src := testutil.NewScriptedSource(testutil.Cycle(2, 0, 1, 2, 3)...)

	var b strings.Builder
	area = area.StartNewRound(src)
	fmt.Fprintf(&b, "start_round\n%s\n", area.Describe())

	moves := [][2]int{{0, 0}, {1, 2}, {2, 0}, {2, 0}}
	for _, m := range moves {
		var taken []tile.Tile
		area, taken = area.TakeTiles(m[0], m[1])
		fmt.Fprintf(&b, "take %d %d -> %s\n%s\n", m[0], m[1], tile.Join(taken), area.Describe())
	}
	fmt.Fprintf(&b, "round_end=%t\n", area.IsRoundEnd())

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "round_trace", []byte(b.String()))
}
