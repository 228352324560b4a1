package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/azul/internal/event"
	"github.com/roach88/azul/internal/tile"
)

func TestReadGame_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := testGame()
	require.NoError(t, s.WriteGame(ctx, want))

	got, err := s.ReadGame(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadGame_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.ReadGame(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestReadEvents_OrderedBySeq(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.WriteGame(ctx, testGame()))

	// Insert out of order; reads must come back by seq.
	for _, seq := range []int64{3, 1, 2} {
		require.NoError(t, s.AppendEvent(ctx, "game-1", testEvent(seq, event.KindDiscard, tile.White)))
	}

	events, err := s.ReadEvents(ctx, "game-1")
	require.NoError(t, err)
	require.Len(t, events, 3)
	for i, e := range events {
		assert.Equal(t, int64(i+1), e.Seq)
		assert.Equal(t, []tile.Tile{tile.White}, e.Tiles)
		assert.NoError(t, e.Verify())
	}
}

func TestReadEvents_Empty(t *testing.T) {
	s := openTestStore(t)

	events, err := s.ReadEvents(context.Background(), "none")
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestReadEvents_EmptyTiles(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.WriteGame(ctx, testGame()))
	require.NoError(t, s.AppendEvent(ctx, "game-1", testEvent(1, event.KindStartRound)))

	events, err := s.ReadEvents(ctx, "game-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Empty(t, events[0].Tiles)
	assert.Equal(t, event.KindStartRound, events[0].Kind)
}

func TestListGames(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	games, err := s.ListGames(ctx)
	require.NoError(t, err)
	assert.NotNil(t, games)
	assert.Empty(t, games)

	a := testGame()
	a.ID = "b-game"
	b := testGame()
	b.ID = "a-game"
	require.NoError(t, s.WriteGame(ctx, a))
	require.NoError(t, s.WriteGame(ctx, b))
	require.NoError(t, s.AppendEvent(ctx, "b-game", testEvent(1, event.KindStartRound)))
	require.NoError(t, s.AppendEvent(ctx, "b-game", testEvent(2, event.KindTake, tile.Red)))
	require.NoError(t, s.AppendEvent(ctx, "b-game", testEvent(3, event.KindStartRound)))

	games, err = s.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, "a-game", games[0].ID)
	assert.Equal(t, 0, games[0].Events)
	assert.Equal(t, int64(0), games[0].Seq)

	assert.Equal(t, "b-game", games[1].ID)
	assert.Equal(t, 3, games[1].Events)
	assert.Equal(t, 2, games[1].Rounds)
	assert.Equal(t, int64(3), games[1].Seq)
	assert.Equal(t, a.Seed, games[1].Seed)
}
