package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/azul/internal/tile"
)

func TestFactoryTake_AllMatchingColour(t *testing.T) {
	factory := NewFactory([]tile.Tile{tile.Red, tile.Blue, tile.Red, tile.Yellow})

	rest, taken := factory.Take(0)

	assert.Equal(t, []tile.Tile{tile.Red, tile.Red}, taken)
	assert.Equal(t, []tile.Tile{tile.Blue, tile.Yellow}, rest.Tiles())
	assert.False(t, factory.IsEmpty())
	assert.False(t, rest.IsEmpty())
	assert.Equal(t, 4, factory.Len(), "receiver must be unchanged")
}

func TestFactoryTake_SelectionByLaterIndex(t *testing.T) {
	factory := NewFactory([]tile.Tile{tile.Red, tile.Blue, tile.Red, tile.Blue})

	rest, taken := factory.Take(3)

	assert.Equal(t, []tile.Tile{tile.Blue, tile.Blue}, taken)
	assert.Equal(t, []tile.Tile{tile.Red, tile.Red}, rest.Tiles())
}

func TestFactoryTake_SingleColourEmpties(t *testing.T) {
	factory := NewFactory([]tile.Tile{tile.White, tile.White, tile.White, tile.White})

	rest, taken := factory.Take(2)

	assert.Len(t, taken, 4)
	assert.True(t, rest.IsEmpty())
}

func TestFactoryTake_PartitionProperty(t *testing.T) {
	tiles := []tile.Tile{tile.Black, tile.Red, tile.Black, tile.White, tile.Red, tile.StartingPlayer}

	for i := range tiles {
		rest, taken := NewFactory(tiles).Take(i)
		selected := tiles[i]

		for _, x := range taken {
			assert.Equal(t, selected, x)
		}
		for _, x := range rest.Tiles() {
			assert.NotEqual(t, selected, x)
		}
		assert.Equal(t, len(tiles), len(taken)+rest.Len())
		for _, c := range append(tile.Colors(), tile.StartingPlayer) {
			assert.Equal(t, tile.Count(tiles, c), tile.Count(taken, c)+tile.Count(rest.Tiles(), c))
		}
	}
}

func TestFactoryTake_OutOfRangePanics(t *testing.T) {
	factory := NewFactory([]tile.Tile{tile.Red})

	for _, idx := range []int{-1, 1, 7} {
		func() {
			defer func() {
				r := recover()
				require.NotNil(t, r, "index %d should panic", idx)
				ce, ok := r.(*ContractError)
				require.True(t, ok, "panic value should be *ContractError, got %T", r)
				assert.Equal(t, ErrCodeTileOutOfRange, ce.Code)
				assert.Equal(t, idx, ce.Index)
			}()
			factory.Take(idx)
		}()
	}

	assert.Panics(t, func() { NewFactory(nil).Take(0) })
}

func TestFactory_IsEmpty(t *testing.T) {
	assert.True(t, NewFactory(nil).IsEmpty())
	assert.True(t, Factory{}.IsEmpty())
	assert.False(t, NewFactory([]tile.Tile{tile.Red}).IsEmpty())
}

func TestCenter_AddThenTake(t *testing.T) {
	center := NewCenter(nil)

	added := center.Add([]tile.Tile{tile.Red, tile.Blue})
	assert.Equal(t, []tile.Tile{tile.Red, tile.Blue}, added.Tiles())

	rest, taken := added.Take(0)
	assert.Equal(t, []tile.Tile{tile.Red}, taken)
	assert.Equal(t, []tile.Tile{tile.Blue}, rest.Tiles())
	assert.Zero(t, center.Len())
}

func TestCenterTake_MarkerNeverBundled(t *testing.T) {
	center := NewCenter([]tile.Tile{tile.StartingPlayer, tile.Red, tile.Blue, tile.Red})

	rest, taken := center.Take(1)
	assert.Equal(t, []tile.Tile{tile.Red, tile.Red}, taken)
	assert.Equal(t, "Center(S,B)", rest.Describe())

	rest, taken = rest.Take(0)
	assert.Equal(t, []tile.Tile{tile.StartingPlayer}, taken)
	assert.Equal(t, "Center(B)", rest.Describe())
}

func TestCenterTake_OutOfRangePanics(t *testing.T) {
	assert.Panics(t, func() { NewCenter(nil).Take(0) })
}

func TestContractError_Message(t *testing.T) {
	err := newTileRangeError(5, 2)
	assert.Equal(t, "TILE_OUT_OF_RANGE: selected tile position does not exist (index=5, len=2)", err.Error())
	assert.True(t, IsContractError(err))
}
