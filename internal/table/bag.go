package table

import (
	"github.com/roach88/azul/internal/rng"
	"github.com/roach88/azul/internal/tile"
)

// Bag holds the undrawn tiles. The slice order gives deterministic
// enumeration only; it carries no gameplay meaning.
type Bag struct {
	tiles []tile.Tile
}

// NewBag creates a bag holding a copy of tiles.
func NewBag(tiles []tile.Tile) Bag {
	return Bag{tiles: clone(tiles)}
}

// Tiles returns a copy of the bag contents.
func (b Bag) Tiles() []tile.Tile {
	return clone(b.tiles)
}

// Len returns the number of tiles in the bag.
func (b Bag) Len() int {
	return len(b.tiles)
}

// Take draws count tiles without replacement.
//
// Each draw asks src for an index bounded by the current remaining size, so
// the bounds requested are Len(), Len()-1, ... and a scripted source must
// replay exactly that sequence to reproduce a draw. Drawn tiles are returned
// in draw order.
//
// If the bag holds fewer than count tiles nothing is drawn: the receiver is
// returned unchanged with a nil slice.
func (b Bag) Take(count int, src rng.Source) (Bag, []tile.Tile) {
	if count <= 0 || len(b.tiles) < count {
		return b, nil
	}

	remaining := clone(b.tiles)
	drawn := make([]tile.Tile, 0, count)
	for range count {
		if len(remaining) == 0 {
			break
		}
		i := src.NextIndex(len(remaining))
		drawn = append(drawn, remaining[i])
		remaining = append(remaining[:i], remaining[i+1:]...)
	}
	return Bag{tiles: remaining}, drawn
}

// Refill returns a bag with tiles appended after the current contents.
// No shuffling happens here; randomness is applied only by Take.
func (b Bag) Refill(tiles []tile.Tile) Bag {
	return Bag{tiles: concat(b.tiles, tiles)}
}

// Describe renders the bag as Bag(R,B,...).
func (b Bag) Describe() string {
	return render("Bag", b.tiles)
}
