package table

import "github.com/roach88/azul/internal/tile"

// Center is the shared pool that collects factory leftovers.
//
// The starting player marker may sit in the center alongside colour tiles.
// It is a distinct tile, so it is only ever taken when selected directly.
type Center struct {
	tiles []tile.Tile
}

// NewCenter creates a center holding a copy of tiles.
func NewCenter(tiles []tile.Tile) Center {
	return Center{tiles: clone(tiles)}
}

// Tiles returns a copy of the center contents.
func (c Center) Tiles() []tile.Tile {
	return clone(c.tiles)
}

// Len returns the number of tiles in the center.
func (c Center) Len() int {
	return len(c.tiles)
}

// Add appends tiles to the center.
func (c Center) Add(tiles []tile.Tile) Center {
	return Center{tiles: concat(c.tiles, tiles)}
}

// Take selects the tile at index and removes every tile of the same kind,
// with the same partition rule as Factory.Take.
// Panics with a *ContractError if index is out of range.
func (c Center) Take(index int) (Center, []tile.Tile) {
	matched, remaining := partition(c.tiles, index)
	return Center{tiles: remaining}, matched
}

// Describe renders the center as Center(R,B,...).
func (c Center) Describe() string {
	return render("Center", c.tiles)
}
