package table

import "github.com/roach88/azul/internal/tile"

// UsedTiles is the discard pile waiting to be recycled into the bag.
type UsedTiles struct {
	tiles []tile.Tile
}

// NewUsedTiles creates a pile holding a copy of tiles.
func NewUsedTiles(tiles []tile.Tile) UsedTiles {
	return UsedTiles{tiles: clone(tiles)}
}

// Tiles returns a copy of the pile contents.
func (u UsedTiles) Tiles() []tile.Tile {
	return clone(u.tiles)
}

// Len returns the number of tiles in the pile.
func (u UsedTiles) Len() int {
	return len(u.tiles)
}

// Give appends tiles to the pile.
func (u UsedTiles) Give(tiles []tile.Tile) UsedTiles {
	return UsedTiles{tiles: concat(u.tiles, tiles)}
}

// TakeAll drains the pile, returning an empty pile and everything it held.
func (u UsedTiles) TakeAll() (UsedTiles, []tile.Tile) {
	return UsedTiles{}, clone(u.tiles)
}

// Describe renders the pile as UsedTiles(R,B,...).
func (u UsedTiles) Describe() string {
	return render("UsedTiles", u.tiles)
}
