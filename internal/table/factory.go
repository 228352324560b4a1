package table

import "github.com/roach88/azul/internal/tile"

// Factory is one display group filled from the bag at the start of a round.
type Factory struct {
	tiles []tile.Tile
}

// NewFactory creates a factory holding a copy of tiles.
func NewFactory(tiles []tile.Tile) Factory {
	return Factory{tiles: clone(tiles)}
}

// Tiles returns a copy of the factory contents.
func (f Factory) Tiles() []tile.Tile {
	return clone(f.tiles)
}

// Len returns the number of tiles on the factory.
func (f Factory) Len() int {
	return len(f.tiles)
}

// IsEmpty reports whether the factory holds no tiles.
func (f Factory) IsEmpty() bool {
	return len(f.tiles) == 0
}

// Take selects the tile at index and removes every tile of the same kind.
// The returned factory keeps only the tiles that differ from the selection.
// Panics with a *ContractError if index is out of range.
func (f Factory) Take(index int) (Factory, []tile.Tile) {
	matched, remaining := partition(f.tiles, index)
	return Factory{tiles: remaining}, matched
}

func (f Factory) describe(label string) string {
	return render(label, f.tiles)
}
