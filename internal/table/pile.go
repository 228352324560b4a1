package table

import (
	"fmt"

	"github.com/roach88/azul/internal/tile"
)

// clone returns an independent copy of tiles. A nil or empty input yields nil.
func clone(tiles []tile.Tile) []tile.Tile {
	if len(tiles) == 0 {
		return nil
	}
	out := make([]tile.Tile, len(tiles))
	copy(out, tiles)
	return out
}

// concat returns a fresh slice holding a followed by b.
func concat(a, b []tile.Tile) []tile.Tile {
	if len(a)+len(b) == 0 {
		return nil
	}
	out := make([]tile.Tile, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// partition selects tiles[index] and splits tiles into those equal to it and
// those that differ, preserving relative order in both halves.
// Panics with a *ContractError if index is out of range.
func partition(tiles []tile.Tile, index int) (matched, remaining []tile.Tile) {
	if index < 0 || index >= len(tiles) {
		panic(newTileRangeError(index, len(tiles)))
	}
	selected := tiles[index]
	for _, t := range tiles {
		if t == selected {
			matched = append(matched, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	return matched, remaining
}

// render formats a labelled pile: Label(R,B,Y).
func render(label string, tiles []tile.Tile) string {
	return fmt.Sprintf("%s(%s)", label, tile.Join(tiles))
}
