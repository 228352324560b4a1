package table

import (
	"fmt"
	"strings"

	"github.com/roach88/azul/internal/rng"
	"github.com/roach88/azul/internal/tile"
)

// DefaultFactoryCapacity is the number of tiles drawn onto each factory.
const DefaultFactoryCapacity = 4

// Config fixes the shape of an Area.
type Config struct {
	// Factories is the number of factory slots.
	Factories int

	// FactoryCapacity is the number of tiles drawn per factory each round.
	// Zero means DefaultFactoryCapacity.
	FactoryCapacity int
}

func (c Config) capacity() int {
	if c.FactoryCapacity <= 0 {
		return DefaultFactoryCapacity
	}
	return c.FactoryCapacity
}

// Area is the aggregate of factories, center, bag and used tiles.
//
// Source slots are addressed by index: 0..FactoryCount()-1 are the
// factories and FactoryCount() is the center.
type Area struct {
	factories []Factory
	center    Center
	bag       Bag
	used      UsedTiles
	capacity  int
}

// NewArea creates an area with cfg.Factories empty factories, an empty
// center, and the given bag and used pile. Call StartNewRound to fill it.
func NewArea(cfg Config, bag Bag, used UsedTiles) Area {
	n := cfg.Factories
	if n < 0 {
		n = 0
	}
	return Area{
		factories: make([]Factory, n),
		bag:       bag,
		used:      used,
		capacity:  cfg.capacity(),
	}
}

// Compose assembles an area from explicit parts, using the default factory
// capacity. It is meant for restoring a known position (tests, scenarios).
func Compose(factories []Factory, center Center, bag Bag, used UsedTiles) Area {
	fs := make([]Factory, len(factories))
	copy(fs, factories)
	return Area{
		factories: fs,
		center:    center,
		bag:       bag,
		used:      used,
		capacity:  DefaultFactoryCapacity,
	}
}

// WithFactoryCapacity returns a copy of the area that fills factories with n
// tiles on the next round. Non-positive n restores the default.
func (a Area) WithFactoryCapacity(n int) Area {
	a.capacity = Config{FactoryCapacity: n}.capacity()
	return a
}

// FactoryCount returns the number of factory slots.
func (a Area) FactoryCount() int {
	return len(a.factories)
}

// CenterSource returns the source index that addresses the center.
func (a Area) CenterSource() int {
	return len(a.factories)
}

// FactoryCapacity returns the per-factory draw size.
func (a Area) FactoryCapacity() int {
	return a.capacity
}

// Factories returns a copy of the factory slots in index order.
func (a Area) Factories() []Factory {
	out := make([]Factory, len(a.factories))
	copy(out, a.factories)
	return out
}

// Factory returns the factory at slot i. Panics if i is out of range.
func (a Area) Factory(i int) Factory {
	return a.factories[i]
}

// Center returns the table center.
func (a Area) Center() Center { return a.center }

// Bag returns the bag.
func (a Area) Bag() Bag { return a.bag }

// Used returns the used-tiles pile.
func (a Area) Used() UsedTiles { return a.used }

// CheckTake reports whether TakeTiles(source, index) would be a valid
// selection, returning a *ContractError if not.
func (a Area) CheckTake(source, index int) error {
	n := len(a.factories)
	if source < 0 || source > n {
		return newSourceRangeError(source, n)
	}
	size := a.center.Len()
	if source < n {
		size = a.factories[source].Len()
	}
	if index < 0 || index >= size {
		e := newTileRangeError(index, size)
		e.Source = source
		return e
	}
	return nil
}

// TakeTiles takes every tile matching the one at index from the addressed
// source.
//
// When source equals FactoryCount the center is taken from. Otherwise the
// factory at source is taken from, and whatever it has left is moved into
// the center at once, so a factory never keeps a remainder. The factory slot
// is replaced in place; other factories are shared unchanged.
//
// Panics with a *ContractError on an invalid selection.
func (a Area) TakeTiles(source, index int) (Area, []tile.Tile) {
	if err := a.CheckTake(source, index); err != nil {
		panic(err)
	}

	if source == len(a.factories) {
		center, taken := a.center.Take(index)
		next := a
		next.center = center
		return next, taken
	}

	factory, taken := a.factories[source].Take(index)
	factories := make([]Factory, len(a.factories))
	copy(factories, a.factories)

	next := a
	if !factory.IsEmpty() {
		next.center = a.center.Add(factory.tiles)
		factory = Factory{}
	}
	factories[source] = factory
	next.factories = factories
	return next, taken
}

// IsRoundEnd reports whether every factory and the center are empty.
func (a Area) IsRoundEnd() bool {
	for _, f := range a.factories {
		if !f.IsEmpty() {
			return false
		}
	}
	return a.center.Len() == 0
}

// NeedsReplenish reports whether StartNewRound will first drain the used
// pile into the bag: the bag holds fewer tiles than one full round needs.
func (a Area) NeedsReplenish() bool {
	return a.bag.Len() < len(a.factories)*a.capacity
}

// StartNewRound refills every factory from the bag and clears the center.
//
// If NeedsReplenish, the used pile is drained and appended to the bag first
// (bag tiles, then used tiles). Factories are then filled in slot order, each
// draw seeing the bag left by the previous one. A factory whose draw finds
// too few tiles is left short or empty; nothing is rebalanced.
//
// The current center contents are discarded from the area; callers that
// care about conservation must run StartNewRound only at round end.
func (a Area) StartNewRound(src rng.Source) Area {
	bag, used := a.bag, a.used
	if a.NeedsReplenish() {
		var recycled []tile.Tile
		used, recycled = used.TakeAll()
		bag = bag.Refill(recycled)
	}

	factories := make([]Factory, len(a.factories))
	for i := range factories {
		var drawn []tile.Tile
		bag, drawn = bag.Take(a.capacity, src)
		factories[i] = Factory{tiles: drawn}
	}

	return Area{
		factories: factories,
		center:    Center{},
		bag:       bag,
		used:      used,
		capacity:  a.capacity,
	}
}

// GiveUsed returns an area whose used pile has tiles appended. This is how
// tiles leaving player boards re-enter the recycling loop.
func (a Area) GiveUsed(tiles []tile.Tile) Area {
	a.used = a.used.Give(tiles)
	return a
}

// TotalTiles counts every tile across factories, center, bag and used pile.
func (a Area) TotalTiles() int {
	n := a.center.Len() + a.bag.Len() + a.used.Len()
	for _, f := range a.factories {
		n += f.Len()
	}
	return n
}

// Count returns how many tiles equal to t are held anywhere in the area.
func (a Area) Count(t tile.Tile) int {
	n := tile.Count(a.center.tiles, t) + tile.Count(a.bag.tiles, t) + tile.Count(a.used.tiles, t)
	for _, f := range a.factories {
		n += tile.Count(f.tiles, t)
	}
	return n
}

// Describe renders the full state for snapshot comparison:
//
//	Factory0(R,R,B,Y)|Factory1()|Center(S)|Bag(...)|UsedTiles(...)
func (a Area) Describe() string {
	parts := make([]string, 0, len(a.factories)+3)
	for i, f := range a.factories {
		parts = append(parts, f.describe(fmt.Sprintf("Factory%d", i)))
	}
	parts = append(parts, a.center.Describe(), a.bag.Describe(), a.used.Describe())
	return strings.Join(parts, "|")
}
