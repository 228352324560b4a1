package tile

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tile is one of the fixed colour markers or the starting player marker.
type Tile int

const (
	StartingPlayer Tile = iota
	Red
	Blue
	Yellow
	Black
	White
)

// colors lists the drawable colours in declaration order.
var colors = []Tile{Red, Blue, Yellow, Black, White}

var symbols = [...]string{
	StartingPlayer: "S",
	Red:            "R",
	Blue:           "B",
	Yellow:         "Y",
	Black:          "K",
	White:          "W",
}

var names = [...]string{
	StartingPlayer: "starting player",
	Red:            "red",
	Blue:           "blue",
	Yellow:         "yellow",
	Black:          "black",
	White:          "white",
}

// Colors returns the five colour tiles in declaration order.
// The starting player marker is not a colour.
func Colors() []Tile {
	out := make([]Tile, len(colors))
	copy(out, colors)
	return out
}

// Valid reports whether t is one of the declared tiles.
func (t Tile) Valid() bool {
	return t >= 0 && int(t) < len(symbols)
}

// IsColor reports whether t is a drawable colour tile.
func (t Tile) IsColor() bool {
	return t.Valid() && t != StartingPlayer
}

// String returns the single-character symbol of the tile.
func (t Tile) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tile(%d)", int(t))
	}
	return symbols[t]
}

// Name returns a human readable, title-cased name ("Starting Player", "Red").
func (t Tile) Name() string {
	if !t.Valid() {
		return t.String()
	}
	// A Caser is stateful, so one is made per call.
	return cases.Title(language.English).String(names[t])
}

// MarshalText encodes the tile as its symbol.
func (t Tile) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid tile %d", int(t))
	}
	return []byte(symbols[t]), nil
}

// UnmarshalText decodes a tile symbol.
func (t *Tile) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Parse converts a symbol back to a Tile. Symbols are case-insensitive.
func Parse(symbol string) (Tile, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	for i, sym := range symbols {
		if sym == s {
			return Tile(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tile symbol %q", symbol)
}

// ParseList parses a comma-separated symbol list such as "R,B,R".
// An empty or all-space string yields an empty (nil) slice.
func ParseList(s string) ([]Tile, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]Tile, 0, len(parts))
	for i, p := range parts {
		t, err := Parse(p)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// Join renders tiles as comma-joined symbols, preserving order.
func Join(tiles []Tile) string {
	parts := make([]string, len(tiles))
	for i, t := range tiles {
		parts[i] = t.String()
	}
	return strings.Join(parts, ",")
}

// NewSet returns the standard bag content: perColor tiles of every colour,
// grouped by colour in declaration order.
func NewSet(perColor int) []Tile {
	if perColor <= 0 {
		return nil
	}
	out := make([]Tile, 0, perColor*len(colors))
	for _, c := range colors {
		for range perColor {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many tiles in tiles equal t.
func Count(tiles []Tile, t Tile) int {
	n := 0
	for _, x := range tiles {
		if x == t {
			n++
		}
	}
	return n
}
