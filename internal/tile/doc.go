// Package tile defines the closed set of tile values moved around the table.
//
// Tile is a leaf package: it imports nothing internal, and every other
// package in the module builds on it. Tiles compare by value; there is no
// per-tile identity, so a pile of tiles is a multiset represented as an
// ordered slice.
//
// Each tile renders as a single stable symbol used by diagnostic state dumps:
//
//	S  starting player marker
//	R  red
//	B  blue
//	Y  yellow
//	K  black
//	W  white
package tile
