// Package harness runs table scenarios against a real game.
//
// A scenario fixes a starting position and a scripted random source, applies
// operations through engine.Game, and checks each outcome. Every scenario
// runs on its own in-memory store, so the journal it leaves behind can be
// replayed and compared with the live game.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: replenish_from_used
//	description: "Short bag is topped up from the used pile"
//	config:
//	  factory_capacity: 4
//	setup:
//	  factories: ["", ""]
//	  bag: "R,B"
//	  used: "Y,K,W"
//	random: [0, 1, 2, 3, 4]
//	conserve: true
//	steps:
//	  - action: start_round
//	    expect:
//	      describe: "Factory0(R,Y,W,K)|Factory1()|Center()|Bag(B)|UsedTiles()"
//	  - action: take
//	    source: 0
//	    index: 1
//	    expect:
//	      taken: "Y"
//	assertions:
//	  - type: journal
//	    count: 2
//	  - type: replay
//
// Tiles are written with their symbols: S (starting player), R, B, Y, K, W.
// A step that should be refused names the error code in expect.error.
//
// # Golden Files
//
// RunWithGolden compares the rendered trace with
// testdata/scenarios/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
