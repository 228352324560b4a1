// Package config loads game and process configuration.
//
// Game shape (factory count, factory capacity, tiles per colour) is written
// in CUE and validated against a built-in schema, so out-of-range values and
// misspelled fields are rejected before a game starts. Process settings
// (database path, log level) come from the environment.
package config

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/azul/internal/table"
)

// schema constrains every game file. #Game is closed: unknown fields fail.
const schema = `
#Game: {
	factories:        *5 | int & >=1 & <=9
	factory_capacity: *4 | int & >=1 & <=16
	tiles_per_color:  *20 | int & >=0 & <=100
}
`

// Game describes the shape of the table.
type Game struct {
	Factories       int `json:"factories" yaml:"factories"`
	FactoryCapacity int `json:"factory_capacity" yaml:"factory_capacity"`
	TilesPerColor   int `json:"tiles_per_color" yaml:"tiles_per_color"`
}

// Default returns the configuration of the physical box for two players:
// five factories of four tiles and twenty tiles of each colour.
func Default() Game {
	return Game{
		Factories:       5,
		FactoryCapacity: table.DefaultFactoryCapacity,
		TilesPerColor:   20,
	}
}

// Table returns the table.Config for this game.
func (g Game) Table() table.Config {
	return table.Config{
		Factories:       g.Factories,
		FactoryCapacity: g.FactoryCapacity,
	}
}

// Validate checks the configuration against the CUE schema.
func (g Game) Validate() error {
	src := fmt.Sprintf("factories: %d\nfactory_capacity: %d\ntiles_per_color: %d\n",
		g.Factories, g.FactoryCapacity, g.TilesPerColor)
	_, err := Parse([]byte(src), "config")
	return err
}

// Load reads and validates a CUE game file.
func Load(path string) (Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Game{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data, path)
}

// Parse compiles CUE source, unifies it with the schema, and decodes it.
// Fields the source leaves out take the schema defaults.
func Parse(data []byte, filename string) (Game, error) {
	ctx := cuecontext.New()

	schemaVal := ctx.CompileString(schema)
	if err := schemaVal.Err(); err != nil {
		return Game{}, fmt.Errorf("compile schema: %w", err)
	}

	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return Game{}, fmt.Errorf("compile %s: %w", filename, err)
	}

	unified := schemaVal.LookupPath(cue.ParsePath("#Game")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return Game{}, fmt.Errorf("invalid game config %s: %w", filename, err)
	}

	var g Game
	if err := unified.Decode(&g); err != nil {
		return Game{}, fmt.Errorf("decode %s: %w", filename, err)
	}
	return g, nil
}
