package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/azul/internal/config"
	"github.com/roach88/azul/internal/table"
	"github.com/roach88/azul/internal/tile"
)

// Scenario defines a table scenario: a starting position, a scripted random
// source, and the operations to apply, with expectations along the way.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Config overrides fields of the default game configuration; zero
	// fields keep their default. Without Setup, the game starts from an
	// empty table and a full bag built from the configuration.
	Config *config.Game `yaml:"config,omitempty"`

	// Setup places explicit tiles on the table instead of the full bag.
	Setup *Setup `yaml:"setup,omitempty"`

	// Random is the script of indices handed to every draw, in order.
	// Once exhausted every draw takes index 0. When empty, the game uses
	// its seeded source.
	Random []int `yaml:"random,omitempty"`

	// Seed seeds the game's random source when Random is empty.
	Seed uint64 `yaml:"seed,omitempty"`

	// Steps are applied in order.
	Steps []Step `yaml:"steps"`

	// Conserve checks after every step that each colour's count on the
	// table plus the tiles held by players equals the starting count.
	Conserve bool `yaml:"conserve,omitempty"`

	// Assertions validate the final state and journal.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Setup is a starting position written with tile symbols ("R,B,Y").
type Setup struct {
	// Factories holds one entry per factory; "" is an empty factory.
	Factories []string `yaml:"factories"`
	Center    string   `yaml:"center,omitempty"`
	Bag       string   `yaml:"bag,omitempty"`
	Used      string   `yaml:"used,omitempty"`
}

// Step is one operation on the table.
type Step struct {
	// Action is one of start_round, take, discard.
	Action string `yaml:"action"`

	// Source and Index address a take.
	Source int `yaml:"source,omitempty"`
	Index  int `yaml:"index,omitempty"`

	// Tiles lists the tiles to discard.
	Tiles string `yaml:"tiles,omitempty"`

	// Expect validates the step outcome. If nil, the step must succeed.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected outcome of a step.
type ExpectClause struct {
	// Error is the expected error code (e.g. "INVALID_TAKE"). Empty means
	// the step must succeed.
	Error string `yaml:"error,omitempty"`

	// Taken is the exact tile list a take returns.
	Taken *string `yaml:"taken,omitempty"`

	// Describe is the exact area description after the step.
	Describe string `yaml:"describe,omitempty"`

	// RoundEnd is whether every factory and the center are empty after the step.
	RoundEnd *bool `yaml:"round_end,omitempty"`

	// Tiles is the total tile count on the table after the step.
	Tiles *int `yaml:"tiles,omitempty"`
}

// Step actions.
const (
	ActionStartRound = "start_round"
	ActionTake       = "take"
	ActionDiscard    = "discard"
)

// Assertion validates the final table or the journal.
type Assertion struct {
	// Type specifies the assertion type:
	// - "describe": final area description equals Expect
	// - "round_end": final round-end state equals Value
	// - "tile_count": count of Tile on the table equals Count
	// - "bag_size", "used_size": pile sizes equal Count
	// - "journal": the store holds Count events
	// - "replay": the stored journal replays to the same snapshots
	Type string `yaml:"type"`

	Expect string `yaml:"expect,omitempty"`
	Tile   string `yaml:"tile,omitempty"`
	Count  int    `yaml:"count,omitempty"`
	Value  bool   `yaml:"value,omitempty"`
}

// Assertion type constants.
const (
	AssertDescribe  = "describe"
	AssertRoundEnd  = "round_end"
	AssertTileCount = "tile_count"
	AssertBagSize   = "bag_size"
	AssertUsedSize  = "used_size"
	AssertJournal   = "journal"
	AssertReplay    = "replay"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is invalid.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// FindScenarios returns the scenario files in dir (*.yaml, *.yml), sorted.
func FindScenarios(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if err := s.GameConfig().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if s.Setup != nil {
		if _, err := s.Setup.Area(); err != nil {
			return fmt.Errorf("setup: %w", err)
		}
	}

	for i, step := range s.Steps {
		switch step.Action {
		case ActionStartRound, ActionTake:
		case ActionDiscard:
			if _, err := tile.ParseList(step.Tiles); err != nil {
				return fmt.Errorf("steps[%d]: tiles: %w", i, err)
			}
		case "":
			return fmt.Errorf("steps[%d]: action is required", i)
		default:
			return fmt.Errorf("steps[%d]: unknown action %q", i, step.Action)
		}
		if step.Expect != nil && step.Expect.Taken != nil {
			if _, err := tile.ParseList(*step.Expect.Taken); err != nil {
				return fmt.Errorf("steps[%d].expect.taken: %w", i, err)
			}
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertDescribe:
		if a.Expect == "" {
			return fmt.Errorf("assertions[%d]: expect is required for describe", index)
		}
	case AssertTileCount:
		if _, err := tile.Parse(a.Tile); err != nil {
			return fmt.Errorf("assertions[%d]: tile: %w", index, err)
		}
		fallthrough
	case AssertBagSize, AssertUsedSize, AssertJournal:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertRoundEnd, AssertReplay:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}

// GameConfig returns the default configuration with the scenario's
// non-zero overrides applied. With a Setup, the factory count follows the
// setup.
func (s *Scenario) GameConfig() config.Game {
	cfg := config.Default()
	if s.Config != nil {
		if s.Config.Factories != 0 {
			cfg.Factories = s.Config.Factories
		}
		if s.Config.FactoryCapacity != 0 {
			cfg.FactoryCapacity = s.Config.FactoryCapacity
		}
		if s.Config.TilesPerColor != 0 {
			cfg.TilesPerColor = s.Config.TilesPerColor
		}
	}
	if s.Setup != nil && len(s.Setup.Factories) > 0 {
		cfg.Factories = len(s.Setup.Factories)
	}
	return cfg
}

// Area builds the table described by the setup, with the default factory
// capacity.
func (s *Setup) Area() (table.Area, error) {
	factories := make([]table.Factory, len(s.Factories))
	for i, f := range s.Factories {
		tiles, err := tile.ParseList(f)
		if err != nil {
			return table.Area{}, fmt.Errorf("factories[%d]: %w", i, err)
		}
		factories[i] = table.NewFactory(tiles)
	}

	center, err := tile.ParseList(s.Center)
	if err != nil {
		return table.Area{}, fmt.Errorf("center: %w", err)
	}
	bag, err := tile.ParseList(s.Bag)
	if err != nil {
		return table.Area{}, fmt.Errorf("bag: %w", err)
	}
	used, err := tile.ParseList(s.Used)
	if err != nil {
		return table.Area{}, fmt.Errorf("used: %w", err)
	}

	return table.Compose(factories, table.NewCenter(center), table.NewBag(bag), table.NewUsedTiles(used)), nil
}
