package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/claustra01/yungsbettertfc/internal/blockstate"
	"github.com/claustra01/yungsbettertfc/internal/ident"
	"github.com/claustra01/yungsbettertfc/internal/nbt"
	"github.com/claustra01/yungsbettertfc/internal/scope"
	"github.com/claustra01/yungsbettertfc/internal/template"
	"github.com/claustra01/yungsbettertfc/internal/terrain"
)

// Scenario is one placement to run and check.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Origin is the identifier the template was loaded from. Empty means
	// the origin is unknown and the engine must stay inactive.
	Origin string `yaml:"origin,omitempty"`

	// Dimension defaults to the overworld.
	Dimension string `yaml:"dimension,omitempty"`

	Anchor terrain.Pos `yaml:"anchor"`

	// Terrain lists the blocks under the anchor, top first, in state syntax.
	Terrain []string `yaml:"terrain,omitempty"`

	// Template names a template file relative to the scenario file. It is
	// exclusive with Blocks and Entities.
	Template string `yaml:"template,omitempty"`

	Blocks   []BlockStep  `yaml:"blocks,omitempty"`
	Entities []EntityStep `yaml:"entities,omitempty"`

	// Config names a configuration file relative to the scenario file.
	Config string `yaml:"config,omitempty"`

	// ChangedOnly records only decisions that changed something.
	ChangedOnly bool `yaml:"changed_only,omitempty"`

	Assertions []Assertion `yaml:"assertions"`

	// RunID is an optional fixed run ID. If empty, "test-run-default" is used.
	RunID string `yaml:"run_id,omitempty"`

	// dir is the directory of the scenario file, for relative paths.
	dir string
}

// BlockStep is one inline template block.
type BlockStep struct {
	Pos   [3]int         `yaml:"pos"`
	State string         `yaml:"state"`
	NBT   map[string]any `yaml:"nbt,omitempty"`
}

// EntityStep is one inline template entity.
type EntityStep struct {
	Pos      [3]float64     `yaml:"pos"`
	BlockPos [3]int         `yaml:"block_pos"`
	NBT      map[string]any `yaml:"nbt"`
}

// Assertion checks one property of a run.
type Assertion struct {
	// Type is one of the Assert constants.
	Type string `yaml:"type"`

	// Pos is a template-relative block position (block_out).
	Pos *[3]int `yaml:"pos,omitempty"`

	// State is the expected block state (block_out).
	State string `yaml:"state,omitempty"`

	Reason   string `yaml:"reason,omitempty"`
	Category string `yaml:"category,omitempty"`

	// Count is the expected number of decisions (reason_count, category_count).
	Count int `yaml:"count,omitempty"`

	Tier string `yaml:"tier,omitempty"`
	Item string `yaml:"item,omitempty"`

	// Expect maps reasons to counts (stored_summary). Reasons not listed
	// are not checked.
	Expect map[string]int `yaml:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertBlockOut      = "block_out"
	AssertReasonCount   = "reason_count"
	AssertCategoryCount = "category_count"
	AssertEntityTier    = "entity_tier"
	AssertItemOut       = "item_out"
	AssertStoredSummary = "stored_summary"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields, or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	scenario.dir = filepath.Dir(path)

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// resolve returns p relative to the scenario directory.
func (s *Scenario) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || s.dir == "" {
		return p
	}
	return filepath.Join(s.dir, p)
}

// DimensionID returns the placement dimension.
func (s *Scenario) DimensionID() (ident.ID, error) {
	if s.Dimension == "" {
		return scope.Overworld, nil
	}
	return ident.Parse(s.Dimension)
}

// OriginID returns the template origin, zero when unknown.
func (s *Scenario) OriginID() (ident.ID, error) {
	if s.Origin == "" {
		return ident.ID{}, nil
	}
	return ident.Parse(s.Origin)
}

// World builds the terrain column under the anchor.
func (s *Scenario) World() (*terrain.Map, error) {
	m := terrain.NewMap(terrain.DefaultMinBuildHeight)
	for i, text := range s.Terrain {
		st, err := blockstate.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("terrain[%d]: %w", i, err)
		}
		m.Set(s.Anchor.Down(i), st)
	}
	return m, nil
}

// BuildTemplate loads the template file or assembles the inline blocks.
// Every call returns a new template.
func (s *Scenario) BuildTemplate() (*template.Template, error) {
	if s.Template != "" {
		return template.Load(s.resolve(s.Template))
	}

	t := &template.Template{}
	for i, b := range s.Blocks {
		st, err := blockstate.Parse(b.State)
		if err != nil {
			return nil, fmt.Errorf("blocks[%d]: %w", i, err)
		}
		pos := terrain.Pos{X: b.Pos[0], Y: b.Pos[1], Z: b.Pos[2]}
		t.Blocks = append(t.Blocks, template.Block{Pos: pos, State: st, NBT: compound(b.NBT)})
		t.Size = terrain.Pos{X: max(t.Size.X, pos.X+1), Y: max(t.Size.Y, pos.Y+1), Z: max(t.Size.Z, pos.Z+1)}
	}
	for _, e := range s.Entities {
		t.Entities = append(t.Entities, template.Entity{
			Pos:      template.Vec{X: e.Pos[0], Y: e.Pos[1], Z: e.Pos[2]},
			BlockPos: terrain.Pos{X: e.BlockPos[0], Y: e.BlockPos[1], Z: e.BlockPos[2]},
			NBT:      compound(e.NBT),
		})
	}
	return t, nil
}

func compound(m map[string]any) nbt.Compound {
	if m == nil {
		return nil
	}
	return nbt.Compound(m)
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if _, err := s.DimensionID(); err != nil {
		return fmt.Errorf("dimension: %w", err)
	}

	if _, err := s.OriginID(); err != nil {
		return fmt.Errorf("origin: %w", err)
	}

	for i, text := range s.Terrain {
		if _, err := blockstate.Parse(text); err != nil {
			return fmt.Errorf("terrain[%d]: %w", i, err)
		}
	}

	if s.Template != "" && (len(s.Blocks) > 0 || len(s.Entities) > 0) {
		return fmt.Errorf("template and inline blocks are exclusive")
	}

	if s.Template == "" && len(s.Blocks) == 0 && len(s.Entities) == 0 {
		return fmt.Errorf("template or inline blocks are required")
	}

	for i, b := range s.Blocks {
		if b.State == "" {
			return fmt.Errorf("blocks[%d]: state is required", i)
		}
		if _, err := blockstate.Parse(b.State); err != nil {
			return fmt.Errorf("blocks[%d]: %w", i, err)
		}
	}

	for i, e := range s.Entities {
		if e.NBT == nil {
			return fmt.Errorf("entities[%d]: nbt is required", i)
		}
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertBlockOut:
		if a.Pos == nil {
			return fmt.Errorf("assertions[%d]: pos is required for block_out", index)
		}
		if _, err := blockstate.Parse(a.State); err != nil {
			return fmt.Errorf("assertions[%d]: state: %w", index, err)
		}
	case AssertReasonCount:
		if a.Reason == "" {
			return fmt.Errorf("assertions[%d]: reason is required for reason_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for reason_count", index)
		}
	case AssertCategoryCount:
		if a.Category == "" {
			return fmt.Errorf("assertions[%d]: category is required for category_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for category_count", index)
		}
	case AssertEntityTier:
		if a.Tier == "" {
			return fmt.Errorf("assertions[%d]: tier is required for entity_tier", index)
		}
	case AssertItemOut:
		if _, err := ident.Parse(a.Item); err != nil {
			return fmt.Errorf("assertions[%d]: item: %w", index, err)
		}
	case AssertStoredSummary:
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for stored_summary", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
