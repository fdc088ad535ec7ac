// Package placement models the host side of structure placement: the
// settings object carrying the processor list, the per-block and
// per-entity processor hooks, and the side-table remembering where each
// template was loaded from.
//
// Place mirrors how the host places a template: placement hooks run first
// and may attach processors, then every block and every entity is passed
// through the processor list in order. Blocks of one placement are
// processed sequentially in template order.
package placement

import (
	"context"
	"slices"

	"github.com/claustra01/yungsbettertfc/internal/blockstate"
	"github.com/claustra01/yungsbettertfc/internal/ident"
	"github.com/claustra01/yungsbettertfc/internal/nbt"
	"github.com/claustra01/yungsbettertfc/internal/template"
	"github.com/claustra01/yungsbettertfc/internal/terrain"
)

// BlockInfo is a block on its way into the world.
type BlockInfo struct {
	Pos   terrain.Pos
	State blockstate.State
	NBT   nbt.Compound
}

// EntityInfo is an entity on its way into the world.
type EntityInfo struct {
	Pos      template.Vec
	BlockPos terrain.Pos
	NBT      nbt.Compound
}

// Pass describes the placement being processed.
type Pass struct {
	Level    terrain.Reader
	Offset   terrain.Pos
	Template *template.Template
	Settings *Settings
}

// Processor transforms blocks and entities during placement. raw is the
// template value before any processor ran; current is the output of the
// previous processor.
type Processor interface {
	Name() string
	ProcessBlock(p *Pass, raw, current BlockInfo) BlockInfo
	ProcessEntity(p *Pass, raw, current EntityInfo) EntityInfo
}

// Settings configures one placement.
type Settings struct {
	Dimension  ident.ID
	processors []Processor
}

// NewSettings returns settings for a placement in dim.
func NewSettings(dim ident.ID, processors ...Processor) *Settings {
	return &Settings{Dimension: dim, processors: slices.Clone(processors)}
}

// AddProcessor appends p to the processor list.
func (s *Settings) AddProcessor(p Processor) {
	s.processors = append(s.processors, p)
}

// HasProcessor reports whether a processor named name is attached.
func (s *Settings) HasProcessor(name string) bool {
	return slices.ContainsFunc(s.processors, func(p Processor) bool {
		return p.Name() == name
	})
}

// Processors returns the attached processors in order.
func (s *Settings) Processors() []Processor {
	return slices.Clone(s.processors)
}

// Hook runs before a template is placed and may attach processors.
type Hook func(t *template.Template, s *Settings)

// Result is what a placement writes into the world.
type Result struct {
	Blocks   []BlockInfo
	Entities []EntityInfo
}

// Place runs the hooks and then the processor list over every block and
// entity of t, translated by offset. It stops early with ctx's error when
// ctx is cancelled between blocks.
func Place(ctx context.Context, level terrain.Reader, t *template.Template, offset terrain.Pos, s *Settings, hooks ...Hook) (Result, error) {
	for _, hook := range hooks {
		hook(t, s)
	}

	p := &Pass{Level: level, Offset: offset, Template: t, Settings: s}
	processors := s.Processors()

	res := Result{
		Blocks:   make([]BlockInfo, 0, len(t.Blocks)),
		Entities: make([]EntityInfo, 0, len(t.Entities)),
	}
	for _, b := range t.Blocks {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		raw := BlockInfo{Pos: offset.Add(b.Pos), State: b.State, NBT: b.NBT}
		current := raw
		for _, proc := range processors {
			current = proc.ProcessBlock(p, raw, current)
		}
		res.Blocks = append(res.Blocks, current)
	}
	for _, e := range t.Entities {
		raw := EntityInfo{Pos: e.Pos.Add(offset), BlockPos: offset.Add(e.BlockPos), NBT: e.NBT}
		current := raw
		for _, proc := range processors {
			current = proc.ProcessEntity(p, raw, current)
		}
		res.Entities = append(res.Entities, current)
	}
	return res, nil
}
