package engine

import (
	"github.com/claustra01/yungsbettertfc/internal/blockstate"
	"github.com/claustra01/yungsbettertfc/internal/hint"
	"github.com/claustra01/yungsbettertfc/internal/ident"
	"github.com/claustra01/yungsbettertfc/internal/placement"
	"github.com/claustra01/yungsbettertfc/internal/rules"
	"github.com/claustra01/yungsbettertfc/internal/scope"
	"github.com/claustra01/yungsbettertfc/internal/template"
	"github.com/claustra01/yungsbettertfc/internal/terrain"
)

var water = ident.New(ident.Minecraft, "water")

const tallSeagrass = "tall_seagrass"

// Worker is the per-worker processor. It owns its hint caches and must
// only be used from one goroutine at a time.
type Worker struct {
	engine *Engine
	caches *hint.Caches

	onBlock  func(BlockDecision)
	onEntity func(EntityDecision)
}

// WorkerOption configures a Worker.
type WorkerOption func(*Worker)

// WithBlockTrace calls fn with every block decision.
func WithBlockTrace(fn func(BlockDecision)) WorkerOption {
	return func(w *Worker) {
		w.onBlock = fn
	}
}

// WithEntityTrace calls fn with every entity decision.
func WithEntityTrace(fn func(EntityDecision)) WorkerOption {
	return func(w *Worker) {
		w.onEntity = fn
	}
}

// Caches exposes the worker's hint caches.
func (w *Worker) Caches() *hint.Caches {
	return w.caches
}

// Name implements placement.Processor.
func (w *Worker) Name() string {
	return ProcessorName
}

// Attach is a placement.Hook. It adds w to s when the template's origin
// passes the gate and no replacement processor is attached yet.
func (w *Worker) Attach(t *template.Template, s *placement.Settings) {
	origin := w.engine.Origin(t)
	if !w.engine.gate.Allows(origin) {
		return
	}
	if !s.HasProcessor(ProcessorName) {
		s.AddProcessor(w)
	}
}

// ProcessBlock implements placement.Processor.
func (w *Worker) ProcessBlock(p *placement.Pass, _, current placement.BlockInfo) placement.BlockInfo {
	out, d := w.Block(p.Level, p.Offset, p.Settings.Dimension, current)
	if d.Reason == ReasonReplaced {
		w.engine.diag.firstReplacement(d, w.engine.Origin(p.Template))
	}
	w.engine.diag.block(d)
	if w.onBlock != nil {
		w.onBlock(d)
	}
	return out
}

// ProcessEntity implements placement.Processor.
func (w *Worker) ProcessEntity(p *placement.Pass, _, current placement.EntityInfo) placement.EntityInfo {
	out, d := w.Entity(current, w.engine.Origin(p.Template))
	w.engine.diag.entity(d)
	if w.onEntity != nil && !d.Entity.IsZero() {
		w.onEntity(d)
	}
	return out
}

// Block decides the replacement of one block placed relative to anchor in
// dimension dim. The returned info is the input itself when nothing
// changes.
func (w *Worker) Block(level terrain.Reader, anchor terrain.Pos, dim ident.ID, info placement.BlockInfo) (placement.BlockInfo, BlockDecision) {
	sc := scope.For(dim)
	in := info.State
	d := BlockDecision{Pos: info.Pos, Anchor: anchor, Dimension: dim, Scope: sc, In: in, Out: in}

	if in.IsAir() {
		d.Reason = ReasonAir
		return info, d
	}
	if !in.Block.In(ident.Minecraft) {
		d.Reason = ReasonForeign
		return info, d
	}

	path, infested := ident.StripInfested(in.Block.Path)

	if path == tallSeagrass {
		if half, _ := in.Get("half"); half == "upper" {
			out := blockstate.Of(water, nil)
			if def, ok := w.engine.reg.Block(water); ok {
				out = def.Default()
			}
			d.Out, d.Reason = out, ReasonSeagrass
			return placement.BlockInfo{Pos: info.Pos, State: out, NBT: info.NBT}, d
		}
	}

	d.Hints = w.hints(level, anchor, dim, sc, path)
	ctx := rules.Context{
		Dimension:   dim,
		Scope:       sc,
		Rock:        d.Hints.Rock,
		Soil:        d.Hints.Soil,
		Wood:        d.Hints.Wood,
		DefaultWood: w.engine.resolver.Default(hint.Wood, dim),
		Infested:    infested,
		Overlay:     w.engine.overlay && dim == scope.Nether,
	}

	res, ok := w.engine.rules.Match(path, ctx)
	d.Category, d.Candidate = res.Category, res.ID
	if res.Category == "" {
		d.Reason = ReasonNoMatch
		return info, d
	}
	def, found := w.engine.reg.Block(res.ID)
	if !ok || !found {
		d.Reason = ReasonUnregistered
		return info, d
	}
	if def.Default().IsAir() {
		d.Reason = ReasonUnregistered
		return info, d
	}

	base := def.Default()
	data := info.NBT
	if res.ID == rules.Firepit {
		base = blockstate.AxisFromFacing(in, def, base)
		data = nil
		d.DroppedNBT = info.NBT != nil
	}
	out, outcomes := blockstate.ProjectOnto(in, def, base)
	for _, o := range outcomes {
		if !o.Applied() {
			d.Skipped = append(d.Skipped, o.Property)
		}
	}

	d.Out, d.Reason = out, ReasonReplaced
	return placement.BlockInfo{Pos: info.Pos, State: out, NBT: data}, d
}

// hints resolves the rock, soil and wood hints for a placement anchor.
// Rock and soil are only sampled in full scope. The wood hint is cached the
// first time a block of the placement names a species, and that species
// then wins for the rest of the placement.
func (w *Worker) hints(level terrain.Reader, anchor terrain.Pos, dim ident.ID, sc scope.Scope, path string) Hints {
	r := w.engine.resolver
	key := anchor.Long()

	h := Hints{
		Rock: r.Default(hint.Rock, scope.Overworld),
		Soil: r.Default(hint.Soil, dim),
	}
	if sc == scope.Full {
		h.Rock = w.caches.Rock.GetOrResolve(key, func() string {
			return r.Resolve(level, anchor, hint.Rock, dim)
		})
		h.Soil = w.caches.Soil.GetOrResolve(key, func() string {
			return r.Resolve(level, anchor, hint.Soil, dim)
		})
	}

	if wood, ok := w.caches.Wood.Get(key); ok {
		h.Wood = wood
	} else if species, ok := hint.WoodSpecies(path); ok {
		w.caches.Wood.Put(key, species)
		h.Wood = species
	} else {
		h.Wood = r.Default(hint.Wood, dim)
	}
	return h
}

// Entity rewrites the equipment of one entity for a template from origin.
func (w *Worker) Entity(info placement.EntityInfo, origin ident.ID) (placement.EntityInfo, EntityDecision) {
	d := EntityDecision{Pos: info.BlockPos, Origin: origin}
	raw, ok := info.NBT.GetString("id")
	if !ok || raw == "" {
		return info, d
	}
	id, ok := ident.TryParse(raw)
	if !ok || !id.In(ident.Minecraft) {
		return info, d
	}
	d.Entity = id
	d.Tier = w.engine.equipment.TierFor(origin)

	data, changes := w.engine.equipment.Remap(id, info.NBT, origin)
	if len(changes) == 0 {
		return info, d
	}
	d.Changes = changes
	return placement.EntityInfo{Pos: info.Pos, BlockPos: info.BlockPos, NBT: data}, d
}

// Remap applies Block to a single state with no attached data, for callers
// outside a placement.
func (w *Worker) Remap(level terrain.Reader, anchor terrain.Pos, dim ident.ID, state blockstate.State) BlockDecision {
	_, d := w.Block(level, anchor, dim, placement.BlockInfo{Pos: anchor, State: state})
	return d
}

var _ placement.Processor = (*Worker)(nil)
