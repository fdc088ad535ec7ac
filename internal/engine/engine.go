package engine

import (
	"log/slog"

	"github.com/claustra01/yungsbettertfc/internal/equipment"
	"github.com/claustra01/yungsbettertfc/internal/hint"
	"github.com/claustra01/yungsbettertfc/internal/ident"
	"github.com/claustra01/yungsbettertfc/internal/placement"
	"github.com/claustra01/yungsbettertfc/internal/registry"
	"github.com/claustra01/yungsbettertfc/internal/rules"
	"github.com/claustra01/yungsbettertfc/internal/scope"
	"github.com/claustra01/yungsbettertfc/internal/template"
)

// ProcessorName identifies the block replacement processor in placement
// settings.
const ProcessorName = "yungsbettertfc:tfc_block_replacement"

// DefaultOverlayProbe is the block whose presence signals that the nether
// companion content set is installed.
var DefaultOverlayProbe = ident.New(ident.Beneath, "wood/planks/crimson")

// Engine is the shared, immutable part of the processor. It is safe for
// concurrent use; per-worker state lives in Worker.
type Engine struct {
	reg       registry.Registry
	rules     *rules.Engine
	resolver  *hint.Resolver
	gate      *scope.Gate
	equipment *equipment.Remapper
	origins   placement.OriginLookup
	diag      *Diagnostics
	logger    *slog.Logger

	cacheCapacity int
	overlayProbe  ident.ID
	overlay       bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithResolver replaces the hint resolver.
func WithResolver(r *hint.Resolver) Option {
	return func(e *Engine) {
		e.resolver = r
	}
}

// WithGate replaces the activation gate.
func WithGate(g *scope.Gate) Option {
	return func(e *Engine) {
		e.gate = g
	}
}

// WithTiers sets the equipment tiers.
func WithTiers(t equipment.Tiers) Option {
	return func(e *Engine) {
		e.equipment = equipment.New(e.reg, t)
	}
}

// WithOriginLookup sets how template origins are found. Without it every
// template is treated as having no origin.
func WithOriginLookup(fn placement.OriginLookup) Option {
	return func(e *Engine) {
		e.origins = fn
	}
}

// WithDiagnostics reports activity to d.
func WithDiagnostics(d *Diagnostics) Option {
	return func(e *Engine) {
		e.diag = d
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithCacheCapacity bounds each per-worker hint cache.
func WithCacheCapacity(n int) Option {
	return func(e *Engine) {
		e.cacheCapacity = n
	}
}

// WithOverlayProbe changes the block that enables the nether overlay.
func WithOverlayProbe(id ident.ID) Option {
	return func(e *Engine) {
		e.overlayProbe = id
	}
}

// New returns an engine producing blocks and items from reg.
func New(reg registry.Registry, opts ...Option) *Engine {
	e := &Engine{
		reg:           reg,
		rules:         rules.New(reg),
		resolver:      hint.NewResolver(),
		gate:          scope.NewGate(),
		equipment:     equipment.New(reg, equipment.DefaultTiers()),
		origins:       func(*template.Template) ident.ID { return ident.ID{} },
		logger:        slog.Default(),
		cacheCapacity: hint.DefaultCacheCapacity,
		overlayProbe:  DefaultOverlayProbe,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.overlay = reg.HasBlock(e.overlayProbe)
	return e
}

// OverlayAvailable reports whether the nether companion set is registered.
func (e *Engine) OverlayAvailable() bool {
	return e.overlay
}

// Gate returns the activation gate.
func (e *Engine) Gate() *scope.Gate {
	return e.gate
}

// Rules returns the rule chain.
func (e *Engine) Rules() *rules.Engine {
	return e.rules
}

// Equipment returns the equipment remapper.
func (e *Engine) Equipment() *equipment.Remapper {
	return e.equipment
}

// Origin returns the recorded origin of t.
func (e *Engine) Origin(t *template.Template) ident.ID {
	if t == nil {
		return ident.ID{}
	}
	return e.origins(t)
}

// NewWorker returns a worker with fresh hint caches.
func (e *Engine) NewWorker(opts ...WorkerOption) *Worker {
	w := &Worker{engine: e, caches: hint.NewCaches(e.cacheCapacity)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}
