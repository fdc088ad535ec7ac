package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/claustra01/yungsbettertfc/internal/blockstate"
	"github.com/claustra01/yungsbettertfc/internal/config"
	"github.com/claustra01/yungsbettertfc/internal/engine"
	"github.com/claustra01/yungsbettertfc/internal/ident"
	"github.com/claustra01/yungsbettertfc/internal/registry"
	"github.com/claustra01/yungsbettertfc/internal/terrain"
)

// env is the state shared by the remapping commands.
type env struct {
	cfg     config.Config
	reg     *registry.Memory
	metrics *prometheus.Registry
	diag    *engine.Diagnostics
}

// loadEnv reads the configuration named by --config or $YBTFC_CONFIG and
// builds the target registry and diagnostics.
func loadEnv(opts *RootOptions) (*env, error) {
	cfg, err := config.Load(config.Path(opts.Config))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	reg, err := cfg.LoadRegistry()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load registry", err)
	}

	metrics := prometheus.NewRegistry()
	diag, err := engine.NewDiagnostics(metrics, opts.Logger())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to register diagnostics", err)
	}

	stats := reg.Stats()
	opts.Logger().Debug("loaded target registry",
		"blocks", stats.Blocks,
		"items", stats.Items,
		"files", len(cfg.Registry),
	)
	return &env{cfg: cfg, reg: reg, metrics: metrics, diag: diag}, nil
}

// engine builds an engine from the configuration.
func (e *env) engine(opts *RootOptions, extra ...engine.Option) *engine.Engine {
	all := append(e.cfg.EngineOptions(),
		engine.WithDiagnostics(e.diag),
		engine.WithLogger(opts.Logger()),
	)
	return engine.New(e.reg, append(all, extra...)...)
}

// parseDimension accepts a full identifier or a bare vanilla dimension name.
func parseDimension(s string) (ident.ID, error) {
	if !strings.Contains(s, ":") {
		s = ident.Minecraft + ":" + s
	}
	id, err := ident.Parse(s)
	if err != nil {
		return ident.ID{}, NewExitError(ExitCommandError, fmt.Sprintf("invalid dimension %q", s))
	}
	return id, nil
}

// parseAnchor parses "x,y,z".
func parseAnchor(s string) (terrain.Pos, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return terrain.Pos{}, NewExitError(ExitCommandError, fmt.Sprintf("invalid anchor %q: want x,y,z", s))
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return terrain.Pos{}, NewExitError(ExitCommandError, fmt.Sprintf("invalid anchor %q: want x,y,z", s))
		}
		v[i] = n
	}
	return terrain.Pos{X: v[0], Y: v[1], Z: v[2]}, nil
}

// parseColumn parses block states into a terrain column, first entry at
// the anchor and each following one a block lower.
func parseColumn(anchor terrain.Pos, states []string) (*terrain.Map, error) {
	m := terrain.NewMap(terrain.DefaultMinBuildHeight)
	for i, text := range states {
		st, err := blockstate.Parse(text)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("invalid terrain block %q", text), err)
		}
		m.Set(anchor.Down(i), st)
	}
	return m, nil
}
