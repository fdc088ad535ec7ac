package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claustra01/yungsbettertfc/internal/blockstate"
	"github.com/claustra01/yungsbettertfc/internal/engine"
	"github.com/claustra01/yungsbettertfc/internal/ident"
	"github.com/claustra01/yungsbettertfc/internal/scope"
	"github.com/claustra01/yungsbettertfc/internal/terrain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ybtfc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, scope.DefaultNamespaces, cfg.Namespaces)
	assert.Equal(t, "mollisol", cfg.Defaults.Soil)
	assert.Equal(t, 64, cfg.ScanDepth)
	assert.Equal(t, 2048, cfg.CacheCapacity)
	assert.Equal(t, "black_steel", cfg.Tiers.ByNamespace["betterstrongholds"])
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
namespaces: [betterdungeons]
defaults:
  rock:
    nether: andesite
  soil: silt
scan_depth: 16
tiers:
  by_namespace:
    betterdungeons: steel
workers: 2
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"betterdungeons"}, cfg.Namespaces)
	assert.Equal(t, "andesite", cfg.Defaults.Rock["nether"])
	assert.Equal(t, "granite", cfg.Defaults.Rock["overworld"], "unnamed keys keep their default")
	assert.Equal(t, "silt", cfg.Defaults.Soil)
	assert.Equal(t, "oak", cfg.Defaults.Wood)
	assert.Equal(t, 16, cfg.ScanDepth)
	assert.Equal(t, 2048, cfg.CacheCapacity)
	assert.Equal(t, "steel", cfg.Tiers.ByNamespace["betterdungeons"])
	assert.Equal(t, "black_steel", cfg.Tiers.ByNamespace["betterstrongholds"])
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "scan_dept: 3\n", "field scan_dept not found"},
		{"bad yaml", "namespaces: [\n", "yaml"},
		{"no namespaces", "namespaces: []\n", "at least one namespace"},
		{"empty namespace", "namespaces: ['']\n", "not a valid namespace"},
		{"bad rock class", "defaults:\n  rock:\n    aether: granite\n", "unknown dimension class"},
		{"zero scan depth", "scan_depth: 0\n", "scan_depth"},
		{"scan depth above cap", "scan_depth: 65\n", "scan_depth: must be at most 64, got 65"},
		{"bad probe", "overlay_probe: 'Bad Id'\n", "overlay_probe"},
		{"no workers", "workers: -1\n", "workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_ReportsAll(t *testing.T) {
	cfg := Default()
	cfg.ScanDepth = 0
	cfg.CacheCapacity = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan_depth")
	assert.Contains(t, err.Error(), "cache_capacity")
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPath(t *testing.T) {
	t.Setenv(EnvPath, "/etc/ybtfc.yaml")
	assert.Equal(t, "explicit.yaml", Path("explicit.yaml"))
	assert.Equal(t, "/etc/ybtfc.yaml", Path(""))
}

func TestEngineOptions(t *testing.T) {
	cfg := Default()
	cfg.Namespaces = []string{"betterdungeons"}
	cfg.Defaults.Rock["overworld"] = "chalk"
	cfg.ScanDepth = 2

	reg, err := cfg.LoadRegistry()
	require.NoError(t, err)
	e := engine.New(reg, cfg.EngineOptions()...)

	assert.True(t, e.Gate().Allows(ident.MustParse("betterdungeons:a")))
	assert.False(t, e.Gate().Allows(ident.MustParse("betterstrongholds:a")))
	assert.True(t, e.OverlayAvailable())

	anchor := terrain.Pos{Y: 64}
	world := terrain.NewMap(terrain.DefaultMinBuildHeight)
	world.Set(anchor.Down(2), blockstate.MustParse("tfc:rock/raw/basalt"))

	d := e.NewWorker().Remap(world, anchor, scope.Overworld, blockstate.MustParse("minecraft:stone"))
	assert.Equal(t, "tfc:rock/raw/chalk", d.Out.String(), "basalt is beyond the scan depth")
	assert.Equal(t, engine.ReasonReplaced, d.Reason)
}

func TestLoadRegistry_ExtraFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
blocks:
  - id: tfc:coarse_dirt/loam
`), 0o644))

	cfg := Default()
	cfg.Registry = []string{path}
	reg, err := cfg.LoadRegistry()
	require.NoError(t, err)
	assert.True(t, reg.HasBlock(ident.MustParse("tfc:coarse_dirt/loam")))
}
