// Package config loads the tool configuration from YAML.
//
// Every field is optional. A file is decoded over Default(), so a file only
// needs to name what it changes. Unknown keys are rejected.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/claustra01/yungsbettertfc/internal/engine"
	"github.com/claustra01/yungsbettertfc/internal/equipment"
	"github.com/claustra01/yungsbettertfc/internal/hint"
	"github.com/claustra01/yungsbettertfc/internal/ident"
	"github.com/claustra01/yungsbettertfc/internal/registry"
	"github.com/claustra01/yungsbettertfc/internal/scope"
)

// EnvPath names the environment variable consulted when no path is given.
const EnvPath = "YBTFC_CONFIG"

// Config is the tool configuration.
type Config struct {
	// Namespaces are the structure generators whose templates are remapped.
	Namespaces []string `yaml:"namespaces"`

	Defaults Defaults `yaml:"defaults"`

	ScanDepth     int    `yaml:"scan_depth"`
	CacheCapacity int    `yaml:"cache_capacity"`
	OverlayProbe  string `yaml:"overlay_probe"`

	Tiers Tiers `yaml:"tiers"`

	// Registry lists extra registry files merged over the built-in catalogue.
	Registry []string `yaml:"registry"`

	// Store is the audit database path. Empty disables auditing.
	Store string `yaml:"store"`

	// Workers bounds concurrent template remapping.
	Workers int `yaml:"workers"`
}

// Defaults are the hint fallbacks.
type Defaults struct {
	Rock map[string]string `yaml:"rock"`
	Soil string            `yaml:"soil"`
	Wood string            `yaml:"wood"`
}

// Tiers picks equipment metals by origin namespace.
type Tiers struct {
	Default     string            `yaml:"default"`
	ByNamespace map[string]string `yaml:"by_namespace"`
}

// Default returns the stock configuration.
func Default() Config {
	tiers := equipment.DefaultTiers()
	return Config{
		Namespaces: slices.Clone(scope.DefaultNamespaces),
		Defaults: Defaults{
			Rock: map[string]string{
				string(scope.ClassOverworld): hint.DefaultRockOverworld,
				string(scope.ClassNether):    hint.DefaultRockNether,
				string(scope.ClassEnd):       hint.DefaultRockEnd,
			},
			Soil: hint.DefaultSoil,
			Wood: hint.DefaultWood,
		},
		ScanDepth:     hint.DefaultMaxSteps,
		CacheCapacity: hint.DefaultCacheCapacity,
		OverlayProbe:  engine.DefaultOverlayProbe.String(),
		Tiers: Tiers{
			Default:     tiers.Default,
			ByNamespace: tiers.ByNamespace,
		},
		Workers: 4,
	}
}

// Path returns explicit if set, else the value of EnvPath.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return os.Getenv(EnvPath)
}

// Load reads path over Default and validates the result. An empty path
// returns Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Decode(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses YAML over Default and validates the result.
func Decode(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var rockClasses = []string{string(scope.ClassOverworld), string(scope.ClassNether), string(scope.ClassEnd)}

// Validate reports every problem found.
func (c Config) Validate() error {
	var errs []error
	if len(c.Namespaces) == 0 {
		errs = append(errs, errors.New("namespaces: at least one namespace is required"))
	}
	for _, ns := range c.Namespaces {
		if _, err := ident.Parse(ns + ":x"); ns == "" || err != nil {
			errs = append(errs, fmt.Errorf("namespaces: %q is not a valid namespace", ns))
		}
	}
	for class := range c.Defaults.Rock {
		if !slices.Contains(rockClasses, class) {
			errs = append(errs, fmt.Errorf("defaults.rock: unknown dimension class %q", class))
		}
	}
	if c.ScanDepth <= 0 {
		errs = append(errs, fmt.Errorf("scan_depth: must be positive, got %d", c.ScanDepth))
	} else if c.ScanDepth > hint.DefaultMaxSteps {
		errs = append(errs, fmt.Errorf("scan_depth: must be at most %d, got %d", hint.DefaultMaxSteps, c.ScanDepth))
	}
	if c.CacheCapacity <= 0 {
		errs = append(errs, fmt.Errorf("cache_capacity: must be positive, got %d", c.CacheCapacity))
	}
	if _, err := ident.Parse(c.OverlayProbe); err != nil {
		errs = append(errs, fmt.Errorf("overlay_probe: %w", err))
	}
	if c.Tiers.Default == "" {
		errs = append(errs, errors.New("tiers.default: required"))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers: must be positive, got %d", c.Workers))
	}
	return errors.Join(errs...)
}

// LoadRegistry builds the target registry: the built-in catalogue with the
// nether companion set, then every configured registry file.
func (c Config) LoadRegistry() (*registry.Memory, error) {
	reg := registry.TFC()
	reg.Merge(registry.Beneath())
	if err := registry.LoadFiles(reg, c.Registry...); err != nil {
		return nil, err
	}
	return reg, nil
}

// EngineOptions translates the configuration into engine options. c must
// be valid.
func (c Config) EngineOptions() []engine.Option {
	rock := make(map[scope.Class]string, len(c.Defaults.Rock))
	for class, name := range c.Defaults.Rock {
		rock[scope.Class(class)] = name
	}
	resolver := hint.NewResolver(
		hint.WithMaxSteps(c.ScanDepth),
		hint.WithDefaults(hint.Defaults{Rock: rock, Soil: c.Defaults.Soil, Wood: c.Defaults.Wood}),
	)
	return []engine.Option{
		engine.WithResolver(resolver),
		engine.WithGate(scope.NewGate(c.Namespaces...)),
		engine.WithTiers(equipment.Tiers{Default: c.Tiers.Default, ByNamespace: c.Tiers.ByNamespace}),
		engine.WithCacheCapacity(c.CacheCapacity),
		engine.WithOverlayProbe(ident.MustParse(c.OverlayProbe)),
	}
}
