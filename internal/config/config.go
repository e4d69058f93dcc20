package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config captures CLI options sourced from config files or flags.
type Config struct {
	Cases []string `yaml:"cases"`
	Names []string `yaml:"names"`

	OnlyStages []string `yaml:"only_stage"`
	SkipStages []string `yaml:"skip_stage"`

	Solver    string `yaml:"solver"`
	BuildTool string `yaml:"build_tool"`

	DryRun  bool   `yaml:"dry_run"`
	Verbose bool   `yaml:"verbose"`
	Format  string `yaml:"format"`

	Warn WarnConfig `yaml:"warn"`
}

// WarnConfig controls additional warning behaviour.
type WarnConfig struct {
	MissingSolver bool `yaml:"missing_solver"`
}

// Default returns the baseline configuration used when no flags or config file specify values.
func Default() Config {
	return Config{
		Format: FormatPretty,
		Warn: WarnConfig{
			MissingSolver: true,
		},
	}
}

const (
	// FormatPretty renders human readable output.
	FormatPretty = "pretty"
	// FormatJSON renders machine readable output.
	FormatJSON = "json"
)

// Load reads .lmrtest.yml from the suite root when present. Missing files are ignored.
func Load(root string) (Config, error) {
	cfg := Default()
	path := filepath.Join(root, ".lmrtest.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}

	cfg = merge(cfg, fileCfg)
	return cfg, nil
}

func merge(base, override Config) Config {
	out := base

	if len(override.Cases) > 0 {
		out.Cases = append([]string{}, override.Cases...)
	}
	if len(override.Names) > 0 {
		out.Names = append([]string{}, override.Names...)
	}
	if len(override.OnlyStages) > 0 {
		out.OnlyStages = append([]string{}, override.OnlyStages...)
	}
	if len(override.SkipStages) > 0 {
		out.SkipStages = append([]string{}, override.SkipStages...)
	}
	if override.Solver != "" {
		out.Solver = override.Solver
	}
	if override.BuildTool != "" {
		out.BuildTool = override.BuildTool
	}
	if override.Format != "" {
		out.Format = override.Format
	}
	if override.DryRun {
		out.DryRun = true
	}
	if override.Verbose {
		out.Verbose = true
	}
	if override.Warn.MissingSolver {
		out.Warn.MissingSolver = true
	}

	return out
}

// ApplyFlags mutates cfg by applying values from CLI flags when they are present.
func ApplyFlags(cfg *Config, flags FlagValues) {
	if len(flags.Cases.Values) > 0 {
		cfg.Cases = append([]string{}, flags.Cases.Values...)
	}
	if len(flags.Names.Values) > 0 {
		cfg.Names = append([]string{}, flags.Names.Values...)
	}
	if len(flags.OnlyStages.Values) > 0 {
		cfg.OnlyStages = append([]string{}, flags.OnlyStages.Values...)
	}
	if len(flags.SkipStages.Values) > 0 {
		cfg.SkipStages = append([]string{}, flags.SkipStages.Values...)
	}
	if flags.Solver.Set {
		cfg.Solver = flags.Solver.Value
	}
	if flags.BuildTool.Set {
		cfg.BuildTool = flags.BuildTool.Value
	}
	if flags.Format.Set {
		cfg.Format = flags.Format.Value
	}
	if flags.DryRun.Set {
		cfg.DryRun = flags.DryRun.Value
	}
	if flags.Verbose.Set {
		cfg.Verbose = flags.Verbose.Value
	}
}

// FlagValues captures CLI flag state with knowledge of whether each flag was set explicitly.
type FlagValues struct {
	Cases      SliceFlag
	Names      SliceFlag
	OnlyStages SliceFlag
	SkipStages SliceFlag
	Solver     StringFlag
	BuildTool  StringFlag
	Format     StringFlag
	DryRun     BoolFlag
	Verbose    BoolFlag
}

// StringFlag represents a string flag and whether it was set.
type StringFlag struct {
	Value string
	Set   bool
}

// SliceFlag represents a slice flag and whether it captured values via CLI.
type SliceFlag struct {
	Values []string
}

// BoolFlag represents a bool flag and whether it was set.
type BoolFlag struct {
	Value bool
	Set   bool
}
