// Package config holds the transpiler's named constants and the jsweet.yaml
// project configuration.
//
// A minimal project file looks like:
//
//	input: src/main/java
//	tsout: target/ts
//	module: commonjs
//	classpath:
//	  - libs/jsweet-core-5.2.0.jar
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ModuleKind selects the module system of the generated TypeScript.
type ModuleKind string

const (
	ModuleNone     ModuleKind = "none"
	ModuleCommonJS ModuleKind = "commonjs"
	ModuleAMD      ModuleKind = "amd"
	ModuleUMD      ModuleKind = "umd"
	ModuleES2015   ModuleKind = "es2015"
)

var moduleKinds = map[ModuleKind]bool{
	ModuleNone:     true,
	ModuleCommonJS: true,
	ModuleAMD:      true,
	ModuleUMD:      true,
	ModuleES2015:   true,
}

// Config represents the jsweet.yaml project configuration.
type Config struct {
	// Input is the root directory scanned for .java source files.
	Input string `yaml:"input"`

	// TsOut is the directory receiving generated TypeScript. Required.
	TsOut string `yaml:"tsout"`

	// DtsOut optionally receives generated .d.ts declarations; defaults to
	// TsOut when Declarations is set and DtsOut is empty.
	DtsOut string `yaml:"dtsout,omitempty"`

	// CandiesJsOut overrides the default directory for JavaScript extracted
	// from candy archives.
	CandiesJsOut string `yaml:"candies_js_out,omitempty"`

	// Classpath lists the candy archives (and archive directories) scanned
	// by the candies processor.
	Classpath []string `yaml:"classpath,omitempty"`

	// Module selects the generated module kind. Defaults to "none".
	Module ModuleKind `yaml:"module,omitempty"`

	// Encoding of the Java sources. Defaults to UTF-8.
	Encoding string `yaml:"encoding,omitempty"`

	// Declarations requests .d.ts generation.
	Declarations bool `yaml:"declaration,omitempty"`

	// WorkingDir stores candy caches and other transpiler state.
	// Defaults to ".jsweet".
	WorkingDir string `yaml:"working_dir,omitempty"`

	// Verbose turns on info-level console diagnostics.
	Verbose bool `yaml:"verbose,omitempty"`
}

// Load reads and validates a jsweet.yaml file. Relative paths in the file
// are resolved against the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	base := filepath.Dir(path)
	cfg.resolvePaths(base)
	return &cfg, nil
}

// Default returns a config with defaults applied and no paths set.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Module == "" {
		c.Module = ModuleNone
	}
	if c.Encoding == "" {
		c.Encoding = "UTF-8"
	}
	if c.WorkingDir == "" {
		c.WorkingDir = ".jsweet"
	}
}

// Validate checks field values. Called by Load; exported for configs built
// in code.
func (c *Config) Validate() error {
	if c.TsOut == "" {
		return fmt.Errorf("tsout is required")
	}
	if !moduleKinds[c.Module] {
		return fmt.Errorf("unknown module kind %q", c.Module)
	}
	return nil
}

func (c *Config) resolvePaths(base string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	c.Input = resolve(c.Input)
	c.TsOut = resolve(c.TsOut)
	c.DtsOut = resolve(c.DtsOut)
	c.CandiesJsOut = resolve(c.CandiesJsOut)
	c.WorkingDir = resolve(c.WorkingDir)
	for i, cp := range c.Classpath {
		c.Classpath[i] = resolve(cp)
	}
}
