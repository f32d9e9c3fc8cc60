// Package config loads the scanner settings file.
package config

import (
	"os"
	"path"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// CheckedArithmetic declares the target semantics. When auto (the
	// default), the scan derives it from the contract's pragma.
	CheckedArithmetic *bool `yaml:"checked_arithmetic,omitempty"`

	// DisabledRules removes the named classes from the default set.
	DisabledRules []string `yaml:"disabled_rules,omitempty"`

	// SeverityFloor drops findings below this level at render time.
	SeverityFloor string `yaml:"severity_floor"`

	Format string `yaml:"format"`

	// OutputDir selects where reports are written; empty means stdout.
	OutputDir string `yaml:"output_dir,omitempty"`

	SolcDir string `yaml:"solc_dir"`

	Gas     bool `yaml:"gas"`
	Compile bool `yaml:"compile"`
}

func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		SeverityFloor: "informational",
		Format:        "json",
		SolcDir:       path.Join(home, ".solscan", "solc"),
	}
}

// Load reads a yaml settings file over the defaults.
func Load(filePath string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "ReadFile")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "Unmarshal")
	}
	return cfg, nil
}
