package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_defaults(t *testing.T) {
	cfg := Default()
	assert.Nil(t, cfg.CheckedArithmetic)
	assert.Equal(t, "informational", cfg.SeverityFloor)
	assert.Equal(t, "json", cfg.Format)
	// empty output dir means stdout
	assert.Equal(t, "", cfg.OutputDir)
	assert.False(t, cfg.Gas)
	assert.False(t, cfg.Compile)
}

func Test_loadOverridesDefaults(t *testing.T) {
	file := filepath.Join(t.TempDir(), "solscan.yaml")
	content := `
checked_arithmetic: false
disabled_rules:
  - weak-randomness
severity_floor: medium
format: markdown
gas: true
`
	assert.Nil(t, os.WriteFile(file, []byte(content), 0644))

	cfg, err := Load(file)
	assert.Nil(t, err)
	assert.NotNil(t, cfg.CheckedArithmetic)
	assert.False(t, *cfg.CheckedArithmetic)
	assert.Equal(t, []string{"weak-randomness"}, cfg.DisabledRules)
	assert.Equal(t, "medium", cfg.SeverityFloor)
	assert.Equal(t, "markdown", cfg.Format)
	assert.True(t, cfg.Gas)
	// untouched keys keep their defaults
	assert.Equal(t, "", cfg.OutputDir)
	assert.False(t, cfg.Compile)
}

func Test_loadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.NotNil(t, err)
}
