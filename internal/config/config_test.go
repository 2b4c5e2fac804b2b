package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bewley/internal/config"
)

// TestDefault_IsValid guards the shipped defaults against drift.
func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, config.Default().Validate())
}

// TestValidate_RejectsOutOfRange spot-checks the fail-fast paths.
func TestValidate_RejectsOutOfRange(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown model", func(c *config.Config) { c.Model = "rbc" }},
		{"beta at one", func(c *config.Config) { c.Preferences.Beta = 1 }},
		{"gamma zero", func(c *config.Config) { c.Preferences.Gamma = 0 }},
		{"single state", func(c *config.Config) { c.Income.States = 1 }},
		{"unit root", func(c *config.Config) { c.Income.Persistence = 1 }},
		{"zero shock", func(c *config.Config) { c.Income.ShockStd = 0 }},
		{"inverted grid", func(c *config.Config) { c.Assets.Max = c.Assets.BorrowingLimit }},
		{"one grid point", func(c *config.Config) { c.Assets.Points = 1 }},
		{"zero tolerance", func(c *config.Config) { c.Solver.TolClearing = 0 }},
		{"zero cap", func(c *config.Config) { c.Solver.MaxIterValue = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidParameter)
		})
	}
}

// TestValidate_TechnologyOnlyForAiyagari ensures the production block is
// checked only when the model needs it.
func TestValidate_TechnologyOnlyForAiyagari(t *testing.T) {
	cfg := config.Default()
	cfg.Technology.Alpha = 2 // nonsense, but huggett ignores it
	assert.NoError(t, cfg.Validate())

	cfg.Model = config.ModelAiyagari
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidParameter)
}

// TestLoad_FileOverridesDefaults round-trips a partial YAML file.
func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bewley.yaml")
	body := []byte("model: aiyagari\npreferences:\n  beta: 0.95\nsolver:\n  rate_low: 0.001\n")
	require.NoError(t, os.WriteFile(path, body, 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, config.ModelAiyagari, cfg.Model)
	assert.Equal(t, 0.95, cfg.Preferences.Beta)
	assert.Equal(t, 0.001, cfg.Solver.RateLow)
	// Untouched fields keep their defaults.
	assert.Equal(t, 3.0, cfg.Preferences.Gamma)
	assert.Equal(t, 50, cfg.Assets.Points)
}

// TestLoad_RejectsInvalidFile ensures validation runs after unmarshal.
func TestLoad_RejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preferences:\n  gamma: -1\n"), 0o600))

	_, err := config.Load(path)
	assert.ErrorIs(t, err, config.ErrInvalidParameter)
}

// TestLoad_EmptyPathUsesDefaults covers the no-file branch.
func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}
