// Package config loads and validates the solver parameters for the bewley
// CLI. It supports YAML config files with environment-variable overrides
// (prefix BEWLEY_) via viper and fails fast on any out-of-range value.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalidParameter is returned by Validate for any out-of-range value,
// wrapped with the offending field.
var ErrInvalidParameter = errors.New("config: invalid parameter")

// Model kinds accepted in Config.Model.
const (
	ModelHuggett  = "huggett"
	ModelAiyagari = "aiyagari"
)

// Config is the complete solver configuration.
type Config struct {
	Model       string      `mapstructure:"model"`
	Preferences Preferences `mapstructure:"preferences"`
	Income      Income      `mapstructure:"income"`
	Assets      Assets      `mapstructure:"assets"`
	Solver      Solver      `mapstructure:"solver"`
	Technology  Technology  `mapstructure:"technology"`
}

// Preferences are the household preference parameters.
type Preferences struct {
	Beta  float64 `mapstructure:"beta"`
	Gamma float64 `mapstructure:"gamma"`
}

// Income parameterizes the AR(1) log-income process.
type Income struct {
	States      int     `mapstructure:"states"`
	Persistence float64 `mapstructure:"persistence"`
	ShockStd    float64 `mapstructure:"shock_std"`
	Mean        float64 `mapstructure:"mean"`
}

// Assets shapes the asset grid.
type Assets struct {
	BorrowingLimit float64 `mapstructure:"borrowing_limit"`
	Max            float64 `mapstructure:"max"`
	Points         int     `mapstructure:"points"`
	LogSpaced      bool    `mapstructure:"log_spaced"`
}

// Solver carries tolerances, iteration caps and the price bracket.
type Solver struct {
	TolValue        float64 `mapstructure:"tol_value"`
	TolDistribution float64 `mapstructure:"tol_distribution"`
	TolClearing     float64 `mapstructure:"tol_clearing"`
	MaxIterValue    int     `mapstructure:"max_iter_value"`
	MaxIterDist     int     `mapstructure:"max_iter_distribution"`
	MaxIterClearing int     `mapstructure:"max_iter_clearing"`
	RateLow         float64 `mapstructure:"rate_low"`
	RateHigh        float64 `mapstructure:"rate_high"`
}

// Technology is the Cobb–Douglas block, used when Model is aiyagari.
type Technology struct {
	TFP     float64 `mapstructure:"tfp"`
	Alpha   float64 `mapstructure:"alpha"`
	Delta   float64 `mapstructure:"delta"`
	Labor   float64 `mapstructure:"labor"`
	BondSup float64 `mapstructure:"bond_supply"`
}

// Default returns a configuration that solves the baseline pure-credit
// economy out of the box.
func Default() *Config {
	return &Config{
		Model: ModelHuggett,
		Preferences: Preferences{
			Beta:  0.993362,
			Gamma: 3,
		},
		Income: Income{
			States:      3,
			Persistence: 0.95,
			ShockStd:    0.1224744871391589, // sqrt(0.015)
			Mean:        0,
		},
		Assets: Assets{
			BorrowingLimit: -3,
			Max:            24,
			Points:         50,
			LogSpaced:      true,
		},
		Solver: Solver{
			TolValue:        1e-6,
			TolDistribution: 1e-10,
			TolClearing:     1e-3,
			MaxIterValue:    20000,
			MaxIterDist:     100000,
			MaxIterClearing: 64,
			RateLow:         -1,
			RateHigh:        0, // 0 means "derive from beta"
		},
		Technology: Technology{
			TFP:     1,
			Alpha:   0.36,
			Delta:   0.08,
			Labor:   1,
			BondSup: 0,
		},
	}
}

// Load reads the config file at path (or only defaults and environment
// overrides when path is empty), unmarshals and validates it.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BEWLEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate enforces the parameter ranges of every solver input.
func (c *Config) Validate() error {
	if c.Model != ModelHuggett && c.Model != ModelAiyagari {
		return fmt.Errorf("%w: model must be %q or %q, got %q", ErrInvalidParameter, ModelHuggett, ModelAiyagari, c.Model)
	}
	if b := c.Preferences.Beta; b <= 0 || b >= 1 {
		return fmt.Errorf("%w: preferences.beta must lie in (0,1), got %g", ErrInvalidParameter, b)
	}
	if g := c.Preferences.Gamma; g <= 0 {
		return fmt.Errorf("%w: preferences.gamma must be positive, got %g", ErrInvalidParameter, g)
	}
	if n := c.Income.States; n < 2 {
		return fmt.Errorf("%w: income.states must be at least 2, got %d", ErrInvalidParameter, n)
	}
	if p := c.Income.Persistence; p <= -1 || p >= 1 {
		return fmt.Errorf("%w: income.persistence must lie in (-1,1), got %g", ErrInvalidParameter, p)
	}
	if s := c.Income.ShockStd; s <= 0 {
		return fmt.Errorf("%w: income.shock_std must be positive, got %g", ErrInvalidParameter, s)
	}
	if c.Assets.Max <= c.Assets.BorrowingLimit {
		return fmt.Errorf("%w: assets.max %g must exceed assets.borrowing_limit %g", ErrInvalidParameter, c.Assets.Max, c.Assets.BorrowingLimit)
	}
	if c.Assets.Points < 2 {
		return fmt.Errorf("%w: assets.points must be at least 2, got %d", ErrInvalidParameter, c.Assets.Points)
	}
	for name, tol := range map[string]float64{
		"solver.tol_value":        c.Solver.TolValue,
		"solver.tol_distribution": c.Solver.TolDistribution,
		"solver.tol_clearing":     c.Solver.TolClearing,
	} {
		if tol <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidParameter, name, tol)
		}
	}
	for name, n := range map[string]int{
		"solver.max_iter_value":        c.Solver.MaxIterValue,
		"solver.max_iter_distribution": c.Solver.MaxIterDist,
		"solver.max_iter_clearing":     c.Solver.MaxIterClearing,
	} {
		if n < 1 {
			return fmt.Errorf("%w: %s must be at least 1, got %d", ErrInvalidParameter, name, n)
		}
	}
	if c.Model == ModelAiyagari {
		if a := c.Technology.Alpha; a <= 0 || a >= 1 {
			return fmt.Errorf("%w: technology.alpha must lie in (0,1), got %g", ErrInvalidParameter, a)
		}
		if d := c.Technology.Delta; d < 0 || d > 1 {
			return fmt.Errorf("%w: technology.delta must lie in [0,1], got %g", ErrInvalidParameter, d)
		}
		if c.Technology.TFP <= 0 {
			return fmt.Errorf("%w: technology.tfp must be positive, got %g", ErrInvalidParameter, c.Technology.TFP)
		}
		if c.Technology.Labor <= 0 {
			return fmt.Errorf("%w: technology.labor must be positive, got %g", ErrInvalidParameter, c.Technology.Labor)
		}
	}

	return nil
}

// setDefaults registers every field of def under its mapstructure key so a
// partial config file inherits the rest.
func setDefaults(v *viper.Viper, def *Config) {
	v.SetDefault("model", def.Model)
	v.SetDefault("preferences.beta", def.Preferences.Beta)
	v.SetDefault("preferences.gamma", def.Preferences.Gamma)
	v.SetDefault("income.states", def.Income.States)
	v.SetDefault("income.persistence", def.Income.Persistence)
	v.SetDefault("income.shock_std", def.Income.ShockStd)
	v.SetDefault("income.mean", def.Income.Mean)
	v.SetDefault("assets.borrowing_limit", def.Assets.BorrowingLimit)
	v.SetDefault("assets.max", def.Assets.Max)
	v.SetDefault("assets.points", def.Assets.Points)
	v.SetDefault("assets.log_spaced", def.Assets.LogSpaced)
	v.SetDefault("solver.tol_value", def.Solver.TolValue)
	v.SetDefault("solver.tol_distribution", def.Solver.TolDistribution)
	v.SetDefault("solver.tol_clearing", def.Solver.TolClearing)
	v.SetDefault("solver.max_iter_value", def.Solver.MaxIterValue)
	v.SetDefault("solver.max_iter_distribution", def.Solver.MaxIterDist)
	v.SetDefault("solver.max_iter_clearing", def.Solver.MaxIterClearing)
	v.SetDefault("solver.rate_low", def.Solver.RateLow)
	v.SetDefault("solver.rate_high", def.Solver.RateHigh)
	v.SetDefault("technology.tfp", def.Technology.TFP)
	v.SetDefault("technology.alpha", def.Technology.Alpha)
	v.SetDefault("technology.delta", def.Technology.Delta)
	v.SetDefault("technology.labor", def.Technology.Labor)
	v.SetDefault("technology.bond_supply", def.Technology.BondSup)
}
