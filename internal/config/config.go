package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"consumption-solver/internal/model"
)

// Config is the on-disk scenario shape (YAML).
type Config struct {
	// Optional: load the model block from a separate YAML preset.
	// Fields set in Model override fields from the preset.
	ModelFile string       `yaml:"model_file"`
	Model     ModelConfig  `yaml:"model"`
	Income    IncomeConfig `yaml:"income"`
	Grid      GridConfig   `yaml:"grid"`
	Risky     RiskyConfig  `yaml:"risky"`
	Solver    SolverConfig `yaml:"solver"`
}

type ModelConfig struct {
	CRRA        float64  `yaml:"crra"`
	DiscFac     float64  `yaml:"disc_fac"`
	LivPrb      float64  `yaml:"liv_prb"`
	Rfree       float64  `yaml:"rfree"`
	PermGroFac  float64  `yaml:"perm_gro_fac"`
	BoroCnstArt *float64 `yaml:"boro_cnst_art"`
}

type IncomeConfig struct {
	PermShkCount int     `yaml:"perm_shk_count"`
	TranShkCount int     `yaml:"tran_shk_count"`
	PermShkStd   float64 `yaml:"perm_shk_std"`
	TranShkStd   float64 `yaml:"tran_shk_std"`
	UnempPrb     float64 `yaml:"unemp_prb"`
	IncUnemp     float64 `yaml:"inc_unemp"`
}

type GridConfig struct {
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Count   int     `yaml:"count"`
	NestFac int     `yaml:"nest_fac"`
}

type RiskyConfig struct {
	Avg float64 `yaml:"avg"`
	Std float64 `yaml:"std"`
}

type SolverConfig struct {
	Method        string `yaml:"method"`
	Periods       int    `yaml:"periods"`
	Cubic         bool   `yaml:"cubic"`
	ValueFunction bool   `yaml:"value_function"`
	Extrapolate   bool   `yaml:"extrapolate"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but applies no defaults and does
// not validate. Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If model_file is set, load it and merge in any explicit overrides
	// from c.Model.
	if c.ModelFile != "" {
		modelPath := c.ModelFile
		if !filepath.IsAbs(modelPath) {
			// Prefer interpreting relative paths as relative to the config
			// file directory, but fall back to the provided path (relative
			// to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), modelPath)
			if _, err := os.Stat(cand); err == nil {
				modelPath = cand
			}
		}
		loaded, err := loadModelFile(modelPath)
		if err != nil {
			return nil, err
		}
		c.Model = MergeModel(loaded, c.Model)
	}
	return &c, nil
}

// ApplyDefaults fills everything left unset with the baseline
// calibration, so a scenario file only has to name what it changes. A
// config file cannot remove the artificial borrowing limit, only move it;
// absent means the default limit.
func (c *Config) ApplyDefaults() {
	def := model.DefaultScenario()
	c.Model = MergeModel(ModelConfig{
		CRRA:        def.Params.CRRA,
		DiscFac:     def.Params.DiscFac,
		LivPrb:      def.Params.LivPrb,
		Rfree:       def.Params.Rfree,
		PermGroFac:  def.Params.PermGroFac,
		BoroCnstArt: def.Params.BoroCnstArt,
	}, c.Model)
	if c.Income == (IncomeConfig{}) {
		c.Income = IncomeConfig{
			PermShkCount: def.Income.PermShkCount,
			TranShkCount: def.Income.TranShkCount,
			PermShkStd:   def.Income.PermShkStd,
			TranShkStd:   def.Income.TranShkStd,
			UnempPrb:     def.Income.UnempPrb,
			IncUnemp:     def.Income.IncUnemp,
		}
	}
	if c.Grid == (GridConfig{}) {
		c.Grid = GridConfig{
			Min:     def.Grid.Min,
			Max:     def.Grid.Max,
			Count:   def.Grid.Count,
			NestFac: def.Grid.NestFac,
		}
	}
	if c.Risky == (RiskyConfig{}) {
		c.Risky = RiskyConfig{Avg: def.Risky.Avg, Std: def.Risky.Std}
	}
	if c.Solver.Method == "" {
		c.Solver.Method = string(def.Method)
	}
	if c.Solver.Periods == 0 {
		c.Solver.Periods = def.Periods
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	sc, err := c.ToScenario()
	if err != nil {
		return fmt.Errorf("scenario config invalid: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return fmt.Errorf("scenario config invalid: %w", err)
	}
	return nil
}

// ToScenario converts the on-disk shape into the solver's scenario input.
func (c *Config) ToScenario() (model.Scenario, error) {
	method, err := model.ParseMethod(c.Solver.Method)
	if err != nil {
		return model.Scenario{}, err
	}
	params := model.Params{
		CRRA:       c.Model.CRRA,
		DiscFac:    c.Model.DiscFac,
		LivPrb:     c.Model.LivPrb,
		Rfree:      c.Model.Rfree,
		PermGroFac: c.Model.PermGroFac,
	}
	if c.Model.BoroCnstArt != nil {
		v := *c.Model.BoroCnstArt
		params.BoroCnstArt = &v
	}
	return model.Scenario{
		Params: params,
		Income: model.IncomeParams{
			PermShkCount: c.Income.PermShkCount,
			TranShkCount: c.Income.TranShkCount,
			PermShkStd:   c.Income.PermShkStd,
			TranShkStd:   c.Income.TranShkStd,
			UnempPrb:     c.Income.UnempPrb,
			IncUnemp:     c.Income.IncUnemp,
		},
		Grid: model.GridParams{
			Min:     c.Grid.Min,
			Max:     c.Grid.Max,
			Count:   c.Grid.Count,
			NestFac: c.Grid.NestFac,
		},
		Risky:   model.RiskyParams{Avg: c.Risky.Avg, Std: c.Risky.Std},
		Method:  method,
		Periods: c.Solver.Periods,
		Cubic:   c.Solver.Cubic,
		VFunc:   c.Solver.ValueFunction,
		Extrap:  c.Solver.Extrapolate,
	}, nil
}

type modelFileWrapper struct {
	Model ModelConfig `yaml:"model"`
}

func loadModelFile(path string) (ModelConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ModelConfig{}, err
	}
	var w modelFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return ModelConfig{}, err
	}
	return w.Model, nil
}

// MergeModel overlays non-zero fields from override onto base.
// This is used when loading a model preset and then applying overrides
// from the scenario file or the request.
func MergeModel(base, override ModelConfig) ModelConfig {
	out := base
	if override.CRRA != 0 {
		out.CRRA = override.CRRA
	}
	if override.DiscFac != 0 {
		out.DiscFac = override.DiscFac
	}
	if override.LivPrb != 0 {
		out.LivPrb = override.LivPrb
	}
	if override.Rfree != 0 {
		out.Rfree = override.Rfree
	}
	if override.PermGroFac != 0 {
		out.PermGroFac = override.PermGroFac
	}
	if override.BoroCnstArt != nil {
		out.BoroCnstArt = override.BoroCnstArt
	}
	return out
}
