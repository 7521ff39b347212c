package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"consumption-solver/internal/model"
)

// Preset is a named calibration of the model parameters. Presets cover
// preferences and prices only; income, grid and solver settings come
// from the scenario defaults or the caller.
type Preset struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CRRA        float64  `json:"crra"`
	DiscFac     float64  `json:"disc_fac"`
	LivPrb      float64  `json:"liv_prb"`
	Rfree       float64  `json:"rfree"`
	PermGroFac  float64  `json:"perm_gro_fac"`
	BoroCnstArt *float64 `json:"boro_cnst_art,omitempty"`
}

// Params converts the preset into solver parameters.
func (p Preset) Params() model.Params {
	params := model.Params{
		CRRA:       p.CRRA,
		DiscFac:    p.DiscFac,
		LivPrb:     p.LivPrb,
		Rfree:      p.Rfree,
		PermGroFac: p.PermGroFac,
	}
	if p.BoroCnstArt != nil {
		v := *p.BoroCnstArt
		params.BoroCnstArt = &v
	}
	return params
}

// PresetList represents a collection of presets
type PresetList struct {
	UpdatedAt string   `json:"updated_at"` // ISO 8601 timestamp
	Presets   []Preset `json:"presets"`
}

// Find returns the preset with the given name.
func (l *PresetList) Find(name string) (Preset, bool) {
	for _, p := range l.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Builtin returns the calibrations shipped with the solver.
func Builtin() *PresetList {
	zero := 0.0
	return &PresetList{
		Presets: []Preset{
			{
				Name:        "baseline",
				Description: "Moderately impatient consumer with a no-borrowing constraint.",
				CRRA:        2.0,
				DiscFac:     0.96,
				LivPrb:      0.98,
				Rfree:       1.03,
				PermGroFac:  1.01,
				BoroCnstArt: &zero,
			},
			{
				Name:        "patient",
				Description: "High discount factor and certain survival; wealth keeps growing.",
				CRRA:        2.0,
				DiscFac:     0.99,
				LivPrb:      1.0,
				Rfree:       1.05,
				PermGroFac:  1.0,
				BoroCnstArt: &zero,
			},
			{
				Name:        "impatient",
				Description: "Low discount factor; target wealth sits near the constraint.",
				CRRA:        2.0,
				DiscFac:     0.90,
				LivPrb:      0.98,
				Rfree:       1.03,
				PermGroFac:  1.01,
				BoroCnstArt: &zero,
			},
			{
				Name:        "unconstrained",
				Description: "No artificial borrowing limit; only the natural constraint binds.",
				CRRA:        2.0,
				DiscFac:     0.96,
				LivPrb:      0.98,
				Rfree:       1.03,
				PermGroFac:  1.01,
			},
		},
	}
}

// LoadPresets loads presets from a JSON file
func LoadPresets(filePath string) (*PresetList, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}

	var list PresetList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to parse presets file: %w", err)
	}

	return &list, nil
}

// SavePresets saves presets to a JSON file
func SavePresets(list *PresetList, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal presets: %w", err)
	}

	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write presets file: %w", err)
	}

	return nil
}

// Merge overlays override presets onto base, matching by name. Overrides
// win; new names are appended in their own order.
func Merge(base, override *PresetList) *PresetList {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	out := &PresetList{UpdatedAt: base.UpdatedAt}
	if override.UpdatedAt != "" {
		out.UpdatedAt = override.UpdatedAt
	}

	byName := make(map[string]Preset, len(override.Presets))
	for _, p := range override.Presets {
		byName[p.Name] = p
	}
	seen := make(map[string]bool, len(base.Presets))
	for _, p := range base.Presets {
		if o, ok := byName[p.Name]; ok {
			p = o
		}
		out.Presets = append(out.Presets, p)
		seen[p.Name] = true
	}
	for _, p := range override.Presets {
		if !seen[p.Name] {
			out.Presets = append(out.Presets, p)
		}
	}
	return out
}

// Available returns the built-in presets, overlaid with the presets file
// at path when it exists. An empty path means DefaultPath.
func Available(path string) *PresetList {
	list := Builtin()
	if path == "" {
		path = DefaultPath()
	}
	loaded, err := LoadPresets(path)
	if err != nil {
		return list
	}
	return Merge(list, loaded)
}

// DefaultPath returns the default path for the presets file
func DefaultPath() string {
	// Try environment variable first
	if path := os.Getenv("PRESETS_FILE"); path != "" {
		return path
	}
	return "./data/presets.json"
}
