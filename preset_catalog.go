// preset_catalog.go - Preset catalog: built-in bands plus YAML catalog files

/*
Entrain Engine - real-time binaural tone and panning synthesis

(c) 2025 - 2026 The Entrain Engine Authors
https://github.com/entrainfx/EntrainEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Catalog owns the preset collection. It is the storage collaborator at the
// engine's boundary: presets are parsed and validated exactly once here and
// handed to the engine as trusted, immutable values. The engine itself never
// reads files.
type Catalog struct {
	presets []*Preset
	byID    map[string]*Preset
}

type catalogFile struct {
	Presets []*Preset `yaml:"presets"`
}

// NewCatalog returns a catalog seeded with the built-in band presets.
func NewCatalog() *Catalog {
	c := &Catalog{byID: make(map[string]*Preset)}
	for _, p := range builtinPresets() {
		c.put(p)
	}
	return c
}

// LoadFile merges a YAML catalog file. File presets override built-ins with
// the same id. Any invalid preset rejects the whole file so a catalog is
// never half-loaded.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("catalog %s: %w", path, err)
	}
	if len(file.Presets) == 0 {
		return fmt.Errorf("catalog %s: no presets", path)
	}

	for _, p := range file.Presets {
		if p.ID == "" {
			return fmt.Errorf("catalog %s: %w: preset without id", path, ErrInvalidPreset)
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("catalog %s: %w", path, err)
		}
	}
	for _, p := range file.Presets {
		c.put(p)
	}
	return nil
}

// Get returns the preset with the given id.
func (c *Catalog) Get(id string) (*Preset, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// List returns all presets ordered by category, then id.
func (c *Catalog) List() []*Preset {
	out := make([]*Preset, len(c.presets))
	copy(out, c.presets)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (c *Catalog) put(p *Preset) {
	if old, ok := c.byID[p.ID]; ok {
		for i, existing := range c.presets {
			if existing == old {
				c.presets[i] = p
				break
			}
		}
	} else {
		c.presets = append(c.presets, p)
	}
	c.byID[p.ID] = p
}

// builtinPresets covers the classic entrainment bands so the engine is
// usable without a catalog file. Panning cycles derive from the band target
// through the fixed 1/targetHz mapping.
func builtinPresets() []*Preset {
	return []*Preset{
		{
			ID:       "delta-deep",
			Name:     "Deep Delta",
			Category: "sleep",
			Layers: []FrequencyLayer{
				{FrequencyHz: 100, Waveform: WAVE_SINE, Gain: 0.8},
			},
			Binaural: &BinauralConfig{LeftFrequencyHz: 100, RightFrequencyHz: 102},
			Panning:  PanningConfig{Enabled: true, CycleSeconds: CycleSecondsForTarget(BAND_DELTA_HZ), Depth: 0.4},
		},
		{
			ID:       "theta-drift",
			Name:     "Theta Drift",
			Category: "meditation",
			Layers: []FrequencyLayer{
				{FrequencyHz: 200, Waveform: WAVE_SINE, Gain: 0.8},
				{FrequencyHz: 55, Waveform: WAVE_TRIANGLE, Gain: 0.2},
			},
			Binaural: &BinauralConfig{LeftFrequencyHz: 200, RightFrequencyHz: 206},
			Panning:  PanningConfig{Enabled: true, CycleSeconds: CycleSecondsForTarget(BAND_THETA_HZ), Depth: 0.6},
		},
		{
			ID:       "alpha-calm",
			Name:     "Alpha Calm",
			Category: "relaxation",
			Layers: []FrequencyLayer{
				{FrequencyHz: 220, Waveform: WAVE_SINE, Gain: 0.8},
			},
			Binaural: &BinauralConfig{LeftFrequencyHz: 220, RightFrequencyHz: 230},
			Panning:  PanningConfig{Enabled: true, CycleSeconds: CycleSecondsForTarget(BAND_ALPHA_HZ), Depth: 0.5},
		},
		{
			ID:       "beta-focus",
			Name:     "Beta Focus",
			Category: "focus",
			Layers: []FrequencyLayer{
				{FrequencyHz: 315, Waveform: WAVE_SINE, Gain: 0.75},
			},
			Binaural: &BinauralConfig{LeftFrequencyHz: 315, RightFrequencyHz: 335},
			Panning:  PanningConfig{Enabled: true, CycleSeconds: CycleSecondsForTarget(BAND_BETA_HZ), Depth: 0.35},
			IsGated:  true,
		},
		{
			ID:       "gamma-spark",
			Name:     "Gamma Spark",
			Category: "focus",
			Layers: []FrequencyLayer{
				{FrequencyHz: 400, Waveform: WAVE_SINE, Gain: 0.7},
			},
			Binaural: &BinauralConfig{LeftFrequencyHz: 400, RightFrequencyHz: 440},
			Panning:  PanningConfig{Enabled: true, CycleSeconds: CycleSecondsForTarget(BAND_GAMMA_HZ), Depth: 0.3},
			IsGated:  true,
		},
	}
}
