// synth_preset.go - Preset data model, validated once at the system boundary

/*
Entrain Engine - real-time binaural tone and panning synthesis

(c) 2025 - 2026 The Entrain Engine Authors
https://github.com/entrainfx/EntrainEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"math"
)

// Representative brainwave band targets, in Hz. Panning cycles derive from
// these through CycleSecondsForTarget.
const (
	BAND_DELTA_HZ = 2.0
	BAND_THETA_HZ = 6.0
	BAND_ALPHA_HZ = 10.0
	BAND_BETA_HZ  = 20.0
	BAND_GAMMA_HZ = 40.0
)

// CycleSecondsForTarget maps a target brainwave frequency to a panning
// period. The mapping is fixed as one full left-right-left traversal per
// target cycle: cycleSeconds = 1/targetHz (a 7Hz theta target pans with a
// ~0.143s cycle). Nothing in the render path re-derives this.
func CycleSecondsForTarget(targetHz float64) float64 {
	if targetHz <= 0 {
		return 0
	}
	return 1.0 / targetHz
}

// FrequencyLayer describes one independent tone generator.
type FrequencyLayer struct {
	FrequencyHz float64  `yaml:"frequency_hz"`
	Waveform    Waveform `yaml:"waveform"`
	Gain        float64  `yaml:"gain"`
}

// BinauralConfig drives two oscillators, one per ear. The perceived beat
// frequency is |right - left|; both carriers must sit in the audible band.
type BinauralConfig struct {
	LeftFrequencyHz  float64 `yaml:"left_hz"`
	RightFrequencyHz float64 `yaml:"right_hz"`
}

// BeatFrequencyHz returns the perceived pulsation rate.
func (b BinauralConfig) BeatFrequencyHz() float64 {
	return math.Abs(b.RightFrequencyHz - b.LeftFrequencyHz)
}

// PanningConfig describes the stereo sweep. CycleSeconds is the full
// left-right-left period.
type PanningConfig struct {
	Enabled      bool    `yaml:"enabled"`
	CycleSeconds float64 `yaml:"cycle_seconds"`
	Depth        float64 `yaml:"depth"`
}

// Preset is the immutable session recipe. The catalog owns it; the engine
// only reads it for the duration of a session.
type Preset struct {
	ID              string           `yaml:"id"`
	Name            string           `yaml:"name"`
	Category        string           `yaml:"category"`
	Layers          []FrequencyLayer `yaml:"layers"`
	Binaural        *BinauralConfig  `yaml:"binaural,omitempty"`
	Panning         PanningConfig    `yaml:"panning"`
	DurationSeconds float64          `yaml:"duration_seconds,omitempty"` // 0 = unbounded
	IsGated         bool             `yaml:"gated,omitempty"`
}

// Validate checks the preset once, at the boundary. A preset that passes is
// trusted everywhere downstream.
func (p *Preset) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil preset", ErrInvalidPreset)
	}
	if len(p.Layers) == 0 {
		return fmt.Errorf("%w: %q has no layers", ErrInvalidPreset, p.ID)
	}
	for i, l := range p.Layers {
		if l.FrequencyHz <= 0 || l.FrequencyHz > MAX_FREQ {
			return fmt.Errorf("%w: %q layer %d frequency %.3fHz out of range", ErrInvalidPreset, p.ID, i, l.FrequencyHz)
		}
		if l.Gain < 0 || l.Gain > 1 {
			return fmt.Errorf("%w: %q layer %d gain %.3f outside [0,1]", ErrInvalidPreset, p.ID, i, l.Gain)
		}
		if l.Waveform < WAVE_SINE || l.Waveform > WAVE_SAWTOOTH {
			return fmt.Errorf("%w: %q layer %d unknown waveform", ErrInvalidPreset, p.ID, i)
		}
	}
	if b := p.Binaural; b != nil {
		if b.LeftFrequencyHz < MIN_AUDIBLE_HZ || b.LeftFrequencyHz > MAX_FREQ {
			return fmt.Errorf("%w: %q binaural left %.3fHz outside audible range", ErrInvalidPreset, p.ID, b.LeftFrequencyHz)
		}
		if b.RightFrequencyHz < MIN_AUDIBLE_HZ || b.RightFrequencyHz > MAX_FREQ {
			return fmt.Errorf("%w: %q binaural right %.3fHz outside audible range", ErrInvalidPreset, p.ID, b.RightFrequencyHz)
		}
	}
	if p.Panning.Enabled {
		if p.Panning.CycleSeconds <= 0 {
			return fmt.Errorf("%w: %q panning cycle %.3fs must be positive", ErrInvalidPreset, p.ID, p.Panning.CycleSeconds)
		}
		if p.Panning.Depth < 0 || p.Panning.Depth > 1 {
			return fmt.Errorf("%w: %q panning depth %.3f outside [0,1]", ErrInvalidPreset, p.ID, p.Panning.Depth)
		}
	}
	if p.DurationSeconds < 0 {
		return fmt.Errorf("%w: %q negative duration", ErrInvalidPreset, p.ID)
	}
	return nil
}

// UnmarshalYAML accepts waveforms by name ("sine", "square", "triangle",
// "sawtooth") in catalog files.
func (w *Waveform) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseWaveform(s)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// MarshalYAML writes waveforms by name.
func (w Waveform) MarshalYAML() (interface{}, error) {
	return w.String(), nil
}
