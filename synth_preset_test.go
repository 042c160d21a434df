// synth_preset_test.go - Preset validation taxonomy

/*
Entrain Engine - real-time binaural tone and panning synthesis

(c) 2025 - 2026 The Entrain Engine Authors
https://github.com/entrainfx/EntrainEngine
License: GPLv3 or later
*/

package main

import (
	"errors"
	"testing"
)

func validTestPreset() *Preset {
	return &Preset{
		ID:       "test",
		Name:     "Test",
		Category: "test",
		Layers: []FrequencyLayer{
			{FrequencyHz: 220, Waveform: WAVE_SINE, Gain: 0.8},
		},
		Binaural: &BinauralConfig{LeftFrequencyHz: 220, RightFrequencyHz: 230},
		Panning:  PanningConfig{Enabled: true, CycleSeconds: 0.1, Depth: 0.5},
	}
}

func TestPresetValidateAccepts(t *testing.T) {
	if err := validTestPreset().Validate(); err != nil {
		t.Fatalf("valid preset rejected: %v", err)
	}
}

func TestPresetValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Preset)
	}{
		{"no layers", func(p *Preset) { p.Layers = nil }},
		{"zero frequency", func(p *Preset) { p.Layers[0].FrequencyHz = 0 }},
		{"negative frequency", func(p *Preset) { p.Layers[0].FrequencyHz = -100 }},
		{"frequency above nyquist range", func(p *Preset) { p.Layers[0].FrequencyHz = MAX_FREQ + 1 }},
		{"gain above one", func(p *Preset) { p.Layers[0].Gain = 1.5 }},
		{"negative gain", func(p *Preset) { p.Layers[0].Gain = -0.1 }},
		{"unknown waveform", func(p *Preset) { p.Layers[0].Waveform = Waveform(99) }},
		{"binaural left below audible", func(p *Preset) { p.Binaural.LeftFrequencyHz = 10 }},
		{"binaural right below audible", func(p *Preset) { p.Binaural.RightFrequencyHz = 5 }},
		{"panning cycle zero", func(p *Preset) { p.Panning.CycleSeconds = 0 }},
		{"panning depth above one", func(p *Preset) { p.Panning.Depth = 1.2 }},
		{"negative duration", func(p *Preset) { p.DurationSeconds = -1 }},
	}
	for _, c := range cases {
		p := validTestPreset()
		c.mutate(p)
		err := p.Validate()
		if err == nil {
			t.Errorf("%s: expected rejection", c.name)
			continue
		}
		if !errors.Is(err, ErrInvalidPreset) {
			t.Errorf("%s: error %v does not wrap ErrInvalidPreset", c.name, err)
		}
	}
}

func TestPresetValidateNil(t *testing.T) {
	var p *Preset
	if err := p.Validate(); !errors.Is(err, ErrInvalidPreset) {
		t.Fatalf("nil preset: %v", err)
	}
}

func TestPresetDisabledPanningSkipsPanChecks(t *testing.T) {
	p := validTestPreset()
	p.Panning = PanningConfig{Enabled: false}
	if err := p.Validate(); err != nil {
		t.Fatalf("disabled panning should not require a cycle: %v", err)
	}
}

func TestBinauralBeatFrequency(t *testing.T) {
	b := BinauralConfig{LeftFrequencyHz: 200, RightFrequencyHz: 206}
	if got := b.BeatFrequencyHz(); got != 6 {
		t.Fatalf("beat %v, want 6", got)
	}
	b = BinauralConfig{LeftFrequencyHz: 210, RightFrequencyHz: 200}
	if got := b.BeatFrequencyHz(); got != 10 {
		t.Fatalf("beat should be absolute: %v, want 10", got)
	}
}
