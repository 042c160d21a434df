// synth_mixer_test.go - Stereo summing, normalization and soft-clip behaviour

/*
Entrain Engine - real-time binaural tone and panning synthesis

(c) 2025 - 2026 The Entrain Engine Authors
https://github.com/entrainfx/EntrainEngine
License: GPLv3 or later
*/

package main

import (
	"math"
	"testing"
)

func renderMixerSeconds(m *BinauralMixer, secs float64) (left, right []float32) {
	n := int(secs * float64(SAMPLE_RATE))
	n -= n % BLOCK_SIZE
	left = make([]float32, n)
	right = make([]float32, n)
	for off := 0; off < n; off += BLOCK_SIZE {
		m.RenderBlock(left[off:off+BLOCK_SIZE], right[off:off+BLOCK_SIZE])
	}
	return left, right
}

func TestMixerChannelRouting(t *testing.T) {
	layers := []*OscillatorLayer{
		NewOscillatorLayer(FrequencyLayer{FrequencyHz: 100, Waveform: WAVE_SINE, Gain: 0.8}, CHANNEL_LEFT, SAMPLE_RATE),
		NewOscillatorLayer(FrequencyLayer{FrequencyHz: 110, Waveform: WAVE_SINE, Gain: 0.8}, CHANNEL_RIGHT, SAMPLE_RATE),
	}
	m := NewBinauralMixer(layers, BLOCK_SIZE)
	left, right := renderMixerSeconds(m, 1.0)

	// Each ear must carry only its own carrier; the beat exists between the
	// ears, never inside one channel.
	leftHz := float64(countZeroCrossings(left)) / 2.0
	rightHz := float64(countZeroCrossings(right)) / 2.0
	if leftHz < 97 || leftHz > 103 {
		t.Errorf("left channel measured %vHz, want ~100", leftHz)
	}
	if rightHz < 107 || rightHz > 113 {
		t.Errorf("right channel measured %vHz, want ~110", rightHz)
	}
}

func TestMixerBinauralBeatEnvelope(t *testing.T) {
	// A 200/206Hz pair summed to mono beats at 6Hz: the envelope of the sum
	// rises and falls once per 1/6s. Windowed RMS tracks that envelope.
	layers := []*OscillatorLayer{
		NewOscillatorLayer(FrequencyLayer{FrequencyHz: 200, Waveform: WAVE_SINE, Gain: 0.8}, CHANNEL_LEFT, SAMPLE_RATE),
		NewOscillatorLayer(FrequencyLayer{FrequencyHz: 206, Waveform: WAVE_SINE, Gain: 0.8}, CHANNEL_RIGHT, SAMPLE_RATE),
	}
	m := NewBinauralMixer(layers, BLOCK_SIZE)
	left, right := renderMixerSeconds(m, 2.0)

	const window = 220 // 5ms, far shorter than the 167ms beat period
	env := make([]float32, 0, len(left)/window)
	for off := 0; off+window <= len(left); off += window {
		var sumSq float64
		for i := off; i < off+window; i++ {
			v := float64(left[i] + right[i])
			sumSq += v * v
		}
		env = append(env, float32(math.Sqrt(sumSq/window)))
	}

	var mean float32
	for _, v := range env {
		mean += v
	}
	mean /= float32(len(env))
	centered := make([]float32, len(env))
	for i, v := range env {
		centered[i] = v - mean
	}

	secs := float64(len(env)*window) / float64(SAMPLE_RATE)
	beatHz := float64(countZeroCrossings(centered)) / 2.0 / secs
	if math.Abs(beatHz-6.0) > 1.0 {
		t.Fatalf("amplitude-modulation envelope at %vHz, want ~6 (|right-left|)", beatHz)
	}

	// The beat has to swing: near-silent troughs, peaks near the summed
	// full amplitude.
	var minEnv, maxEnv float32 = env[0], env[0]
	for _, v := range env {
		if v < minEnv {
			minEnv = v
		}
		if v > maxEnv {
			maxEnv = v
		}
	}
	if minEnv > 0.2 || maxEnv < 0.8 {
		t.Fatalf("envelope swing [%v, %v] too shallow for a binaural beat", minEnv, maxEnv)
	}
}

func TestMixerNormalizationPreventsClipping(t *testing.T) {
	// Two full-scale layers in phase at the same frequency is the worst case:
	// a raw sum of 2.0 that must come out of the mixer no louder than 1.0.
	layers := []*OscillatorLayer{
		NewOscillatorLayer(FrequencyLayer{FrequencyHz: 440, Waveform: WAVE_SINE, Gain: 1.0}, CHANNEL_BOTH, SAMPLE_RATE),
		NewOscillatorLayer(FrequencyLayer{FrequencyHz: 440, Waveform: WAVE_SINE, Gain: 1.0}, CHANNEL_BOTH, SAMPLE_RATE),
	}
	m := NewBinauralMixer(layers, BLOCK_SIZE)
	left, right := renderMixerSeconds(m, 0.25)

	var peak float32
	for i := range left {
		if v := abs32(left[i]); v > peak {
			peak = v
		}
		if v := abs32(right[i]); v > peak {
			peak = v
		}
	}
	if peak > MAX_SAMPLE+1e-4 {
		t.Fatalf("mixer output clipped: peak %v", peak)
	}
	if peak < 0.5 {
		t.Fatalf("normalization crushed the signal: peak %v", peak)
	}
}

func TestMixerSingleLayerPassThrough(t *testing.T) {
	layers := []*OscillatorLayer{
		NewOscillatorLayer(FrequencyLayer{FrequencyHz: 440, Waveform: WAVE_SINE, Gain: 0.5}, CHANNEL_BOTH, SAMPLE_RATE),
	}
	m := NewBinauralMixer(layers, BLOCK_SIZE)
	left, right := renderMixerSeconds(m, 0.1)

	var peak float32
	for i := range left {
		if left[i] != right[i] {
			t.Fatalf("CHANNEL_BOTH layer produced unequal channels at sample %d: %v vs %v", i, left[i], right[i])
		}
		if v := abs32(left[i]); v > peak {
			peak = v
		}
	}
	// A lone layer needs no normalization and stays below saturation.
	if peak < 0.45 || peak > 0.51 {
		t.Fatalf("single-layer peak %v, want ~0.5", peak)
	}
}

func TestMixerBinauralPairIsNotNormalizedDown(t *testing.T) {
	// One layer per ear: busiest channel holds a single layer, so the pair
	// must pass through at full preset gain.
	layers := []*OscillatorLayer{
		NewOscillatorLayer(FrequencyLayer{FrequencyHz: 200, Waveform: WAVE_SINE, Gain: 0.8}, CHANNEL_LEFT, SAMPLE_RATE),
		NewOscillatorLayer(FrequencyLayer{FrequencyHz: 206, Waveform: WAVE_SINE, Gain: 0.8}, CHANNEL_RIGHT, SAMPLE_RATE),
	}
	m := NewBinauralMixer(layers, BLOCK_SIZE)
	left, _ := renderMixerSeconds(m, 0.1)

	var peak float32
	for _, v := range left {
		if a := abs32(v); a > peak {
			peak = a
		}
	}
	if peak < 0.75 || peak > 0.81 {
		t.Fatalf("binaural pair peak %v, want ~0.8", peak)
	}
}
