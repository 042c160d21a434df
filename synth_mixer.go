// synth_mixer.go - Stereo summing of oscillator layers

/*
Entrain Engine - real-time binaural tone and panning synthesis

(c) 2025 - 2026 The Entrain Engine Authors
https://github.com/entrainfx/EntrainEngine
License: GPLv3 or later
*/

package main

import "math"

// BinauralMixer sums N oscillator layers into one stereo block per tick.
// Each layer is rendered mono into a scratch buffer and accumulated into its
// tagged channel(s), then each channel is normalized by 1/sqrt(layers feeding
// the busier channel) so stacking layers cannot clip. If the normalized sum
// still exceeds the output range the whole block is passed through tanh
// saturation - soft clipping is an audio-quality invariant here, not an
// error path.
type BinauralMixer struct {
	layers  []*OscillatorLayer
	scratch []float32
	norm    float32
}

// NewBinauralMixer builds a mixer over the given layers. blockSize fixes the
// scratch buffer; RenderBlock never allocates.
func NewBinauralMixer(layers []*OscillatorLayer, blockSize int) *BinauralMixer {
	var leftCount, rightCount int
	for _, l := range layers {
		switch l.Tag() {
		case CHANNEL_LEFT:
			leftCount++
		case CHANNEL_RIGHT:
			rightCount++
		default:
			leftCount++
			rightCount++
		}
	}
	busiest := leftCount
	if rightCount > busiest {
		busiest = rightCount
	}
	norm := float32(1.0)
	if busiest > 1 {
		norm = float32(1.0 / math.Sqrt(float64(busiest)))
	}
	return &BinauralMixer{
		layers:  layers,
		scratch: make([]float32, blockSize),
		norm:    norm,
	}
}

// Layers returns the mixer's layer slice. The slice itself is immutable for
// the session's lifetime; only the render context mutates the layers.
func (m *BinauralMixer) Layers() []*OscillatorLayer { return m.layers }

// RenderBlock overwrites left and right with the next block of summed,
// normalized, soft-limited samples. len(left) == len(right) <= blockSize.
func (m *BinauralMixer) RenderBlock(left, right []float32) {
	n := len(left)
	for i := 0; i < n; i++ {
		left[i] = 0
		right[i] = 0
	}

	for _, layer := range m.layers {
		mono := m.scratch[:n]
		layer.RenderBlock(mono)
		switch layer.Tag() {
		case CHANNEL_LEFT:
			for i := 0; i < n; i++ {
				left[i] += mono[i]
			}
		case CHANNEL_RIGHT:
			for i := 0; i < n; i++ {
				right[i] += mono[i]
			}
		default:
			for i := 0; i < n; i++ {
				left[i] += mono[i]
				right[i] += mono[i]
			}
		}
	}

	var peak float32
	for i := 0; i < n; i++ {
		left[i] *= m.norm
		right[i] *= m.norm
		if v := abs32(left[i]); v > peak {
			peak = v
		}
		if v := abs32(right[i]); v > peak {
			peak = v
		}
	}

	// Saturate the whole block rather than hard-clipping single samples;
	// per-sample clamping would reintroduce the edges we just avoided.
	if peak > MAX_SAMPLE {
		for i := 0; i < n; i++ {
			left[i] = fastTanh(left[i])
			right[i] = fastTanh(right[i])
		}
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
