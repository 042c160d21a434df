// synth_oscillator.go - Phase-accumulating tone layer

/*
Entrain Engine - real-time binaural tone and panning synthesis

(c) 2025 - 2026 The Entrain Engine Authors
https://github.com/entrainfx/EntrainEngine
License: GPLv3 or later
*/

package main

import (
	"math"
	"sync/atomic"
)

// ChannelTag names the stereo destination of a layer's mono output.
type ChannelTag int

const (
	CHANNEL_BOTH ChannelTag = iota
	CHANNEL_LEFT
	CHANNEL_RIGHT
)

func (t ChannelTag) String() string {
	switch t {
	case CHANNEL_LEFT:
		return "left"
	case CHANNEL_RIGHT:
		return "right"
	}
	return "both"
}

// OscillatorLayer owns one tone generator: a normalized phase accumulator
// advanced by frequency/sampleRate per sample, plus ramped frequency and gain.
// The phase accumulator and ramps belong to the render context; the published
// atomics below are the only fields the control context may read.
type OscillatorLayer struct {
	// Hot render-context state
	phase      float64 // current position in the waveform, wraps at 1.0
	freq       paramRamp
	gain       paramRamp
	waveform   Waveform
	tag        ChannelTag
	sampleRate float64

	// Snapshot mirror, stored once per block for the control context.
	pubFreq atomic.Uint64 // math.Float64bits
	pubGain atomic.Uint64
}

// NewOscillatorLayer builds a layer from its preset description. The preset
// is validated at the boundary, so cfg is trusted here.
func NewOscillatorLayer(cfg FrequencyLayer, tag ChannelTag, sampleRate int) *OscillatorLayer {
	o := &OscillatorLayer{
		freq:       newRamp(cfg.FrequencyHz),
		gain:       newRamp(cfg.Gain),
		waveform:   cfg.Waveform,
		tag:        tag,
		sampleRate: float64(sampleRate),
	}
	o.publish()
	return o
}

// SetFrequency retargets the layer frequency as a ramp. Render context only;
// the control context routes through the intent queue.
func (o *OscillatorLayer) SetFrequency(hz float64) {
	if hz <= 0 || hz > MAX_FREQ {
		return
	}
	o.freq.Set(hz, RAMP_WINDOW)
}

// SetGain retargets the layer gain as a ramp. Render context only.
func (o *OscillatorLayer) SetGain(g float64) {
	o.gain.Set(clamp01(g), RAMP_WINDOW)
}

// RenderBlock overwrites out with the layer's next len(out) mono samples.
func (o *OscillatorLayer) RenderBlock(out []float32) {
	phase := o.phase
	for i := range out {
		inc := o.freq.Next() / o.sampleRate
		out[i] = float32(o.gain.Next()) * waveSample(o.waveform, phase, inc)
		phase += inc
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	o.phase = phase
	o.publish()
}

// Tag returns the layer's stereo destination.
func (o *OscillatorLayer) Tag() ChannelTag { return o.tag }

// Waveform returns the layer's generation function selector.
func (o *OscillatorLayer) Waveform() Waveform { return o.waveform }

// Phase returns the current normalized phase. Render context only.
func (o *OscillatorLayer) Phase() float64 { return o.phase }

// FrequencyHz returns the last published frequency. Safe from any context.
func (o *OscillatorLayer) FrequencyHz() float64 {
	return math.Float64frombits(o.pubFreq.Load())
}

// Gain returns the last published gain. Safe from any context.
func (o *OscillatorLayer) Gain() float64 {
	return math.Float64frombits(o.pubGain.Load())
}

func (o *OscillatorLayer) publish() {
	o.pubFreq.Store(math.Float64bits(o.freq.Value()))
	o.pubGain.Store(math.Float64bits(o.gain.Value()))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
