// synth_waveform.go - Pure phase-to-amplitude waveform generation

/*
Entrain Engine - real-time binaural tone and panning synthesis

(c) 2025 - 2026 The Entrain Engine Authors
https://github.com/entrainfx/EntrainEngine
License: GPLv3 or later
*/

package main

import "fmt"

// Waveform selects one of the four generation functions. It is a closed set:
// ParseWaveform rejects anything else at the preset boundary so the render
// path never sees an unknown value.
type Waveform int

const (
	WAVE_SINE Waveform = iota
	WAVE_SQUARE
	WAVE_TRIANGLE
	WAVE_SAWTOOTH
)

func (w Waveform) String() string {
	switch w {
	case WAVE_SINE:
		return "sine"
	case WAVE_SQUARE:
		return "square"
	case WAVE_TRIANGLE:
		return "triangle"
	case WAVE_SAWTOOTH:
		return "sawtooth"
	}
	return fmt.Sprintf("waveform(%d)", int(w))
}

// ParseWaveform maps a preset label to its Waveform.
func ParseWaveform(s string) (Waveform, error) {
	switch s {
	case "sine", "sin":
		return WAVE_SINE, nil
	case "square":
		return WAVE_SQUARE, nil
	case "triangle", "tri":
		return WAVE_TRIANGLE, nil
	case "sawtooth", "saw":
		return WAVE_SAWTOOTH, nil
	}
	return WAVE_SINE, fmt.Errorf("unknown waveform %q", s)
}

// waveSample maps a normalized phase in [0,1) to an amplitude in [-1,1].
// Stateless: the same (waveform, phase, inc) always yields the same sample.
// inc is the caller's per-sample phase increment and is used only to size the
// square wave's polyBLEP soft edge; pass 0 for the ideal hard-edged shape.
//
//go:nosplit
func waveSample(w Waveform, phase, inc float64) float32 {
	switch w {
	case WAVE_SINE:
		return fastSin(phase)

	case WAVE_SQUARE:
		v := 1.0
		if phase >= 0.5 {
			v = -1.0
		}
		// Soften both edges to keep harmonics from folding back.
		v += polyBLEP(phase, inc)
		half := phase + 0.5
		if half >= 1.0 {
			half -= 1.0
		}
		v -= polyBLEP(half, inc)
		return float32(v)

	case WAVE_TRIANGLE:
		// Piecewise linear, peaking at +1 on phase 0.25 and -1 on 0.75.
		switch {
		case phase < 0.25:
			return float32(4.0 * phase)
		case phase < 0.75:
			return float32(2.0 - 4.0*phase)
		default:
			return float32(4.0*phase - 4.0)
		}

	case WAVE_SAWTOOTH:
		return float32(2.0*phase - 1.0)
	}
	return 0
}
