// synth_constants.go - Shared constants for the synthesis and render path

/*
Entrain Engine - real-time binaural tone and panning synthesis

(c) 2025 - 2026 The Entrain Engine Authors
https://github.com/entrainfx/EntrainEngine
License: GPLv3 or later
*/

package main

import "math"

const (
	SAMPLE_RATE = 44100
	BLOCK_SIZE  = 256 // frames per internal render block

	MS_TO_SAMPLES = SAMPLE_RATE / 1000 // convert milliseconds to samples
)

// Parameter ramping. Every live mutation of frequency, gain, panning depth or
// panning rate slews linearly over RAMP_WINDOW samples instead of stepping.
const (
	RAMP_MS     = 8 // comfortably above the 5ms click threshold
	RAMP_WINDOW = RAMP_MS * MS_TO_SAMPLES
)

// Session envelopes.
const (
	DEFAULT_FADE_OUT_SECS = 3.0 // duration fade-out and manual stop
	DEFAULT_FADE_IN_MS    = 100 // activation fade-in
	FORCED_STOP_MS        = 30  // emergency stop still ramps, never cuts
)

// Frequency limits. Binaural carriers must additionally sit in the audible
// band or there is nothing for the ear to beat against.
const (
	MIN_AUDIBLE_HZ = 20.0
	MAX_FREQ       = 20000.0
)

const (
	MAX_SAMPLE = 1.0
	MIN_SAMPLE = -1.0
)

// Control intent queue capacity. Must be a power of two.
const PARAM_QUEUE_SIZE = 64

const TWO_PI = float32(2 * math.Pi)
