// audio_lut.go - Lookup tables for trig-free synthesis on the render path

/*
Entrain Engine - real-time binaural tone and panning synthesis

(c) 2025 - 2026 The Entrain Engine Authors
https://github.com/entrainfx/EntrainEngine
License: GPLv3 or later
*/

package main

import "math"

// Lookup table sizes
const (
	sinLUTSize  = 8192           // ~0.00012 cycle resolution before interpolation
	sinLUTMask  = sinLUTSize - 1 // mask for fast modulo
	tanhLUTSize = 4096
	tanhLUTMin  = float32(-4.0) // tanh saturates quickly outside [-4,4]
	tanhLUTMax  = float32(4.0)
)

const tanhLUTScale = float32(tanhLUTSize-1) / (tanhLUTMax - tanhLUTMin)

// sinLUT contains one full sine cycle over normalized phase [0,1).
// Index mapping: phase * sinLUTSize.
var sinLUT [sinLUTSize]float32

// tanhLUT contains precomputed tanh values for input [-4,4].
var tanhLUT [tanhLUTSize]float32

func init() {
	for i := 0; i < sinLUTSize; i++ {
		sinLUT[i] = float32(math.Sin(2 * math.Pi * float64(i) / float64(sinLUTSize)))
	}
	for i := 0; i < tanhLUTSize; i++ {
		x := float64(tanhLUTMin) + float64(i)*float64(tanhLUTMax-tanhLUTMin)/float64(tanhLUTSize-1)
		tanhLUT[i] = float32(math.Tanh(x))
	}
}

// fastSin returns sin(2π·phase) for normalized phase, using the lookup table
// with linear interpolation. Phase outside [0,1) is wrapped.
//
//go:nosplit
func fastSin(phase float64) float32 {
	phase -= math.Floor(phase)

	indexF := phase * sinLUTSize
	index := int(indexF)
	frac := float32(indexF - float64(index))

	index &= sinLUTMask
	nextIndex := (index + 1) & sinLUTMask

	return sinLUT[index] + frac*(sinLUT[nextIndex]-sinLUT[index])
}

// fastCos returns cos(2π·phase) by reading the sine table a quarter cycle ahead.
//
//go:nosplit
func fastCos(phase float64) float32 {
	return fastSin(phase + 0.25)
}

// fastTanh returns tanh(x) using the lookup table with linear interpolation.
// Input is clamped to [-4,4].
//
//go:nosplit
func fastTanh(x float32) float32 {
	if x <= tanhLUTMin {
		return -1.0
	}
	if x >= tanhLUTMax {
		return 1.0
	}

	indexF := (x - tanhLUTMin) * tanhLUTScale
	index := int(indexF)
	frac := indexF - float32(index)

	if index < 0 {
		return tanhLUT[0]
	}
	if index >= tanhLUTSize-1 {
		return tanhLUT[tanhLUTSize-1]
	}

	return tanhLUT[index] + frac*(tanhLUT[index+1]-tanhLUT[index])
}

// polyBLEP applies polynomial band-limited step correction around a waveform
// discontinuity. t is the normalized phase position (0..1), dt the per-sample
// phase increment. The correction window spans one sample either side of the
// edge, well under the 1ms soft-edge budget at any audible frequency.
//
//go:nosplit
func polyBLEP(t, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	if t < dt {
		t /= dt
		return t + t - t*t - 1.0
	} else if t > 1.0-dt {
		t = (t - 1.0) / dt
		return t*t + t + t + 1.0
	}
	return 0.0
}
