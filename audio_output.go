// audio_output.go - Audio backend interface and factory

/*
Entrain Engine - real-time binaural tone and panning synthesis

(c) 2025 - 2026 The Entrain Engine Authors
https://github.com/entrainfx/EntrainEngine
License: GPLv3 or later
*/

package main

import "fmt"

// BlockRenderer produces interleaved stereo float32 sample blocks. The
// engine implements it; backends consume it on their real-time context.
type BlockRenderer interface {
	RenderBlock(out []float32)
}

// AudioOutput is implemented by all output backends. The engine only
// produces samples; device I/O lives entirely behind this interface.
type AudioOutput interface {
	// Start begins pulling samples from the renderer.
	Start()
	// Stop halts playback without releasing the device.
	Stop()
	// Close releases the device. The output is unusable afterwards.
	Close()
	// IsStarted returns true while playback is active.
	IsStarted() bool
}

// Output backend selectors.
const (
	AUDIO_BACKEND_NONE = iota // no device; the caller drives RenderBlock
	AUDIO_BACKEND_OTO
	AUDIO_BACKEND_ALSA
)

// NewAudioOutput builds the selected backend around a renderer.
func NewAudioOutput(backend int, sampleRate int, src BlockRenderer) (AudioOutput, error) {
	switch backend {
	case AUDIO_BACKEND_OTO:
		return NewOtoPlayer(sampleRate, src)
	case AUDIO_BACKEND_ALSA:
		return NewALSAPlayer(sampleRate, src)
	}
	return nil, fmt.Errorf("unknown audio backend %d", backend)
}

// ParseBackend maps a CLI name to a backend selector.
func ParseBackend(name string) (int, error) {
	switch name {
	case "oto", "":
		return AUDIO_BACKEND_OTO, nil
	case "alsa":
		return AUDIO_BACKEND_ALSA, nil
	case "none":
		return AUDIO_BACKEND_NONE, nil
	}
	return AUDIO_BACKEND_NONE, fmt.Errorf("unknown audio backend %q", name)
}
