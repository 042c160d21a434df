// synth_errors.go - Error taxonomy for session activation and the backend

package main

import "errors"

var (
	// ErrInvalidPreset rejects activation synchronously: non-positive
	// frequency, empty layer list, bad gain or a non-positive panning cycle.
	// No partial session is created.
	ErrInvalidPreset = errors.New("invalid preset")

	// ErrNotEntitled means the entitlement collaborator refused the preset.
	// Any prior session is left untouched.
	ErrNotEntitled = errors.New("preset not entitled")

	// ErrEngineUnavailable means the audio backend failed to initialize.
	// Recoverable: the engine stays Idle and activation may be retried.
	ErrEngineUnavailable = errors.New("audio engine unavailable")
)
