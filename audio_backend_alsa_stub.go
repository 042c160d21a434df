//go:build !linux || headless

// audio_backend_alsa_stub.go - ALSA fallback for platforms without it

package main

import "errors"

type ALSAPlayer struct{}

func NewALSAPlayer(sampleRate int, src BlockRenderer) (*ALSAPlayer, error) {
	return nil, errors.New("ALSA backend not available on this platform")
}

func (ap *ALSAPlayer) Start()          {}
func (ap *ALSAPlayer) Stop()           {}
func (ap *ALSAPlayer) Close()          {}
func (ap *ALSAPlayer) IsStarted() bool { return false }
