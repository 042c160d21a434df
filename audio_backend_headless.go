//go:build headless

package main

type OtoPlayer struct {
	started bool
	src     BlockRenderer
}

func NewOtoPlayer(sampleRate int, src BlockRenderer) (*OtoPlayer, error) {
	return &OtoPlayer{src: src}, nil
}

func (op *OtoPlayer) Start() {
	op.started = true
}

func (op *OtoPlayer) Stop() {
	op.started = false
}

func (op *OtoPlayer) Close() {
	op.started = false
}

func (op *OtoPlayer) IsStarted() bool {
	return op.started
}
