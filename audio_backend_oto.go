//go:build !headless

// audio_backend_oto.go - OTO v3 stereo output implementation

/*
Entrain Engine - real-time binaural tone and panning synthesis

(c) 2025 - 2026 The Entrain Engine Authors
https://github.com/entrainfx/EntrainEngine
License: GPLv3 or later
*/

package main

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/oto/v3"
)

// OtoPlayer adapts the engine to oto's pull model: oto's playback goroutine
// is the real-time context and calls Read, which pulls interleaved stereo
// blocks from the renderer.
type OtoPlayer struct {
	ctx       *oto.Context
	player    *oto.Player
	src       atomic.Pointer[rendererHolder] // lock-free for the Read hot path
	sampleBuf []float32                      // pre-allocated, grown only outside steady state
	started   bool
	mutex     sync.Mutex // setup/control operations only
}

type rendererHolder struct{ r BlockRenderer }

func NewOtoPlayer(sampleRate int, src BlockRenderer) (*OtoPlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	p := &OtoPlayer{ctx: ctx}
	p.src.Store(&rendererHolder{r: src})
	p.player = ctx.NewPlayer(p)
	// Typical oto request is 4096 bytes = 1024 float32 samples = 512 frames.
	p.sampleBuf = make([]float32, 4096)
	return p, nil
}

func (op *OtoPlayer) Read(p []byte) (n int, err error) {
	holder := op.src.Load()
	if holder == nil || holder.r == nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	// Whole stereo frames only: 8 bytes per frame.
	numSamples := (len(p) / 8) * 2
	if numSamples == 0 {
		return 0, nil
	}

	if len(op.sampleBuf) < numSamples {
		op.sampleBuf = make([]float32, numSamples)
	}
	samples := op.sampleBuf[:numSamples]

	holder.r.RenderBlock(samples)

	byteLen := numSamples * 4
	copy(p, (*[1 << 30]byte)(unsafe.Pointer(&samples[0]))[:byteLen])
	for i := byteLen; i < len(p); i++ {
		p[i] = 0
	}
	return len(p), nil
}

func (op *OtoPlayer) Start() {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if !op.started && op.player != nil {
		op.player.Play()
		op.started = true
	}
}

func (op *OtoPlayer) Stop() {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if op.started && op.player != nil {
		op.player.Pause()
		op.started = false
	}
}

func (op *OtoPlayer) Close() {
	op.Stop()
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if op.player != nil {
		op.player.Close()
		op.player = nil
	}
}

func (op *OtoPlayer) IsStarted() bool {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	return op.started
}
