// synth_engine.go - Session controller and the real-time render path

/*
Entrain Engine - real-time binaural tone and panning synthesis

(c) 2025 - 2026 The Entrain Engine Authors
https://github.com/entrainfx/EntrainEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
)

// SessionStatus is the controller state machine:
// Idle -> Running -> Paused -> Running -> FadingOut -> Stopped.
type SessionStatus int32

const (
	STATUS_IDLE SessionStatus = iota
	STATUS_RUNNING
	STATUS_PAUSED
	STATUS_FADING_OUT
	STATUS_STOPPED
)

func (s SessionStatus) String() string {
	switch s {
	case STATUS_IDLE:
		return "idle"
	case STATUS_RUNNING:
		return "running"
	case STATUS_PAUSED:
		return "paused"
	case STATUS_FADING_OUT:
		return "fading-out"
	case STATUS_STOPPED:
		return "stopped"
	}
	return "unknown"
}

const (
	stopNone = iota
	stopFade
	stopForced
)

// LayerSnapshot mirrors one active oscillator for the control side.
type LayerSnapshot struct {
	FrequencyHz float64
	Gain        float64
	Waveform    Waveform
	Channel     ChannelTag
}

// SessionSnapshot is the lock-free view of engine state published for UI
// display. Assembled from atomics on the control side; the render path never
// allocates for it.
type SessionSnapshot struct {
	Status         SessionStatus
	PresetID       string
	PresetName     string
	ElapsedSeconds float64
	PanningPhase   float64
	PanningDepth   float64
	PanningCycle   float64 // seconds; 0 when panning is disabled
	LeftGain       float64
	RightGain      float64
	Layers         []LayerSnapshot
	BlocksRendered uint64
	IntentsApplied uint64
	IntentsDropped uint64
	PeakAmplitude  float64
}

// session is everything owned by the render context for one activated
// preset. It is reachable only through Engine.session; the control context
// swaps the pointer and never touches the internals.
type session struct {
	preset *Preset
	mixer  *BinauralMixer
	panner *PanningLFO

	left  []float32 // stereo scratch, BLOCK_SIZE each
	right []float32

	elapsedSamples  int64
	durationSamples int64 // 0 = unbounded
	fadeInSamples   int64
	fadeOutSamples  int64
	stopRamp        paramRamp // 1 -> 0 on manual stop
}

// Engine composes oscillator layers, the binaural mixer and the panning LFO
// into a runnable session driven by a preset. Exactly one session may be
// active at a time. The control API runs on the application thread; the
// audio backend drives RenderBlock on the real-time thread; the only data
// flowing between them is the intent queue (control -> render) and the
// published atomics behind Snapshot (render -> control).
type Engine struct {
	sampleRate int

	// Control path. The mutex serializes Activate/Close against each other;
	// it is never taken on the render path.
	mutex        sync.Mutex
	backend      int
	output       AudioOutput
	entitlements EntitlementChecker
	fadeInSecs   float64
	fadeOutSecs  float64

	session atomic.Pointer[session]
	intents paramQueue

	status      atomic.Int32
	stopRequest atomic.Int32
	faulted     atomic.Bool

	// Observability, render-written, control-read.
	activePreset  atomic.Pointer[Preset]
	elapsedBits   atomic.Uint64
	panPhaseBits  atomic.Uint64
	panDepthBits  atomic.Uint64
	panCycleBits  atomic.Uint64
	leftGainBits  atomic.Uint64
	rightGainBits atomic.Uint64
	peakBits      atomic.Uint64
	blocks        atomic.Uint64
	applied       atomic.Uint64
}

// NewEngine creates an engine bound to the given output backend. The backend
// itself is initialized lazily on first activation so a failed device still
// leaves a retryable Idle engine.
func NewEngine(backend int) *Engine {
	e := &Engine{
		sampleRate:   SAMPLE_RATE,
		backend:      backend,
		entitlements: AllowAll,
		fadeInSecs:   float64(DEFAULT_FADE_IN_MS) / 1000.0,
		fadeOutSecs:  DEFAULT_FADE_OUT_SECS,
	}
	e.leftGainBits.Store(math.Float64bits(1))
	e.rightGainBits.Store(math.Float64bits(1))
	return e
}

// SetEntitlements installs the gating collaborator consulted before every
// activation. Nil restores allow-all.
func (e *Engine) SetEntitlements(c EntitlementChecker) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if c == nil {
		c = AllowAll
	}
	e.entitlements = c
}

// SetFadeOutWindow overrides the default 3s fade-out for sessions activated
// afterwards.
func (e *Engine) SetFadeOutWindow(secs float64) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if secs > 0 {
		e.fadeOutSecs = secs
	}
}

// SetFadeInWindow overrides the default activation fade-in.
func (e *Engine) SetFadeInWindow(secs float64) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if secs >= 0 {
		e.fadeInSecs = secs
	}
}

// Activate validates the preset, consults the entitlement collaborator,
// tears down any prior session and installs a fresh one at elapsed zero.
// The render context resolves the session pointer once per block, so after
// the swap the old session's oscillators can never be read again: its
// in-flight block completes on the old pointer and every later block sees
// only the new session.
func (e *Engine) Activate(p *Preset) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if err := p.Validate(); err != nil {
		return err
	}
	if !e.entitlements.CanPlay(p) {
		return fmt.Errorf("%w: preset %q", ErrNotEntitled, p.ID)
	}
	if err := e.ensureOutput(); err != nil {
		return err
	}

	e.session.Store(nil) // synchronous teardown of the prior session

	// Intents posted against the torn-down session must not leak into the
	// new one: the preset alone configures the session at activation. With
	// the session pointer nil the render context no longer pops, so the
	// queue can be flushed from here.
	for {
		if _, ok := e.intents.Pop(); !ok {
			break
		}
	}

	e.stopRequest.Store(stopNone)
	e.faulted.Store(false)
	e.resetPublished()

	s := e.newSession(p)
	e.activePreset.Store(p)
	e.session.Store(s)
	e.status.Store(int32(STATUS_RUNNING))

	if e.output != nil {
		e.output.Start()
	}
	return nil
}

// Pause freezes block rendering at the next block boundary. Oscillator and
// panning phase are preserved so resuming is continuous.
func (e *Engine) Pause() {
	e.status.CompareAndSwap(int32(STATUS_RUNNING), int32(STATUS_PAUSED))
}

// Resume unfreezes a paused session.
func (e *Engine) Resume() {
	e.status.CompareAndSwap(int32(STATUS_PAUSED), int32(STATUS_RUNNING))
}

// Stop ends the session through the fade-out path. A forced stop still ramps
// over a few tens of milliseconds rather than cutting, to avoid a click.
func (e *Engine) Stop(forced bool) {
	st := SessionStatus(e.status.Load())
	if st != STATUS_RUNNING && st != STATUS_PAUSED && st != STATUS_FADING_OUT {
		return
	}
	if forced {
		e.stopRequest.Store(stopForced)
	} else if st != STATUS_FADING_OUT {
		e.stopRequest.Store(stopFade)
	}
}

// SetLayerFrequency posts a ramped frequency change for the active
// oscillator at the given snapshot index.
func (e *Engine) SetLayerFrequency(index int, hz float64) {
	e.postIntent(ParamIntent{Op: OP_LAYER_FREQ, Layer: index, Value: hz})
}

// SetLayerGain posts a ramped gain change for an active oscillator.
func (e *Engine) SetLayerGain(index int, g float64) {
	e.postIntent(ParamIntent{Op: OP_LAYER_GAIN, Layer: index, Value: g})
}

// SetPanningDepth posts a ramped panning depth change.
func (e *Engine) SetPanningDepth(d float64) {
	e.postIntent(ParamIntent{Op: OP_PAN_DEPTH, Value: d})
}

// SetPanningCycle posts a ramped panning period change. The LFO ramps its
// rate, not its phase.
func (e *Engine) SetPanningCycle(secs float64) {
	e.postIntent(ParamIntent{Op: OP_PAN_CYCLE, Value: secs})
}

func (e *Engine) postIntent(in ParamIntent) {
	if e.session.Load() == nil {
		return
	}
	e.intents.Push(in)
}

// Status returns the current controller state.
func (e *Engine) Status() SessionStatus {
	return SessionStatus(e.status.Load())
}

// Snapshot assembles the published engine state. Control context only; the
// per-call allocation happens here, never on the render path.
func (e *Engine) Snapshot() SessionSnapshot {
	snap := SessionSnapshot{
		Status:         SessionStatus(e.status.Load()),
		ElapsedSeconds: math.Float64frombits(e.elapsedBits.Load()),
		PanningPhase:   math.Float64frombits(e.panPhaseBits.Load()),
		PanningDepth:   math.Float64frombits(e.panDepthBits.Load()),
		PanningCycle:   math.Float64frombits(e.panCycleBits.Load()),
		LeftGain:       math.Float64frombits(e.leftGainBits.Load()),
		RightGain:      math.Float64frombits(e.rightGainBits.Load()),
		BlocksRendered: e.blocks.Load(),
		IntentsApplied: e.applied.Load(),
		IntentsDropped: e.intents.Dropped(),
		PeakAmplitude:  math.Float64frombits(e.peakBits.Load()),
	}
	if p := e.activePreset.Load(); p != nil {
		snap.PresetID = p.ID
		snap.PresetName = p.Name
	}
	if s := e.session.Load(); s != nil {
		layers := s.mixer.Layers()
		snap.Layers = make([]LayerSnapshot, len(layers))
		for i, l := range layers {
			snap.Layers[i] = LayerSnapshot{
				FrequencyHz: l.FrequencyHz(),
				Gain:        l.Gain(),
				Waveform:    l.Waveform(),
				Channel:     l.Tag(),
			}
		}
	}
	return snap
}

// Close releases the audio backend and discards any session.
func (e *Engine) Close() {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.session.Store(nil)
	e.status.Store(int32(STATUS_STOPPED))
	if e.output != nil {
		e.output.Stop()
		e.output.Close()
		e.output = nil
	}
}

func (e *Engine) ensureOutput() error {
	if e.backend == AUDIO_BACKEND_NONE || e.output != nil {
		return nil
	}
	out, err := NewAudioOutput(e.backend, e.sampleRate, e)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	e.output = out
	return nil
}

func (e *Engine) newSession(p *Preset) *session {
	sr := e.sampleRate

	layers := make([]*OscillatorLayer, 0, len(p.Layers)+1)
	rest := p.Layers
	if p.Binaural != nil {
		// The first layer supplies waveform and gain for the per-ear pair.
		base := p.Layers[0]
		leftCfg, rightCfg := base, base
		leftCfg.FrequencyHz = p.Binaural.LeftFrequencyHz
		rightCfg.FrequencyHz = p.Binaural.RightFrequencyHz
		layers = append(layers,
			NewOscillatorLayer(leftCfg, CHANNEL_LEFT, sr),
			NewOscillatorLayer(rightCfg, CHANNEL_RIGHT, sr))
		rest = p.Layers[1:]
	}
	for _, cfg := range rest {
		layers = append(layers, NewOscillatorLayer(cfg, CHANNEL_BOTH, sr))
	}

	s := &session{
		preset:          p,
		mixer:           NewBinauralMixer(layers, BLOCK_SIZE),
		panner:          NewPanningLFO(p.Panning, sr),
		left:            make([]float32, BLOCK_SIZE),
		right:           make([]float32, BLOCK_SIZE),
		durationSamples: int64(p.DurationSeconds * float64(sr)),
		fadeInSamples:   int64(e.fadeInSecs * float64(sr)),
		fadeOutSamples:  int64(e.fadeOutSecs * float64(sr)),
		stopRamp:        newRamp(1),
	}
	if s.durationSamples > 0 && s.fadeOutSamples > s.durationSamples {
		s.fadeOutSamples = s.durationSamples
	}
	return s
}

// RenderBlock fills an interleaved stereo float32 buffer with the next
// len(out)/2 frames. This is the real-time context: no locks, no allocation,
// no blocking. Any panic here is fatal to the rendering context and resolves
// to zeroed output, since corrupted samples are worse than silence.
func (e *Engine) RenderBlock(out []float32) {
	defer func() {
		if r := recover(); r != nil {
			e.faulted.Store(true)
			e.session.Store(nil)
			e.status.Store(int32(STATUS_STOPPED))
			zeroSamples(out)
		}
	}()

	if e.faulted.Load() {
		zeroSamples(out)
		return
	}
	s := e.session.Load()
	if s == nil {
		zeroSamples(out)
		return
	}

	// At most one intent per block boundary.
	if in, ok := e.intents.Pop(); ok {
		e.applyIntent(s, in)
		e.applied.Add(1)
	}

	st := SessionStatus(e.status.Load())
	if req := e.stopRequest.Swap(stopNone); req != stopNone {
		if st == STATUS_PAUSED {
			// Nothing audible to fade; finish immediately.
			e.finishSession()
			zeroSamples(out)
			return
		}
		if req == stopForced {
			s.stopRamp.Force(0, FORCED_STOP_MS*MS_TO_SAMPLES)
		} else {
			s.stopRamp.Set(0, int(s.fadeOutSamples))
		}
		st = STATUS_FADING_OUT
		e.status.Store(int32(st))
	}

	switch st {
	case STATUS_RUNNING, STATUS_FADING_OUT:
	case STATUS_PAUSED:
		zeroSamples(out)
		e.blocks.Add(1)
		return
	default:
		zeroSamples(out)
		return
	}

	peak := math.Float64frombits(e.peakBits.Load())
	var lastLG, lastRG float32 = 1, 1

	frames := len(out) / 2
	idx := 0
	for frames > 0 {
		n := frames
		if n > BLOCK_SIZE {
			n = BLOCK_SIZE
		}
		left, right := s.left[:n], s.right[:n]
		s.mixer.RenderBlock(left, right)

		for i := 0; i < n; i++ {
			lg, rg := s.panner.NextGains()
			env := s.nextEnvelope()
			l := left[i] * lg * env
			r := right[i] * rg * env
			out[idx] = l
			out[idx+1] = r
			idx += 2
			if v := float64(abs32(l)); v > peak {
				peak = v
			}
			if v := float64(abs32(r)); v > peak {
				peak = v
			}
			lastLG, lastRG = lg, rg
		}
		frames -= n
	}

	// Duration window entered: surface the state change.
	if st == STATUS_RUNNING && s.durationSamples > 0 &&
		s.elapsedSamples >= s.durationSamples-s.fadeOutSamples {
		e.status.Store(int32(STATUS_FADING_OUT))
	}

	e.elapsedBits.Store(math.Float64bits(float64(s.elapsedSamples) / float64(e.sampleRate)))
	e.panPhaseBits.Store(math.Float64bits(s.panner.Phase()))
	e.panDepthBits.Store(math.Float64bits(s.panner.DepthValue()))
	e.panCycleBits.Store(math.Float64bits(s.panner.CycleSecondsValue()))
	e.leftGainBits.Store(math.Float64bits(float64(lastLG)))
	e.rightGainBits.Store(math.Float64bits(float64(lastRG)))
	e.peakBits.Store(math.Float64bits(peak))
	e.blocks.Add(1)

	if s.finished() {
		e.finishSession()
	}
}

func (e *Engine) finishSession() {
	e.session.Store(nil)
	e.status.Store(int32(STATUS_STOPPED))
}

func (e *Engine) applyIntent(s *session, in ParamIntent) {
	switch in.Op {
	case OP_LAYER_FREQ:
		if l := s.layer(in.Layer); l != nil {
			l.SetFrequency(in.Value)
		}
	case OP_LAYER_GAIN:
		if l := s.layer(in.Layer); l != nil {
			l.SetGain(in.Value)
		}
	case OP_PAN_DEPTH:
		s.panner.SetDepth(in.Value)
	case OP_PAN_CYCLE:
		s.panner.SetCycleSeconds(in.Value)
	}
}

func (e *Engine) resetPublished() {
	e.elapsedBits.Store(0)
	e.panPhaseBits.Store(0)
	e.panDepthBits.Store(0)
	e.panCycleBits.Store(0)
	e.leftGainBits.Store(math.Float64bits(1))
	e.rightGainBits.Store(math.Float64bits(1))
	e.peakBits.Store(0)
	e.blocks.Store(0)
	e.applied.Store(0)
}

func (s *session) layer(i int) *OscillatorLayer {
	layers := s.mixer.Layers()
	if i < 0 || i >= len(layers) {
		return nil
	}
	return layers[i]
}

// nextEnvelope advances elapsed time one sample and returns the master
// envelope: activation fade-in, duration fade-out and the stop ramp
// multiplied together. Duration fades are computed from elapsed samples so
// gain reaches exactly zero at the configured duration.
func (s *session) nextEnvelope() float32 {
	n := s.elapsedSamples
	s.elapsedSamples++

	env := s.stopRamp.Next()
	if s.fadeInSamples > 0 && n < s.fadeInSamples {
		env *= float64(n) / float64(s.fadeInSamples)
	}
	if s.durationSamples > 0 {
		remaining := s.durationSamples - n
		if remaining <= 0 {
			return 0
		}
		if remaining < s.fadeOutSamples {
			env *= float64(remaining) / float64(s.fadeOutSamples)
		}
	}
	return float32(env)
}

func (s *session) finished() bool {
	if s.durationSamples > 0 && s.elapsedSamples >= s.durationSamples {
		return true
	}
	return s.stopRamp.Settled() && s.stopRamp.Value() == 0 && s.stopRamp.Target() == 0
}

func zeroSamples(out []float32) {
	for i := range out {
		out[i] = 0
	}
}
