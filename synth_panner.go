// synth_panner.go - Low-frequency stereo energy redistribution

/*
Entrain Engine - real-time binaural tone and panning synthesis

(c) 2025 - 2026 The Entrain Engine Authors
https://github.com/entrainfx/EntrainEngine
License: GPLv3 or later
*/

package main

// PanningLFO sweeps stereo energy left and right once per cycle, at a rate
// tied to the target brainwave frequency (cycleSeconds = 1/targetHz, see
// CycleSecondsForTarget). Gains follow a cosine crossfade:
//
//	leftGain  = clamp(1 - depth*(1 - cos 2πφ), 0, 1)
//	rightGain = clamp(1 - depth*(1 + cos 2πφ), 0, 1)
//
// so a cycle starts left-heavy (leftGain 1), bottoms out at leftGain 1-2·depth
// halfway through, and returns to 1 at the end, with the summed gain constant
// across the cycle. Disabled panning is a strict pass-through.
//
// Rate changes ramp the rate, never the phase, so retargeting cycleSeconds
// mid-cycle cannot jump the stereo image.
type PanningLFO struct {
	enabled    bool
	phase      float64 // 0..1 over one full left-right-left traversal
	rate       paramRamp
	depth      paramRamp
	sampleRate float64
}

// NewPanningLFO builds the LFO from its validated preset description.
func NewPanningLFO(cfg PanningConfig, sampleRate int) *PanningLFO {
	p := &PanningLFO{
		enabled:    cfg.Enabled,
		sampleRate: float64(sampleRate),
		depth:      newRamp(clamp01(cfg.Depth)),
	}
	if cfg.Enabled {
		p.rate = newRamp(1.0 / cfg.CycleSeconds)
	} else {
		p.rate = newRamp(0)
	}
	return p
}

// Enabled reports whether the LFO modulates gain at all.
func (p *PanningLFO) Enabled() bool { return p.enabled }

// Phase returns the current normalized cycle position. Render context only.
func (p *PanningLFO) Phase() float64 { return p.phase }

// SetDepth retargets modulation depth as a ramp. Render context only.
func (p *PanningLFO) SetDepth(d float64) {
	p.depth.Set(clamp01(d), RAMP_WINDOW)
}

// SetCycleSeconds retargets the traversal period. The rate is ramped and the
// phase left untouched. Render context only.
func (p *PanningLFO) SetCycleSeconds(secs float64) {
	if secs <= 0 {
		return
	}
	p.rate.Set(1.0/secs, RAMP_WINDOW)
}

// DepthValue returns the current (possibly mid-ramp) modulation depth.
// Render context only; the engine republishes it for the snapshot.
func (p *PanningLFO) DepthValue() float64 { return p.depth.Value() }

// CycleSecondsValue returns the current traversal period, 0 when disabled.
func (p *PanningLFO) CycleSecondsValue() float64 {
	if !p.enabled || p.rate.Value() <= 0 {
		return 0
	}
	return 1.0 / p.rate.Value()
}

// NextGains advances one sample and returns the stereo gain multipliers.
func (p *PanningLFO) NextGains() (left, right float32) {
	if !p.enabled {
		return 1, 1
	}
	depth := p.depth.Next()
	c := float64(fastCos(p.phase))

	left = float32(clamp01(1 - depth*(1-c)))
	right = float32(clamp01(1 - depth*(1+c)))

	p.phase += p.rate.Next() / p.sampleRate
	if p.phase >= 1.0 {
		p.phase -= 1.0
	}
	return left, right
}
