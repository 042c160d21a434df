// synth_ramp.go - Linear parameter slewing, the click-free mutation primitive

package main

// paramRamp slews a control value linearly toward its target over a fixed
// sample window. Every live parameter (frequency, gain, panning depth,
// panning rate, stop envelope) moves through one of these; nothing on the
// render path ever steps.
//
// Owned exclusively by the render context. Not safe for concurrent use.
type paramRamp struct {
	current   float64
	target    float64
	step      float64
	remaining int
}

func newRamp(v float64) paramRamp {
	return paramRamp{current: v, target: v}
}

// Set retargets the ramp over window samples. Retargeting to the value the
// ramp is already heading for is a no-op, so repeated identical intents
// introduce no additional discontinuity.
func (r *paramRamp) Set(target float64, window int) {
	if target == r.target {
		return
	}
	r.target = target
	if window <= 0 || r.current == target {
		r.current = target
		r.step = 0
		r.remaining = 0
		return
	}
	r.step = (target - r.current) / float64(window)
	r.remaining = window
}

// Force retargets unconditionally, re-sloping from the current value even if
// the target is unchanged. Used by the forced-stop path to shorten an
// in-progress fade; still continuous, just steeper.
func (r *paramRamp) Force(target float64, window int) {
	if r.current == target {
		r.target = target
		r.step = 0
		r.remaining = 0
		return
	}
	r.target = target - 1 // defeat the idempotence check
	r.Set(target, window)
}

// Jump moves the value immediately. Activation-time only, never live.
func (r *paramRamp) Jump(v float64) {
	r.current = v
	r.target = v
	r.step = 0
	r.remaining = 0
}

// Next advances one sample and returns the new value.
func (r *paramRamp) Next() float64 {
	if r.remaining > 0 {
		r.remaining--
		if r.remaining == 0 {
			r.current = r.target
		} else {
			r.current += r.step
		}
	}
	return r.current
}

// Value returns the current value without advancing.
func (r *paramRamp) Value() float64 { return r.current }

// Target returns the value the ramp is heading for.
func (r *paramRamp) Target() float64 { return r.target }

// Settled reports whether the ramp has reached its target.
func (r *paramRamp) Settled() bool { return r.remaining == 0 }
