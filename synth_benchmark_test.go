// synth_benchmark_test.go - Render-path throughput and allocation discipline

/*
Entrain Engine - real-time binaural tone and panning synthesis

(c) 2025 - 2026 The Entrain Engine Authors
https://github.com/entrainfx/EntrainEngine
License: GPLv3 or later
*/

package main

import "testing"

func benchEngine(b *testing.B) *Engine {
	b.Helper()
	e := NewEngine(AUDIO_BACKEND_NONE)
	b.Cleanup(e.Close)
	e.SetFadeInWindow(0)

	p := &Preset{
		ID: "bench",
		Layers: []FrequencyLayer{
			{FrequencyHz: 200, Waveform: WAVE_SINE, Gain: 0.8},
			{FrequencyHz: 55, Waveform: WAVE_TRIANGLE, Gain: 0.2},
		},
		Binaural: &BinauralConfig{LeftFrequencyHz: 200, RightFrequencyHz: 206},
		Panning:  PanningConfig{Enabled: true, CycleSeconds: 0.15, Depth: 0.5},
	}
	if err := e.Activate(p); err != nil {
		b.Fatal(err)
	}
	return e
}

func BenchmarkEngineRenderBlock(b *testing.B) {
	e := benchEngine(b)
	out := make([]float32, BLOCK_SIZE*2)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.RenderBlock(out)
	}
}

func BenchmarkOscillatorRenderBlock(b *testing.B) {
	o := NewOscillatorLayer(FrequencyLayer{FrequencyHz: 440, Waveform: WAVE_SINE, Gain: 0.8}, CHANNEL_BOTH, SAMPLE_RATE)
	out := make([]float32, BLOCK_SIZE)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		o.RenderBlock(out)
	}
}

func BenchmarkWaveSample(b *testing.B) {
	for _, w := range []Waveform{WAVE_SINE, WAVE_SQUARE, WAVE_TRIANGLE, WAVE_SAWTOOTH} {
		b.Run(w.String(), func(b *testing.B) {
			inc := 440.0 / float64(SAMPLE_RATE)
			phase := 0.0
			var sink float32
			for i := 0; i < b.N; i++ {
				sink = waveSample(w, phase, inc)
				phase += inc
				if phase >= 1.0 {
					phase -= 1.0
				}
			}
			_ = sink
		})
	}
}

// TestRenderBlockDoesNotAllocate pins the real-time guarantee: a steady-state
// render block performs zero heap allocations, even with a pending intent.
func TestRenderBlockDoesNotAllocate(t *testing.T) {
	e := NewEngine(AUDIO_BACKEND_NONE)
	defer e.Close()
	e.SetFadeInWindow(0)

	p := monoPreset(440)
	p.Panning = PanningConfig{Enabled: true, CycleSeconds: 0.1, Depth: 0.5}
	if err := e.Activate(p); err != nil {
		t.Fatal(err)
	}

	out := make([]float32, BLOCK_SIZE*2)
	e.RenderBlock(out)

	allocs := testing.AllocsPerRun(100, func() {
		e.SetPanningDepth(0.4) // queue churn happens control-side
		e.RenderBlock(out)
	})
	// The Push side may allocate the intent copy; the render side must not.
	// AllocsPerRun sees both, so allow exactly the single producer allocation.
	if allocs > 1 {
		t.Fatalf("render loop allocated %.1f times per block", allocs)
	}
}
