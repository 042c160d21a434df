// synth_engine_race_test.go - Concurrent control/render stress (run with -race)

/*
Entrain Engine - real-time binaural tone and panning synthesis

(c) 2025 - 2026 The Entrain Engine Authors
https://github.com/entrainfx/EntrainEngine
License: GPLv3 or later
*/

package main

import (
	"sync"
	"testing"
	"time"
)

// TestEngineConcurrentControlAndRender hammers the control API and Snapshot
// from separate goroutines while the render loop runs, mimicking a UI thread
// against the audio callback. The race detector is the real assertion here.
func TestEngineConcurrentControlAndRender(t *testing.T) {
	e := NewEngine(AUDIO_BACKEND_NONE)
	defer e.Close()
	e.SetFadeInWindow(0)

	p := monoPreset(440)
	p.Panning = PanningConfig{Enabled: true, CycleSeconds: 0.25, Depth: 0.5}
	if err := e.Activate(p); err != nil {
		t.Fatal(err)
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() { // control writer
		defer wg.Done()
		freqs := []float64{330, 440, 550, 660}
		i := 0
		for {
			select {
			case <-stop:
				return
			default:
			}
			e.SetLayerFrequency(0, freqs[i%len(freqs)])
			e.SetLayerGain(0, 0.5+0.4*float64(i%2))
			e.SetPanningDepth(0.2 + 0.1*float64(i%5))
			e.SetPanningCycle(0.1 + 0.05*float64(i%3))
			i++
		}
	}()

	wg.Add(1)
	go func() { // snapshot reader
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			snap := e.Snapshot()
			if snap.LeftGain < 0 || snap.LeftGain > 1 || snap.RightGain < 0 || snap.RightGain > 1 {
				t.Errorf("snapshot gains out of range: L=%v R=%v", snap.LeftGain, snap.RightGain)
				return
			}
			_ = e.Status()
		}
	}()

	// Render loop on this goroutine, standing in for the audio callback.
	out := make([]float32, BLOCK_SIZE*2)
	deadline := time.Now().Add(100 * time.Millisecond)
	for time.Now().Before(deadline) {
		e.RenderBlock(out)
	}

	close(stop)
	wg.Wait()

	snap := e.Snapshot()
	t.Logf("blocks=%d applied=%d dropped=%d", snap.BlocksRendered, snap.IntentsApplied, snap.IntentsDropped)
	if snap.BlocksRendered == 0 {
		t.Fatal("render loop made no progress")
	}
}

// TestEngineConcurrentActivate swaps presets while rendering. Old sessions
// must never be touched after the swap.
func TestEngineConcurrentActivate(t *testing.T) {
	e := NewEngine(AUDIO_BACKEND_NONE)
	defer e.Close()
	e.SetFadeInWindow(0)

	stop := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		presets := []*Preset{monoPreset(220), monoPreset(440), monoPreset(880)}
		i := 0
		for {
			select {
			case <-stop:
				return
			default:
			}
			if err := e.Activate(presets[i%len(presets)]); err != nil {
				t.Errorf("Activate: %v", err)
				return
			}
			i++
		}
	}()

	out := make([]float32, BLOCK_SIZE*2)
	deadline := time.Now().Add(100 * time.Millisecond)
	for time.Now().Before(deadline) {
		e.RenderBlock(out)
		for _, v := range out {
			if v < MIN_SAMPLE || v > MAX_SAMPLE {
				t.Fatalf("sample out of range during session churn: %v", v)
			}
		}
	}

	close(stop)
	wg.Wait()
}
