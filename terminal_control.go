// terminal_control.go - Interactive raw-mode console for live session control

/*
Entrain Engine - real-time binaural tone and panning synthesis

(c) 2025 - 2026 The Entrain Engine Authors
https://github.com/entrainfx/EntrainEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// ControlConsole reads raw stdin and turns keystrokes into engine control
// calls, while painting a status line from the published snapshot. The
// status line is driven by the engine's own snapshot, never by a separate
// UI timer, so what is displayed cannot drift from what is heard.
type ControlConsole struct {
	engine       *Engine
	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	fd           int // -1 until Start binds it (tests may preset it)
	nonblockSet  bool
	oldTermState *term.State
}

const (
	consoleFreqStepHz = 5.0
	consoleGainStep   = 0.05
	consoleDepthStep  = 0.05
	consoleCycleScale = 1.1
)

// NewControlConsole creates a console bound to the engine.
func NewControlConsole(engine *Engine) *ControlConsole {
	return &ControlConsole{
		engine: engine,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
		fd:     -1,
	}
}

// Start puts stdin in raw non-blocking mode and begins the key loop and the
// status painter. A non-terminal stdin returns an error with Done already
// closed, so callers can fall back to non-interactive playback. Call Stop to
// restore the terminal.
func (c *ControlConsole) Start() error {
	if c.fd < 0 {
		c.fd = int(os.Stdin.Fd())
	}

	oldState, err := term.MakeRaw(c.fd)
	if err != nil {
		close(c.done)
		return fmt.Errorf("console: failed to set raw mode: %w", err)
	}
	c.oldTermState = oldState

	if err := syscall.SetNonblock(c.fd, true); err != nil {
		_ = term.Restore(c.fd, c.oldTermState)
		c.oldTermState = nil
		close(c.done)
		return fmt.Errorf("console: failed to set nonblocking stdin: %w", err)
	}
	c.nonblockSet = true

	fmt.Print("keys: space=pause/resume  f/F=frequency  g/G=gain  d/D=pan depth  c/C=pan cycle  q=stop  Q=force stop\r\n")

	go c.keyLoop()
	return nil
}

func (c *ControlConsole) keyLoop() {
	defer close(c.done)

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	buf := make([]byte, 1)
	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.paintStatus()
		default:
		}

		n, err := syscall.Read(c.fd, buf)
		if n > 0 {
			if c.handleKey(buf[0]) {
				return
			}
			continue
		}
		if err != nil && err != syscall.EAGAIN {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// handleKey returns true when the console should shut down.
func (c *ControlConsole) handleKey(b byte) bool {
	snap := c.engine.Snapshot()
	switch b {
	case ' ':
		if snap.Status == STATUS_PAUSED {
			c.engine.Resume()
		} else {
			c.engine.Pause()
		}
	case 'f', 'F':
		if len(snap.Layers) > 0 {
			hz := snap.Layers[0].FrequencyHz
			if b == 'f' {
				hz -= consoleFreqStepHz
			} else {
				hz += consoleFreqStepHz
			}
			c.engine.SetLayerFrequency(0, hz)
		}
	case 'g', 'G':
		if len(snap.Layers) > 0 {
			g := snap.Layers[0].Gain
			if b == 'g' {
				g -= consoleGainStep
			} else {
				g += consoleGainStep
			}
			c.engine.SetLayerGain(0, g)
		}
	case 'd':
		c.engine.SetPanningDepth(snap.PanningDepth - consoleDepthStep)
	case 'D':
		c.engine.SetPanningDepth(snap.PanningDepth + consoleDepthStep)
	case 'c':
		if snap.PanningCycle > 0 {
			c.engine.SetPanningCycle(snap.PanningCycle / consoleCycleScale)
		}
	case 'C':
		if snap.PanningCycle > 0 {
			c.engine.SetPanningCycle(snap.PanningCycle * consoleCycleScale)
		}
	case 'q':
		c.engine.Stop(false)
		return true
	case 'Q':
		c.engine.Stop(true)
		return true
	case 0x03: // Ctrl-C in raw mode
		c.engine.Stop(true)
		return true
	}
	return false
}

func (c *ControlConsole) paintStatus() {
	snap := c.engine.Snapshot()
	fmt.Printf("\r[%s] %s  %6.1fs  pan depth=%.2f cycle=%.2fs L=%.2f R=%.2f  dropped=%d   ",
		snap.Status, snap.PresetName, snap.ElapsedSeconds,
		snap.PanningDepth, snap.PanningCycle, snap.LeftGain, snap.RightGain, snap.IntentsDropped)
}

// Stop restores the terminal and ends the key loop. Idempotent.
func (c *ControlConsole) Stop() {
	c.stopped.Do(func() {
		close(c.stopCh)
		<-c.done
		if c.nonblockSet {
			_ = syscall.SetNonblock(c.fd, false)
			c.nonblockSet = false
		}
		if c.oldTermState != nil {
			_ = term.Restore(c.fd, c.oldTermState)
			c.oldTermState = nil
		}
		fmt.Print("\r\n")
	})
}

// Done is closed when the key loop exits (q/Q or terminal failure).
func (c *ControlConsole) Done() <-chan struct{} { return c.done }
