// terminal_control_test.go - Console startup failure behaviour

package main

import (
	"os"
	"testing"
)

func TestConsoleStartOnNonTerminalFails(t *testing.T) {
	e := NewEngine(AUDIO_BACKEND_NONE)
	defer e.Close()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	c := NewControlConsole(e)
	c.fd = int(r.Fd()) // a pipe is not a terminal; raw mode must fail

	if err := c.Start(); err == nil {
		t.Fatal("Start on a non-terminal fd should fail")
	}

	// Callers key their fallback off Done being closed already.
	select {
	case <-c.Done():
	default:
		t.Fatal("Done must be closed when Start fails")
	}

	// Stop after a failed Start must not hang or touch the terminal.
	c.Stop()
}
