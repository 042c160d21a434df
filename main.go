// main.go - Command-line player for the Entrain Engine

/*
Entrain Engine - real-time binaural tone and panning synthesis

(c) 2025 - 2026 The Entrain Engine Authors
https://github.com/entrainfx/EntrainEngine
License: GPLv3 or later
*/

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

func boilerPlate() {
	fmt.Println("Entrain Engine - real-time binaural tone and panning synthesis")
	fmt.Println("(c) 2025 - 2026 The Entrain Engine Authors")
	fmt.Println("https://github.com/entrainfx/EntrainEngine")
	fmt.Println("License: GPLv3 or later")
}

func main() {
	boilerPlate()

	var (
		catalogPath string
		presetID    string
		listOnly    bool
		backendName string
		durationSec float64
		fadeOutSec  float64
		gainScale   float64
		freeTier    bool
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&catalogPath, "catalog", "", "YAML preset catalog to merge over the built-ins")
	flagSet.StringVar(&presetID, "preset", "alpha-calm", "Preset id to play")
	flagSet.BoolVar(&listOnly, "list", false, "List available presets and exit")
	flagSet.StringVar(&backendName, "backend", "oto", "Audio backend: oto, alsa or none")
	flagSet.Float64Var(&durationSec, "duration", 0, "Override session duration in seconds (0 keeps the preset's)")
	flagSet.Float64Var(&fadeOutSec, "fade", DEFAULT_FADE_OUT_SECS, "Fade-out window in seconds")
	flagSet.Float64Var(&gainScale, "gain", 1.0, "Scale all layer gains (0..1]")
	flagSet.BoolVar(&freeTier, "free-tier", false, "Refuse gated presets instead of playing everything")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./entrain_engine [-catalog file.yaml] [-preset id] [-backend oto|alsa|none] [-duration secs] [-fade secs] [-gain scale] [-free-tier] [-list]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	catalog := NewCatalog()
	if catalogPath != "" {
		if err := catalog.LoadFile(catalogPath); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	if listOnly {
		listPresets(catalog)
		os.Exit(0)
	}

	preset, ok := catalog.Get(presetID)
	if !ok {
		fmt.Printf("Error: unknown preset %q (try -list)\n", presetID)
		os.Exit(1)
	}
	if durationSec > 0 || gainScale != 1.0 {
		override := *preset
		if durationSec > 0 {
			override.DurationSeconds = durationSec
		}
		if gainScale > 0 && gainScale != 1.0 {
			override.Layers = append([]FrequencyLayer(nil), preset.Layers...)
			for i := range override.Layers {
				override.Layers[i].Gain = clamp01(override.Layers[i].Gain * gainScale)
			}
		}
		preset = &override
	}

	backend, err := ParseBackend(backendName)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	engine := NewEngine(backend)
	defer engine.Close()
	engine.SetFadeOutWindow(fadeOutSec)
	if freeTier {
		engine.SetEntitlements(FreeTier)
	}

	if err := engine.Activate(preset); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	console := NewControlConsole(engine)
	interactive := true
	if err := console.Start(); err != nil {
		// Non-terminal stdin (piped, redirected): play without live control.
		fmt.Printf("%v; running non-interactive\n", err)
		interactive = false
	}
	defer console.Stop()

	// With -backend none there is no device pulling samples, so the session
	// clock is driven here at roughly real-time pace.
	silent := make([]float32, BLOCK_SIZE*2)
	tick := func() {
		if backend == AUDIO_BACKEND_NONE {
			for i := 0; i < 8; i++ { // 8 blocks ~= 46ms of audio
				engine.RenderBlock(silent)
			}
		}
		time.Sleep(46 * time.Millisecond)
	}

	for engine.Status() != STATUS_STOPPED {
		if interactive {
			select {
			case <-console.Done():
				// The key loop is gone, whether by q/Q or a terminal
				// failure; make sure a fade-out is underway, then wait
				// it out.
				engine.Stop(false)
				for engine.Status() != STATUS_STOPPED {
					tick()
				}
				return
			default:
			}
		}
		tick()
	}
}

func listPresets(catalog *Catalog) {
	fmt.Println("\nAvailable presets:")
	for _, p := range catalog.List() {
		gated := ""
		if p.IsGated {
			gated = "  [gated]"
		}
		fmt.Printf("  %-14s %-24s %s%s\n", p.ID, p.Name, p.Category, gated)
	}
}
