package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"euclid-o-matic/config"
	"euclid-o-matic/debug"
	"euclid-o-matic/midiout"
	"euclid-o-matic/sequencer"
	"euclid-o-matic/store"
	"euclid-o-matic/theme"
	"euclid-o-matic/tui"
)

func main() {
	if os.Getenv("EUCLID_DEBUG") != "" {
		debug.Enable()
		defer debug.Disable()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	// Lay the file down on first run so the defaults are editable.
	if err := cfg.Save(); err != nil {
		debug.Log("config", "save: %v", err)
	}

	// Theme
	palette := theme.DefaultPalette()
	if cfg.Palette != "" {
		if p, err := theme.LoadGPL(cfg.Palette); err == nil {
			palette = p
		} else {
			debug.Log("theme", "palette %q: %v, using builtin", cfg.Palette, err)
		}
	}
	th := theme.New(palette)

	// Non-volatile store
	storePath := cfg.StorePath
	if storePath == "" {
		storePath, err = store.DefaultPath()
		if err != nil {
			fmt.Printf("Error resolving store path: %v\n", err)
			os.Exit(1)
		}
	}
	st, err := store.Open(storePath)
	if err != nil {
		fmt.Printf("Error opening store %s: %v\n", storePath, err)
		os.Exit(1)
	}
	defer st.Close()

	// Trigger output: MIDI if a port is available, silent otherwise
	var out sequencer.Output = sequencer.NopOutput{}
	if mout, err := midiout.Open(cfg.MIDI.PortName, cfg.MIDI.Channel, cfg.MIDI.TriggerNotes, cfg.MIDI.ClockNote); err == nil {
		defer mout.Close()
		out = mout
	} else {
		debug.Log("midi", "no trigger output: %v", err)
	}

	clockSource := sequencer.ClockInternal
	if cfg.ExternalClock() {
		clockSource = sequencer.ClockExternal
	}

	sink := &tui.FrameSink{}
	engine := sequencer.NewEngine(st, sink, out, sequencer.Options{
		ClockSource: clockSource,
		LengthMode:  cfg.LengthMode,
	})

	m := tui.NewModel(engine, sink, th, cfg.TickMs, cfg.ExternalClock())
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
