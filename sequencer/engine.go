package sequencer

import "euclid-o-matic/debug"

// Engine is the single-threaded sequencer core. One Tick reads decoded
// inputs, runs the mode machine, evaluates clock triggering, advances
// the step cursors, drives the outputs and issues a full display
// redraw, then returns. Nothing here suspends or runs concurrently:
// all state is owned by the loop and mutated synchronously per tick.
type Engine struct {
	live  Patch
	bank  *Bank
	clock *Clock
	steps StepTracker

	mode      Mode
	selected  int
	chosen    int
	candidate int

	lengthMode bool // pattern-length editing compiled in

	// Edge tracking for debounced controls.
	encoderRem     int
	lastModeBtn    bool
	lastChannelBtn [NumChannels]bool
	lastFunc       [NumChannels]bool
	lastResetHigh  bool
	muteToggledAt  [NumChannels]uint32

	// Output gate.
	gateOpen bool
	gateMs   uint32

	store   Store
	display Display
	out     Output
}

// Options configures engine construction.
type Options struct {
	ClockSource ClockSource
	LengthMode  bool // enable the pattern-length editing mode
}

// NewEngine builds an engine around its collaborators and restores the
// bank, tempo, chosen patch and selected channel from the store. A
// fresh store yields the empty snapshot, which is then written back in
// full so later partial writes land on a fully laid-out medium.
func NewEngine(st Store, disp Display, out Output, opts Options) *Engine {
	if out == nil {
		out = NopOutput{}
	}

	snap, err := st.ReadAll()
	if err != nil {
		debug.Log("store", "read all: %v", err)
		snap = EmptySnapshot()
		if err := st.WriteAll(snap); err != nil {
			debug.Log("store", "write all: %v", err)
		}
	}

	e := &Engine{
		bank:       NewBank(),
		clock:      NewClock(opts.ClockSource, snap.TempoMs),
		lengthMode: opts.LengthMode,
		store:      st,
		display:    disp,
		out:        out,
	}
	e.mode = e.initialMode()

	e.bank.Occupied = snap.Occupied
	e.bank.Slots = snap.Slots
	e.selected = clampChannel(snap.SelectedChannel)
	e.chosen = wrapSlot(snap.ChosenIndex)
	e.candidate = e.chosen
	e.live = e.bank.Recall(e.chosen)
	e.store.SetTempo(e.clock.IntervalMs)

	// Primed so the cooldown doesn't swallow the first mute press.
	for c := range e.muteToggledAt {
		e.muteToggledAt[c] = ^uint32(0) - muteCooldownMs
	}

	return e
}

// Tick runs one pass of the control loop. now is a wrap-safe
// monotonic millisecond stamp.
func (e *Engine) Tick(now uint32, in Inputs) {
	e.clock.Source = ClockInternal
	if in.ExternalClock {
		e.clock.Source = ClockExternal
	}

	e.handleEdits(now, in)
	e.handleReset(in)
	e.handleFunctions(in)

	if e.clock.Tick(now, in.ExtClock) {
		e.steps.Advance(&e.live)
		e.gateMs = e.clock.PulseWidthMs(in.PulseWidth)
		e.gateOpen = true
		e.fireOutputs()
	}

	if e.gateOpen && e.clock.SinceTrigger(now) > e.gateMs {
		e.gateOpen = false
		for c := 0; c < NumChannels; c++ {
			e.out.SetTrigger(c, false)
		}
		e.out.SetClockOut(false)
	}

	if e.display != nil {
		e.display.Draw(e.frame())
	}
}

// handleEdits runs the mode state machine over this tick's button edges
// and rotary motion.
func (e *Engine) handleEdits(now uint32, in Inputs) {
	if in.ModeButton && !e.lastModeBtn {
		e.handleModeButton(in.Modifier)
	}
	e.lastModeBtn = in.ModeButton

	for c := 0; c < NumChannels; c++ {
		if in.ChannelButtons[c] && !e.lastChannelBtn[c] {
			e.handleChannelButton(c, in.Modifier, now)
		}
		e.lastChannelBtn[c] = in.ChannelButtons[c]
	}

	// Quantize raw encoder ticks into detents, keeping the remainder.
	ticks := e.encoderRem + in.EncoderTicks
	detents := ticks / ticksPerDetent
	e.encoderRem = ticks - detents*ticksPerDetent
	e.handleDetents(detents, in.Modifier)
}

// handleReset zeroes every cursor on a rising edge of the reset input,
// without waiting for a clock trigger.
func (e *Engine) handleReset(in Inputs) {
	high := in.Reset > AnalogMid
	if high && !e.lastResetHigh {
		e.steps.Reset()
		debug.Log("clock", "reset edge")
	}
	e.lastResetHigh = high
}

// handleFunctions maps each function CV input to its channel's
// rotate-left-by-one on a rising edge through mid-scale.
func (e *Engine) handleFunctions(in Inputs) {
	for c := 0; c < NumChannels; c++ {
		high := in.Function[c] > AnalogMid
		if high && !e.lastFunc[c] {
			e.live.Rotate(c, 1)
		}
		e.lastFunc[c] = high
	}
}

// fireOutputs asserts the trigger line of every unmuted channel whose
// current step fires, plus the clock-out line.
func (e *Engine) fireOutputs() {
	for c := 0; c < NumChannels; c++ {
		on := !e.live.Muted[c] && e.live.StepSet(c, e.steps.Cursors[c])
		e.out.SetTrigger(c, on)
	}
	e.out.SetClockOut(true)
}

func (e *Engine) frame() Frame {
	return Frame{
		Mode:      e.mode,
		Channel:   e.selected,
		Pattern:   e.live.Patterns[e.selected],
		Length:    e.live.Lengths[e.selected],
		Cursor:    e.steps.Cursors[e.selected],
		Muted:     e.live.Muted[e.selected],
		TempoMs:   e.clock.IntervalMs,
		GateOpen:  e.gateOpen,
		Occupied:  e.bank.Occupied,
		Candidate: e.candidate,
		Chosen:    e.chosen,
	}
}

// Accessors for the front panel and tests.

func (e *Engine) Mode() Mode           { return e.mode }
func (e *Engine) SelectedChannel() int { return e.selected }
func (e *Engine) ChosenSlot() int      { return e.chosen }
func (e *Engine) CandidateSlot() int   { return e.candidate }
func (e *Engine) TempoMs() int         { return e.clock.IntervalMs }
func (e *Engine) Live() *Patch         { return &e.live }
func (e *Engine) PatchBank() *Bank     { return e.bank }
func (e *Engine) Cursor(ch int) int    { return e.steps.Cursors[ch] }

func clampChannel(c int) int {
	if c < 0 {
		return 0
	}
	if c >= NumChannels {
		return NumChannels - 1
	}
	return c
}
