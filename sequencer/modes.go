package sequencer

import "euclid-o-matic/debug"

// Mode is the editing mode the rotary control acts in.
type Mode int

const (
	ModeLength Mode = iota // pattern length per channel (feature-flagged)
	ModePulses             // pulse count per channel
	ModeRotate             // rotate the channel pattern
	ModeProgram            // patch bank recall/store/clear
)

func (m Mode) String() string {
	switch m {
	case ModeLength:
		return "LENGTH"
	case ModePulses:
		return "PULSES"
	case ModeRotate:
		return "ROTATE"
	case ModeProgram:
		return "PROGRAM"
	}
	return "?"
}

// Raw encoder ticks per mechanical detent.
const ticksPerDetent = 4

// One physical press toggles a mute exactly once.
const muteCooldownMs = 200

// Program-mode actions on the repurposed channel buttons.
const (
	btnRecall = 0
	btnStore  = 1
	btnClear  = 2
	// button 3 reserved
)

// initialMode is where the mode ring starts and where a mode press in
// program mode returns to.
func (e *Engine) initialMode() Mode {
	if e.lengthMode {
		return ModeLength
	}
	return ModePulses
}

// nextMode cycles forward through the non-program ring.
func (e *Engine) nextMode() Mode {
	switch e.mode {
	case ModeLength:
		return ModePulses
	case ModePulses:
		return ModeRotate
	default:
		if e.lengthMode {
			return ModeLength
		}
		return ModePulses
	}
}

// handleModeButton interprets a mode-select press edge. With the
// modifier held it jumps to program mode from anywhere; without it, it
// cycles the ring, or leaves program mode back to the initial mode.
func (e *Engine) handleModeButton(modifier bool) {
	switch {
	case e.mode == ModeProgram:
		e.mode = e.initialMode()
	case modifier:
		e.mode = ModeProgram
		e.candidate = e.chosen
	default:
		e.mode = e.nextMode()
	}
	debug.Log("mode", "now %s", e.mode)
}

// handleDetents is the two-level dispatch for rotary motion: first
// tempo-edit vs parameter-edit on the modifier, then by mode.
func (e *Engine) handleDetents(detents int, modifier bool) {
	if detents == 0 {
		return
	}

	if e.mode == ModeProgram {
		e.candidate = wrapSlot(e.candidate + detents)
		return
	}

	if modifier {
		// Positive detents speed the clock up: smaller interval.
		e.clock.SetInterval(e.clock.IntervalMs - detents)
		e.store.SetTempo(e.clock.IntervalMs)
		return
	}

	switch e.mode {
	case ModeLength:
		e.live.AdjustLength(e.selected, detents)
		e.steps.Reset()
	case ModePulses:
		e.live.AdjustPulses(e.selected, detents)
		e.steps.Reset()
	case ModeRotate:
		e.live.Rotate(e.selected, detents)
	}
}

// handleChannelButton interprets a channel button press edge. In
// program mode the four buttons become recall/store/clear/reserved;
// otherwise they select the edited channel, or toggle its mute when the
// modifier is held.
func (e *Engine) handleChannelButton(ch int, modifier bool, now uint32) {
	if e.mode == ModeProgram {
		e.handleProgramButton(ch)
		return
	}

	if modifier {
		if now-e.muteToggledAt[ch] < muteCooldownMs {
			return
		}
		e.muteToggledAt[ch] = now
		e.live.ToggleMute(ch)
		debug.Log("mute", "ch=%d muted=%v", ch, e.live.Muted[ch])
		return
	}

	e.selected = ch
	if err := e.store.WriteSelectedChannel(ch); err != nil {
		debug.Log("store", "write selected channel: %v", err)
	}
}

func (e *Engine) handleProgramButton(btn int) {
	switch btn {
	case btnRecall:
		e.live = e.bank.Recall(e.candidate)
		e.chosen = e.candidate
		e.steps.Reset()
		if err := e.store.WriteChosenIndex(e.chosen); err != nil {
			debug.Log("store", "write chosen index: %v", err)
		}
		debug.Log("bank", "recall slot %d", e.candidate)
	case btnStore:
		e.bank.Store(e.candidate, e.live)
		if err := e.store.WriteSlot(e.candidate, e.live, e.bank.Occupied); err != nil {
			debug.Log("store", "write slot %d: %v", e.candidate, err)
		}
		debug.Log("bank", "store slot %d", e.candidate)
	case btnClear:
		e.bank.Clear(e.candidate)
		if err := e.store.WriteSlot(e.candidate, EmptyPatch(), e.bank.Occupied); err != nil {
			debug.Log("store", "clear slot %d: %v", e.candidate, err)
		}
		debug.Log("bank", "clear slot %d", e.candidate)
	}
	// button 3 is reserved
}

func wrapSlot(i int) int {
	i %= NumSlots
	if i < 0 {
		i += NumSlots
	}
	return i
}
