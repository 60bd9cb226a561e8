package sequencer

import "euclid-o-matic/pattern"

const (
	NumChannels   = 4
	RingSize      = 16 // indicator positions, also the longest pattern
	NumSlots      = 16
	DefaultLength = 16
)

// Patch holds one channel set's editable parameters plus the trigger
// patterns derived from them. The patterns are never hand-edited:
// any change to pulses or length regenerates the channel in full, and
// only rotation moves bits around afterwards.
type Patch struct {
	Pulses   [NumChannels]int
	Lengths  [NumChannels]int
	Patterns [NumChannels]uint16
	Muted    [NumChannels]bool
}

// EmptyPatch is what an unoccupied bank slot reads back as.
func EmptyPatch() Patch {
	var p Patch
	for c := range p.Lengths {
		p.Lengths[c] = DefaultLength
	}
	return p
}

// AdjustPulses moves a channel's pulse count by delta detents, clamped
// to [0, length], and regenerates the pattern.
func (p *Patch) AdjustPulses(ch, delta int) {
	p.SetPulses(ch, p.Pulses[ch]+delta)
}

// SetPulses clamps and applies a pulse count, then regenerates.
func (p *Patch) SetPulses(ch, pulses int) {
	if ch < 0 || ch >= NumChannels {
		return
	}
	if pulses < 0 {
		pulses = 0
	}
	if pulses > p.Lengths[ch] {
		pulses = p.Lengths[ch]
	}
	p.Pulses[ch] = pulses
	p.regenerate(ch)
}

// AdjustLength moves a channel's pattern length by delta detents,
// clamped to [1, RingSize]. Pulses are re-clamped to the new length
// before the pattern regenerates.
func (p *Patch) AdjustLength(ch, delta int) {
	p.SetLength(ch, p.Lengths[ch]+delta)
}

// SetLength clamps and applies a pattern length, then regenerates.
func (p *Patch) SetLength(ch, length int) {
	if ch < 0 || ch >= NumChannels {
		return
	}
	if length < 1 {
		length = 1
	}
	if length > RingSize {
		length = RingSize
	}
	p.Lengths[ch] = length
	if p.Pulses[ch] > length {
		p.Pulses[ch] = length
	}
	p.regenerate(ch)
}

// Rotate shifts a channel's pattern by delta positions: positive goes
// left (toward higher steps), negative goes right. Pulses and length
// are untouched.
func (p *Patch) Rotate(ch, delta int) {
	if ch < 0 || ch >= NumChannels {
		return
	}
	for ; delta > 0; delta-- {
		p.Patterns[ch] = pattern.RotateLeft(p.Patterns[ch], p.Lengths[ch])
	}
	for ; delta < 0; delta++ {
		p.Patterns[ch] = pattern.RotateRight(p.Patterns[ch], p.Lengths[ch])
	}
}

// ToggleMute flips a channel's mute flag.
func (p *Patch) ToggleMute(ch int) {
	if ch < 0 || ch >= NumChannels {
		return
	}
	p.Muted[ch] = !p.Muted[ch]
}

// StepSet reports whether a channel fires at the given step.
func (p *Patch) StepSet(ch, step int) bool {
	return p.Patterns[ch]&(1<<step) != 0
}

func (p *Patch) regenerate(ch int) {
	p.Patterns[ch] = pattern.Generate(p.Pulses[ch], p.Lengths[ch])
}
