package sequencer

// StepTracker keeps the per-channel playback cursors. Each cursor
// advances modulo its own channel's pattern length, so channels with
// different lengths drift against each other (polymeters).
type StepTracker struct {
	Cursors [NumChannels]int
}

// Advance moves every cursor one step forward within its channel's
// length. Lengths are kept >= 1 by upstream clamping.
func (t *StepTracker) Advance(p *Patch) {
	for c := 0; c < NumChannels; c++ {
		t.Cursors[c] = (t.Cursors[c] + 1) % p.Lengths[c]
	}
}

// Reset forces every cursor back to step zero.
func (t *StepTracker) Reset() {
	for c := range t.Cursors {
		t.Cursors[c] = 0
	}
}
