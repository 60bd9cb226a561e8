package sequencer

// Inputs is one control-loop tick's worth of decoded front panel state.
// The input decoder owns debounce-free raw reading and normalization:
// analog values arrive in 0..AnalogMax, buttons as levels (the engine
// does its own edge detection), and the encoder as raw ticks (4 per
// detent).
type Inputs struct {
	ChannelButtons [NumChannels]bool // mutually exclusive by decoder construction
	ModeButton     bool
	Modifier       bool // tap/escape button, a held modifier

	EncoderTicks int // raw rotation since last tick, 4 per detent

	ExtClock   int // normalized external clock input
	Reset      int // normalized reset input
	PulseWidth int // normalized width control

	Function [NumChannels]int // F1..F4 CV inputs, one per channel

	ExternalClock bool // clock-source selector
}

// Frame is the full redraw the engine hands the display sink each tick.
// In program mode the occupancy set and candidate slot replace the
// pattern view; the sink owns color mapping and animation.
type Frame struct {
	Mode     Mode
	Channel  int
	Pattern  uint16
	Length   int
	Cursor   int
	Muted    bool
	TempoMs  int
	GateOpen bool

	Occupied  uint16
	Candidate int
	Chosen    int
}

// Display receives one full redraw per tick.
type Display interface {
	Draw(Frame)
}

// Output drives the four channel trigger lines and the clock-out line
// with independent assert/deassert commands.
type Output interface {
	SetTrigger(ch int, on bool)
	SetClockOut(on bool)
}

// NopOutput discards all output commands.
type NopOutput struct{}

func (NopOutput) SetTrigger(ch int, on bool) {}
func (NopOutput) SetClockOut(on bool)        {}

// Header is the fixed leading block of the store layout.
type Header struct {
	SelectedChannel int
	ChosenIndex     int
	Occupied        uint16
	TempoMs         int
}

// Snapshot is everything the store holds: the header plus every slot.
type Snapshot struct {
	Header
	Slots [NumSlots]Patch
}

// EmptySnapshot is what a fresh medium decodes to.
func EmptySnapshot() Snapshot {
	s := Snapshot{Header: Header{TempoMs: 125}}
	for i := range s.Slots {
		s.Slots[i] = EmptyPatch()
	}
	return s
}

// Store is the non-volatile medium behind the patch bank. Partial
// writes (WriteSlot, WriteChosenIndex, WriteSelectedChannel) touch only
// the one record's byte range plus the header, to bound wear and
// latency; implementations carry the rest of the header from the last
// full read or write. SetTempo updates the tempo the header will carry
// on its next write without writing anything itself.
type Store interface {
	ReadAll() (Snapshot, error)
	WriteAll(Snapshot) error
	WriteSlot(i int, p Patch, occupied uint16) error
	WriteChosenIndex(i int) error
	WriteSelectedChannel(c int) error
	SetTempo(ms int)
}
