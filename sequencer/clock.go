package sequencer

// ClockSource selects what advances playback.
type ClockSource int

const (
	ClockInternal ClockSource = iota // elapsed wall time vs tempo interval
	ClockExternal                    // rising edges on the clock input
)

// Tempo interval bounds in milliseconds.
const (
	MinIntervalMs = 10
	MaxIntervalMs = 500
)

// Normalized analog input range and the external-clock hysteresis
// thresholds within it. The input decoder owns voltage scaling; the
// core only compares against these.
const (
	AnalogMax    = 1023
	AnalogMid    = 512
	extClockHigh = 614
	extClockLow  = 410
)

// Clock decides once per control-loop tick whether a step boundary has
// passed. All timestamps are wrap-safe uint32 milliseconds: elapsed time
// is computed with wrapping subtraction so counter overflow never yields
// a negative or oversized interval.
type Clock struct {
	Source     ClockSource
	IntervalMs int

	lastTrigger uint32
	started     bool
	armed       bool // external input has been below the low threshold
}

// NewClock returns a clock with a clamped tempo interval.
func NewClock(source ClockSource, intervalMs int) *Clock {
	c := &Clock{Source: source, armed: true}
	c.SetInterval(intervalMs)
	return c
}

// Tick evaluates triggering for this control-loop pass. ext is the
// normalized external clock reading; it is ignored on the internal
// source. The very first evaluation triggers so playback starts at
// step boundary zero.
func (c *Clock) Tick(now uint32, ext int) bool {
	if !c.started {
		c.started = true
		c.lastTrigger = now
		return true
	}

	switch c.Source {
	case ClockExternal:
		if ext < extClockLow {
			c.armed = true
			return false
		}
		if ext > extClockHigh && c.armed {
			c.armed = false
			// The edge spacing becomes the new tempo interval.
			c.SetInterval(int(now - c.lastTrigger))
			c.lastTrigger = now
			return true
		}
		return false

	default:
		if now-c.lastTrigger >= uint32(c.IntervalMs) {
			c.lastTrigger = now
			return true
		}
		return false
	}
}

// SetInterval clamps and applies a tempo interval.
func (c *Clock) SetInterval(ms int) {
	if ms < MinIntervalMs {
		ms = MinIntervalMs
	}
	if ms > MaxIntervalMs {
		ms = MaxIntervalMs
	}
	c.IntervalMs = ms
}

// SinceTrigger returns wrap-safe elapsed milliseconds since the last
// trigger.
func (c *Clock) SinceTrigger(now uint32) uint32 {
	return now - c.lastTrigger
}

// PulseWidthMs maps the normalized width reading linearly into
// [interval/50, interval/2]: how long outputs stay asserted after a
// trigger.
func (c *Clock) PulseWidthMs(width int) uint32 {
	if width < 0 {
		width = 0
	}
	if width > AnalogMax {
		width = AnalogMax
	}
	lo := c.IntervalMs / 50
	hi := c.IntervalMs / 2
	return uint32(lo + (hi-lo)*width/AnalogMax)
}
