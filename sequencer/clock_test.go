package sequencer

import "testing"

func TestClockFirstEvaluationTriggers(t *testing.T) {
	c := NewClock(ClockInternal, 100)
	if !c.Tick(0, 0) {
		t.Fatal("first evaluation should trigger")
	}
	if c.Tick(1, 0) {
		t.Fatal("1ms after trigger should not trigger again")
	}
}

func TestClockInternalInterval(t *testing.T) {
	c := NewClock(ClockInternal, 100)
	c.Tick(0, 0) // start

	if c.Tick(99, 0) {
		t.Fatal("triggered before interval elapsed")
	}
	if !c.Tick(100, 0) {
		t.Fatal("no trigger at interval boundary")
	}
	if !c.Tick(205, 0) {
		t.Fatal("no trigger past the next boundary")
	}
}

func TestClockIntervalClamp(t *testing.T) {
	c := NewClock(ClockInternal, 100)
	for i := 0; i < 200; i++ {
		c.SetInterval(c.IntervalMs - 1)
	}
	if c.IntervalMs != MinIntervalMs {
		t.Errorf("interval = %d, want floor %d", c.IntervalMs, MinIntervalMs)
	}
	for i := 0; i < 600; i++ {
		c.SetInterval(c.IntervalMs + 1)
	}
	if c.IntervalMs != MaxIntervalMs {
		t.Errorf("interval = %d, want ceiling %d", c.IntervalMs, MaxIntervalMs)
	}
}

func TestClockWraparoundSafeElapsed(t *testing.T) {
	c := NewClock(ClockInternal, 100)
	start := ^uint32(0) - 50 // 50ms before the counter wraps
	c.Tick(start, 0)

	// 49ms later, still before the wrap point: no trigger.
	if c.Tick(start+49, 0) {
		t.Fatal("triggered early near wrap")
	}
	// 100ms later the counter has wrapped past zero; wrapping
	// subtraction must still see a full interval.
	if !c.Tick(start+100, 0) {
		t.Fatal("no trigger across counter wrap")
	}
	if got := c.SinceTrigger(start + 110); got != 10 {
		t.Errorf("SinceTrigger across wrap = %d, want 10", got)
	}
}

func TestClockExternalEdgeAndLearn(t *testing.T) {
	c := NewClock(ClockExternal, 100)
	c.Tick(0, 0) // start; input low arms the detector

	// Held high without having gone low: a single trigger per edge.
	if !c.Tick(200, 1000) {
		t.Fatal("no trigger on rising edge")
	}
	if c.IntervalMs != 200 {
		t.Errorf("interval = %d, want learned 200", c.IntervalMs)
	}
	if c.Tick(210, 1000) {
		t.Fatal("triggered again while held high")
	}

	// Mid-band readings neither arm nor fire.
	if c.Tick(250, 500) {
		t.Fatal("triggered in hysteresis band")
	}
	if c.Tick(300, 1000) {
		t.Fatal("triggered without re-arming below the low threshold")
	}

	// Down through the low threshold, then a new edge.
	c.Tick(350, 100)
	if !c.Tick(400, 1000) {
		t.Fatal("no trigger after re-arming")
	}
	if c.IntervalMs != 200 {
		t.Errorf("interval = %d, want learned 200", c.IntervalMs)
	}
}

func TestClockExternalLearnClamps(t *testing.T) {
	c := NewClock(ClockExternal, 100)
	c.Tick(0, 0)
	// An edge 2 seconds later would imply a 2000ms interval; it clamps.
	if !c.Tick(2000, 1000) {
		t.Fatal("no trigger")
	}
	if c.IntervalMs != MaxIntervalMs {
		t.Errorf("interval = %d, want clamped %d", c.IntervalMs, MaxIntervalMs)
	}
}

func TestClockPulseWidthMapping(t *testing.T) {
	c := NewClock(ClockInternal, 100)

	if got := c.PulseWidthMs(0); got != 2 {
		t.Errorf("width at 0 = %d, want interval/50 = 2", got)
	}
	if got := c.PulseWidthMs(AnalogMax); got != 50 {
		t.Errorf("width at max = %d, want interval/2 = 50", got)
	}
	mid := c.PulseWidthMs(AnalogMax / 2)
	if mid <= 2 || mid >= 50 {
		t.Errorf("width at mid = %d, want strictly inside [2, 50]", mid)
	}
	// Out-of-range readings clamp instead of erroring.
	if got := c.PulseWidthMs(-5); got != 2 {
		t.Errorf("width at -5 = %d, want 2", got)
	}
	if got := c.PulseWidthMs(5000); got != 50 {
		t.Errorf("width at 5000 = %d, want 50", got)
	}
}
