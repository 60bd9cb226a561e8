package store

import (
	"path/filepath"
	"testing"

	"euclid-o-matic/sequencer"
)

func shapedSnapshot() sequencer.Snapshot {
	snap := sequencer.EmptySnapshot()
	snap.SelectedChannel = 2
	snap.ChosenIndex = 7
	snap.TempoMs = 90
	snap.Occupied = 1<<3 | 1<<7

	p := sequencer.EmptyPatch()
	p.SetLength(0, 12)
	p.SetPulses(0, 5)
	p.SetLength(1, 7)
	p.SetPulses(1, 3)
	p.ToggleMute(3)
	snap.Slots[3] = p
	snap.Slots[7] = p
	return snap
}

func snapshotsEqual(t *testing.T, got, want sequencer.Snapshot) {
	t.Helper()
	if got.Header != want.Header {
		t.Fatalf("header = %+v, want %+v", got.Header, want.Header)
	}
	for i := range want.Slots {
		if got.Slots[i] != want.Slots[i] {
			t.Fatalf("slot %d = %+v, want %+v", i, got.Slots[i], want.Slots[i])
		}
	}
}

func TestMemRoundTrip(t *testing.T) {
	m := NewMem()
	want := shapedSnapshot()
	if err := m.WriteAll(want); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	got, err := m.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	snapshotsEqual(t, got, want)
}

func TestMemFreshReadsEmpty(t *testing.T) {
	m := NewMem()
	got, err := m.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	snapshotsEqual(t, got, sequencer.EmptySnapshot())
}

func TestMemWriteSlotTouchesOnlyRecordAndHeader(t *testing.T) {
	m := NewMem()
	if err := m.WriteAll(shapedSnapshot()); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	var before [TotalSize]byte
	copy(before[:], m.buf[:])

	p := sequencer.EmptyPatch()
	p.SetPulses(2, 9)
	if err := m.WriteSlot(5, p, 1<<5); err != nil {
		t.Fatalf("WriteSlot: %v", err)
	}

	start := int(recordOffset(5))
	end := start + RecordSize
	for i := HeaderSize; i < TotalSize; i++ {
		if i >= start && i < end {
			continue
		}
		if m.buf[i] != before[i] {
			t.Fatalf("byte %d changed outside slot 5 record and header", i)
		}
	}
	got, err := m.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if got.Slots[5] != p {
		t.Fatalf("slot 5 = %+v, want %+v", got.Slots[5], p)
	}
	if got.Occupied != 1<<5 {
		t.Fatalf("occupied = %04x, want %04x", got.Occupied, 1<<5)
	}
}

func TestMemWriteSlotOutOfRange(t *testing.T) {
	m := NewMem()
	if err := m.WriteSlot(-1, sequencer.EmptyPatch(), 0); err == nil {
		t.Fatal("WriteSlot(-1) did not fail")
	}
	if err := m.WriteSlot(sequencer.NumSlots, sequencer.EmptyPatch(), 0); err == nil {
		t.Fatal("WriteSlot(NumSlots) did not fail")
	}
}

func TestFileFreshReadsShort(t *testing.T) {
	f, err := Open(filepath.Join(t.TempDir(), "bank.bin"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	snap, err := f.ReadAll()
	if err == nil {
		t.Fatal("ReadAll on fresh file did not report short read")
	}
	snapshotsEqual(t, snap, sequencer.EmptySnapshot())
}

func TestFileRoundTripAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.bin")
	want := shapedSnapshot()

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := f.WriteAll(want); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()
	got, err := f.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	snapshotsEqual(t, got, want)
}

func TestFilePartialWritesPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.bin")

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := f.WriteAll(shapedSnapshot()); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	p := sequencer.EmptyPatch()
	p.SetPulses(1, 11)
	if err := f.WriteSlot(9, p, 1<<9); err != nil {
		t.Fatalf("WriteSlot: %v", err)
	}
	if err := f.WriteChosenIndex(9); err != nil {
		t.Fatalf("WriteChosenIndex: %v", err)
	}
	if err := f.WriteSelectedChannel(1); err != nil {
		t.Fatalf("WriteSelectedChannel: %v", err)
	}
	f.SetTempo(60)
	if err := f.WriteChosenIndex(9); err != nil {
		t.Fatalf("WriteChosenIndex: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()
	got, err := f.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if got.Slots[9] != p {
		t.Fatalf("slot 9 = %+v, want %+v", got.Slots[9], p)
	}
	if got.ChosenIndex != 9 || got.SelectedChannel != 1 {
		t.Fatalf("header = %+v, want chosen 9 channel 1", got.Header)
	}
	if got.TempoMs != 60 {
		t.Fatalf("tempo = %d, want 60", got.TempoMs)
	}
	if got.Occupied != 1<<9 {
		t.Fatalf("occupied = %04x, want %04x", got.Occupied, 1<<9)
	}
	// Untouched slots keep their previous contents.
	if got.Slots[3] != shapedSnapshot().Slots[3] {
		t.Fatalf("slot 3 disturbed by partial writes: %+v", got.Slots[3])
	}
}

func TestDecodeClampsCorruptRecord(t *testing.T) {
	buf := make([]byte, RecordSize)
	buf[0] = 40   // pulses channel 0, beyond any length
	buf[4] = 0    // length channel 0
	buf[5] = 200  // length channel 1
	buf[8] = 0xff // pattern channel 0 low byte
	buf[9] = 0xff

	p := decodeRecord(buf)
	if p.Lengths[0] != 1 {
		t.Fatalf("length 0 decoded as %d, want clamp to 1", p.Lengths[0])
	}
	if p.Lengths[1] != sequencer.RingSize {
		t.Fatalf("length 200 decoded as %d, want clamp to %d", p.Lengths[1], sequencer.RingSize)
	}
	if p.Pulses[0] > p.Lengths[0] {
		t.Fatalf("pulses %d exceed length %d after decode", p.Pulses[0], p.Lengths[0])
	}
	if p.Patterns[0]&^uint16(1<<p.Lengths[0]-1) != 0 {
		t.Fatalf("pattern %016b carries bits beyond length %d", p.Patterns[0], p.Lengths[0])
	}
}

func TestDecodeClampsCorruptHeader(t *testing.T) {
	buf := make([]byte, HeaderSize)
	buf[0] = 9 // selected channel
	buf[1] = 99
	buf[4] = 1 // tempo 1ms, under the floor

	h := decodeHeader(buf)
	if h.SelectedChannel != sequencer.NumChannels-1 {
		t.Fatalf("selected channel = %d, want %d", h.SelectedChannel, sequencer.NumChannels-1)
	}
	if h.ChosenIndex != sequencer.NumSlots-1 {
		t.Fatalf("chosen index = %d, want %d", h.ChosenIndex, sequencer.NumSlots-1)
	}
	if h.TempoMs != sequencer.MinIntervalMs {
		t.Fatalf("tempo = %d, want floor %d", h.TempoMs, sequencer.MinIntervalMs)
	}
}
