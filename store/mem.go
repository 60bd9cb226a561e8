package store

import (
	"fmt"

	"euclid-o-matic/sequencer"
)

// Mem is an in-memory store with the same byte layout as File. It backs
// tests and storage-less operation (state lives only for the session).
type Mem struct {
	buf [TotalSize]byte
	hdr sequencer.Header
}

// NewMem returns a memory store pre-laid-out with the empty snapshot.
func NewMem() *Mem {
	m := &Mem{}
	snap := sequencer.EmptySnapshot()
	copy(m.buf[:], encodeSnapshot(snap))
	m.hdr = snap.Header
	return m
}

func (m *Mem) ReadAll() (sequencer.Snapshot, error) {
	snap := decodeSnapshot(m.buf[:])
	m.hdr = snap.Header
	return snap, nil
}

func (m *Mem) WriteAll(snap sequencer.Snapshot) error {
	copy(m.buf[:], encodeSnapshot(snap))
	m.hdr = snap.Header
	return nil
}

func (m *Mem) WriteSlot(i int, p sequencer.Patch, occupied uint16) error {
	if i < 0 || i >= sequencer.NumSlots {
		return fmt.Errorf("store: slot %d out of range", i)
	}
	m.hdr.Occupied = occupied
	copy(m.buf[recordOffset(i):], encodeRecord(p))
	copy(m.buf[:HeaderSize], encodeHeader(m.hdr))
	return nil
}

func (m *Mem) WriteChosenIndex(i int) error {
	m.hdr.ChosenIndex = i
	copy(m.buf[:HeaderSize], encodeHeader(m.hdr))
	return nil
}

func (m *Mem) WriteSelectedChannel(c int) error {
	m.hdr.SelectedChannel = c
	copy(m.buf[:HeaderSize], encodeHeader(m.hdr))
	return nil
}

func (m *Mem) SetTempo(ms int) {
	m.hdr.TempoMs = ms
}
