// Package store persists the patch bank in a compact fixed layout:
// a small header followed by one fixed-size record per bank slot at a
// deterministic offset. Partial writes touch one record plus the
// header, so storing or clearing a single slot never rewrites the
// whole bank.
package store

import (
	"encoding/binary"

	"euclid-o-matic/sequencer"
)

// Byte layout. Header:
//
//	0       selected channel
//	1       chosen patch index
//	2..3    occupancy bits, little endian
//	4..5    tempo interval ms, little endian
//	6..7    reserved
//
// Each record:
//
//	0..3    pulse counts
//	4..7    pattern lengths
//	8..15   patterns, little endian u16 each
//	16      mute flags, bit per channel
const (
	HeaderSize = 8
	RecordSize = 17
	TotalSize  = HeaderSize + sequencer.NumSlots*RecordSize
)

func recordOffset(i int) int64 {
	return int64(HeaderSize + i*RecordSize)
}

func encodeHeader(h sequencer.Header) []byte {
	buf := make([]byte, HeaderSize)
	buf[0] = uint8(h.SelectedChannel)
	buf[1] = uint8(h.ChosenIndex)
	binary.LittleEndian.PutUint16(buf[2:], h.Occupied)
	binary.LittleEndian.PutUint16(buf[4:], uint16(h.TempoMs))
	return buf
}

func decodeHeader(buf []byte) sequencer.Header {
	h := sequencer.Header{
		SelectedChannel: int(buf[0]),
		ChosenIndex:     int(buf[1]),
		Occupied:        binary.LittleEndian.Uint16(buf[2:]),
		TempoMs:         int(binary.LittleEndian.Uint16(buf[4:])),
	}
	// Out-of-range stored values are clamped, never rejected.
	if h.SelectedChannel >= sequencer.NumChannels {
		h.SelectedChannel = sequencer.NumChannels - 1
	}
	if h.ChosenIndex >= sequencer.NumSlots {
		h.ChosenIndex = sequencer.NumSlots - 1
	}
	if h.TempoMs < sequencer.MinIntervalMs {
		h.TempoMs = sequencer.MinIntervalMs
	}
	if h.TempoMs > sequencer.MaxIntervalMs {
		h.TempoMs = sequencer.MaxIntervalMs
	}
	return h
}

func encodeRecord(p sequencer.Patch) []byte {
	buf := make([]byte, RecordSize)
	for c := 0; c < sequencer.NumChannels; c++ {
		buf[c] = uint8(p.Pulses[c])
		buf[4+c] = uint8(p.Lengths[c])
		binary.LittleEndian.PutUint16(buf[8+2*c:], p.Patterns[c])
		if p.Muted[c] {
			buf[16] |= 1 << c
		}
	}
	return buf
}

func decodeRecord(buf []byte) sequencer.Patch {
	p := sequencer.EmptyPatch()
	for c := 0; c < sequencer.NumChannels; c++ {
		length := int(buf[4+c])
		if length < 1 {
			length = 1
		}
		if length > sequencer.RingSize {
			length = sequencer.RingSize
		}
		pulses := int(buf[c])
		if pulses > length {
			pulses = length
		}
		p.Lengths[c] = length
		p.Pulses[c] = pulses
		p.Patterns[c] = binary.LittleEndian.Uint16(buf[8+2*c:]) & (1<<length - 1)
		p.Muted[c] = buf[16]&(1<<c) != 0
	}
	return p
}

func encodeSnapshot(s sequencer.Snapshot) []byte {
	buf := make([]byte, 0, TotalSize)
	buf = append(buf, encodeHeader(s.Header)...)
	for i := range s.Slots {
		buf = append(buf, encodeRecord(s.Slots[i])...)
	}
	return buf
}

func decodeSnapshot(buf []byte) sequencer.Snapshot {
	if len(buf) < TotalSize {
		return sequencer.EmptySnapshot()
	}
	s := sequencer.Snapshot{Header: decodeHeader(buf)}
	for i := range s.Slots {
		off := recordOffset(i)
		s.Slots[i] = decodeRecord(buf[off : off+RecordSize])
	}
	return s
}
