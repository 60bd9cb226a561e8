package store

import (
	"fmt"
	"os"
	"path/filepath"

	"euclid-o-matic/sequencer"
)

// File is the file-backed store. It stands in for the EEPROM of the
// hardware unit: a flat byte medium addressed by ReadAt/WriteAt. The
// header is cached so partial writes can rewrite it without a read.
type File struct {
	f   *os.File
	hdr sequencer.Header
}

// DefaultPath returns the store file under the user config directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "euclid-o-matic", "bank.bin"), nil
}

// Open opens or creates the store file.
func Open(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	return &File{f: f, hdr: sequencer.EmptySnapshot().Header}, nil
}

// Close closes the underlying file.
func (s *File) Close() error {
	return s.f.Close()
}

// ReadAll decodes the whole medium. A fresh or truncated file reads as
// the empty snapshot with an error, so the caller can lay it out.
func (s *File) ReadAll() (sequencer.Snapshot, error) {
	buf := make([]byte, TotalSize)
	n, err := s.f.ReadAt(buf, 0)
	if n < TotalSize {
		return sequencer.EmptySnapshot(), fmt.Errorf("store: short read (%d of %d bytes): %w", n, TotalSize, err)
	}
	snap := decodeSnapshot(buf)
	s.hdr = snap.Header
	return snap, nil
}

// WriteAll rewrites the whole medium.
func (s *File) WriteAll(snap sequencer.Snapshot) error {
	if _, err := s.f.WriteAt(encodeSnapshot(snap), 0); err != nil {
		return fmt.Errorf("store: write all: %w", err)
	}
	s.hdr = snap.Header
	return s.f.Sync()
}

// WriteSlot rewrites one patch record plus the header, nothing else.
func (s *File) WriteSlot(i int, p sequencer.Patch, occupied uint16) error {
	if i < 0 || i >= sequencer.NumSlots {
		return fmt.Errorf("store: slot %d out of range", i)
	}
	s.hdr.Occupied = occupied
	if _, err := s.f.WriteAt(encodeRecord(p), recordOffset(i)); err != nil {
		return fmt.Errorf("store: write slot %d: %w", i, err)
	}
	return s.writeHeader()
}

// WriteChosenIndex persists a new chosen patch index (header only).
func (s *File) WriteChosenIndex(i int) error {
	s.hdr.ChosenIndex = i
	return s.writeHeader()
}

// WriteSelectedChannel persists a new selected channel (header only).
func (s *File) WriteSelectedChannel(c int) error {
	s.hdr.SelectedChannel = c
	return s.writeHeader()
}

// SetTempo updates the tempo the header carries on its next write.
func (s *File) SetTempo(ms int) {
	s.hdr.TempoMs = ms
}

func (s *File) writeHeader() error {
	if _, err := s.f.WriteAt(encodeHeader(s.hdr), 0); err != nil {
		return fmt.Errorf("store: write header: %w", err)
	}
	return s.f.Sync()
}
