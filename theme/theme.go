package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Ring states
	StepEmpty    rune // · step in bounds, no hit
	StepActive   rune // ● step fires
	StepPlayhead rune // ▶ cursor position
	StepBeyond   rune // space, past pattern length

	// Bank grid states
	SlotEmpty     rune // □ unoccupied slot
	SlotOccupied  rune // ■ stored patch
	SlotCandidate rune // ◎ candidate slot
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			StepEmpty:    '·',
			StepActive:   '●',
			StepPlayhead: '▶',
			StepBeyond:   ' ',

			SlotEmpty:     '□',
			SlotOccupied:  '■',
			SlotCandidate: '◎',
		},
	}
}

// Color roles mapped to palette positions (0-1). Each editing mode
// highlights the ring in its own role color.
const (
	RoleMuted      = 0.15
	RoleFG         = 0.4
	RoleModeLength = 0.25
	RoleModePulses = 0.55
	RoleModeRotate = 0.75
	RoleProgram    = 0.9
	RoleAccent     = 0.6
	RolePlayhead   = 1.0
)

// Style helpers

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Playhead() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RolePlayhead))
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
