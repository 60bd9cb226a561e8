// Package tui is the front panel simulator: keyboard stands in for the
// encoder, buttons and CV jacks, and the terminal stands in for the LED
// ring. It feeds decoded inputs to the engine once per control tick and
// renders the engine's redraw frames.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"euclid-o-matic/sequencer"
	"euclid-o-matic/theme"
	"euclid-o-matic/widgets"
)

// FrameSink captures the engine's last display frame. The engine draws
// into it during Tick; View reads it back out.
type FrameSink struct {
	Frame sequencer.Frame
}

func (s *FrameSink) Draw(f sequencer.Frame) { s.Frame = f }

type TickMsg time.Time

type Model struct {
	Engine *sequencer.Engine
	Sink   *FrameSink
	Theme  *theme.Theme

	tickEvery time.Duration
	start     time.Time

	// Decoder state assembled from key presses, consumed per tick.
	pending   sequencer.Inputs
	modifier  bool // latched: tab toggles held/released
	extSource bool
	width     int // pulse-width reading

	showHelp bool
	quitting bool
}

func NewModel(engine *sequencer.Engine, sink *FrameSink, th *theme.Theme, tickMs int, externalClock bool) Model {
	if tickMs < 1 {
		tickMs = 5
	}
	return Model{
		Engine:    engine,
		Sink:      sink,
		Theme:     th,
		tickEvery: time.Duration(tickMs) * time.Millisecond,
		start:     time.Now(),
		extSource: externalClock,
		width:     sequencer.AnalogMid,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tickEvery, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "k", "up":
			m.pending.EncoderTicks += 4 // one detent
		case "j", "down":
			m.pending.EncoderTicks -= 4

		case "m":
			m.pending.ModeButton = true

		case "tab":
			m.modifier = !m.modifier

		case "1", "2", "3", "4":
			m.pending.ChannelButtons[msg.String()[0]-'1'] = true

		case "r":
			m.pending.Reset = sequencer.AnalogMax

		case "x":
			m.pending.ExtClock = sequencer.AnalogMax

		case "e":
			m.extSource = !m.extSource

		case ",":
			m.width -= 64
			if m.width < 0 {
				m.width = 0
			}
		case ".":
			m.width += 64
			if m.width > sequencer.AnalogMax {
				m.width = sequencer.AnalogMax
			}

		case "f1", "f2", "f3", "f4":
			m.pending.Function[msg.String()[1]-'1'] = sequencer.AnalogMax

		case "?":
			m.showHelp = !m.showHelp
		}

	case TickMsg:
		in := m.pending
		in.Modifier = m.modifier
		in.PulseWidth = m.width
		in.ExternalClock = m.extSource

		now := uint32(time.Since(m.start).Milliseconds())
		m.Engine.Tick(now, in)

		// Buttons and pulses are one tick wide; the latch and the
		// analog trims persist.
		m.pending = sequencer.Inputs{}

		return m, m.tickCmd()
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	f := m.Sink.Frame
	th := m.Theme

	headerStyle := lipgloss.NewStyle().Foreground(th.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(th.Muted())
	modeStyle := lipgloss.NewStyle().Foreground(th.Color(modeRole(f.Mode))).Bold(true)

	source := "int"
	if m.extSource {
		source = "ext"
	}
	modifier := ""
	if m.modifier {
		modifier = "  [TAP]"
	}
	header := headerStyle.Render(fmt.Sprintf("euclid-o-matic  %3dms %s  ch:%d", f.TempoMs, source, f.Channel+1)) +
		"  " + modeStyle.Render(f.Mode.String()) + headerStyle.Render(modifier)

	var body string
	switch {
	case m.showHelp:
		body = m.viewHelp()
	case f.Mode == sequencer.ModeProgram:
		body = m.viewBank(f)
	default:
		body = m.viewRing(f)
	}

	help := dimStyle.Render(m.helpLine(f.Mode))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(body)
	out.WriteString("\n")
	out.WriteString(help)
	return out.String()
}

// viewRing renders the selected channel's pattern on the LED ring, in
// the current mode's color, with the playback cursor on top.
func (m Model) viewRing(f sequencer.Frame) string {
	th := m.Theme
	role := modeRole(f.Mode)

	var cells [16]widgets.Cell
	for i := 0; i < 16; i++ {
		switch {
		case i >= f.Length:
			cells[i] = widgets.Cell{Symbol: th.Symbols.StepBeyond}
		case i == f.Cursor:
			sym := th.Symbols.StepPlayhead
			color := th.Palette.Lookup(theme.RolePlayhead)
			if !f.GateOpen {
				color = th.Palette.Lookup(role)
			}
			cells[i] = widgets.Cell{Symbol: sym, Color: color}
		case f.Pattern&(1<<i) != 0:
			cells[i] = widgets.Cell{Symbol: th.Symbols.StepActive, Color: th.Palette.Lookup(role)}
		default:
			cells[i] = widgets.Cell{Symbol: th.Symbols.StepEmpty, Color: th.Palette.Lookup(theme.RoleMuted)}
		}
	}

	center := ""
	if f.Muted {
		center = lipgloss.NewStyle().Foreground(m.Theme.Muted()).Render("MUTE")
	}

	return widgets.RenderRing(cells, center)
}

// viewBank renders the occupancy grid with the candidate slot instead
// of the pattern.
func (m Model) viewBank(f sequencer.Frame) string {
	th := m.Theme

	var cells [16]widgets.Cell
	for i := 0; i < 16; i++ {
		occupied := f.Occupied&(1<<i) != 0
		switch {
		case i == f.Candidate:
			cells[i] = widgets.Cell{Symbol: th.Symbols.SlotCandidate, Color: th.Palette.Lookup(theme.RolePlayhead)}
		case i == f.Chosen:
			cells[i] = widgets.Cell{Symbol: th.Symbols.SlotOccupied, Color: th.Palette.Lookup(theme.RoleAccent)}
		case occupied:
			cells[i] = widgets.Cell{Symbol: th.Symbols.SlotOccupied, Color: th.Palette.Lookup(theme.RoleProgram)}
		default:
			cells[i] = widgets.Cell{Symbol: th.Symbols.SlotEmpty, Color: th.Palette.Lookup(theme.RoleMuted)}
		}
	}

	out := widgets.RenderSlotGrid(cells)
	out += "\n" + fmt.Sprintf("slot %2d", f.Candidate+1)
	return out
}

// viewHelp is the full key reference, toggled with '?'.
func (m Model) viewHelp() string {
	th := m.Theme

	keys := widgets.RenderKeyHelp([]widgets.KeySection{
		{Title: "Panel", Keys: []widgets.KeyBinding{
			{Key: "j/k, up/down", Desc: "encoder, one detent"},
			{Key: "m", Desc: "mode button"},
			{Key: "tab", Desc: "tap/escape modifier (latched)"},
			{Key: "1-4", Desc: "channel buttons"},
		}},
		{Title: "Jacks", Keys: []widgets.KeyBinding{
			{Key: "r", Desc: "reset pulse"},
			{Key: "x", Desc: "external clock pulse"},
			{Key: "e", Desc: "clock source int/ext"},
			{Key: ", .", Desc: "pulse width trim"},
			{Key: "f1-f4", Desc: "function pulse per channel"},
		}},
	})

	legend := strings.Join([]string{
		widgets.RenderLegendItem(th.Palette.Lookup(theme.RoleModePulses), "active", "step fires"),
		widgets.RenderLegendItem(th.Palette.Lookup(theme.RolePlayhead), "playhead", "current step"),
		widgets.RenderLegendItem(th.Palette.Lookup(theme.RoleMuted), "empty", "step in bounds, silent"),
	}, "\n")

	return keys + "\n\n" + legend
}

func (m Model) helpLine(mode sequencer.Mode) string {
	if mode == sequencer.ModeProgram {
		return "j/k:slot  1:recall 2:store 3:clear  m:back  ?:help  q:quit"
	}
	return "j/k:encoder  m:mode  tab:tap  1-4:channel  r:reset  x:clock  ,/.:width  ?:help  q:quit"
}

func modeRole(mode sequencer.Mode) float64 {
	switch mode {
	case sequencer.ModeLength:
		return theme.RoleModeLength
	case sequencer.ModePulses:
		return theme.RoleModePulses
	case sequencer.ModeRotate:
		return theme.RoleModeRotate
	default:
		return theme.RoleProgram
	}
}
