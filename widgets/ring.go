// Package widgets renders the front panel indicators as terminal text:
// the 16-LED ring, the 4x4 bank grid, and key-help lines.
package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Cell is one indicator position: a symbol plus its color.
type Cell struct {
	Symbol rune
	Color  [3]uint8
}

// Ring positions on a 9x17 character grid, step 0 at twelve o'clock,
// clockwise. Terminal cells are taller than wide, so the horizontal
// radius is doubled.
var ringPos = [16][2]int{
	{0, 8}, {0, 11}, {1, 14}, {2, 15},
	{4, 16}, {6, 15}, {7, 14}, {8, 11},
	{8, 8}, {8, 5}, {7, 2}, {6, 1},
	{4, 0}, {2, 1}, {1, 2}, {0, 5},
}

// RenderRing lays the 16 cells out as a circle. Center lines are left
// to the caller via the center argument (drawn on the middle row).
func RenderRing(cells [16]Cell, center string) string {
	const rows, cols = 9, 17

	var grid [rows][cols]string
	for i, c := range cells {
		grid[ringPos[i][0]][ringPos[i][1]] = renderCell(c)
	}

	var out strings.Builder
	for r := 0; r < rows; r++ {
		line := ""
		for c := 0; c < cols; c++ {
			if grid[r][c] != "" {
				line += grid[r][c]
			} else {
				line += " "
			}
		}
		if r == rows/2 && center != "" {
			// Overlay the center label between the ring edges.
			pad := (cols - lipgloss.Width(center)) / 2
			if pad < 2 {
				pad = 2
			}
			line = grid[r][0] + strings.Repeat(" ", pad-1) + center
			right := cols - pad - lipgloss.Width(center) - 1
			if right > 0 {
				line += strings.Repeat(" ", right)
			}
			line += grid[r][cols-1]
		}
		out.WriteString(line)
		out.WriteString("\n")
	}
	return out.String()
}

// RenderSlotGrid renders the 16 bank slots as a 4x4 grid, slot 0 at the
// top left.
func RenderSlotGrid(cells [16]Cell) string {
	var out strings.Builder
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if col > 0 {
				out.WriteString(" ")
			}
			out.WriteString(renderCell(cells[row*4+col]))
		}
		out.WriteString("\n")
	}
	return out.String()
}

// RenderLegendItem renders a single legend item: "● Name - description"
func RenderLegendItem(color [3]uint8, name, desc string) string {
	return fmt.Sprintf("  %s %s - %s", renderCell(Cell{Symbol: '●', Color: color}), name, desc)
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}

func renderCell(c Cell) string {
	if c.Symbol == 0 || c.Symbol == ' ' {
		return " "
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(c.Color)))
	return style.Render(string(c.Symbol))
}

func rgbToHex(c [3]uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
