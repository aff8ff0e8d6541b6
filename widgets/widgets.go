package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderSwatch renders a single colored block
func RenderSwatch(color lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(color).Render("■")
}

// RenderLegendItem renders a single legend item: "■ name"
func RenderLegendItem(color lipgloss.Color, name string) string {
	return fmt.Sprintf("%s %s", RenderSwatch(color), name)
}

// RenderHexDump formats data as offset-prefixed hex rows of width bytes.
func RenderHexDump(data []byte, width int) string {
	if width <= 0 {
		width = 16
	}
	if len(data) == 0 {
		return "(no data)"
	}

	var lines []string
	for off := 0; off < len(data); off += width {
		end := min(off+width, len(data))
		row := data[off:end]

		var ascii strings.Builder
		for _, b := range row {
			if b >= 0x20 && b < 0x7F {
				ascii.WriteByte(b)
			} else {
				ascii.WriteByte('.')
			}
		}
		hex := fmt.Sprintf("% X", row)
		lines = append(lines, fmt.Sprintf("%04x  %-*s  %s", off, width*3-1, hex, ascii.String()))
	}
	return strings.Join(lines, "\n")
}

// Truncate shortens s to at most n cells, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
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
