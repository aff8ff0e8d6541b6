package theme

import (
	"github.com/charmbracelet/lipgloss"

	"go-smf/midi"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	Cursor   rune // ▶ selected row
	Complete rune // ● track ends in end-of-track
	Broken   rune // ○ track without end-of-track
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = Plasma()
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			Cursor:   '▶',
			Complete: '●',
			Broken:   '○',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleMuted     = 0.15
	RoleMeta      = 0.35
	RoleAccent    = 0.5
	RoleChannel   = 0.65
	RoleSystem    = 0.8
	RoleUndefined = 0.45
	RoleHighlight = 1.0
)

func (t *Theme) Accent() lipgloss.Color {
	return t.Color(RoleAccent)
}

func (t *Theme) Muted() lipgloss.Color {
	return t.Color(RoleMuted)
}

func (t *Theme) Highlight() lipgloss.Color {
	return t.Color(RoleHighlight)
}

// Category returns the color used for an event category.
func (t *Theme) Category(c midi.Category) lipgloss.Color {
	switch c {
	case midi.CategoryChannel:
		return t.Color(RoleChannel)
	case midi.CategorySystem:
		return t.Color(RoleSystem)
	case midi.CategoryMeta:
		return t.Color(RoleMeta)
	}
	return t.Color(RoleUndefined)
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return lipgloss.Color(t.Palette.Lookup(norm).Hex())
}
