package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-smf/midi"
	"go-smf/smf"
	"go-smf/theme"
	"go-smf/widgets"
)

type pane int

const (
	paneTracks pane = iota
	paneEvents
)

const (
	trackPaneWidth = 28
	chromeHeight   = 6 // header, blank lines, help
	hexHeight      = 6
)

type Model struct {
	File  *smf.File
	Theme *theme.Theme
	Text  *midi.TextDecoder

	infos  []midi.TrackInfo
	tracks [][]midi.Event
	merged []midi.Event

	focus    pane
	track    int
	cursor   int
	offset   int
	mergedOn bool
	showHex  bool
	showHelp bool

	width, height int
	quitting      bool
}

func NewModel(f *smf.File, th *theme.Theme, text *midi.TextDecoder) Model {
	m := Model{
		File:   f,
		Theme:  th,
		Text:   text,
		focus:  paneEvents,
		width:  100,
		height: 30,
	}
	for i, t := range f.Tracks {
		m.infos = append(m.infos, midi.Summarize(i, t, text))
		m.tracks = append(m.tracks, midi.TrackEvents(i, t))
	}
	m.merged = midi.Flatten(f)
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// events returns the list shown in the event pane.
func (m Model) events() []midi.Event {
	if m.mergedOn {
		return m.merged
	}
	if m.track < len(m.tracks) {
		return m.tracks[m.track]
	}
	return nil
}

// Selected returns the event under the cursor.
func (m Model) Selected() (midi.Event, bool) {
	events := m.events()
	if m.cursor < 0 || m.cursor >= len(events) {
		return midi.Event{}, false
	}
	return events[m.cursor], true
}

func (m Model) listHeight() int {
	h := m.height - chromeHeight
	if m.showHex {
		h -= hexHeight
	}
	return max(h, 1)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clamp()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "tab":
			if m.focus == paneTracks {
				m.focus = paneEvents
			} else {
				m.focus = paneTracks
			}

		case "j", "down":
			m.move(1)
		case "k", "up":
			m.move(-1)
		case "pgdown", "ctrl+d":
			m.move(m.listHeight())
		case "pgup", "ctrl+u":
			m.move(-m.listHeight())
		case "g", "home":
			m.move(-len(m.events()) - len(m.tracks))
		case "G", "end":
			m.move(len(m.events()) + len(m.tracks))

		case "m":
			m.mergedOn = !m.mergedOn
			m.cursor, m.offset = 0, 0
		case "x", "enter":
			m.showHex = !m.showHex
			m.clamp()
		case "?":
			m.showHelp = !m.showHelp

		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			idx := int(msg.String()[0] - '1')
			if idx < len(m.tracks) {
				m.selectTrack(idx)
			}
		}
	}
	return m, nil
}

func (m *Model) move(delta int) {
	if m.focus == paneTracks {
		idx := min(max(m.track+delta, 0), len(m.tracks)-1)
		m.selectTrack(max(idx, 0))
		return
	}
	m.cursor += delta
	m.clamp()
}

func (m *Model) selectTrack(idx int) {
	if idx == m.track && !m.mergedOn {
		return
	}
	m.track = idx
	m.mergedOn = false
	m.cursor, m.offset = 0, 0
}

// clamp keeps the cursor inside the list and scrolled into view.
func (m *Model) clamp() {
	n := len(m.events())
	m.cursor = min(max(m.cursor, 0), max(n-1, 0))

	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	m.offset = max(m.offset, 0)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())

	hdr := m.File.Header
	name := filepath.Base(m.File.Filename)
	if m.File.Filename == "" {
		name = "(stdin)"
	}
	header := headerStyle.Render(fmt.Sprintf("go-smf  %s  format %d (%s)  %d tracks  %s",
		name, hdr.Format, hdr.Format, hdr.NumTracks, hdr.Division))

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.trackView(), "  ", m.eventView())

	var out strings.Builder
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(body)

	if m.showHex {
		out.WriteString("\n\n")
		if ev, ok := m.Selected(); ok {
			out.WriteString(widgets.RenderHexDump(ev.Data, 16))
		}
	}

	out.WriteString("\n\n")
	if m.showHelp {
		out.WriteString(widgets.RenderKeyHelp(keyHelp))
		out.WriteString("\n\n")
		out.WriteString(m.legendView())
	} else {
		out.WriteString(dimStyle.Render("tab:pane  j/k:move  1-9:track  m:merged  x:hex  ?:help  q:quit"))
	}
	return out.String()
}

var keyHelp = []widgets.KeySection{
	{Title: "Navigation", Keys: []widgets.KeyBinding{
		{Key: "tab", Desc: "switch between tracks and events"},
		{Key: "j/k", Desc: "move down/up"},
		{Key: "pgdn/pgup", Desc: "page down/up"},
		{Key: "g/G", Desc: "first/last"},
		{Key: "1-9", Desc: "jump to track"},
	}},
	{Title: "View", Keys: []widgets.KeyBinding{
		{Key: "m", Desc: "toggle merged timeline"},
		{Key: "x", Desc: "toggle hex view of the selected event"},
		{Key: "q", Desc: "quit"},
	}},
}

var categories = []midi.Category{
	midi.CategoryChannel,
	midi.CategorySystem,
	midi.CategoryMeta,
	midi.CategoryUndefined,
}

// legendView maps event colors to their categories.
func (m Model) legendView() string {
	items := make([]string, len(categories))
	for i, c := range categories {
		items[i] = widgets.RenderLegendItem(m.Theme.Category(c), c.String())
	}
	return strings.Join(items, "  ")
}

func (m Model) trackView() string {
	title := lipgloss.NewStyle().Bold(true)
	cursor := lipgloss.NewStyle().Foreground(m.Theme.Highlight())

	lines := []string{title.Render("Tracks")}
	for i, info := range m.infos {
		mark := m.Theme.Symbols.Complete
		if !info.Complete {
			mark = m.Theme.Symbols.Broken
		}
		name := info.Name
		if name == "" {
			name = "-"
		}
		line := widgets.Truncate(fmt.Sprintf("%c %2d %s (%d)", mark, i+1, name, info.Events), trackPaneWidth-2)
		if i == m.track && !m.mergedOn {
			prefix := " "
			if m.focus == paneTracks {
				prefix = string(m.Theme.Symbols.Cursor)
			}
			line = cursor.Render(prefix + " " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return lipgloss.NewStyle().Width(trackPaneWidth).Render(strings.Join(lines, "\n"))
}

func (m Model) eventView() string {
	title := lipgloss.NewStyle().Bold(true)
	cursor := lipgloss.NewStyle().Background(m.Theme.Muted())

	label := fmt.Sprintf("Track %d", m.track+1)
	if m.mergedOn {
		label = "All tracks"
	}
	events := m.events()
	lines := []string{title.Render(fmt.Sprintf("%s  %d events", label, len(events)))}

	width := max(m.width-trackPaneWidth-4, 20)
	end := min(m.offset+m.listHeight(), len(events))
	for i := m.offset; i < end; i++ {
		ev := events[i]
		color := m.Theme.Category(midi.CategoryOf(ev.Type))
		row := fmt.Sprintf("%8d %6d  %-2d %-24s %s",
			ev.Tick, ev.Delta, ev.Track+1, ev.Type, midi.Describe(ev.TrackEvent, m.Text))
		row = widgets.Truncate(row, width)
		style := lipgloss.NewStyle().Foreground(color)
		if i == m.cursor && m.focus == paneEvents {
			style = cursor.Foreground(color)
		}
		lines = append(lines, style.Render(row))
	}
	return strings.Join(lines, "\n")
}
