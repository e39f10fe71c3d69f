package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
		m.homeCursor = (m.homeCursor + len(types.Modes) - 1) % len(types.Modes)
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
		m.homeCursor = (m.homeCursor + 1) % len(types.Modes)
	case key.Matches(msg, m.keys.Select):
		if err := m.ctrl.SelectMode(types.Modes[m.homeCursor]); err != nil {
			return m.fail(err), nil
		}
		m.mapCursor = 0
		m.clearStatus()
	case key.Matches(msg, m.keys.Settings):
		m = m.openSettings()
	}
	return m, nil
}

func (m Model) viewHome() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.loc.T("app.title")))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(m.loc.T("home.subtitle")))
	b.WriteString("\n\n")

	counts := m.stageCounts()
	cards := make([]string, 0, len(types.Modes))
	for i, mode := range types.Modes {
		style := modeCardStyle
		label := textStyle.Render(m.modeLabel(mode))
		if i == m.homeCursor {
			style = modeCardActiveStyle
			label = selectedStyle.Render(m.modeLabel(mode))
		}
		card := label + "\n" + dimStyle.Render(m.loc.T("map.count", counts[mode]))
		cards = append(cards, style.Render(card))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.loc.T("home.help")))
	return b.String()
}

func (m Model) stageCounts() map[types.Mode]int {
	counts := make(map[types.Mode]int, len(types.Modes))
	for _, mode := range types.Modes {
		counts[mode] = len(m.editor.Stages(mode))
	}
	return counts
}
