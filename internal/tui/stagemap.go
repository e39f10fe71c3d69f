package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

func (m Model) visibleStages() types.Catalog {
	return m.editor.Stages(m.ctrl.Mode())
}

func (m Model) updateMap(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visibleStages()
	switch {
	case key.Matches(msg, m.keys.Back):
		if err := m.ctrl.Back(); err != nil {
			return m.fail(err), nil
		}
		m.clearStatus()
	case key.Matches(msg, m.keys.Up):
		if m.mapCursor > 0 {
			m.mapCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.mapCursor < len(visible)-1 {
			m.mapCursor++
		}
	case key.Matches(msg, m.keys.Mode):
		next := types.ModeHard
		if m.ctrl.Mode() == types.ModeHard {
			next = types.ModeEasy
		}
		if err := m.ctrl.ChangeMode(next); err != nil {
			return m.fail(err), nil
		}
		m.mapCursor = 0
	case key.Matches(msg, m.keys.Select):
		if len(visible) == 0 {
			return m, nil
		}
		return m.startGame(visible[m.mapCursor])
	case key.Matches(msg, m.keys.Settings):
		m = m.openSettings()
	case key.Matches(msg, m.keys.Add):
		if !m.editor.Admin() {
			return m, nil
		}
		return m.openAddForm()
	case key.Matches(msg, m.keys.Delete):
		if !m.editor.Admin() || len(visible) == 0 {
			return m, nil
		}
		stage := visible[m.mapCursor]
		m = m.askConfirm(m.loc.T("confirm.delete", stage.Name), confirmDelete, stage.ID)
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) viewMap() string {
	mode := m.ctrl.Mode()
	visible := m.visibleStages()

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.modeLabel(mode)))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(m.loc.T("map.count", len(visible))))
	b.WriteString("\n\n")

	if len(visible) == 0 {
		b.WriteString(subtitleStyle.Render(m.loc.T("map.empty.title")))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(m.loc.T("map.empty.body")))
		b.WriteString("\n")
	}

	for i, stage := range visible {
		cursor := "  "
		name := textStyle.Render(stage.Name)
		if i == m.mapCursor {
			cursor = "> "
			name = selectedStyle.Render(stage.Name)
		}
		line := fmt.Sprintf("%s%2d. %s", cursor, i+1, name)
		if done, err := m.progress.Completed(stage.ID); err == nil && done {
			line += " " + successStyle.Render("✓")
		}
		if best, ok, err := m.progress.Best(stage.ID); err != nil {
			m.logger.Warn("read personal best", zap.Int64("stage", stage.ID), zap.Error(err))
		} else if ok {
			line += "  " + dimStyle.Render(m.loc.T("map.best", best.Elapsed().Round(time.Millisecond*100)))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := m.loc.T("map.help")
	if m.editor.Admin() {
		help += " • " + m.loc.T("map.help.admin")
	}
	b.WriteString(dimStyle.Render(help))
	return b.String()
}
