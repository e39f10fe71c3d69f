package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

type confirmAction int

const (
	confirmDelete confirmAction = iota + 1
	confirmReset
)

type confirmState struct {
	prompt string
	action confirmAction
	target int64
	back   overlay
}

// askConfirm opens the yes/no modal. The overlay underneath comes back when
// the modal closes.
func (m Model) askConfirm(prompt string, action confirmAction, target int64) Model {
	m.confirm = confirmState{prompt: prompt, action: action, target: target, back: m.overlay}
	m.overlay = overlayConfirm
	return m
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		c := m.confirm
		m.overlay = c.back
		m.confirm = confirmState{}
		return m.runConfirmed(c)
	case key.Matches(msg, m.keys.No):
		m.overlay = m.confirm.back
		m.confirm = confirmState{}
	}
	return m, nil
}

func (m Model) runConfirmed(c confirmState) (tea.Model, tea.Cmd) {
	switch c.action {
	case confirmDelete:
		if _, err := m.editor.DeleteStage(c.target, types.Preconfirmed); err != nil {
			return m.fail(err), nil
		}
		if n := len(m.visibleStages()); m.mapCursor >= n && n > 0 {
			m.mapCursor = n - 1
		}
		m.logger.Info("stage deleted", zap.Int64("stage", c.target))
	case confirmReset:
		removed, _, err := m.settings.ResetProgress(types.Preconfirmed)
		if err != nil {
			return m.fail(err), nil
		}
		m.overlay = overlayNone
		m.logger.Info("progress reset", zap.Int("records", removed))
	}
	return m, nil
}

func (m Model) viewConfirm() string {
	var b strings.Builder
	b.WriteString(warnStyle.Render(m.confirm.prompt))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.loc.T("confirm.help")))
	return modalStyle.Render(b.String())
}
