package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

type formField int

const (
	fieldName formField = iota
	fieldImage
	fieldMode
	fieldBoth
	fieldCount
)

type addForm struct {
	name  textinput.Model
	image textinput.Model
	mode  types.Mode
	both  bool
	focus formField
}

func newAddForm() addForm {
	name := textinput.New()
	name.Placeholder = "Sunrise"
	name.CharLimit = 64
	image := textinput.New()
	image.Placeholder = "puzzles/easy/sunrise.jpg"
	image.CharLimit = 256
	return addForm{name: name, image: image, mode: types.ModeEasy}
}

func (f *addForm) setFocus(field formField) tea.Cmd {
	f.focus = field
	f.name.Blur()
	f.image.Blur()
	switch field {
	case fieldName:
		return f.name.Focus()
	case fieldImage:
		return f.image.Focus()
	}
	return nil
}

func (m Model) openAddForm() (tea.Model, tea.Cmd) {
	m.form = newAddForm()
	if mode := m.ctrl.Mode(); mode.Valid() {
		m.form.mode = mode
	}
	m.overlay = overlayAdd
	m.clearStatus()
	return m, m.form.setFocus(fieldName)
}

func (m Model) updateAddForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Back):
			m.overlay = overlayNone
			return m, nil
		case key.Matches(keyMsg, m.keys.Select):
			return m.submitAddForm()
		case key.Matches(keyMsg, m.keys.Next):
			return m, m.form.setFocus((m.form.focus + 1) % fieldCount)
		case key.Matches(keyMsg, m.keys.Prev):
			return m, m.form.setFocus((m.form.focus + fieldCount - 1) % fieldCount)
		}
		switch m.form.focus {
		case fieldMode:
			if key.Matches(keyMsg, m.keys.Left, m.keys.Right, m.keys.Pick) {
				if m.form.mode == types.ModeEasy {
					m.form.mode = types.ModeHard
				} else {
					m.form.mode = types.ModeEasy
				}
			}
			return m, nil
		case fieldBoth:
			if key.Matches(keyMsg, m.keys.Left, m.keys.Right, m.keys.Pick) {
				m.form.both = !m.form.both
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.form.focus {
	case fieldName:
		m.form.name, cmd = m.form.name.Update(msg)
	case fieldImage:
		m.form.image, cmd = m.form.image.Update(msg)
	}
	return m, cmd
}

func (m Model) submitAddForm() (tea.Model, tea.Cmd) {
	f := m.form
	added, err := m.editor.AddStage(f.name.Value(), f.image.Value(), f.mode, f.both)
	if err != nil {
		return m.fail(err), nil
	}
	m.overlay = overlayNone
	names := make([]string, 0, len(added))
	for _, s := range added {
		names = append(names, fmt.Sprintf("%s #%d (%s)", s.Name, s.ID, s.Mode))
		m.logger.Info("stage added", zap.Int64("stage", s.ID), zap.String("mode", string(s.Mode)))
	}
	return m.notify(strings.Join(names, ", ")), nil
}

func (m Model) viewAddForm() string {
	f := m.form
	marker := func(field formField) string {
		if f.focus == field {
			return selectedStyle.Render("> ")
		}
		return "  "
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.loc.T("add.title")))
	b.WriteString("\n\n")
	b.WriteString(marker(fieldName) + textStyle.Render(m.loc.T("add.name")) + "\n  " + f.name.View() + "\n\n")
	b.WriteString(marker(fieldImage) + textStyle.Render(m.loc.T("add.image")) + "\n  " + f.image.View() + "\n\n")
	b.WriteString(marker(fieldMode) + textStyle.Render(m.loc.T("add.mode")) + "  " + subtitleStyle.Render(m.modeLabel(f.mode)) + "\n")
	b.WriteString(marker(fieldBoth) + textStyle.Render(m.loc.T("add.both")) + "  " + subtitleStyle.Render(m.onOff(f.both)) + "\n\n")
	b.WriteString(dimStyle.Render(m.loc.T("add.help")))
	return modalStyle.Render(b.String())
}
