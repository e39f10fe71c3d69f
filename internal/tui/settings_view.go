package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mesh-intelligence/puzzlequest/internal/i18n"
	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

type menuItem int

const (
	itemAdmin menuItem = iota
	itemSound
	itemVolume
	itemLanguage
	itemReset
)

const volumeStep = 0.1

func (m Model) menuItems() []menuItem {
	items := []menuItem{itemAdmin, itemSound, itemVolume, itemLanguage}
	if m.prefs.Admin {
		items = append(items, itemReset)
	}
	return items
}

func (m Model) openSettings() Model {
	m.overlay = overlaySettings
	m.menuCursor = 0
	m.clearStatus()
	return m
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.menuItems()
	if m.menuCursor >= len(items) {
		m.menuCursor = len(items) - 1
	}
	item := items[m.menuCursor]

	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Settings):
		m.overlay = overlayNone
	case key.Matches(msg, m.keys.Up):
		m.menuCursor = (m.menuCursor + len(items) - 1) % len(items)
	case key.Matches(msg, m.keys.Down):
		m.menuCursor = (m.menuCursor + 1) % len(items)
	case key.Matches(msg, m.keys.Left):
		return m.adjustSetting(item, -1)
	case key.Matches(msg, m.keys.Right):
		return m.adjustSetting(item, 1)
	case key.Matches(msg, m.keys.Pick):
		return m.activateSetting(item)
	}
	return m, nil
}

func (m Model) activateSetting(item menuItem) (tea.Model, tea.Cmd) {
	switch item {
	case itemAdmin:
		admin, err := m.settings.ToggleAdmin()
		if err != nil {
			return m.fail(err), nil
		}
		m.prefs.Admin = admin
		m.editor.SetAdmin(admin)
	case itemSound:
		sound, err := m.settings.ToggleSound()
		if err != nil {
			return m.fail(err), nil
		}
		m.prefs.SoundEnabled = sound
	case itemLanguage:
		return m.adjustSetting(item, 1)
	case itemReset:
		m = m.askConfirm(m.loc.T("confirm.reset"), confirmReset, 0)
	}
	return m, nil
}

func (m Model) adjustSetting(item menuItem, dir int) (tea.Model, tea.Cmd) {
	switch item {
	case itemVolume:
		v := math.Round((m.prefs.Volume+float64(dir)*volumeStep)*10) / 10
		v = math.Max(0, math.Min(1, v))
		if err := m.settings.SetVolume(v); err != nil {
			return m.fail(err), nil
		}
		m.prefs.Volume = v
	case itemLanguage:
		langs := types.Languages
		idx := 0
		for i, l := range langs {
			if l == m.prefs.Language {
				idx = i
			}
		}
		next := langs[(idx+dir+len(langs))%len(langs)]
		if err := m.settings.SetLanguage(next); err != nil {
			return m.fail(err), nil
		}
		m.prefs.Language = next
		m.loc = i18n.New(next)
	}
	return m, nil
}

func (m Model) viewSettings() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.loc.T("settings.title")))
	b.WriteString("\n\n")

	for i, item := range m.menuItems() {
		label, value := m.settingLine(item)
		cursor := "  "
		if i == m.menuCursor {
			cursor = "> "
			label = selectedStyle.Render(label)
		} else {
			label = textStyle.Render(label)
		}
		line := cursor + label
		if value != "" {
			line += "  " + subtitleStyle.Render(value)
		}
		b.WriteString(line)
		b.WriteString("\n")
		if item == itemReset {
			b.WriteString("    " + warnStyle.Render(m.loc.T("settings.reset.warning")) + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.loc.T("settings.help")))
	return modalStyle.Render(b.String())
}

func (m Model) settingLine(item menuItem) (string, string) {
	switch item {
	case itemAdmin:
		return m.loc.T("settings.admin"), m.onOff(m.prefs.Admin)
	case itemSound:
		return m.loc.T("settings.sound"), m.onOff(m.prefs.SoundEnabled)
	case itemVolume:
		return m.loc.T("settings.volume"), volumeBar(m.prefs.Volume)
	case itemLanguage:
		return m.loc.T("settings.language"), m.loc.T("language." + m.prefs.Language)
	case itemReset:
		return m.loc.T("settings.reset"), ""
	}
	return "", ""
}

func volumeBar(v float64) string {
	filled := int(math.Round(v * 10))
	return fmt.Sprintf("%s%s %3d%%", strings.Repeat("█", filled), strings.Repeat("░", 10-filled), int(math.Round(v*100)))
}
