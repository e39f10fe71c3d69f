// Package tui is the terminal front end: a bubbletea program that walks the
// player from the home screen through the stage map into a puzzle, with
// settings and admin editing as overlays.
package tui

import (
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/puzzlequest/internal/i18n"
	"github.com/mesh-intelligence/puzzlequest/internal/progress"
	"github.com/mesh-intelligence/puzzlequest/internal/puzzle"
	"github.com/mesh-intelligence/puzzlequest/internal/screen"
	"github.com/mesh-intelligence/puzzlequest/internal/settings"
	"github.com/mesh-intelligence/puzzlequest/internal/stages"
	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

type overlay string

const (
	overlayNone     overlay = ""
	overlaySettings overlay = "settings"
	overlayAdd      overlay = "add"
	overlayConfirm  overlay = "confirm"
)

// ReloadMsg asks the model to re-read everything from storage and return to
// the home screen. Sent after a progress reset.
type ReloadMsg struct{}

// Deps are the collaborators the model drives.
type Deps struct {
	Editor   *stages.Editor
	Settings *settings.Manager
	Progress *progress.Tracker
	Logger   *zap.Logger
	Rand     *rand.Rand
	Now      func() time.Time
}

// Model is the root bubbletea model.
type Model struct {
	keys     keyMap
	ctrl     *screen.Controller
	editor   *stages.Editor
	settings *settings.Manager
	progress *progress.Tracker
	logger   *zap.Logger
	rng      *rand.Rand
	now      func() time.Time

	prefs types.Settings
	loc   *i18n.Localizer

	overlay    overlay
	homeCursor int
	mapCursor  int
	menuCursor int

	game    *gameState
	form    addForm
	confirm confirmState

	status    string
	statusErr bool
	width     int
	height    int
}

// New builds the model and loads the stored settings.
func New(d Deps) (Model, error) {
	m := Model{
		keys:     newKeyMap(),
		ctrl:     screen.New(),
		editor:   d.Editor,
		settings: d.Settings,
		progress: d.Progress,
		logger:   d.Logger,
		rng:      d.Rand,
		now:      d.Now,
		form:     newAddForm(),
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if m.now == nil {
		m.now = time.Now
	}
	if err := m.loadPrefs(); err != nil {
		return m, err
	}
	return m, nil
}

func (m *Model) loadPrefs() error {
	prefs, err := m.settings.Load()
	if err != nil {
		return err
	}
	m.prefs = prefs
	m.loc = i18n.New(prefs.Language)
	m.editor.SetAdmin(prefs.Admin)
	return nil
}

// Screen returns the current screen.
func (m Model) Screen() screen.Screen { return m.ctrl.Screen() }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case ReloadMsg:
		return m.reload(), nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.overlay {
		case overlayConfirm:
			return m.updateConfirm(msg)
		case overlayAdd:
			return m.updateAddForm(msg)
		case overlaySettings:
			return m.updateSettings(msg)
		}
		switch m.ctrl.Screen() {
		case screen.Home:
			return m.updateHome(msg)
		case screen.Map:
			return m.updateMap(msg)
		case screen.Game:
			return m.updateGame(msg)
		}
	}
	if m.overlay == overlayAdd {
		return m.updateAddForm(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.overlay {
	case overlaySettings:
		body = m.viewSettings()
	case overlayAdd:
		body = m.viewAddForm()
	case overlayConfirm:
		body = m.viewConfirm()
	default:
		switch m.ctrl.Screen() {
		case screen.Home:
			body = m.viewHome()
		case screen.Map:
			body = m.viewMap()
		case screen.Game:
			body = m.viewGame()
		}
	}
	if m.status != "" {
		style := successStyle
		if m.statusErr {
			style = errorStyle
		}
		body += "\n\n" + style.Render(m.status)
	}
	return body
}

func (m Model) reload() Model {
	if err := m.editor.Reload(); err != nil {
		return m.fail(err)
	}
	if err := m.loadPrefs(); err != nil {
		return m.fail(err)
	}
	m.ctrl = screen.New()
	m.overlay = overlayNone
	m.game = nil
	m.mapCursor = 0
	m.menuCursor = 0
	m.clearStatus()
	m.logger.Debug("state reloaded from storage")
	return m
}

func (m Model) fail(err error) Model {
	m.logger.Warn("action failed", zap.Error(err))
	m.status = m.loc.T("error.prefix", err.Error())
	m.statusErr = true
	return m
}

func (m Model) notify(text string) Model {
	m.status = text
	m.statusErr = false
	return m
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

func (m Model) modeLabel(mode types.Mode) string {
	return m.loc.T("mode." + string(mode))
}

func (m Model) onOff(v bool) string {
	if v {
		return m.loc.T("common.on")
	}
	return m.loc.T("common.off")
}

// newBoard deals a fresh board for mode.
func (m Model) newBoard(mode types.Mode) (*puzzle.Board, error) {
	return puzzle.New(mode, m.rng)
}
