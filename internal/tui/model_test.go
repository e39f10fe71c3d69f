package tui

import (
	"math/rand"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/puzzlequest/internal/kv"
	"github.com/mesh-intelligence/puzzlequest/internal/progress"
	"github.com/mesh-intelligence/puzzlequest/internal/screen"
	"github.com/mesh-intelligence/puzzlequest/internal/settings"
	"github.com/mesh-intelligence/puzzlequest/internal/stages"
	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

// countingStorage records how often each key is written.
type countingStorage struct {
	*kv.Memory
	writes map[string]int
}

func (c *countingStorage) Set(key string, value []byte) error {
	c.writes[key]++
	return c.Memory.Set(key, value)
}

type fixture struct {
	storage  *countingStorage
	settings *settings.Manager
	clock    time.Time
}

func newFixture(t *testing.T) (*fixture, Model) {
	t.Helper()
	f := &fixture{
		storage: &countingStorage{Memory: kv.NewMemory(), writes: map[string]int{}},
		clock:   time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	f.settings = settings.NewManager(f.storage)
	t.Cleanup(f.settings.Close)
	return f, f.model(t)
}

func (f *fixture) now() time.Time { return f.clock }

func (f *fixture) model(t *testing.T) Model {
	t.Helper()
	editor, err := stages.OpenEditor(stages.NewStore(f.storage), stages.WithClock(f.now))
	require.NoError(t, err)
	m, err := New(Deps{
		Editor:   editor,
		Settings: f.settings,
		Progress: progress.NewTracker(f.storage, progress.WithClock(f.now)),
		Rand:     rand.New(rand.NewSource(1)),
		Now:      f.now,
	})
	require.NoError(t, err)
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func apply(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return got
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = keyRunes(k)
		}
		m = apply(t, m, msg)
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = apply(t, m, keyRunes(string(r)))
	}
	return m
}

func TestHomeToMapAndBack(t *testing.T) {
	_, m := newFixture(t)
	assert.Equal(t, screen.Home, m.Screen())
	assert.Contains(t, m.View(), "PUZZLE QUEST")

	m = press(t, m, "right", "enter")
	assert.Equal(t, screen.Map, m.Screen())
	assert.Equal(t, types.ModeHard, m.ctrl.Mode())
	assert.Contains(t, m.View(), "Autumn")

	m = press(t, m, "m")
	assert.Equal(t, types.ModeEasy, m.ctrl.Mode())
	assert.Contains(t, m.View(), "Fire")

	m = press(t, m, "esc")
	assert.Equal(t, screen.Home, m.Screen())
}

func TestQuitFromHome(t *testing.T) {
	_, m := newFixture(t)
	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

// solve swaps each home index into place the way a player would.
func solve(t *testing.T, m Model) Model {
	t.Helper()
	size := m.game.board.Size()
	moveTo := func(m Model, pos int) Model {
		for m.game.cursor/size > pos/size {
			m = press(t, m, "up")
		}
		for m.game.cursor/size < pos/size {
			m = press(t, m, "down")
		}
		for m.game.cursor%size > pos%size {
			m = press(t, m, "left")
		}
		for m.game.cursor%size < pos%size {
			m = press(t, m, "right")
		}
		return m
	}
	for pos := 0; pos < m.game.board.Len() && !m.game.solved; pos++ {
		tile, err := m.game.board.Tile(pos)
		require.NoError(t, err)
		if tile == pos {
			continue
		}
		for j := pos + 1; j < m.game.board.Len(); j++ {
			tile, err := m.game.board.Tile(j)
			require.NoError(t, err)
			if tile == pos {
				m = moveTo(m, pos)
				m = press(t, m, "space")
				m = moveTo(m, j)
				m = press(t, m, "space")
				break
			}
		}
	}
	return m
}

func TestPlayStageRecordsProgress(t *testing.T) {
	f, m := newFixture(t)
	m = press(t, m, "enter", "enter")
	require.Equal(t, screen.Game, m.Screen())
	stage := m.ctrl.Stage()
	require.NotNil(t, stage)
	assert.Equal(t, int64(1001), stage.ID)
	assert.Equal(t, 2, m.game.board.Size())

	f.clock = f.clock.Add(12 * time.Second)
	m = solve(t, m)
	require.True(t, m.game.solved)
	assert.True(t, m.game.newBest)
	assert.Contains(t, m.View(), "New personal best!")

	done, err := m.progress.Completed(1001)
	require.NoError(t, err)
	assert.True(t, done)
	best, ok, err := m.progress.Best(1001)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 12*time.Second, best.Elapsed())
	assert.Equal(t, 1, f.storage.writes["completed-1001"], "a solve marks the stage once")

	m = press(t, m, "enter")
	assert.Equal(t, screen.Map, m.Screen())
	assert.Nil(t, m.ctrl.Stage())
	assert.Contains(t, m.View(), "✓")
}

func TestLeaveGameWithoutSolving(t *testing.T) {
	_, m := newFixture(t)
	m = press(t, m, "enter", "enter", "esc")
	assert.Equal(t, screen.Map, m.Screen())
	assert.Nil(t, m.game)

	done, err := m.progress.Completed(1001)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestAdminKeysIgnoredWhenNotAdmin(t *testing.T) {
	_, m := newFixture(t)
	m = press(t, m, "enter", "a")
	assert.Equal(t, overlayNone, m.overlay)
	m = press(t, m, "d")
	assert.Equal(t, overlayNone, m.overlay)
	assert.Len(t, m.editor.Catalog(), 24)
}

func TestSettingsToggleAdminAndAddStage(t *testing.T) {
	f, m := newFixture(t)
	m = press(t, m, "s")
	require.Equal(t, overlaySettings, m.overlay)
	m = press(t, m, "enter")
	assert.True(t, m.prefs.Admin)
	assert.True(t, m.editor.Admin())
	m = press(t, m, "esc")

	// Map in hard mode, then add an easy stage from there.
	m = press(t, m, "right", "enter")
	require.Len(t, m.visibleStages(), 12)
	m = press(t, m, "a")
	require.Equal(t, overlayAdd, m.overlay)
	assert.Equal(t, types.ModeHard, m.form.mode)

	m = typeText(t, m, "Test")
	m = press(t, m, "tab")
	m = typeText(t, m, "puzzles/easy/test.jpg")
	m = press(t, m, "tab", "space")
	assert.Equal(t, types.ModeEasy, m.form.mode)
	m = press(t, m, "enter")

	assert.Equal(t, overlayNone, m.overlay)
	catalog := m.editor.Catalog()
	require.Len(t, catalog, 25)
	assert.Len(t, stages.Filter(catalog, types.ModeEasy), 13)
	added := catalog[24]
	assert.Equal(t, "Test", added.Name)
	assert.Equal(t, f.clock.UnixMilli(), added.ID)
}

func TestAddFormValidationError(t *testing.T) {
	f, m := newFixture(t)
	require.NoError(t, f.settings.SetAdmin(true))
	m = f.model(t)

	m = press(t, m, "enter", "a", "enter")
	assert.Equal(t, overlayAdd, m.overlay, "form stays open on error")
	assert.True(t, m.statusErr)
	assert.Len(t, m.editor.Catalog(), 24)
}

func TestDeleteStageNeedsConfirmation(t *testing.T) {
	f, m := newFixture(t)
	require.NoError(t, f.settings.SetAdmin(true))
	m = f.model(t)

	m = press(t, m, "enter", "d")
	require.Equal(t, overlayConfirm, m.overlay)
	assert.Contains(t, m.View(), "Fire")

	m = press(t, m, "n")
	assert.Equal(t, overlayNone, m.overlay)
	assert.Len(t, m.editor.Catalog(), 24)

	m = press(t, m, "d", "y")
	assert.Len(t, m.editor.Catalog(), 23)
	assert.Equal(t, -1, m.editor.Catalog().Index(1001))
}

func TestSettingsVolumeAndLanguage(t *testing.T) {
	f, m := newFixture(t)
	m = press(t, m, "s", "down", "down", "right", "right")
	assert.InDelta(t, 0.7, m.prefs.Volume, 1e-9)

	m = press(t, m, "down", "enter")
	assert.Equal(t, types.LanguageTraditionalChinese, m.prefs.Language)
	assert.Contains(t, m.View(), "設定")

	stored, err := f.settings.Load()
	require.NoError(t, err)
	assert.InDelta(t, 0.7, stored.Volume, 1e-9)
	assert.Equal(t, types.LanguageTraditionalChinese, stored.Language)
}

func TestResetProgressAndReload(t *testing.T) {
	f, m := newFixture(t)
	tracker := progress.NewTracker(f.storage)
	require.NoError(t, tracker.MarkCompleted(1001))
	require.NoError(t, f.settings.SetAdmin(true))
	m = f.model(t)

	m = press(t, m, "enter")
	m = press(t, m, "s")
	require.Len(t, m.menuItems(), 5)
	m = press(t, m, "up", "enter")
	require.Equal(t, overlayConfirm, m.overlay)
	m = press(t, m, "y")
	assert.Equal(t, overlayNone, m.overlay)

	done, err := tracker.Completed(1001)
	require.NoError(t, err)
	assert.False(t, done)

	m = apply(t, m, ReloadMsg{})
	assert.Equal(t, screen.Home, m.Screen())
}
