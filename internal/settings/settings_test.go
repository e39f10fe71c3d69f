package settings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mesh-intelligence/puzzlequest/internal/kv"
	"github.com/mesh-intelligence/puzzlequest/internal/progress"
	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLoadDefaults(t *testing.T) {
	s, err := NewManager(kv.NewMemory()).Load()
	require.NoError(t, err)
	assert.Equal(t, types.DefaultSettings(), s)
}

func TestSettersPersist(t *testing.T) {
	mem := kv.NewMemory()
	m := NewManager(mem)

	require.NoError(t, m.SetSoundEnabled(false))
	require.NoError(t, m.SetVolume(0.8))
	require.NoError(t, m.SetLanguage("zh-TW"))
	require.NoError(t, m.SetAdmin(true))

	s, err := NewManager(mem).Load()
	require.NoError(t, err)
	assert.Equal(t, types.Settings{SoundEnabled: false, Volume: 0.8, Language: "zh-tw", Admin: true}, s)

	raw, err := mem.Get(types.KeyLanguage)
	require.NoError(t, err)
	assert.Equal(t, "zh-tw", string(raw), "language is stored as a bare tag")
}

func TestToggles(t *testing.T) {
	m := NewManager(kv.NewMemory())

	sound, err := m.ToggleSound()
	require.NoError(t, err)
	assert.False(t, sound)
	sound, err = m.ToggleSound()
	require.NoError(t, err)
	assert.True(t, sound)

	admin, err := m.ToggleAdmin()
	require.NoError(t, err)
	assert.True(t, admin)
}

func TestSetVolumeRange(t *testing.T) {
	m := NewManager(kv.NewMemory())
	assert.ErrorIs(t, m.SetVolume(-0.1), types.ErrInvalidVolume)
	assert.ErrorIs(t, m.SetVolume(1.5), types.ErrInvalidVolume)
	assert.NoError(t, m.SetVolume(0))
	assert.NoError(t, m.SetVolume(1))
}

func TestSetLanguageRejectsUnknown(t *testing.T) {
	m := NewManager(kv.NewMemory())
	assert.ErrorIs(t, m.SetLanguage("fr"), types.ErrUnsupportedLanguage)
}

func TestLoadIgnoresGarbage(t *testing.T) {
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(types.KeyVolume, []byte("loud")))
	require.NoError(t, mem.Set(types.KeySoundEnabled, []byte("maybe")))
	require.NoError(t, mem.Set(types.KeyLanguage, []byte("klingon")))

	s, err := NewManager(mem).Load()
	require.NoError(t, err)
	assert.Equal(t, types.DefaultSettings(), s)
}

func TestNormalizeLanguage(t *testing.T) {
	for in, want := range map[string]string{"en": "en", " EN ": "en", "zh_TW": "zh-tw", "zh-tw": "zh-tw"} {
		got, err := NormalizeLanguage(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

// seedProgress writes completion and best records for a few stages.
func seedProgress(t *testing.T, storage types.Storage) {
	t.Helper()
	tr := progress.NewTracker(storage)
	for _, id := range []int64{1001, 2001} {
		_, _, err := tr.Record(id, 4, time.Second)
		require.NoError(t, err)
	}
}

func TestResetProgress(t *testing.T) {
	mem := kv.NewMemory()
	seedProgress(t, mem)

	reloaded := make(chan struct{})
	m := NewManager(mem,
		WithReloadDelay(10*time.Millisecond),
		WithReload(func() { close(reloaded) }),
	)
	defer m.Close()
	require.NoError(t, m.SetAdmin(true))
	require.NoError(t, m.SetLanguage("zh-tw"))

	var prompts []string
	removed, ok, err := m.ResetProgress(types.ConfirmFunc(func(p string) bool {
		prompts = append(prompts, p)
		return true
	}))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 4, removed)
	require.Len(t, prompts, 1)

	select {
	case <-reloaded:
	case <-time.After(2 * time.Second):
		t.Fatal("reload callback did not run")
	}

	left, err := mem.Keys("")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{types.KeyAdmin, types.KeyLanguage}, left)
}

func TestResetProgressDeclined(t *testing.T) {
	mem := kv.NewMemory()
	seedProgress(t, mem)

	called := false
	m := NewManager(mem, WithReload(func() { called = true }))
	defer m.Close()
	require.NoError(t, m.SetAdmin(true))

	removed, ok, err := m.ResetProgress(types.ConfirmFunc(func(string) bool { return false }))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, removed)
	assert.False(t, called)

	keys, err := mem.Keys(types.PrefixPersonalBest)
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}

func TestResetProgressRequiresAdmin(t *testing.T) {
	m := NewManager(kv.NewMemory())
	_, _, err := m.ResetProgress(types.Preconfirmed)
	assert.ErrorIs(t, err, types.ErrAdminRequired)
}

func TestCloseCancelsPendingReload(t *testing.T) {
	mem := kv.NewMemory()
	fired := make(chan struct{}, 1)
	m := NewManager(mem,
		WithReloadDelay(time.Hour),
		WithReload(func() { fired <- struct{}{} }),
	)
	require.NoError(t, m.SetAdmin(true))

	_, ok, err := m.ResetProgress(types.Preconfirmed)
	require.NoError(t, err)
	require.True(t, ok)

	m.Close()
	select {
	case <-fired:
		t.Fatal("reload ran after Close")
	case <-time.After(20 * time.Millisecond):
	}
}
