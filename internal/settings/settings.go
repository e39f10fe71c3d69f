// Package settings persists player preferences and runs the admin progress
// reset with its deferred reload.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/puzzlequest/internal/progress"
	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

// resetPrompt is shown before progress is wiped.
const resetPrompt = "Reset all progress? This permanently deletes all completed stages and personal best times."

// Manager reads and writes settings through the storage port. Each setter
// persists immediately.
type Manager struct {
	storage     types.Storage
	logger      *zap.Logger
	reloadDelay time.Duration
	onReload    func()

	mu    sync.Mutex
	timer *time.Timer
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the manager logger.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithReloadDelay sets how long ResetProgress waits before reloading.
func WithReloadDelay(d time.Duration) Option {
	return func(m *Manager) { m.reloadDelay = d }
}

// WithReload sets the callback run after a progress reset.
func WithReload(fn func()) Option {
	return func(m *Manager) { m.onReload = fn }
}

// NewManager returns a Manager over storage.
func NewManager(storage types.Storage, opts ...Option) *Manager {
	m := &Manager{
		storage:     storage,
		logger:      zap.NewNop(),
		reloadDelay: types.DefaultReloadDelay,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load returns the stored settings. Missing or unparseable values fall back
// to their defaults.
func (m *Manager) Load() (types.Settings, error) {
	s := types.DefaultSettings()

	if v, ok, err := m.get(types.KeySoundEnabled); err != nil {
		return s, err
	} else if ok {
		if b, perr := strconv.ParseBool(v); perr == nil {
			s.SoundEnabled = b
		} else {
			m.logger.Warn("ignoring stored sound setting", zap.String("value", v))
		}
	}

	if v, ok, err := m.get(types.KeyVolume); err != nil {
		return s, err
	} else if ok {
		if f, perr := strconv.ParseFloat(v, 64); perr == nil && f >= 0 && f <= 1 {
			s.Volume = f
		} else {
			m.logger.Warn("ignoring stored volume", zap.String("value", v))
		}
	}

	if v, ok, err := m.get(types.KeyLanguage); err != nil {
		return s, err
	} else if ok {
		if lang, perr := NormalizeLanguage(v); perr == nil {
			s.Language = lang
		} else {
			m.logger.Warn("ignoring stored language", zap.String("value", v))
		}
	}

	if v, ok, err := m.get(types.KeyAdmin); err != nil {
		return s, err
	} else if ok {
		s.Admin = v == "true"
	}

	return s, nil
}

// SetSoundEnabled turns sound effects on or off.
func (m *Manager) SetSoundEnabled(enabled bool) error {
	return m.set(types.KeySoundEnabled, strconv.FormatBool(enabled))
}

// ToggleSound flips the sound setting and returns the new value.
func (m *Manager) ToggleSound() (bool, error) {
	s, err := m.Load()
	if err != nil {
		return false, err
	}
	next := !s.SoundEnabled
	return next, m.SetSoundEnabled(next)
}

// SetVolume stores the volume, a fraction between 0 and 1.
func (m *Manager) SetVolume(v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%w: %g", types.ErrInvalidVolume, v)
	}
	return m.set(types.KeyVolume, strconv.FormatFloat(v, 'f', -1, 64))
}

// SetLanguage stores the UI language. Accepts any casing of a supported tag.
func (m *Manager) SetLanguage(lang string) error {
	normalized, err := NormalizeLanguage(lang)
	if err != nil {
		return err
	}
	return m.set(types.KeyLanguage, normalized)
}

// SetAdmin turns admin mode on or off.
func (m *Manager) SetAdmin(admin bool) error {
	return m.set(types.KeyAdmin, strconv.FormatBool(admin))
}

// ToggleAdmin flips admin mode and returns the new value.
func (m *Manager) ToggleAdmin() (bool, error) {
	s, err := m.Load()
	if err != nil {
		return false, err
	}
	next := !s.Admin
	return next, m.SetAdmin(next)
}

// ResetProgress deletes every completion and personal best record once c
// confirms, then schedules the reload callback. Requires admin mode. Returns
// the number of records removed and whether the reset ran.
func (m *Manager) ResetProgress(c types.Confirmer) (int, bool, error) {
	s, err := m.Load()
	if err != nil {
		return 0, false, err
	}
	if !s.Admin {
		return 0, false, types.ErrAdminRequired
	}
	if !c.Confirm(resetPrompt) {
		return 0, false, nil
	}

	removed, err := progress.NewTracker(m.storage, progress.WithLogger(m.logger)).Reset()
	if err != nil {
		return removed, false, err
	}
	m.scheduleReload()
	return removed, true, nil
}

// Close cancels a pending reload.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *Manager) scheduleReload() {
	if m.onReload == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(m.reloadDelay, func() {
		m.mu.Lock()
		m.timer = nil
		m.mu.Unlock()
		m.logger.Debug("reloading after progress reset")
		m.onReload()
	})
}

func (m *Manager) get(key string) (string, bool, error) {
	v, err := m.storage.Get(key)
	if errors.Is(err, types.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(v), true, nil
}

func (m *Manager) set(key, value string) error {
	if err := m.storage.Set(key, []byte(value)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	m.logger.Debug("setting changed", zap.String("key", key), zap.String("value", value))
	return nil
}

// NormalizeLanguage maps lang onto a supported language tag.
func NormalizeLanguage(lang string) (string, error) {
	l := strings.ToLower(strings.TrimSpace(lang))
	l = strings.ReplaceAll(l, "_", "-")
	for _, supported := range types.Languages {
		if l == supported {
			return supported, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid: %s)", types.ErrUnsupportedLanguage, lang, strings.Join(types.Languages, ", "))
}
