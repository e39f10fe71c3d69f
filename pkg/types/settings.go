package types

import (
	"errors"
	"time"
)

// Supported UI languages, stored verbatim under KeyLanguage.
const (
	LanguageEnglish            = "en"
	LanguageTraditionalChinese = "zh-tw"
)

// Languages lists the supported UI languages in display order.
var Languages = []string{LanguageEnglish, LanguageTraditionalChinese}

// Settings holds the player's preferences.
type Settings struct {
	SoundEnabled bool    `json:"sound_enabled"`
	Volume       float64 `json:"volume"` // 0..1
	Language     string  `json:"language"`
	Admin        bool    `json:"admin"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() Settings {
	return Settings{
		SoundEnabled: true,
		Volume:       0.5,
		Language:     LanguageEnglish,
		Admin:        false,
	}
}

// Settings errors.
var (
	ErrInvalidVolume       = errors.New("volume must be between 0 and 1")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// PersonalBest is the best recorded run for a stage.
type PersonalBest struct {
	RunID      string    `json:"run_id"`
	Moves      int       `json:"moves"`
	Millis     int64     `json:"millis"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Elapsed returns the run duration.
func (p PersonalBest) Elapsed() time.Duration {
	return time.Duration(p.Millis) * time.Millisecond
}

// Beats reports whether p is strictly better than other: faster, or equally
// fast with fewer moves.
func (p PersonalBest) Beats(other PersonalBest) bool {
	if p.Millis != other.Millis {
		return p.Millis < other.Millis
	}
	return p.Moves < other.Moves
}
