package types

import (
	"errors"
	"time"
)

// Config holds backend selection and parameters for Backend.Attach and the
// collaborators wired around it.
type Config struct {
	Backend     string        `json:"backend" yaml:"backend"`
	DataDir     string        `json:"data_dir" yaml:"data_dir"`
	AssetBase   string        `json:"asset_base" yaml:"asset_base"`
	ReloadDelay time.Duration `json:"reload_delay" yaml:"reload_delay"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Defaults applied when a config value is empty.
const (
	DefaultAssetBase   = "/"
	DefaultReloadDelay = 300 * time.Millisecond
)

// Config validation errors.
var (
	ErrBackendEmpty       = errors.New("backend must not be empty")
	ErrBackendUnknown     = errors.New("unknown backend")
	ErrReloadDelayInvalid = errors.New("reload delay must not be negative")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
	BackendMemory: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.ReloadDelay < 0 {
		return ErrReloadDelayInvalid
	}
	return nil
}
