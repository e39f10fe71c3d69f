// Package paths resolves where puzzlequest keeps its config file and its
// save data. Each directory resolves flag first, then environment, then the
// platform default.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user directories.
const AppName = "puzzlequest"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "PUZZLEQUEST_CONFIG_DIR"
	EnvDataDir   = "PUZZLEQUEST_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/puzzlequest (fallback ~/.config/puzzlequest)
// macOS:   ~/Library/Application Support/puzzlequest
// Windows: %APPDATA%/puzzlequest
func DefaultConfigDir() (string, error) {
	return platformDefault("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-specific save data directory.
//
// Linux:   $XDG_DATA_HOME/puzzlequest (fallback ~/.local/share/puzzlequest)
// macOS and Windows share the config directory.
func DefaultDataDir() (string, error) {
	return platformDefault("XDG_DATA_HOME", ".local", "share")
}

func platformDefault(xdgVar string, homeRel ...string) (string, error) {
	if platformDir.goos != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, homeRel...)
	return filepath.Join(append(parts, AppName)...), nil
}

// ResolveConfigDir returns the configuration directory: flag, then
// PUZZLEQUEST_CONFIG_DIR, then DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	return resolve(DefaultConfigDir, flag, os.Getenv(EnvConfigDir))
}

// ResolveDataDir returns the data directory: flag, then the config file's
// data_dir, then PUZZLEQUEST_DATA_DIR, then DefaultDataDir.
func ResolveDataDir(flag, configValue string) (string, error) {
	return resolve(DefaultDataDir, flag, configValue, os.Getenv(EnvDataDir))
}

func resolve(fallback func() (string, error), candidates ...string) (string, error) {
	for _, c := range candidates {
		if c != "" {
			return filepath.Abs(c)
		}
	}
	return fallback()
}
