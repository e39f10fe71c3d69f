package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/puzzlequest/internal/paths"
	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "PUZZLEQUEST"

	cfgKeyBackend     = "backend"
	cfgKeyDataDir     = "data_dir"
	cfgKeyAssetBase   = "asset_base"
	cfgKeyReloadDelay = "reload_delay"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# PuzzleQuest configuration

# Storage backend: sqlite (saved to data_dir) or memory (discarded on exit)
backend: sqlite

# Save data directory (optional; overridable by --data-dir)
# data_dir:

# Prefix for relative stage image paths
asset_base: /

# Delay before the game reloads after a progress reset
reload_delay: 300ms
`

// loadConfig reads config.yaml from configDir, creating the directory and a
// default file on first run. PUZZLEQUEST_* environment variables override
// file values.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyAssetBase, types.DefaultAssetBase)
	v.SetDefault(cfgKeyReloadDelay, types.DefaultReloadDelay)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// configFromViper builds the storage config. The data directory resolves
// flag, then config file, then environment, then platform default.
func configFromViper(v *viper.Viper, dataDirFlag string) (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(dataDirFlag, v.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	config := types.Config{
		Backend:     strings.ToLower(strings.TrimSpace(v.GetString(cfgKeyBackend))),
		DataDir:     dataDir,
		AssetBase:   v.GetString(cfgKeyAssetBase),
		ReloadDelay: v.GetDuration(cfgKeyReloadDelay),
	}
	if err := config.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("config %s: %w", configFileExt, err)
	}
	return config, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile writes the default config.yaml unless one exists.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
