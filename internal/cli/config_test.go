package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

func TestLoadConfigWritesDefaultFile(t *testing.T) {
	t.Setenv("PUZZLEQUEST_BACKEND", "")
	dir := filepath.Join(t.TempDir(), "cfg")

	v, err := loadConfig(dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, configFileExt))
	require.NoError(t, err)
	assert.Equal(t, defaultConfigYAML, string(data))

	config, err := configFromViper(v, filepath.Join(dir, "data"))
	require.NoError(t, err)
	assert.Equal(t, types.BackendSQLite, config.Backend)
	assert.Equal(t, "/", config.AssetBase)
	assert.Equal(t, 300*time.Millisecond, config.ReloadDelay)
	assert.Equal(t, filepath.Join(dir, "data"), config.DataDir)
}

func TestLoadConfigKeepsExistingFile(t *testing.T) {
	t.Setenv("PUZZLEQUEST_BACKEND", "")
	dir := t.TempDir()
	custom := "backend: memory\nasset_base: https://cdn.example.com/\nreload_delay: 1s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte(custom), 0o644))

	v, err := loadConfig(dir)
	require.NoError(t, err)
	config, err := configFromViper(v, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, types.BackendMemory, config.Backend)
	assert.Equal(t, "https://cdn.example.com/", config.AssetBase)
	assert.Equal(t, time.Second, config.ReloadDelay)
}

func TestEnvOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PUZZLEQUEST_BACKEND", "memory")

	v, err := loadConfig(dir)
	require.NoError(t, err)
	config, err := configFromViper(v, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, types.BackendMemory, config.Backend)
}

func TestConfigRejectsUnknownBackend(t *testing.T) {
	t.Setenv("PUZZLEQUEST_BACKEND", "")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte("backend: postgres\n"), 0o644))

	v, err := loadConfig(dir)
	require.NoError(t, err)
	_, err = configFromViper(v, t.TempDir())
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}

func TestParseYes(t *testing.T) {
	for in, want := range map[string]bool{"y\n": true, " YES ": true, "n": false, "": false, "yep": false} {
		assert.Equal(t, want, parseYes(in), "%q", in)
	}
}

func TestParseOnOff(t *testing.T) {
	for _, in := range []string{"on", "TRUE", "1", "enabled"} {
		v, err := parseOnOff(in)
		require.NoError(t, err, in)
		assert.True(t, v, in)
	}
	for _, in := range []string{"off", "no", "0"} {
		v, err := parseOnOff(in)
		require.NoError(t, err, in)
		assert.False(t, v, in)
	}
	_, err := parseOnOff("sometimes")
	assert.Error(t, err)
}
