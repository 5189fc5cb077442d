package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/keyring"
)

// isolate points HOME and the working directory at a temp dir and clears
// the HABITUAL_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{constants.EnvConfig, constants.EnvStorage, constants.EnvTimezone, constants.EnvDebug} {
		t.Setenv(key, "")
	}
	t.Chdir(home)
	return home
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(Overrides{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".config", "habitual", "habitual.db"), cfg.Storage)
	assert.Equal(t, filepath.Join(home, ".config", "habitual"), cfg.ConfigDir)
	assert.Equal(t, filepath.Join(home, ".config", "habitual", "config.yaml"), cfg.ConfigFile)
	assert.Equal(t, constants.DefaultTimezone, cfg.Timezone)
	assert.False(t, cfg.Debug)
	assert.True(t, cfg.BackupsEnabled)
	assert.NotNil(t, cfg.Location())
	assert.Equal(t, filepath.Join(home, ".config", "habitual", "backups"), cfg.BackupDir())
}

func TestLoadPrecedence(t *testing.T) {
	home := isolate(t)
	writeConfig(t, filepath.Join(home, ".config", "habitual", "config.yaml"), `
storage: ~/habits/file.json
timezone: UTC
debug: true
backups:
  enabled: false
`)

	cfg, err := Load(Overrides{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "habits", "file.json"), cfg.Storage)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.True(t, cfg.Debug)
	assert.False(t, cfg.BackupsEnabled)

	t.Setenv(constants.EnvStorage, "redis://localhost:6379/0")
	t.Setenv(constants.EnvDebug, "false")
	cfg, err = Load(Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Storage)
	assert.False(t, cfg.Debug)

	cfg, err = Load(Overrides{Storage: "/tmp/flag.db", Timezone: "Local", Debug: true})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/flag.db", cfg.Storage)
	assert.Equal(t, "Local", cfg.Timezone)
	assert.True(t, cfg.Debug)
}

func TestLoadConfigFileOverride(t *testing.T) {
	home := isolate(t)
	custom := filepath.Join(home, "elsewhere.yaml")
	writeConfig(t, custom, "timezone: UTC\n")

	t.Setenv(constants.EnvConfig, custom)
	cfg, err := Load(Overrides{})
	require.NoError(t, err)
	assert.Equal(t, custom, cfg.ConfigFile)
	assert.Equal(t, "UTC", cfg.Timezone)
}

func TestLoadDotEnv(t *testing.T) {
	home := isolate(t)
	os.Unsetenv(constants.EnvTimezone)
	writeConfig(t, filepath.Join(home, ".env"), constants.EnvTimezone+"=UTC\n")
	t.Cleanup(func() { os.Unsetenv(constants.EnvTimezone) })

	cfg, err := Load(Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "UTC", cfg.Timezone)
}

func TestLoadErrors(t *testing.T) {
	home := isolate(t)

	writeConfig(t, filepath.Join(home, ".config", "habitual", "config.yaml"), "storage: [unclosed\n")
	_, err := Load(Overrides{})
	assert.Error(t, err)

	_, err = Load(Overrides{ConfigFile: filepath.Join(home, "none.yaml"), Timezone: "Mars/Olympus"})
	assert.Error(t, err)
}

func TestLoadKeyringStorage(t *testing.T) {
	isolate(t)
	gokeyring.MockInit()
	_ = keyring.DeleteStorageTarget()

	_, err := Load(Overrides{Storage: "keyring"})
	assert.Error(t, err)

	require.NoError(t, keyring.SetStorageTarget("postgres://habits@localhost/habitual"))
	cfg, err := Load(Overrides{Storage: "keyring"})
	require.NoError(t, err)
	assert.Equal(t, "postgres://habits@localhost/habitual", cfg.Storage)
	assert.True(t, cfg.FromKeyring)
}

func TestWriteDefault(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "cfg", "config.yaml")

	written, err := WriteDefault(path)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = WriteDefault(path)
	require.NoError(t, err)
	assert.False(t, written)

	cfg, err := Load(Overrides{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "habitual", "habitual.db"), cfg.Storage)
	assert.True(t, cfg.BackupsEnabled)
}

func TestExpandHome(t *testing.T) {
	home := isolate(t)

	tests := []struct {
		in   string
		want string
	}{
		{"~/x/y.db", filepath.Join(home, "x", "y.db")},
		{"~", home},
		{"/abs/path.db", "/abs/path.db"},
		{"relative.db", "relative.db"},
		{"~other/file", "~other/file"},
	}
	for _, tt := range tests {
		got, err := ExpandHome(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
