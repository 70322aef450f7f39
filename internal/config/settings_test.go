package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_MissingFileReturnsDefaults(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettings_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	content := "[projection]\nhorizon = 40\n\n[log]\nlevel = \"debug\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 40, s.Projection.Horizon)
	assert.Equal(t, domain.DefaultBaseYear, s.Projection.BaseYear)
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, "console", s.Output.Format)
}

func TestLoadSettings_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("[projection\nhorizon = "), 0o600))

	_, err := LoadSettings(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing settings")
}

func TestSaveSettings_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.toml")
	want := DefaultSettings()
	want.Server.Address = "127.0.0.1:9090"
	want.Data.ActualsPath = "/data/actuals.csv"

	require.NoError(t, SaveSettings(want, path))
	got, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSettingsDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "fiscalsim"), SettingsDir())
	assert.Equal(t, filepath.Join("/tmp/xdg", "fiscalsim", "settings.toml"), SettingsPath())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("FISCALSIM_LOG_LEVEL", "warn")
	t.Setenv("FISCALSIM_ADDR", ":9999")
	t.Setenv("FISCALSIM_FORMAT", "json")
	t.Setenv("FISCALSIM_HORIZON", "12")

	s := DefaultSettings()
	require.NoError(t, s.ApplyEnv())
	assert.Equal(t, "warn", s.Log.Level)
	assert.Equal(t, ":9999", s.Server.Address)
	assert.Equal(t, "json", s.Output.Format)
	assert.Equal(t, 12, s.ProjectionSettings().Horizon)

	t.Setenv("FISCALSIM_HORIZON", "twelve")
	assert.Error(t, s.ApplyEnv())
}

func TestServerTimeouts(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 10*time.Second, s.ReadTimeout())
	assert.Equal(t, 10*time.Second, s.WriteTimeout())
}
