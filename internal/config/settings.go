package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
)

const appName = "fiscalsim"

// Settings holds application preferences kept in settings.toml.
type Settings struct {
	Projection ProjectionPrefs `toml:"projection"`
	Output     OutputPrefs     `toml:"output"`
	Server     ServerPrefs     `toml:"server"`
	Log        LogPrefs        `toml:"log"`
	Data       DataPrefs       `toml:"data"`
}

// ProjectionPrefs sets the default projection window.
type ProjectionPrefs struct {
	BaseYear int `toml:"base_year"`
	Horizon  int `toml:"horizon"`
}

// OutputPrefs holds report output defaults.
type OutputPrefs struct {
	Format    string `toml:"format"`
	Directory string `toml:"directory,omitempty"`
}

// ServerPrefs holds HTTP server settings.
type ServerPrefs struct {
	Address             string `toml:"address"`
	ReadTimeoutSeconds  int    `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `toml:"write_timeout_seconds"`
}

// LogPrefs holds logging settings.
type LogPrefs struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
}

// DataPrefs points at an actual-data CSV. Empty uses the bundled dataset.
type DataPrefs struct {
	ActualsPath string `toml:"actuals_path,omitempty"`
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		Projection: ProjectionPrefs{BaseYear: domain.DefaultBaseYear, Horizon: domain.DefaultHorizon},
		Output:     OutputPrefs{Format: "console"},
		Server:     ServerPrefs{Address: ":8080", ReadTimeoutSeconds: 10, WriteTimeoutSeconds: 10},
		Log:        LogPrefs{Level: "info", Format: "text"},
	}
}

// ProjectionSettings converts the preferences to engine settings.
func (s Settings) ProjectionSettings() domain.ProjectionSettings {
	return domain.ProjectionSettings{BaseYear: s.Projection.BaseYear, Horizon: s.Projection.Horizon}.WithDefaults()
}

// ReadTimeout returns the server read timeout.
func (s Settings) ReadTimeout() time.Duration {
	return time.Duration(s.Server.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the server write timeout.
func (s Settings) WriteTimeout() time.Duration {
	return time.Duration(s.Server.WriteTimeoutSeconds) * time.Second
}

// SettingsDir returns the XDG-compliant settings directory.
func SettingsDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// SettingsPath returns the default settings file path.
func SettingsPath() string {
	return filepath.Join(SettingsDir(), "settings.toml")
}

// LoadSettings reads a settings file, returning defaults if it doesn't exist.
// An empty path reads SettingsPath.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		path = SettingsPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading settings: %w", err)
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing settings: %w", err)
	}
	return s, nil
}

// SaveSettings writes settings to path, or SettingsPath when path is empty.
func SaveSettings(s Settings, path string) error {
	if path == "" {
		path = SettingsPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating settings file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(s)
}

// ApplyEnv overrides settings from FISCALSIM_* environment variables.
func (s *Settings) ApplyEnv() error {
	if v := getEnv("FISCALSIM_LOG_LEVEL"); v != "" {
		s.Log.Level = v
	}
	if v := getEnv("FISCALSIM_ADDR"); v != "" {
		s.Server.Address = v
	}
	if v := getEnv("FISCALSIM_OUTPUT_DIR"); v != "" {
		s.Output.Directory = v
	}
	if v := getEnv("FISCALSIM_ACTUALS"); v != "" {
		s.Data.ActualsPath = v
	}
	if v := getEnv("FISCALSIM_FORMAT"); v != "" {
		s.Output.Format = v
	}
	if v := getEnv("FISCALSIM_HORIZON"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FISCALSIM_HORIZON: %w", err)
		}
		s.Projection.Horizon = n
	}
	return nil
}

func getEnv(key string) string {
	v, _ := os.LookupEnv(key)
	return v
}
