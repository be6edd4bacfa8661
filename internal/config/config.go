// Package config loads the linemix configuration from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/tmercier/linemix/internal/ui"
)

// Config holds the configuration for linemix.
type Config struct {
	// DatabasePath specifies the path to the SQLite database file.
	DatabasePath string `toml:"database_path"`
	// DefaultUI specifies the default user interface to use
	// ("terminal", "fuzzy" or "rofi").
	// This can be overridden by the --ui command-line flag.
	DefaultUI string `toml:"default_ui"`
	// Editor is the command used to compose template bodies and source
	// contents. Falls back to VISUAL/EDITOR when empty.
	Editor string `toml:"editor"`
	// SourcePrefix restricts which stored sources are visible to template
	// expansion. Only sources under this prefix resolve placeholders, with
	// the prefix stripped from the placeholder name. Empty means all sources.
	SourcePrefix string `toml:"source_prefix"`
	// Rofi holds configuration specific to the Rofi user interface.
	// These settings are only active if DefaultUI is "rofi" or if Rofi is
	// selected via the --ui flag.
	Rofi ui.RofiConfig `toml:"rofi"`
}

const (
	defaultConfigFileName   = "config.toml"
	defaultDatabaseFileName = "linemix.db"
)

// DefaultConfigDir returns (creating if needed) the linemix directory under
// the user's config directory.
func DefaultConfigDir() (string, error) {
	userConfigPath, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("unable to retrieve user config path: %w", err)
	}

	configDirPath := filepath.Join(userConfigPath, "linemix")

	if _, err := os.Stat(configDirPath); os.IsNotExist(err) {
		if err := os.MkdirAll(configDirPath, 0750); err != nil {
			return "", fmt.Errorf("failed to create config directory %s: %w", configDirPath, err)
		}
	}

	return configDirPath, nil
}

// validUI reports whether name is a known user interface.
func validUI(name string) bool {
	switch name {
	case "terminal", "fuzzy", "rofi":
		return true
	}
	return false
}

// LoadConfigFromFile loads the configuration from config.toml in configDir.
// If the file doesn't exist, it is created with commented defaults. Missing
// or invalid fields fall back to their defaults.
func LoadConfigFromFile(configDir string) (Config, error) {
	configFilePath := filepath.Join(configDir, defaultConfigFileName)

	defaultRofiConfig := ui.RofiConfig{
		Path:       "rofi",
		Theme:      "",
		SelectArgs: []string{},
	}

	defaultConfig := Config{
		DatabasePath: filepath.Join(configDir, defaultDatabaseFileName),
		DefaultUI:    "terminal",
		SourcePrefix: "",
		Rofi:         defaultRofiConfig,
	}

	if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
		// Config file does not exist, create it with default values and
		// comments documenting each field.
		if err := os.MkdirAll(configDir, 0750); err != nil {
			return Config{}, fmt.Errorf("failed to create config directory %s: %w", configDir, err)
		}
		f, err := os.Create(configFilePath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to create config file %s: %w", configFilePath, err)
		}
		defer f.Close()

		defaultTomlContent := fmt.Sprintf(`database_path = "%s"

# default_ui specifies the default user interface.
# Valid options are "terminal", "fuzzy" or "rofi".
# This can be overridden by the --ui command-line flag.
default_ui = "%s"

# editor is the command used to compose template bodies and source contents.
# Falls back to the VISUAL or EDITOR environment variable when empty.
# editor = ""

# source_prefix restricts which sources resolve placeholders.
# With source_prefix = "diary", the source "diary/Mood" resolves ${Mood}
# and sources outside "diary" are invisible to templates.
source_prefix = ""

# Rofi user interface settings.
# These settings are used if default_ui = "rofi" or --ui=rofi is specified.
[rofi]
  # Path to the Rofi executable.
  path = "%s"
  # Optional: specify a Rofi theme (e.g., "solarized", "dracula").
  # theme = ""
  # Extra arguments to pass to Rofi for selection dialogs.
  # select_args = []
`, defaultConfig.DatabasePath,
			defaultConfig.DefaultUI,
			defaultConfig.Rofi.Path,
		)

		if _, err := f.WriteString(defaultTomlContent); err != nil {
			return Config{}, fmt.Errorf("failed to write default config content to %s: %w", configFilePath, err)
		}

		return defaultConfig, nil
	} else if err != nil {
		return Config{}, fmt.Errorf("failed to stat config file %s: %w", configFilePath, err)
	}

	var loadedConfig Config
	if _, err := toml.DecodeFile(configFilePath, &loadedConfig); err != nil {
		return Config{}, fmt.Errorf("failed to decode config file %s: %w", configFilePath, err)
	}

	if loadedConfig.DatabasePath == "" {
		loadedConfig.DatabasePath = defaultConfig.DatabasePath
	}

	if !validUI(loadedConfig.DefaultUI) {
		loadedConfig.DefaultUI = defaultConfig.DefaultUI
	}

	// The [rofi] table may exist with an empty or missing path.
	if loadedConfig.Rofi.Path == "" {
		loadedConfig.Rofi.Path = defaultRofiConfig.Path
	}

	return loadedConfig, nil
}
