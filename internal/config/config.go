// SPDX-License-Identifier: MPL-2.0

// Package config loads tool-level settings for uvs.
//
// Settings come from three layers, later layers winning: built-in defaults,
// an optional config.toml in the platform config directory, and UVS_*
// environment variables. Per-project script definitions live in
// pyproject.toml and are handled by pkg/uvsfile, not here.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "uvs"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

// Settings holds the tool-level defaults a user can persist outside any
// single project. CLI flags always win over these.
type Settings struct {
	// Verbose echoes each command before executing it.
	Verbose bool
	// NoEditable ignores editable installs from pyproject.toml.
	NoEditable bool
	// NoFeatures ignores features (extras) from pyproject.toml.
	NoFeatures bool
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{}
}

// ConfigDir returns the uvs configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application
// Support, and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load reads settings from the platform config directory.
func Load() (Settings, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return DefaultSettings(), err
	}
	return LoadFrom(cfgDir)
}

// LoadFrom reads settings from an explicit config directory. A missing
// config file is not an error; defaults and environment overrides still
// apply.
func LoadFrom(cfgDir string) (Settings, error) {
	v := viper.New()

	defaults := DefaultSettings()
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("no_editable", defaults.NoEditable)
	v.SetDefault("no_features", defaults.NoFeatures)

	v.SetEnvPrefix("UVS")
	for _, key := range []string{"verbose", "no_editable", "no_features"} {
		// BindEnv never fails with a non-empty key.
		_ = v.BindEnv(key)
	}

	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileExt)
	v.AddConfigPath(cfgDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return defaults, fmt.Errorf("failed to read %s config: %w", AppName, err)
		}
	}

	return Settings{
		Verbose:    v.GetBool("verbose"),
		NoEditable: v.GetBool("no_editable"),
		NoFeatures: v.GetBool("no_features"),
	}, nil
}
