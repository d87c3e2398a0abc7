// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromDefaults(t *testing.T) {
	t.Parallel()

	settings, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if settings != DefaultSettings() {
		t.Errorf("LoadFrom() with no config file = %+v, want defaults %+v", settings, DefaultSettings())
	}
}

func TestLoadFromConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := "verbose = true\nno_features = true\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if !settings.Verbose {
		t.Error("Verbose = false, want true from config file")
	}
	if settings.NoEditable {
		t.Error("NoEditable = true, want default false")
	}
	if !settings.NoFeatures {
		t.Error("NoFeatures = false, want true from config file")
	}
}

func TestLoadFromMalformedConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("verbose = = =\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(dir); err == nil {
		t.Error("LoadFrom() succeeded on malformed TOML")
	}
}

func TestLoadFromEnvOverride(t *testing.T) {
	// t.Setenv forbids t.Parallel.
	t.Setenv("UVS_VERBOSE", "true")
	t.Setenv("UVS_NO_EDITABLE", "true")

	settings, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if !settings.Verbose {
		t.Error("Verbose = false, want true from UVS_VERBOSE")
	}
	if !settings.NoEditable {
		t.Error("NoEditable = false, want true from UVS_NO_EDITABLE")
	}
	if settings.NoFeatures {
		t.Error("NoFeatures = true, want default false")
	}
}

func TestEnvWinsOverConfigFile(t *testing.T) {
	t.Setenv("UVS_VERBOSE", "false")

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("verbose = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if settings.Verbose {
		t.Error("Verbose = true, want the UVS_VERBOSE=false override to win")
	}
}

func TestConfigDirEndsWithAppName(t *testing.T) {
	t.Parallel()

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if filepath.Base(dir) != AppName {
		t.Errorf("ConfigDir() = %q, want it to end with %q", dir, AppName)
	}
}
