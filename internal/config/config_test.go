// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"voltar-cli/internal/testutil"

	"github.com/pelletier/go-toml/v2"
)

func TestConstants(t *testing.T) {
	if AppName != "voltar" {
		t.Errorf("AppName = %q, want %q", AppName, "voltar")
	}
	if ConfigFileName != "config" {
		t.Errorf("ConfigFileName = %q, want %q", ConfigFileName, "config")
	}
	if ConfigFileExt != "toml" {
		t.Errorf("ConfigFileExt = %q, want %q", ConfigFileExt, "toml")
	}
}

func TestConfigDir(t *testing.T) {
	// Only exercised on Linux where XDG_CONFIG_HOME drives the lookup.
	if runtime.GOOS != "linux" {
		t.Skipf("XDG lookup not used on %s", runtime.GOOS)
	}

	testXDGPath := "/tmp/test-xdg-config"
	restoreXDG := testutil.MustSetenv(t, "XDG_CONFIG_HOME", testXDGPath)
	defer restoreXDG()

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}

	expected := filepath.Join(testXDGPath, AppName)
	if dir != expected {
		t.Errorf("ConfigDir() = %s, want %s", dir, expected)
	}

	// With XDG_CONFIG_HOME unset the lookup falls back to ~/.config.
	restoreXDG()
	restoreUnset := testutil.MustUnsetenv(t, "XDG_CONFIG_HOME")
	defer restoreUnset()

	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected = filepath.Join(home, ".config", AppName)
	if dir != expected {
		t.Errorf("ConfigDir() = %s, want %s", dir, expected)
	}
}

func TestConfigDirOverride(t *testing.T) {
	tmpDir := t.TempDir()
	SetConfigDirOverride(tmpDir)
	defer Reset()

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if dir != tmpDir {
		t.Errorf("ConfigDir() = %s, want override %s", dir, tmpDir)
	}
}

func TestReset(t *testing.T) {
	tmpDir := t.TempDir()
	SetConfigDirOverride(tmpDir)

	Reset()

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if dir == tmpDir {
		t.Error("ConfigDir() still returns the override after Reset()")
	}
}

func TestConfigFilePath(t *testing.T) {
	tmpDir := t.TempDir()
	SetConfigDirOverride(tmpDir)
	defer Reset()

	path, err := ConfigFilePath()
	if err != nil {
		t.Fatalf("ConfigFilePath() returned error: %v", err)
	}

	expected := filepath.Join(tmpDir, "config.toml")
	if path != expected {
		t.Errorf("ConfigFilePath() = %s, want %s", path, expected)
	}
}

func TestEnsureConfigDir(t *testing.T) {
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, "nested", AppName)

	SetConfigDirOverride(configDir)
	defer Reset()

	if err := EnsureConfigDir(); err != nil {
		t.Fatalf("EnsureConfigDir() returned error: %v", err)
	}

	info, err := os.Stat(configDir)
	if err != nil {
		t.Fatalf("config dir was not created: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("%s is not a directory", configDir)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, AppName)

	SetConfigDirOverride(configDir)
	defer Reset()

	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig() returned error: %v", err)
	}

	cfgPath := filepath.Join(configDir, "config.toml")
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("reading generated config: %v", err)
	}

	content := string(data)
	if !strings.Contains(content, "# voltar configuration file") {
		t.Error("generated config is missing the usage header")
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("generated config is not valid TOML: %v", err)
	}
	if !reflect.DeepEqual(&cfg, DefaultConfig()) {
		t.Errorf("generated config = %+v, want defaults %+v", cfg, *DefaultConfig())
	}
}

func TestCreateDefaultConfigPreservesExistingFile(t *testing.T) {
	tmpDir := t.TempDir()
	SetConfigDirOverride(tmpDir)
	defer Reset()

	cfgPath := filepath.Join(tmpDir, "config.toml")
	custom := "engine = \"podman\"\n"
	if err := os.WriteFile(cfgPath, []byte(custom), 0o644); err != nil {
		t.Fatalf("writing existing config: %v", err)
	}

	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig() returned error: %v", err)
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	if string(data) != custom {
		t.Errorf("existing config was overwritten: got %q, want %q", data, custom)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	SetConfigDirOverride(tmpDir)
	defer Reset()

	cfg := DefaultConfig()
	cfg.Engine = ContainerEngineDocker
	cfg.Image = "docker.io/library/busybox:1.36"
	cfg.UI.ColorScheme = ColorSchemeDark
	cfg.UI.Verbose = true

	if err := Save(cfg); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	loaded, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: tmpDir})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("loaded config = %+v, want %+v", loaded, cfg)
	}
}

func TestGenerateTOML(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine = ContainerEnginePodman

	content, err := GenerateTOML(cfg)
	if err != nil {
		t.Fatalf("GenerateTOML() returned error: %v", err)
	}

	for _, want := range []string{
		"# voltar configuration file",
		"# engine: podman | docker | auto",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("generated TOML is missing %q", want)
		}
	}

	var parsed Config
	if err := toml.Unmarshal([]byte(content), &parsed); err != nil {
		t.Fatalf("generated TOML does not parse: %v", err)
	}
	if !reflect.DeepEqual(&parsed, cfg) {
		t.Errorf("round-tripped config = %+v, want %+v", parsed, *cfg)
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "present.toml")
	if err := os.WriteFile(path, []byte("engine = \"auto\"\n"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	if !fileExists(path) {
		t.Errorf("fileExists(%q) = false, want true", path)
	}
	if fileExists(filepath.Join(tmpDir, "absent.toml")) {
		t.Error("fileExists() = true for missing file")
	}
	if fileExists(tmpDir) {
		t.Error("fileExists() = true for a directory")
	}
}
