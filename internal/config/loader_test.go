package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

// resetViper resets the global viper instance between tests. The loader
// deliberately shares the global instance so cobra flag bindings work, which
// means tests must clean up after themselves.
func resetViper() {
	viper.Reset()
}

// clearLangidEnvVars clears all LANGID_ environment variables.
func clearLangidEnvVars() {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, EnvPrefix+"_") {
			parts := strings.SplitN(env, "=", 2)
			if len(parts) > 0 {
				_ = os.Unsetenv(parts[0])
			}
		}
	}
}

// TestNewLoader tests loader creation.
func TestNewLoader(t *testing.T) {
	defer resetViper()

	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader() returned nil")
	}
	if loader.v == nil {
		t.Error("Loader viper instance is nil")
	}
}

// TestLoadWithNoConfigFile tests loading with no config file present.
func TestLoadWithNoConfigFile(t *testing.T) {
	defer resetViper()
	clearLangidEnvVars()

	tmpDir := t.TempDir()
	originalWd, _ := os.Getwd()
	defer func() { _ = os.Chdir(originalWd) }()

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	loader := NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	// Defaults apply when no file exists.
	if cfg.ProfilesDir != "profiles" {
		t.Errorf("Expected default profiles_dir, got %s", cfg.ProfilesDir)
	}
	if cfg.Identify.Threshold != 0.3 {
		t.Errorf("Expected default threshold 0.3, got %f", cfg.Identify.Threshold)
	}
}

// TestLoadWithFile tests loading from an explicit config file.
func TestLoadWithFile(t *testing.T) {
	defer resetViper()
	clearLangidEnvVars()

	configFile := filepath.Join(t.TempDir(), "langid.yaml")
	content := `
log_level: debug
profiles_dir: /custom/profiles
identify:
  threshold: 0.5
server:
  port: 9999
`
	if err := os.WriteFile(configFile, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	loader := NewLoader()
	cfg, err := loader.LoadWithFile(configFile)
	if err != nil {
		t.Fatalf("LoadWithFile() unexpected error: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log_level 'debug', got %s", cfg.LogLevel)
	}
	if cfg.ProfilesDir != "/custom/profiles" {
		t.Errorf("Expected profiles_dir '/custom/profiles', got %s", cfg.ProfilesDir)
	}
	if cfg.Identify.Threshold != 0.5 {
		t.Errorf("Expected threshold 0.5, got %f", cfg.Identify.Threshold)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Expected port 9999, got %d", cfg.Server.Port)
	}

	// Unset keys still fall back to defaults.
	if cfg.Batch.Workers != 4 {
		t.Errorf("Expected default workers 4, got %d", cfg.Batch.Workers)
	}
}

// TestLoadWithMissingFile tests that an explicit but missing file is an error.
func TestLoadWithMissingFile(t *testing.T) {
	defer resetViper()

	loader := NewLoader()
	_, err := loader.LoadWithFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Error("Expected error for missing config file")
	}
}

// TestLoadWithInvalidValues tests that validation rejects bad file content.
func TestLoadWithInvalidValues(t *testing.T) {
	defer resetViper()
	clearLangidEnvVars()

	configFile := filepath.Join(t.TempDir(), "langid.yaml")
	if err := os.WriteFile(configFile, []byte("log_level: loud\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	loader := NewLoader()
	_, err := loader.LoadWithFile(configFile)
	if err == nil {
		t.Error("Expected validation error for invalid log level")
	} else if !strings.Contains(err.Error(), "validation") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

// TestEnvironmentVariableOverride tests env vars taking precedence over defaults.
func TestEnvironmentVariableOverride(t *testing.T) {
	defer resetViper()
	clearLangidEnvVars()

	t.Setenv("LANGID_PROFILES_DIR", "/env/profiles")
	t.Setenv("LANGID_LOG_LEVEL", "warn")

	tmpDir := t.TempDir()
	originalWd, _ := os.Getwd()
	defer func() { _ = os.Chdir(originalWd) }()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	loader := NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.ProfilesDir != "/env/profiles" {
		t.Errorf("Expected profiles_dir from env, got %s", cfg.ProfilesDir)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("Expected log_level from env, got %s", cfg.LogLevel)
	}
}

// TestGetConfigSearchPaths tests the documented search path list.
func TestGetConfigSearchPaths(t *testing.T) {
	paths := GetConfigSearchPaths()
	if len(paths) == 0 {
		t.Fatal("Expected at least one search path")
	}
	if paths[0] != "." {
		t.Errorf("Expected current directory first, got %s", paths[0])
	}

	found := false
	for _, p := range paths {
		if p == "/etc/langid" {
			found = true
		}
	}
	if !found {
		t.Error("Expected /etc/langid in search paths")
	}
}

// TestGenerateDefaultConfigFile tests writing a default config file.
func TestGenerateDefaultConfigFile(t *testing.T) {
	defer resetViper()

	filename := filepath.Join(t.TempDir(), "langid.yaml")
	if err := GenerateDefaultConfigFile(filename); err != nil {
		t.Fatalf("GenerateDefaultConfigFile() error: %v", err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("Failed to read generated file: %v", err)
	}
	if !strings.Contains(string(data), "profiles_dir") {
		t.Error("Generated config missing profiles_dir key")
	}
}
