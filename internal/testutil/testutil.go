// Package testutil provides shared helpers for tests: locating the project
// root and testdata, and writing throwaway reference profile directories.
package testutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// GetProjectRoot returns the project root directory by finding go.mod.
func GetProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("failed to get caller information")
	}
	dir := filepath.Dir(filename)

	// Walk up the directory tree to find go.mod
	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("could not find go.mod file starting from %s", filepath.Dir(filename))
}

// GetTestDataDir returns the path to the testdata directory.
func GetTestDataDir(t *testing.T) string {
	t.Helper()

	root, err := GetProjectRoot()
	require.NoError(t, err, "Failed to find project root")

	return filepath.Join(root, "testdata")
}

// GetTestProfilesDir returns the path to the reference profiles fixture
// directory under testdata.
func GetTestProfilesDir(t *testing.T) string {
	t.Helper()
	return filepath.Join(GetTestDataDir(t), "profiles")
}

// WriteProfilesDir writes a throwaway profiles directory: a languages.csv
// index plus one trigram CSV per language. languages maps code to display
// name; rows maps code to its trigram,count lines. Returns the directory.
func WriteProfilesDir(t *testing.T, languages map[string]string, rows map[string][]string) string {
	t.Helper()

	dir := t.TempDir()

	var index string
	for code, name := range languages {
		index += code + "," + name + "\n"
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "languages.csv"), []byte(index), 0o600))

	for code, lines := range rows {
		var content string
		for _, line := range lines {
			content += line + "\n"
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, code+".csv"), []byte(content), 0o600))
	}

	return dir
}
