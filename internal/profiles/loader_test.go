package profiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MeKo-Tech/langid/internal/testutil"
	"github.com/MeKo-Tech/langid/internal/trigram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDir(t *testing.T) {
	dir := testutil.WriteProfilesDir(t,
		map[string]string{"en": "English", "es": "Spanish"},
		map[string][]string{
			"en": {"the,10", "he ,8", "ing,5"},
			"es": {"el ,10", "de ,8", "que,5"},
		})

	set, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, set.Profiles, 2)

	assert.Equal(t, "English", set.Name("en"))
	assert.Equal(t, "Spanish", set.Name("es"))
	for _, p := range set.Profiles {
		assert.NotEmpty(t, p.Profile)
	}
}

func TestLoadDir_EmptyPath(t *testing.T) {
	_, err := LoadDir("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestLoadDir_MissingIndex(t *testing.T) {
	_, err := LoadDir(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "language index")
}

func TestLoadDir_MissingProfileFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, IndexFileName), []byte("en,English\n"), 0o600))

	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"en"`)
}

func TestLoadDir_SkipsMalformedIndexRows(t *testing.T) {
	dir := testutil.WriteProfilesDir(t,
		map[string]string{"en": "English"},
		map[string][]string{"en": {"the,10"}})

	// Append a row with the wrong arity; it must be skipped, not fatal.
	f, err := os.OpenFile(filepath.Join(dir, IndexFileName), os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString("de\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	set, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Len(t, set.Profiles, 1)
}

func TestLoadDir_PreservesIndexOrder(t *testing.T) {
	dir := t.TempDir()
	index := "zz,Zed\naa,Ay\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, IndexFileName), []byte(index), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zz.csv"), []byte("the,1\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aa.csv"), []byte("the,1\n"), 0o600))

	set, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, set.Profiles, 2)
	assert.Equal(t, "zz", set.Profiles[0].Code)
	assert.Equal(t, "aa", set.Profiles[1].Code)
}

func TestSet_Name_Fallback(t *testing.T) {
	set := &Set{Names: map[string]string{"en": "English"}}
	assert.Equal(t, "English", set.Name("en"))
	assert.Equal(t, "xx", set.Name("xx"))

	var nilSet *Set
	assert.Equal(t, "yy", nilSet.Name("yy"))
}

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "en.csv")
	require.NoError(t, os.WriteFile(path, []byte("the,3\nhe ,4\n"), 0o600))

	p, err := LoadProfile(path)
	require.NoError(t, err)
	require.Len(t, p, 2)

	// Loaded profiles arrive normalized: 3-4-5 triangle.
	theKey, ok := trigram.KeyFromString("the")
	require.True(t, ok)
	assert.InDelta(t, 0.6, p[theKey], 1e-9)
}

func TestLoadProfile_SkipsBadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "en.csv")
	content := "the,3\n" + // valid
		"ab,2\n" + // trigram too short
		"abcd,2\n" + // trigram too long
		"ing,notanumber\n" + // malformed count
		"ers,-1\n" + // non-positive count
		"and,2\n" // valid
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	p, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Len(t, p, 2)
}

func TestLoadProfile_AllRowsBad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xx.csv")
	require.NoError(t, os.WriteFile(path, []byte("ab,1\ncd,2\n"), 0o600))

	_, err := LoadProfile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestLoadProfile_StripsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "en.csv")
	require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBFthe,3\n"), 0o600))

	p, err := LoadProfile(path)
	require.NoError(t, err)
	theKey, ok := trigram.KeyFromString("the")
	require.True(t, ok)
	assert.Contains(t, p, theKey)
}
