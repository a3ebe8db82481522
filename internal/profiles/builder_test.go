package profiles

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/MeKo-Tech/langid/internal/trigram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCSV(t *testing.T) {
	dir := t.TempDir()
	corpus := filepath.Join(dir, "corpus.txt")
	out := filepath.Join(dir, "en.csv")
	require.NoError(t, os.WriteFile(corpus, []byte("ababab\nababab\n"), 0o600))

	n, err := BuildCSV(corpus, out, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Rows are ordered by descending count, tied counts by key.
	prev := -1
	for _, row := range rows {
		require.Len(t, row, 2)
		_, ok := trigram.KeyFromString(row[0])
		assert.True(t, ok)
		count, err := strconv.Atoi(row[1])
		require.NoError(t, err)
		if prev >= 0 {
			assert.LessOrEqual(t, count, prev)
		}
		prev = count
	}
}

func TestBuildCSV_RoundTripsThroughLoader(t *testing.T) {
	dir := t.TempDir()
	corpus := filepath.Join(dir, "corpus.txt")
	out := filepath.Join(dir, "en.csv")
	content := "the quick brown fox jumps over the lazy dog\n" +
		"pack my box with five dozen liquor jugs\n"
	require.NoError(t, os.WriteFile(corpus, []byte(content), 0o600))

	n, err := BuildCSV(corpus, out, 0)
	require.NoError(t, err)
	require.Positive(t, n)

	p, err := LoadProfile(out)
	require.NoError(t, err)
	assert.Len(t, p, n)

	theKey, ok := trigram.KeyFromString("the")
	require.True(t, ok)
	assert.Contains(t, p, theKey)
}

func TestBuildCSV_MissingCorpus(t *testing.T) {
	dir := t.TempDir()
	_, err := BuildCSV(filepath.Join(dir, "absent.txt"), filepath.Join(dir, "out.csv"), 0)
	require.Error(t, err)
}

func TestBuildCSV_EmptyCorpus(t *testing.T) {
	dir := t.TempDir()
	corpus := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(corpus, []byte(""), 0o600))

	_, err := BuildCSV(corpus, filepath.Join(dir, "out.csv"), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no trigrams")
}

func TestBuildCSV_MaxLines(t *testing.T) {
	dir := t.TempDir()
	corpus := filepath.Join(dir, "corpus.txt")
	out := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(corpus, []byte("abc\ndef\nghi\n"), 0o600))

	n, err := BuildCSV(corpus, out, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
