package profiles

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/MeKo-Tech/langid/internal/textutil"
	"github.com/MeKo-Tech/langid/internal/trigram"
)

// BuildCSV profiles a corpus text file and writes its trigram counts to
// outPath as trigram,count rows, sorted descending by count so the most
// characteristic trigrams lead the file. It returns the number of distinct
// trigrams written. This is how new reference profiles are produced from
// sample corpora.
func BuildCSV(corpusPath, outPath string, maxLines int) (int, error) {
	text, err := textutil.FromFile(corpusPath)
	if err != nil {
		return 0, fmt.Errorf("loading corpus: %w", err)
	}

	p := trigram.Build(text, trigram.BuildOptions{MaxLines: maxLines})
	if len(p) == 0 {
		return 0, fmt.Errorf("corpus %s produced no trigrams", corpusPath)
	}

	type entry struct {
		key   trigram.Key
		count int
	}
	entries := make([]entry, 0, len(p))
	for k, v := range p {
		entries = append(entries, entry{key: k, count: int(v)})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})

	f, err := os.Create(outPath) //nolint:gosec // G304: writing user-chosen output path is expected
	if err != nil {
		return 0, fmt.Errorf("creating profile file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "Error closing profile file: %v\n", cerr)
		}
	}()

	w := csv.NewWriter(f)
	for _, e := range entries {
		if err := w.Write([]string{e.key.String(), strconv.Itoa(e.count)}); err != nil {
			return 0, fmt.Errorf("writing profile row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("flushing profile file: %w", err)
	}
	return len(entries), nil
}
