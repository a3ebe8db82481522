// Package profiles loads reference language profiles from per-language
// tabular data: a languages.csv index mapping codes to display names, plus
// one <code>.csv per language with trigram,count rows. The textual trigram
// of each row is converted to its packed key and the resulting profile is
// normalized here, as the last step before the data is usable for scoring.
package profiles

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/MeKo-Tech/langid/internal/langid"
	"github.com/MeKo-Tech/langid/internal/trigram"
)

// IndexFileName is the language code/name table inside a profiles directory.
const IndexFileName = "languages.csv"

// Set is a loaded reference corpus: the profiles in index order plus the
// code-to-display-name table. It is immutable after loading and shared
// read-only across identification calls.
type Set struct {
	Profiles []langid.LanguageProfile
	Names    map[string]string
}

// Name returns the display name for a language code, falling back to the
// code itself when the table has no entry.
func (s *Set) Name(code string) string {
	if s == nil {
		return code
	}
	if name, ok := s.Names[code]; ok {
		return name
	}
	return code
}

// LoadDir loads languages.csv from dir and one trigram profile per listed
// code. Rows with the wrong number of fields are skipped; a missing or
// unreadable profile file is an error.
func LoadDir(dir string) (*Set, error) {
	if dir == "" {
		return nil, errors.New("profiles directory cannot be empty")
	}

	index, err := readCSVFile(filepath.Join(dir, IndexFileName))
	if err != nil {
		return nil, fmt.Errorf("reading language index: %w", err)
	}

	set := &Set{
		Profiles: make([]langid.LanguageProfile, 0, len(index)),
		Names:    make(map[string]string, len(index)),
	}
	for _, fields := range index {
		if len(fields) != 2 {
			continue
		}
		code := strings.TrimSpace(fields[0])
		name := strings.TrimSpace(fields[1])
		if code == "" {
			continue
		}
		set.Names[code] = name

		profile, err := LoadProfile(filepath.Join(dir, code+".csv"))
		if err != nil {
			return nil, fmt.Errorf("loading profile for %q: %w", code, err)
		}
		set.Profiles = append(set.Profiles, langid.LanguageProfile{
			Code:    code,
			Name:    name,
			Profile: profile,
		})
	}

	if len(set.Profiles) == 0 {
		return nil, fmt.Errorf("no language profiles found in %s", dir)
	}
	return set, nil
}

// LoadProfile reads a single trigram,count file and returns the normalized
// profile. Rows whose trigram does not pack into a valid key (wrong length,
// NUL lanes) and rows with a malformed count are skipped.
func LoadProfile(path string) (trigram.Profile, error) {
	rows, err := readCSVFile(path)
	if err != nil {
		return nil, err
	}

	p := make(trigram.Profile, len(rows))
	for _, fields := range rows {
		if len(fields) != 2 {
			continue
		}
		key, ok := trigram.KeyFromString(fields[0])
		if !ok {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil || count <= 0 {
			continue
		}
		p[key] = float64(count)
	}
	if len(p) == 0 {
		return nil, fmt.Errorf("profile is empty: %s", path)
	}

	p.Normalize()
	return p, nil
}

func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path) //nolint:gosec // G304: opening configured profile data is expected
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "Error closing profile file: %v\n", cerr)
		}
	}()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // arity checked per row by callers
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed reading %s: %w", path, err)
	}
	if len(rows) > 0 {
		// Strip a UTF-8 BOM from the very first field if present.
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\uFEFF")
	}
	return rows, nil
}
