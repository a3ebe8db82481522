// Package langid identifies the language of a text by comparing its trigram
// frequency profile against a set of per-language reference profiles using
// cosine similarity.
package langid

import (
	"sort"

	"github.com/MeKo-Tech/langid/internal/trigram"
)

// Unknown is the sentinel result for insufficient evidence or confidence.
// It is a first-class outcome, not an error.
const Unknown = "unknown"

// LanguageProfile pairs a language code with its normalized reference
// trigram profile. Profiles are built once at load time and are read-only
// afterwards, so they may be shared across concurrent Identify calls
// without synchronization.
type LanguageProfile struct {
	Code    string
	Name    string
	Profile trigram.Profile
}

// Options is the decision-rule policy. Threshold is the minimum similarity
// the best match must exceed. Margin, when positive, additionally requires
// the best score to beat the runner-up by that much, rejecting near-ties
// between closely related languages. MaxLines caps how many input lines are
// profiled (0 = no cap). Both gates are deployment tunables, not constants.
type Options struct {
	Threshold float64
	Margin    float64
	MaxLines  int
}

// DefaultOptions returns the default decision policy.
func DefaultOptions() Options {
	return Options{Threshold: 0.3}
}

// Match is one reference language with its similarity against the input.
type Match struct {
	Code  string  `json:"code"`
	Name  string  `json:"name,omitempty"`
	Score float64 `json:"score"`
}

// Identify returns the language code of the best reference match, or
// Unknown when the input carries no evidence (empty text, all lines shorter
// than three characters, empty reference set) or the confidence gate fails.
// Ties go to the first profile in reference order, deterministically.
//
// Each call builds its own input profile and only reads the shared
// reference profiles, so Identify is safe for concurrent use.
func Identify(lines []string, profiles []LanguageProfile, opts Options) string {
	if len(lines) == 0 || len(profiles) == 0 {
		return Unknown
	}

	p := trigram.Build(lines, trigram.BuildOptions{MaxLines: opts.MaxLines})
	if len(p) == 0 {
		return Unknown
	}
	p.Normalize()

	matches := score(p, profiles)
	return Decide(matches, opts)
}

// Decide applies the confidence gate to ranked matches: the best match must
// exceed the threshold and, when a margin is configured, beat the runner-up
// by at least that much.
func Decide(matches []Match, opts Options) string {
	if len(matches) == 0 {
		return Unknown
	}
	best := matches[0]
	if best.Score <= opts.Threshold {
		return Unknown
	}
	if opts.Margin > 0 && len(matches) > 1 && best.Score-matches[1].Score < opts.Margin {
		return Unknown
	}
	return best.Code
}

// score ranks a prepared unit profile against every reference.
func score(p trigram.Profile, profiles []LanguageProfile) []Match {
	matches := make([]Match, 0, len(profiles))
	for _, ref := range profiles {
		matches = append(matches, Match{
			Code:  ref.Code,
			Name:  ref.Name,
			Score: trigram.Similarity(p, ref.Profile),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// Rank scores the input against every reference profile and returns all
// matches ordered by descending similarity. Reference order is preserved
// among equal scores. An input with no evidence yields zero scores for
// every language rather than an error.
func Rank(lines []string, profiles []LanguageProfile, opts Options) []Match {
	p := trigram.Build(lines, trigram.BuildOptions{MaxLines: opts.MaxLines})
	p.Normalize()
	return score(p, profiles)
}
