// Package trigram builds and compares character-trigram frequency profiles.
// A profile maps packed trigram keys to frequencies; after normalization the
// values form a unit vector, so the dot product of two profiles is their
// cosine similarity.
package trigram

import (
	"math"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Profile is a sparse trigram frequency map. Values start as occurrence
// counts and become unit-vector components after Normalize.
type Profile map[Key]float64

// BuildOptions controls profile construction.
type BuildOptions struct {
	// MaxLines caps how many lines contribute to the profile.
	// Zero means all lines are processed.
	MaxLines int
}

const (
	// Short natural-language texts repeat roughly one in three trigrams, so
	// reserving total/3 entries avoids most rehashing during accumulation.
	uniquenessRatio = 3

	// Reservation ceiling so huge inputs do not pre-allocate unbounded maps.
	maxReserve = 1 << 16
)

// Build accumulates trigram counts over every line of the text. Each line
// first loses a single trailing carriage return, then lines shorter than
// three code units are skipped; a width-3 window slides over every position
// of the rest. Invalid keys (any NUL lane) are discarded. An empty text
// yields an empty profile.
func Build(lines []string, opts BuildOptions) Profile {
	total := 0
	for _, line := range lines {
		total += len(line)
	}
	reserve := total / uniquenessRatio
	if reserve > maxReserve {
		reserve = maxReserve
	}

	p := make(Profile, reserve)
	for i, line := range lines {
		if opts.MaxLines > 0 && i >= opts.MaxLines {
			break
		}
		line = strings.TrimSuffix(line, "\r")
		units := encodeLine(line)
		if len(units) < 3 {
			continue
		}
		for j := 0; j+3 <= len(units); j++ {
			k := Pack(units[j], units[j+1], units[j+2])
			if !k.Valid() {
				continue
			}
			p[k]++
		}
	}
	return p
}

// encodeLine converts a line into its 16-bit code units. A malformed byte is
// kept with its raw value so a single bad byte degrades one window instead
// of discarding the rest of the line.
func encodeLine(line string) []uint16 {
	units := make([]uint16, 0, len(line))
	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		if r == utf8.RuneError && size <= 1 {
			units = append(units, uint16(line[i]))
			i++
			continue
		}
		if r <= 0xFFFF {
			units = append(units, uint16(r))
		} else {
			hi, lo := utf16.EncodeRune(r)
			units = append(units, uint16(hi), uint16(lo))
		}
		i += size
	}
	return units
}

// Normalize rescales the profile in place to unit Euclidean length.
// Empty and all-zero profiles are left unchanged; there is nothing to
// rescale and they must keep meaning "no evidence".
func (p Profile) Normalize() {
	var sum float64
	for _, v := range p {
		sum += v * v
	}
	if sum <= 0 {
		return
	}
	inv := 1 / math.Sqrt(sum)
	for k, v := range p {
		p[k] = v * inv
	}
}
