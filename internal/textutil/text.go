// Package textutil turns raw input bytes into the decoded, case-folded
// lines consumed by the profile builder.
package textutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// MaxFileBytes caps how much content is read from a persistent source, to
// bound memory and latency. Content beyond the ceiling is not considered.
const MaxFileBytes = 10_000_000

// ErrBinaryInput is returned when the input does not look like text.
var ErrBinaryInput = errors.New("input does not decode as text")

// Text is an ordered sequence of decoded, lower-cased lines with line
// endings stripped. It is read-only for consumers.
type Text []string

// FromString converts a string into a Text. The content is lower-cased and
// split on line feeds, with an immediately preceding carriage return treated
// as part of the boundary. Input without line breaks becomes a single line,
// so the result always has at least one line.
func FromString(s string) Text {
	lower := strings.ToLower(s)
	lines := strings.Split(lower, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// FromBytes decodes raw bytes and converts them like FromString. UTF-16
// input is recognized by its byte order mark; everything else is treated as
// UTF-8. Isolated malformed UTF-8 bytes are kept verbatim so the profile
// builder can fall back to their raw values line by line, but input that
// looks like binary data (bare NUL bytes) is rejected outright.
func FromBytes(b []byte) (Text, error) {
	if hasUTF16BOM(b) {
		decoder := xunicode.UTF16(xunicode.LittleEndian, xunicode.UseBOM).NewDecoder()
		decoded, _, err := transform.Bytes(decoder, b)
		if err != nil {
			return nil, fmt.Errorf("decoding UTF-16 input: %w", err)
		}
		return FromString(string(decoded)), nil
	}
	if bytes.IndexByte(b, 0) >= 0 {
		return nil, ErrBinaryInput
	}
	b = bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})
	return FromString(string(b)), nil
}

// FromFile reads at most MaxFileBytes from path and decodes the content.
func FromFile(path string) (Text, error) {
	f, err := os.Open(path) //nolint:gosec // G304: opening user-provided input file is expected
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "Error closing input file: %v\n", cerr)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileBytes))
	if err != nil {
		return nil, fmt.Errorf("reading input file %s: %w", path, err)
	}
	return FromBytes(data)
}

func hasUTF16BOM(b []byte) bool {
	if len(b) < 2 {
		return false
	}
	return (b[0] == 0xFF && b[1] == 0xFE) || (b[0] == 0xFE && b[1] == 0xFF)
}
