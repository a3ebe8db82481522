package trigram

import (
	"unicode/utf16"
)

// Key encodes a trigram as three 16-bit code units packed into a single
// uint64, first unit in the highest lane. Profiles are keyed by Key instead
// of by a 3-character string so that hashing and equality stay cheap in the
// sliding-window hot path.
//
// Characters outside the basic multilingual plane occupy two lanes as their
// surrogate halves. That is an accepted approximation: the two halves are
// counted as two independent code units.
type Key uint64

const laneMask = 0xFFFF

// Pack encodes three code units into a Key. It is allocation-free and
// invoked once per window position.
func Pack(c0, c1, c2 uint16) Key {
	return Key(uint64(c0)<<32 | uint64(c1)<<16 | uint64(c2))
}

// Units is the exact inverse of Pack.
func (k Key) Units() (c0, c1, c2 uint16) {
	return uint16(k >> 32 & laneMask), uint16(k >> 16 & laneMask), uint16(k & laneMask)
}

// Valid reports whether the key may appear in a profile. A zero key, or any
// lane equal to zero, encodes a NUL code unit. Those never occur in real
// language text and usually indicate a degenerate decode, so they are
// discarded rather than counted.
func (k Key) Valid() bool {
	return k>>32&laneMask != 0 && k>>16&laneMask != 0 && k&laneMask != 0
}

// KeyFromString converts the textual form of a trigram (as found in
// reference profile data) into its packed key. Strings that do not encode
// to exactly three code units, or that produce an invalid key, are rejected.
func KeyFromString(s string) (Key, bool) {
	units := utf16.Encode([]rune(s))
	if len(units) != 3 {
		return 0, false
	}
	k := Pack(units[0], units[1], units[2])
	if !k.Valid() {
		return 0, false
	}
	return k, true
}

// String renders the trigram's characters, mainly for logs and debug output.
func (k Key) String() string {
	c0, c1, c2 := k.Units()
	return string(utf16.Decode([]uint16{c0, c1, c2}))
}
