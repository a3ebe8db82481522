package trigram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPack_RoundTrip(t *testing.T) {
	cases := []struct {
		name       string
		c0, c1, c2 uint16
	}{
		{"ascii", 'a', 'b', 'c'},
		{"latin1", 0x00E9, 0x00E8, 0x00EA}, // é è ê
		{"cyrillic", 0x0442, 0x0430, 0x043A},
		{"max units", 0xFFFF, 0xFFFF, 0xFFFF},
		{"mixed", 'a', 0x0442, 0xFFFF},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			k := Pack(tc.c0, tc.c1, tc.c2)
			c0, c1, c2 := k.Units()
			assert.Equal(t, tc.c0, c0)
			assert.Equal(t, tc.c1, c1)
			assert.Equal(t, tc.c2, c2)
		})
	}
}

func TestPack_DistinctOrders(t *testing.T) {
	// Order matters: "abc" and "cba" must map to different keys.
	assert.NotEqual(t, Pack('a', 'b', 'c'), Pack('c', 'b', 'a'))
	assert.NotEqual(t, Pack('a', 'b', 'c'), Pack('b', 'a', 'c'))
}

func TestKey_Valid(t *testing.T) {
	assert.True(t, Pack('a', 'b', 'c').Valid())
	assert.True(t, Pack(0xFFFF, 1, 1).Valid())

	assert.False(t, Key(0).Valid())
	assert.False(t, Pack(0, 'b', 'c').Valid())
	assert.False(t, Pack('a', 0, 'c').Valid())
	assert.False(t, Pack('a', 'b', 0).Valid())
}

func TestKeyFromString(t *testing.T) {
	k, ok := KeyFromString("abc")
	require.True(t, ok)
	assert.Equal(t, Pack('a', 'b', 'c'), k)

	k, ok = KeyFromString("так")
	require.True(t, ok)
	assert.Equal(t, "так", k.String())
}

func TestKeyFromString_RejectsWrongLength(t *testing.T) {
	for _, s := range []string{"", "a", "ab", "abcd"} {
		_, ok := KeyFromString(s)
		assert.False(t, ok, "expected %q to be rejected", s)
	}
}

func TestKeyFromString_SurrogatePair(t *testing.T) {
	// One astral rune plus one BMP rune is three code units: the surrogate
	// halves count individually.
	k, ok := KeyFromString("\U0001F600a")
	require.True(t, ok)
	c0, c1, c2 := k.Units()
	assert.Equal(t, uint16(0xD83D), c0)
	assert.Equal(t, uint16(0xDE00), c1)
	assert.Equal(t, uint16('a'), c2)
}

func TestKeyFromString_RejectsNulUnit(t *testing.T) {
	_, ok := KeyFromString("a\x00b")
	assert.False(t, ok)
}

func TestKey_String_RoundTrip(t *testing.T) {
	for _, s := range []string{"abc", "так", "l'é"} {
		k, ok := KeyFromString(s)
		require.True(t, ok)
		assert.Equal(t, s, k.String())
	}
}
