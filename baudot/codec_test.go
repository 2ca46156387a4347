package baudot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripLettersAndFigures(t *testing.T) {
	cases := []string{
		"RYRYRY CQ CQ CQ DE W1AW",
		"THE QUICK BROWN FOX 0123456789",
		"HELLO, WORLD! ARE YOU THERE?",
	}

	for _, s := range cases {
		enc := NewCodec()
		dec := NewCodec()
		codes := enc.Encode(s)
		got := dec.Decode(codes)
		assert.Equal(t, s, got)
	}
}

func TestEncodeUnknownCharacterEmitsSpace(t *testing.T) {
	enc := NewCodec()
	codes := enc.EncodeChar('~')
	require.Len(t, codes, 1)
	assert.Equal(t, spaceCode, codes[0])
}

func TestShiftCodesAreSilentOnDecode(t *testing.T) {
	dec := NewCodec()
	ch, ok := dec.DecodeCode(figsCode)
	assert.False(t, ok)
	assert.Equal(t, rune(0), ch)
	assert.Equal(t, Figures, dec.Shift())

	ch, ok = dec.DecodeCode(ltrsCode)
	assert.False(t, ok)
	assert.Equal(t, rune(0), ch)
	assert.Equal(t, Letters, dec.Shift())
}

func TestEncodeWithPreambleForcesLetters(t *testing.T) {
	enc := NewCodec()
	// Start in FIGURES by encoding a digit first.
	enc.EncodeChar('1')
	assert.Equal(t, Figures, enc.Shift())

	codes := enc.EncodeWithPreamble("A", 2)
	require.Len(t, codes, 3)
	assert.Equal(t, byte(0x1F), codes[0])
	assert.Equal(t, byte(0x1F), codes[1])

	dec := NewCodec()
	assert.Equal(t, "A", dec.Decode(codes))
}

func TestResetReturnsToLetters(t *testing.T) {
	c := NewCodec()
	c.EncodeChar('1')
	require.Equal(t, Figures, c.Shift())
	c.Reset()
	assert.Equal(t, Letters, c.Shift())
}

func TestDecodeIgnoresUnassignedCodes(t *testing.T) {
	dec := NewCodec()
	// 0x00 is NULL (unassigned) in both tables.
	ch, ok := dec.DecodeCode(0x00)
	assert.False(t, ok)
	assert.Equal(t, rune(0), ch)
}

func TestRoundTripAllTableCharacters(t *testing.T) {
	var chars []rune
	for _, ch := range ltrs {
		if ch != 0 {
			chars = append(chars, ch)
		}
	}
	for _, ch := range figs {
		if ch != 0 {
			chars = append(chars, ch)
		}
	}
	s := string(chars)
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\a", "")

	enc := NewCodec()
	dec := NewCodec()
	assert.Equal(t, s, dec.Decode(enc.Encode(s)))
}
