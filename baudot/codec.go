// Package baudot implements the 5-bit ITA2 (Baudot) character code used
// by RTTY, with its LTRS/FIGS shift-state escape codes.
package baudot

// Shift identifies which of the two Baudot character tables is active.
type Shift int

const (
	Letters Shift = iota
	Figures
)

const (
	ltrsCode byte = 0x1F
	figsCode byte = 0x1B
	spaceCode byte = 0x04
)

// ltrs and figs are the 32-entry lookup tables keyed on 5-bit codes.
// A zero rune means "unassigned" (decoded and silently dropped).
var ltrs = [32]rune{
	0x00: 0,
	0x01: 'E', 0x02: '\n', 0x03: 'A', 0x04: ' ', 0x05: 'S',
	0x06: 'I', 0x07: 'U', 0x08: '\r', 0x09: 'D', 0x0A: 'R',
	0x0B: 'J', 0x0C: 'N', 0x0D: 'F', 0x0E: 'C', 0x0F: 'K',
	0x10: 'T', 0x11: 'Z', 0x12: 'L', 0x13: 'W', 0x14: 'H',
	0x15: 'Y', 0x16: 'P', 0x17: 'Q', 0x18: 'O', 0x19: 'B',
	0x1A: 'G', 0x1B: 0, 0x1C: 'M', 0x1D: 'X', 0x1E: 'V', 0x1F: 0,
}

var figs = [32]rune{
	0x00: 0,
	0x01: '3', 0x02: '\n', 0x03: '-', 0x04: ' ', 0x05: '\a',
	0x06: '8', 0x07: '7', 0x08: '\r', 0x09: '$', 0x0A: '4',
	0x0B: '\'', 0x0C: ',', 0x0D: '!', 0x0E: ':', 0x0F: '(',
	0x10: '5', 0x11: '"', 0x12: ')', 0x13: '2', 0x14: '#',
	0x15: '6', 0x16: '0', 0x17: '1', 0x18: '9', 0x19: '?',
	0x1A: '&', 0x1B: 0, 0x1C: '.', 0x1D: '/', 0x1E: ';', 0x1F: 0,
}

// reverse tables, built once: character -> (code, shift it lives in).
var (
	ltrsReverse = buildReverse(ltrs)
	figsReverse = buildReverse(figs)
)

func buildReverse(table [32]rune) map[rune]byte {
	m := make(map[rune]byte, 32)
	for code, ch := range table {
		if ch != 0 {
			m[ch] = byte(code)
		}
	}
	return m
}

// Codec encodes and decodes Baudot/ITA2 text, tracking LTRS/FIGS shift
// state across calls.
type Codec struct {
	shift Shift
}

// NewCodec creates a codec starting in LETTERS shift.
func NewCodec() *Codec {
	return &Codec{shift: Letters}
}

// Reset returns the codec to LETTERS shift with no pending state.
func (c *Codec) Reset() {
	c.shift = Letters
}

// Shift returns the codec's current shift state.
func (c *Codec) Shift() Shift {
	return c.shift
}

// EncodeChar encodes a single character, choosing the shortest code
// sequence: one code if the character lives in the current shift,
// otherwise a shift code followed by the character's code. Unencodable
// characters emit the space code.
func (c *Codec) EncodeChar(ch rune) []byte {
	if code, ok := ltrsReverse[ch]; ok && c.shift == Letters {
		return []byte{code}
	}
	if code, ok := figsReverse[ch]; ok && c.shift == Figures {
		return []byte{code}
	}
	if code, ok := ltrsReverse[ch]; ok {
		c.shift = Letters
		return []byte{ltrsCode, code}
	}
	if code, ok := figsReverse[ch]; ok {
		c.shift = Figures
		return []byte{figsCode, code}
	}
	return []byte{spaceCode}
}

// Encode encodes a string of characters in sequence.
func (c *Codec) Encode(text string) []byte {
	var out []byte
	for _, ch := range text {
		out = append(out, c.EncodeChar(ch)...)
	}
	return out
}

// EncodeWithPreamble encodes text preceded by n LTRS codes and forces
// the codec into LETTERS shift first.
func (c *Codec) EncodeWithPreamble(text string, n int) []byte {
	c.shift = Letters
	out := make([]byte, 0, n+len(text))
	for i := 0; i < n; i++ {
		out = append(out, ltrsCode)
	}
	out = append(out, c.Encode(text)...)
	return out
}

// DecodeCode decodes a single 5-bit code. Shift codes change state and
// return (0, false). Nil table slots are silently dropped, also
// returning (0, false). Any other code returns its character and true.
func (c *Codec) DecodeCode(code byte) (rune, bool) {
	code &= 0x1F
	switch code {
	case ltrsCode:
		c.shift = Letters
		return 0, false
	case figsCode:
		c.shift = Figures
		return 0, false
	}

	var ch rune
	if c.shift == Figures {
		ch = figs[code]
	} else {
		ch = ltrs[code]
	}
	if ch == 0 {
		return 0, false
	}
	return ch, true
}

// Decode decodes a sequence of 5-bit codes into text, skipping shift
// codes and unassigned codes.
func (c *Codec) Decode(codes []byte) string {
	var out []rune
	for _, code := range codes {
		if ch, ok := c.DecodeCode(code); ok {
			out = append(out, ch)
		}
	}
	return string(out)
}
