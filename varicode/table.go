package varicode

import "strings"

// table holds the bit pattern (MSB first, as a string of '0'/'1') for
// every ASCII code 0..127. No entry contains the substring "00", and
// every entry starts and ends in '1'. All three properties are required
// for "00" to work as an unambiguous inter-character separator under
// the streaming decode algorithm in codec.go (§4.5): that algorithm
// only appends a pending single zero to the accumulator once it sees
// the *next* bit is a 1, so a codeword ending in '0' would never get
// its last bit appended before the boundary's zero-run reached 2 — it
// would be looked up one bit short — and a codeword starting with '0'
// would lose that leading zero whenever it follows a run of two or more
// zeros (a separator plus idle, or a long idle prefix).
//
// The historical PSK31 varicode table assigns its shortest codes to the
// most frequent English characters (space, 'e', ...) by hand-tuned
// Huffman-style weighting. This repo is not claiming bit-exact
// interoperability with that table (spec Non-goals: "no claim of
// bit-exact interoperability with any specific existing library"), so
// the table below is generated instead: enumerate every binary string
// with no embedded "00", a leading '1' and a trailing '1', shortest first and
// lexicographic within a length, and assign them to ASCII codes 0..127
// in order. That preserves every invariant the spec actually tests (no
// "00" inside a codeword, unique codewords, a decodable separator)
// without transcribing a 128-entry bit table from memory.
var table [128]string

func init() {
	list := make([]string, 0, 128)
	for length := 1; len(list) < len(table); length++ {
		for _, s := range validStrings(length) {
			list = append(list, s)
			if len(list) == len(table) {
				break
			}
		}
	}
	copy(table[:], list)

	reverse = make(map[string]rune, len(table))
	for code, pattern := range table {
		reverse[pattern] = rune(code)
	}
}

// validStrings returns every binary string of the given length, in
// ascending numeric (= lexicographic, for fixed width) order, that does
// not contain "00" and starts and ends in '1'.
func validStrings(length int) []string {
	var out []string
	total := 1 << uint(length)
	for v := 0; v < total; v++ {
		s := toBinaryString(v, length)
		if strings.HasPrefix(s, "1") && strings.HasSuffix(s, "1") && !strings.Contains(s, "00") {
			out = append(out, s)
		}
	}
	return out
}

func toBinaryString(v, length int) string {
	buf := make([]byte, length)
	for i := length - 1; i >= 0; i-- {
		if v&1 == 1 {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
		v >>= 1
	}
	return string(buf)
}

// reverse maps a bit pattern back to its ASCII character, built once
// alongside table.
var reverse map[string]rune
