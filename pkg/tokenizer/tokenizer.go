// Package tokenizer splits byte buffers into words over a fixed ASCII alphabet.
package tokenizer

// IsWordByte reports whether b may be part of a word.
// The alphabet is ASCII letters, hyphen and apostrophe.
func IsWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '-' || b == '\''
}

// NextBoundary returns the index of the first byte at or after offset whose
// word membership matches the request: a non-word byte when wantSkip is true,
// a word byte when wantSkip is false. It returns len(buf) if there is none.
func NextBoundary(buf []byte, offset int, wantSkip bool) int {
	i := offset
	for ; i < len(buf); i++ {
		if IsWordByte(buf[i]) != wantSkip {
			break
		}
	}
	return i
}

// Tokenize returns every word in buf in order. The returned slices alias buf.
func Tokenize(buf []byte) [][]byte {
	var words [][]byte
	pos := NextBoundary(buf, 0, false)
	for pos < len(buf) {
		end := NextBoundary(buf, pos, true)
		words = append(words, buf[pos:end])
		pos = NextBoundary(buf, end, false)
	}
	return words
}
