package tokenizer

import (
	"unicode"
	"unicode/utf8"
)

// tokensPerByteEstimate sizes the token slice up front; ordinary prose
// averages roughly one token per six bytes.
const tokensPerByteEstimate = 6

// fieldTokens scans s rune by rune and emits every maximal run of
// non-whitespace runes. The caller guarantees s is non-empty.
func fieldTokens(s string) []Token {
	tokens := make([]Token, 0, len(s)/tokensPerByteEstimate+1)

	i := 0
	for i < len(s) {
		// Skip the delimiter run.
		for i < len(s) {
			r, size := utf8.DecodeRuneInString(s[i:])
			if !isSpace(r, size) {
				break
			}
			i += size
		}
		if i >= len(s) {
			break
		}

		start := i
		for i < len(s) {
			r, size := utf8.DecodeRuneInString(s[i:])
			if isSpace(r, size) {
				break
			}
			i += size
		}
		tokens = append(tokens, Token{Text: s[start:i], Start: start, End: i})
	}

	return tokens
}

// isSpace reports whether the decoded rune is a delimiter.
// Besides unicode.IsSpace this includes the ASCII information separators
// U+001C..U+001F (file, group, record and unit separator).
// A RuneError produced by an invalid byte is never a delimiter.
func isSpace(r rune, size int) bool {
	if r == utf8.RuneError && size <= 1 {
		return false
	}
	if r >= 0x1C && r <= 0x1F {
		return true
	}
	return unicode.IsSpace(r)
}
